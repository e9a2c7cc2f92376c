package reporter

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/avoronov/blocksolve/internal/block"
)

var spinnerChars = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// TUI styles
var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	failedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
	runStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14")) // cyan
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // gray
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type tickMsg time.Time

// WatchModel is the Bubbletea model for watch-mode live display.
type WatchModel struct {
	getResults func() []*block.EvalResult
	cancelRun  func() // called on 'q' to stop watching

	results []*block.EvalResult
	frame   int
	width   int
	height  int
}

// NewWatchModel creates a watch-mode model polling getResults for the
// latest per-block outcomes.
func NewWatchModel(getResults func() []*block.EvalResult, cancelRun func()) WatchModel {
	return WatchModel{getResults: getResults, cancelRun: cancelRun}
}

// Init implements tea.Model.
func (m WatchModel) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.cancelRun != nil {
				m.cancelRun()
			}
			return m, tea.Quit
		}

	case tickMsg:
		m.results = m.getResults()
		m.frame++
		return m, tickCmd()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// View implements tea.Model.
func (m WatchModel) View() string {
	var b strings.Builder

	spinner := spinnerChars[m.frame%len(spinnerChars)]
	b.WriteString(headerStyle.Render(fmt.Sprintf("blocksolve watch %s", spinner)))
	b.WriteString("\n\n")

	if len(m.results) == 0 {
		b.WriteString(dimStyle.Render("  waiting for first evaluation..."))
		b.WriteString("\n")
	}

	lastDoc := ""
	for _, res := range m.results {
		if res.Document != lastDoc {
			lastDoc = res.Document
			b.WriteString(dimStyle.Render("  " + res.Document))
			b.WriteString("\n")
		}
		b.WriteString(m.renderBlock(res))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("q: quit"))
	b.WriteString("\n")
	return b.String()
}

func (m WatchModel) renderBlock(res *block.EvalResult) string {
	name := fmt.Sprintf("%-20s", res.BlockName)
	switch res.State {
	case block.StateRunning:
		return runStyle.Render(fmt.Sprintf("    %s %s", spinnerChars[m.frame%len(spinnerChars)], name))
	case block.StateFailed:
		return failedStyle.Render(fmt.Sprintf("    ✗ %s %s  %s",
			name, res.Duration.Truncate(time.Millisecond), res.Error))
	case block.StateCompleted:
		line := fmt.Sprintf("    ✓ %s %s  (exit %d)",
			name, res.Duration.Truncate(time.Millisecond), res.ExitCode)
		return doneStyle.Render(line)
	default:
		return dimStyle.Render("    · " + name)
	}
}
