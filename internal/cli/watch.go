package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/avoronov/blocksolve/internal/block"
	"github.com/avoronov/blocksolve/internal/config"
	"github.com/avoronov/blocksolve/internal/document"
	"github.com/avoronov/blocksolve/internal/reporter"
	"github.com/avoronov/blocksolve/internal/watch"
)

func newWatchCmd() *cobra.Command {
	var (
		solverName string
		models     int
		options    string
		maxRuntime time.Duration
		tuiMode    string
		noHistory  bool
	)

	cmd := &cobra.Command{
		Use:   "watch <document>...",
		Short: "Re-evaluate solver blocks whenever a document changes",
		Long: "Watch evaluates every block once, then re-evaluates a document each time it is\n" +
			"saved. Results are displayed live, not spliced back, so saving the display does\n" +
			"not retrigger the watch.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadSettings(configFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			opts, err := resolveEvalOptions(cfg,
				solverName, cmd.Flags().Changed("solver"),
				models, cmd.Flags().Changed("models"),
				options, cmd.Flags().Changed("options"),
				maxRuntime, cmd.Flags().Changed("max-runtime"),
				noHistory)
			if err != nil {
				return err
			}
			defer opts.close()

			return watchDocuments(args, opts, tuiMode)
		},
	}

	cmd.Flags().StringVar(&solverName, "solver", config.DefaultSolver, "solver executable")
	cmd.Flags().IntVarP(&models, "models", "n", config.DefaultModels, "default model count for blocks without :n (0 = all)")
	cmd.Flags().StringVar(&options, "options", "", "default extra solver flags for blocks without :options")
	cmd.Flags().DurationVar(&maxRuntime, "max-runtime", 0, "per-block timeout (0 = run to completion)")
	cmd.Flags().StringVar(&tuiMode, "tui", "auto", "display mode: full (interactive TUI), plain (log lines), auto (detect TTY)")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "skip recording evaluations in the history store")

	return cmd
}

// watchState holds the latest results per document, in document order.
type watchState struct {
	mu      sync.Mutex
	order   []string
	results map[string][]*block.EvalResult
}

func (s *watchState) set(path string, results []*block.EvalResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, seen := s.results[path]; !seen {
		s.order = append(s.order, path)
	}
	s.results[path] = results
}

func (s *watchState) snapshot() []*block.EvalResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*block.EvalResult
	for _, path := range s.order {
		out = append(out, s.results[path]...)
	}
	return out
}

func watchDocuments(paths []string, opts evalOptions, tuiMode string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		<-sigCh
		cancel()
	}()

	isTTY := isTerminal()
	if tuiMode == "" || tuiMode == "auto" {
		if isTTY {
			tuiMode = "full"
		} else {
			tuiMode = "plain"
		}
	}

	state := &watchState{results: make(map[string][]*block.EvalResult)}
	rep := reporter.NewTextReporter(os.Stdout, isTTY)
	plain := tuiMode != "full"

	reEval := func(path string) {
		d, err := document.Load(path)
		if err != nil {
			slog.Warn("skipping document", "path", path, "error", err)
			return
		}
		if plain {
			rep.PrintHeader(path, len(d.Blocks))
		}
		results := evaluateDocument(ctx, d, opts, func(res *block.EvalResult) {
			if plain {
				rep.PrintBlock(res)
			}
		})
		state.set(path, results)
	}

	// initial evaluation before watching
	for _, path := range paths {
		reEval(path)
	}

	w, err := watch.New(paths, reEval)
	if err != nil {
		return err
	}

	if plain {
		return w.Run(ctx)
	}

	model := reporter.NewWatchModel(state.snapshot, cancel)
	program := tea.NewProgram(model, tea.WithAltScreen())

	watchErr := make(chan error, 1)
	go func() {
		watchErr <- w.Run(ctx)
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		cancel()
		<-watchErr
		return fmt.Errorf("tui: %w", err)
	}
	cancel()
	return <-watchErr
}
