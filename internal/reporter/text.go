package reporter

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/avoronov/blocksolve/internal/block"
)

const (
	colorReset = "\033[0m"
	colorGreen = "\033[32m"
	colorRed   = "\033[31m"
	colorCyan  = "\033[36m"
	colorDim   = "\033[2m"
)

// TextReporter writes human-readable evaluation output to a writer.
type TextReporter struct {
	w     io.Writer
	color bool
}

// NewTextReporter creates a text reporter.
// If w is nil, defaults to os.Stdout. color enables ANSI codes.
func NewTextReporter(w io.Writer, color bool) *TextReporter {
	if w == nil {
		w = os.Stdout
	}
	return &TextReporter{w: w, color: color}
}

// PrintHeader writes the per-document banner.
func (r *TextReporter) PrintHeader(doc string, blocks int) {
	fmt.Fprintf(r.w, "%s — %d solver block(s)\n\n", doc, blocks)
}

// PrintBlock writes one block's outcome. Failed blocks show the exit code
// and the first stderr line; their partial output still prints.
func (r *TextReporter) PrintBlock(res *block.EvalResult) {
	dur := res.Duration.Truncate(time.Millisecond)
	switch res.State {
	case block.StateFailed:
		fmt.Fprintf(r.w, "  %s✗ %-20s%s %s  %s\n",
			r.c(colorRed), res.BlockName, r.c(colorReset), dur, res.Error)
	default:
		fmt.Fprintf(r.w, "  %s✓ %-20s%s %s  (exit %d)\n",
			r.c(colorGreen), res.BlockName, r.c(colorReset), dur, res.ExitCode)
	}
	if res.Output != "" {
		for _, line := range strings.Split(strings.TrimSuffix(res.Output, "\n"), "\n") {
			fmt.Fprintf(r.w, "    %s%s%s\n", r.c(colorDim), line, r.c(colorReset))
		}
	}
}

// PrintSummary writes the final summary line across all documents.
func (r *TextReporter) PrintSummary(total, failed int, dur time.Duration) {
	completed := total - failed
	fmt.Fprintf(r.w, "\n%s--- Summary ---%s\n", r.c(colorCyan), r.c(colorReset))
	fmt.Fprintf(r.w, "Blocks: %d  ", total)
	fmt.Fprintf(r.w, "%sCompleted: %d%s  ", r.c(colorGreen), completed, r.c(colorReset))
	if failed > 0 {
		fmt.Fprintf(r.w, "%sFailed: %d%s  ", r.c(colorRed), failed, r.c(colorReset))
	}
	fmt.Fprintf(r.w, "Duration: %s\n", dur.Truncate(time.Millisecond))
}

func (r *TextReporter) c(code string) string {
	if !r.color {
		return ""
	}
	return code
}
