package reporter

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/avoronov/blocksolve/internal/block"
)

func TestTextReporter_PrintBlock(t *testing.T) {
	var buf bytes.Buffer
	r := NewTextReporter(&buf, false)

	r.PrintBlock(&block.EvalResult{
		BlockName: "coloring",
		State:     block.StateCompleted,
		ExitCode:  10,
		Duration:  42 * time.Millisecond,
		Output:    "color(1,red)\nSATISFIABLE\n",
	})

	out := buf.String()
	if !strings.Contains(out, "✓ coloring") {
		t.Errorf("missing success marker:\n%s", out)
	}
	if !strings.Contains(out, "(exit 10)") {
		t.Errorf("missing exit code:\n%s", out)
	}
	if !strings.Contains(out, "SATISFIABLE") {
		t.Errorf("missing captured output:\n%s", out)
	}
	if strings.Contains(out, "\033[") {
		t.Errorf("color disabled but ANSI codes present:\n%q", out)
	}
}

func TestTextReporter_PrintBlockFailed(t *testing.T) {
	var buf bytes.Buffer
	r := NewTextReporter(&buf, false)

	r.PrintBlock(&block.EvalResult{
		BlockName: "broken",
		State:     block.StateFailed,
		ExitCode:  65,
		Error:     "solver failed (exit 65): parse error",
		Output:    "partial\n",
	})

	out := buf.String()
	if !strings.Contains(out, "✗ broken") {
		t.Errorf("missing failure marker:\n%s", out)
	}
	if !strings.Contains(out, "parse error") {
		t.Errorf("missing error detail:\n%s", out)
	}
	if !strings.Contains(out, "partial") {
		t.Errorf("partial output must still print:\n%s", out)
	}
}

func TestTextReporter_Summary(t *testing.T) {
	var buf bytes.Buffer
	r := NewTextReporter(&buf, false)

	r.PrintSummary(3, 1, 1500*time.Millisecond)

	out := buf.String()
	if !strings.Contains(out, "Blocks: 3") || !strings.Contains(out, "Completed: 2") || !strings.Contains(out, "Failed: 1") {
		t.Errorf("summary counts wrong:\n%s", out)
	}
}

func TestTextReporter_SummaryOmitsFailedWhenZero(t *testing.T) {
	var buf bytes.Buffer
	r := NewTextReporter(&buf, false)

	r.PrintSummary(2, 0, time.Second)

	if strings.Contains(buf.String(), "Failed:") {
		t.Errorf("Failed section printed with zero failures:\n%s", buf.String())
	}
}

func TestTextReporter_ColorCodes(t *testing.T) {
	var buf bytes.Buffer
	r := NewTextReporter(&buf, true)
	r.PrintSummary(1, 0, time.Second)
	if !strings.Contains(buf.String(), colorCyan) {
		t.Error("color enabled but no ANSI codes emitted")
	}
}
