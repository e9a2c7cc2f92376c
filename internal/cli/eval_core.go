package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/avoronov/blocksolve/internal/block"
	"github.com/avoronov/blocksolve/internal/config"
	"github.com/avoronov/blocksolve/internal/document"
	"github.com/avoronov/blocksolve/internal/history"
	"github.com/avoronov/blocksolve/internal/solver"
)

// evalOptions carries the evaluation defaults resolved from settings and
// flags. They are passed explicitly so evaluations stay referentially
// transparent; there is no process-wide default state.
type evalOptions struct {
	solverPath string // resolved solver executable
	models     *int   // default model count for blocks without :n
	options    string // default extra flags for blocks without :options
	maxRuntime time.Duration
	store      *history.Store // nil disables history recording
}

// resolveEvalOptions merges settings and flags into evalOptions.
// modelsSet/optionsSet report whether the flags were given explicitly.
func resolveEvalOptions(cfg *config.Settings, solverFlag string, solverSet bool,
	modelsFlag int, modelsSet bool, optionsFlag string, optionsSet bool,
	maxRuntime time.Duration, maxRuntimeSet bool, noHistory bool) (evalOptions, error) {

	executable := config.DefaultSolver
	if cfg.Solver != "" {
		executable = cfg.Solver
	}
	if solverSet {
		executable = solverFlag
	}

	path, err := solver.Resolve(executable)
	if err != nil {
		return evalOptions{}, err
	}

	models := config.DefaultModels
	if cfg.Models != nil {
		models = *cfg.Models
	}
	if modelsSet {
		if modelsFlag < 0 {
			return evalOptions{}, fmt.Errorf("models must be non-negative, got %d", modelsFlag)
		}
		models = modelsFlag
	}

	options := cfg.Options
	if optionsSet {
		options = optionsFlag
	}

	if !maxRuntimeSet && cfg.MaxRuntime > 0 {
		maxRuntime = cfg.MaxRuntime
	}

	opts := evalOptions{
		solverPath: path,
		models:     &models,
		options:    options,
		maxRuntime: maxRuntime,
	}

	if cfg.History && !noHistory {
		histPath := cfg.HistoryPath
		if histPath == "" {
			histPath = history.DefaultPath()
		}
		store, err := history.Open(histPath)
		if err != nil {
			// history is informational; never block an evaluation on it
			slog.Warn("history disabled", "error", err)
		} else {
			opts.store = store
		}
	}

	return opts, nil
}

func (o evalOptions) close() {
	if o.store != nil {
		_ = o.store.Close()
	}
}

// evaluateDocument runs every solver block in the document, in document
// order, one subprocess at a time. onUpdate (optional) observes each
// result as it lands.
func evaluateDocument(ctx context.Context, d *document.Document, opts evalOptions,
	onUpdate func(*block.EvalResult)) []*block.EvalResult {

	results := make([]*block.EvalResult, 0, len(d.Blocks))
	for _, blk := range d.Blocks {
		res := evaluateBlock(ctx, d.Path, blk, opts)
		results = append(results, res)
		if onUpdate != nil {
			onUpdate(res)
		}
	}
	return results
}

// evaluateBlock expands one block and runs it through the solver. The
// returned result always carries the captured stdout, even on failure.
func evaluateBlock(ctx context.Context, doc string, blk *block.Block, opts evalOptions) *block.EvalResult {
	models := blk.Params.Models
	if models == nil {
		models = opts.models
	}
	options := blk.Params.Options
	if options == "" {
		options = opts.options
	}

	inv := solver.Invocation{
		Path:     opts.solverPath,
		Models:   models,
		Options:  options,
		Instance: blk.Params.Instance,
	}

	runCtx := ctx
	if opts.maxRuntime > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, opts.maxRuntime)
		defer cancel()
	}

	started := time.Now()
	src := block.Expand(blk.Body, blk.Params.Vars)
	r, err := solver.Run(runCtx, src, inv)

	res := &block.EvalResult{
		Document:  doc,
		BlockName: blk.Name,
		State:     block.StateCompleted,
		StartedAt: started,
		Duration:  r.Duration,
		ExitCode:  r.ExitCode,
		Output:    r.Stdout,
		Stderr:    r.Stderr,
	}
	if err != nil {
		res.State = block.StateFailed
		res.Error = err.Error()
	}

	if opts.store != nil {
		if err := opts.store.Record(history.Entry{
			Document:    doc,
			BlockName:   blk.Name,
			StartedAt:   started,
			Duration:    res.Duration,
			ExitCode:    res.ExitCode,
			Failed:      res.State == block.StateFailed,
			Stderr:      res.Stderr,
			StdoutBytes: len(res.Output),
		}); err != nil {
			slog.Warn("history record failed", "block", blk.Name, "error", err)
		}
	}

	return res
}

// FailedBlocksError indicates one or more blocks were classified as
// failed. Callers should map this to exit code 2; the captured output was
// still returned and spliced.
type FailedBlocksError struct {
	Count int
}

func (e *FailedBlocksError) Error() string {
	return fmt.Sprintf("%d block(s) failed", e.Count)
}
