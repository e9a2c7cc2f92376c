package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/avoronov/blocksolve/internal/block"
	"github.com/avoronov/blocksolve/internal/config"
	"github.com/avoronov/blocksolve/internal/document"
	"github.com/avoronov/blocksolve/internal/reporter"
)

func newRunCmd() *cobra.Command {
	var (
		solverName string
		models     int
		options    string
		maxRuntime time.Duration
		toStdout   bool
		noHistory  bool
	)

	cmd := &cobra.Command{
		Use:   "run <document>...",
		Short: "Evaluate all solver blocks in documents and splice results back",
		Args:  cobra.MinimumNArgs(1),
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

			return runDocuments(args, opts, toStdout)
		},
	}

	cmd.Flags().StringVar(&solverName, "solver", config.DefaultSolver, "solver executable")
	cmd.Flags().IntVarP(&models, "models", "n", config.DefaultModels, "default model count for blocks without :n (0 = all)")
	cmd.Flags().StringVar(&options, "options", "", "default extra solver flags for blocks without :options")
	cmd.Flags().DurationVar(&maxRuntime, "max-runtime", 0, "per-block timeout (0 = run to completion)")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "print the rewritten document instead of writing it")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "skip recording evaluations in the history store")

	return cmd
}

func runDocuments(paths []string, opts evalOptions, toStdout bool) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\ninterrupted — waiting for the running solver to finish...")
		cancel()
	}()

	rep := reporter.NewTextReporter(os.Stderr, isTerminal())

	start := time.Now()
	total, failed := 0, 0

	for _, path := range paths {
		d, err := document.Load(path)
		if err != nil {
			return err
		}

		rep.PrintHeader(path, len(d.Blocks))

		spliced := make(map[string]string, len(d.Blocks))
		results := evaluateDocument(ctx, d, opts, func(res *block.EvalResult) {
			rep.PrintBlock(res)
		})

		for i, res := range results {
			total++
			if res.State == block.StateFailed {
				failed++
			}
			// failed blocks still splice their best-effort output
			if d.Blocks[i].Params.Results == block.ResultsOutput {
				spliced[res.BlockName] = res.Output
			}
		}

		text := d.Splice(spliced)
		if toStdout {
			fmt.Fprint(os.Stdout, text)
		} else if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}

	rep.PrintSummary(total, failed, time.Since(start))

	if failed > 0 {
		return &FailedBlocksError{Count: failed}
	}
	return nil
}
