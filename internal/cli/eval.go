package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/avoronov/blocksolve/internal/block"
	"github.com/avoronov/blocksolve/internal/config"
	"github.com/avoronov/blocksolve/internal/solver"
)

func newEvalCmd() *cobra.Command {
	var (
		solverName string
		models     int
		options    string
		instance   string
		consts     []string
		maxRuntime time.Duration
	)

	cmd := &cobra.Command{
		Use:   "eval [file]",
		Short: "Evaluate a single solver source from a file or stdin",
		Long: "Eval reads solver source from a file (or stdin when no file is given), expands it\n" +
			"with --const bindings, runs the solver once, and prints the captured output.",
		Args: cobra.MaximumNArgs(1),
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
				true) // eval never records history
			if err != nil {
				return err
			}

			var vars []block.VarBinding
			for _, spec := range consts {
				b, err := block.ParseBinding(spec)
				if err != nil {
					return err
				}
				vars = append(vars, b)
			}

			body, err := readSource(args)
			if err != nil {
				return err
			}

			inv := solver.Invocation{
				Path:     opts.solverPath,
				Models:   opts.models,
				Options:  opts.options,
				Instance: instance,
			}

			ctx := context.Background()
			if opts.maxRuntime > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, opts.maxRuntime)
				defer cancel()
			}

			res, runErr := solver.Run(ctx, block.Expand(body, vars), inv)

			// partial output is returned even for failed runs
			fmt.Fprint(os.Stdout, res.Stdout)

			if runErr != nil {
				fmt.Fprintln(os.Stderr, runErr)
				return &FailedBlocksError{Count: 1}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&solverName, "solver", config.DefaultSolver, "solver executable")
	cmd.Flags().IntVarP(&models, "models", "n", config.DefaultModels, "model count (0 = all)")
	cmd.Flags().StringVar(&options, "options", "", "extra solver flags, passed through verbatim")
	cmd.Flags().StringVar(&instance, "instance", "", "instance file passed before the source")
	cmd.Flags().StringArrayVar(&consts, "const", nil, "constant binding name=value (repeatable, ordered)")
	cmd.Flags().DurationVar(&maxRuntime, "max-runtime", 0, "timeout (0 = run to completion)")

	return cmd
}

func readSource(args []string) (string, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read source: %w", err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	return string(data), nil
}
