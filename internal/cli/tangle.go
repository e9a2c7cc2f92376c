package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/avoronov/blocksolve/internal/block"
	"github.com/avoronov/blocksolve/internal/config"
	"github.com/avoronov/blocksolve/internal/document"
)

func newTangleCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "tangle <document>...",
		Short: "Export solver block bodies to source files",
		Long: "Tangle writes each block's expanded source to <name>" + block.Ext + " so the programs\n" +
			"can be run outside the document. Blocks with :exports none or results are skipped.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadSettings(configFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if !cmd.Flags().Changed("dir") && cfg.TangleDir != "" {
				dir = cfg.TangleDir
			}
			return tangleDocuments(args, dir)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "output directory for tangled files")

	return cmd
}

func tangleDocuments(paths []string, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create tangle dir: %w", err)
	}

	for _, path := range paths {
		d, err := document.Load(path)
		if err != nil {
			return err
		}

		for _, blk := range d.Blocks {
			switch blk.Params.Exports {
			case block.ExportsNone, block.ExportsResults:
				continue
			}

			out := filepath.Join(dir, sanitizeName(blk.Name)+block.Ext)
			src := block.Expand(blk.Body, blk.Params.Vars)
			if err := os.WriteFile(out, []byte(src), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(os.Stdout, "%s: %s -> %s\n", path, blk.Name, out)
		}
	}
	return nil
}

// sanitizeName makes a block name safe as a file name.
func sanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, name)
}
