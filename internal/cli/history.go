package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/avoronov/blocksolve/internal/config"
	"github.com/avoronov/blocksolve/internal/history"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent block evaluations",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistory()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			entries, err := store.Recent(limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(os.Stdout, "no evaluations recorded")
				return nil
			}

			for _, e := range entries {
				mark := "✓"
				if e.Failed {
					mark = "✗"
				}
				fmt.Fprintf(os.Stdout, "%s  %s %-20s %-30s exit %-3d %s\n",
					e.StartedAt.Format("2006-01-02 15:04:05"),
					mark, e.BlockName, e.Document, e.ExitCode,
					e.Duration.Truncate(time.Millisecond))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "number of entries to show")

	clear := &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded evaluations",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistory()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()
			return store.Clear()
		},
	}
	cmd.AddCommand(clear)

	return cmd
}

func openHistory() (*history.Store, error) {
	cfg, err := config.LoadSettings(configFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	path := cfg.HistoryPath
	if path == "" {
		path = history.DefaultPath()
	}
	return history.Open(path)
}
