package cmd

import (
	"fmt"
	"strconv"
	"time"

	"persistence-setup/core/config"
	"persistence-setup/core/journal"
	"persistence-setup/core/logger"

	"github.com/spf13/cobra"
)

var historyLimit int

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show journaled setup changes",
	Long:  `Lists the latest file changes recorded by setup runs. Requires DATABASE_ENABLED=true.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer logg.Sync()

		svc, err := newService(cmd.Context(), cfg, logg)
		if err != nil {
			return err
		}
		entries, err := svc.History(cmd.Context(), historyLimit)
		if err != nil {
			return err
		}

		renderHistory(cmd, entries)
		return nil
	},
}

func renderHistory(cmd *cobra.Command, entries []journal.Entry) {
	table := newTable(cmd.OutOrStdout(), plainFlag)
	table.Header("Time", "Run", "Selection", "Action", "Path", "Dry Run")
	for _, e := range entries {
		_ = table.Append(
			e.CreatedAt.Format(time.DateTime),
			e.RunID[:min(8, len(e.RunID))],
			e.Provider+"/"+e.Database,
			e.Action,
			e.Path,
			strconv.FormatBool(e.DryRun),
		)
	}
	_ = table.Render()
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", journal.DefaultLimit, "maximum number of entries")
	historyCmd.Flags().BoolVar(&plainFlag, "plain", false, "use ASCII table borders")
	RootCmd.AddCommand(historyCmd)
}
