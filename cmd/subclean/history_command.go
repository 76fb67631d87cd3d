package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"subclean/internal/catalog"
)

func newHistoryCommand(cmdCtx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent corpus operations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}

			store, err := catalog.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.RecentRuns(context.Background(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded.")
				return nil
			}

			headers := []string{"When", "Op", "Lang", "Format", "Years", "Files", "Lines", "Dupes", "Seconds"}
			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, []string{
					run.StartedAt.Local().Format("2006-01-02 15:04:05"),
					run.Op,
					run.Lang,
					run.Format,
					yearSpan(run),
					strconv.Itoa(run.Files),
					strconv.Itoa(run.Lines),
					strconv.Itoa(run.Duplicates),
					fmt.Sprintf("%.2f", run.Seconds),
				})
			}
			aligns := []columnAlignment{
				alignLeft, alignLeft, alignLeft, alignLeft, alignLeft,
				alignRight, alignRight, alignRight, alignRight,
			}
			fmt.Fprintln(out, renderTable(headers, rows, aligns))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to show")

	return cmd
}

func yearSpan(run catalog.Run) string {
	if run.YearStart == 0 && run.YearEnd == 0 {
		return ""
	}
	return fmt.Sprintf("%d-%d", run.YearStart, run.YearEnd)
}
