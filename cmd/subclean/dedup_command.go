package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"subclean/internal/catalog"
	"subclean/internal/dedup"
	"subclean/internal/timing"
)

func newDedupCommand(cmdCtx *commandContext) *cobra.Command {
	var bins int

	cmd := &cobra.Command{
		Use:   "dedup FILE",
		Short: "Remove duplicate lines from a corpus file",
		Long: `Dedup removes duplicate lines from a flat corpus file. With --bins 1 the
whole file is deduplicated exactly in memory and written to dedup.<name>.
With more bins, lines are partitioned round-robin across temporary bucket
files and deduplicated per bucket, bounding memory at the cost of missing
duplicates that land in different buckets; output goes to
pseudodedup.<name>.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if bins < 1 {
				return fmt.Errorf("--bins must be at least 1, got %d", bins)
			}

			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := cmdCtx.ensureLogger()
			if err != nil {
				return err
			}

			store, err := catalog.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			input := args[0]
			output := dedup.OutputPath(input, bins)
			op := "dedup"
			if bins > 1 {
				op = "pseudodedup"
			}

			_, err = timing.Logged(logger, op+" "+filepath.Base(input), func() (dedup.Result, error) {
				res, tm, err := timing.Measure(func() (dedup.Result, error) {
					if bins == 1 {
						return dedup.File(input, output, logger)
					}
					warnBytes := int64(cfg.Dedup.BucketWarnMiB) * 1024 * 1024
					return dedup.FileBucketed(input, output, bins, warnBytes, logger)
				})
				if err != nil {
					return res, err
				}

				recordRun(store, logger, catalog.Run{
					Op:         op,
					Lines:      res.Lines,
					Duplicates: res.Duplicates,
					Seconds:    tm.Seconds(),
					StartedAt:  tm.Start,
				})
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d lines in, %d duplicates removed)\n",
					output, res.Lines, res.Duplicates)
				return res, nil
			})
			return err
		},
	}

	cmd.Flags().IntVar(&bins, "bins", 1, "Number of temporary bucket files; 1 selects exact in-memory deduplication")

	return cmd
}
