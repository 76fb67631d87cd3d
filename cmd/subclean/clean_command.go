package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"subclean/internal/archive"
	"subclean/internal/catalog"
	"subclean/internal/corpus"
	"subclean/internal/runlock"
	"subclean/internal/subtitle"
	"subclean/internal/timing"
)

func newCleanCommand(cmdCtx *commandContext) *cobra.Command {
	var stripFlag bool
	var joinFlag bool
	var yearsFlag []int
	var formatFlag string

	cmd := &cobra.Command{
		Use:   "clean LANG",
		Short: "Strip and join subtitle archives for a language",
		Long: `Clean prepares the subtitle archive of one language for corpus use.
With --strip, XML entries of <lang>.zip are converted to the selected text
format and written to <lang>_stripped.zip. With --join, the stripped archive
is cleaned of punctuation and markup and concatenated into sub.<lang>.<format>.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Argument validation happens before any I/O.
			format, err := subtitle.ParseFormat(formatFlag)
			if err != nil {
				return err
			}
			years, err := parseYears(yearsFlag)
			if err != nil {
				return err
			}
			if !stripFlag && !joinFlag {
				return errors.New("nothing to do: pass --strip and/or --join")
			}
			lang := strings.TrimSpace(args[0])
			langName, err := languageName(lang)
			if err != nil {
				return err
			}

			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := cmdCtx.ensureLogger()
			if err != nil {
				return err
			}

			lock, err := runlock.Acquire(cfg.Paths.CorporaDir)
			if err != nil {
				return err
			}
			defer func() { _ = lock.Release() }()

			store, err := catalog.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			logger.Info("cleaning subtitles",
				slog.String("lang", lang),
				slog.String("language", langName),
				slog.String("format", string(format)))

			_, err = timing.Logged(logger, "clean "+lang, func() (int, error) {
				total := 0
				if stripFlag {
					count, err := runStrip(cmd, cfg.Paths.CorporaDir, store, logger, lang, format, years)
					if err != nil {
						return 0, err
					}
					total += count
				}
				if joinFlag {
					count, err := runJoin(cmd, cfg.Paths.CorporaDir, cfg.Join.Progress, store, logger, lang, format, years)
					if err != nil {
						return 0, err
					}
					total += count
				}
				return total, nil
			})
			return err
		},
	}

	cmd.Flags().BoolVar(&stripFlag, "strip", false, "Strip XML from subtitle files")
	cmd.Flags().BoolVar(&joinFlag, "join", false, "Join subtitles into one large text file")
	cmd.Flags().IntSliceVar(&yearsFlag, "years", []int{1900, 2050}, "Year range to include, inclusive start and exclusive end (start,end)")
	cmd.Flags().StringVar(&formatFlag, "format", "txt", "Output format: txt, lemma, upos, or viz")

	return cmd
}

// languageName resolves an English display name for a subtitle language
// code. OpenSubtitles carries codes like "ze_en" that are well-formed but
// not registered; those pass through with the raw code as the name. Only
// malformed input is rejected.
func languageName(lang string) (string, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		var unknown language.ValueError
		if errors.As(err, &unknown) {
			return lang, nil
		}
		return "", fmt.Errorf("language %q: %w", lang, err)
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name, nil
	}
	return lang, nil
}

func parseYears(years []int) (archive.YearRange, error) {
	if len(years) != 2 {
		return archive.YearRange{}, fmt.Errorf("--years expects exactly two values, got %d", len(years))
	}
	r := archive.YearRange{Start: years[0], End: years[1]}
	if r.End <= r.Start {
		return archive.YearRange{}, fmt.Errorf("--years end %d must be after start %d", r.End, r.Start)
	}
	return r, nil
}

func runStrip(cmd *cobra.Command, corporaDir string, store *catalog.Store, logger *slog.Logger, lang string, format subtitle.Format, years archive.YearRange) (int, error) {
	stripper := &archive.Stripper{CorporaDir: corporaDir, Logger: logger}
	count, tm, err := timing.Measure(func() (int, error) {
		return stripper.Strip(lang, format, years)
	})
	if err != nil {
		return 0, err
	}

	recordRun(store, logger, catalog.Run{
		Op:        "strip",
		Lang:      lang,
		Format:    string(format),
		YearStart: years.Start,
		YearEnd:   years.End,
		Files:     count,
		Seconds:   tm.Seconds(),
		StartedAt: tm.Start,
	})
	fmt.Fprintf(cmd.OutOrStdout(), "Stripped %d subtitle files into %s\n",
		count, archive.StrippedPath(corporaDir, lang))
	return count, nil
}

func runJoin(cmd *cobra.Command, corporaDir string, progress bool, store *catalog.Store, logger *slog.Logger, lang string, format subtitle.Format, years archive.YearRange) (int, error) {
	joiner := &corpus.Joiner{CorporaDir: corporaDir, Logger: logger}
	if progress && isatty.IsTerminal(os.Stderr.Fd()) {
		joiner.Progress = newJoinProgress()
	}

	count, tm, err := timing.Measure(func() (int, error) {
		return joiner.Join(lang, format, years)
	})
	if err != nil {
		return 0, err
	}

	recordRun(store, logger, catalog.Run{
		Op:        "join",
		Lang:      lang,
		Format:    string(format),
		YearStart: years.Start,
		YearEnd:   years.End,
		Files:     count,
		Seconds:   tm.Seconds(),
		StartedAt: tm.Start,
	})
	fmt.Fprintf(cmd.OutOrStdout(), "Joined %d subtitle files into %s\n",
		count, corpus.CorpusPath(corporaDir, lang, format))
	return count, nil
}

// newJoinProgress renders a percent-complete bar on stderr. The bar is
// created on the first callback, once the entry total is known.
func newJoinProgress() func(done, total int) {
	var bar *progressbar.ProgressBar
	return func(done, total int) {
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetDescription("joining"),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
		}
		_ = bar.Set(done)
	}
}

// recordRun stores catalog history on a best-effort basis: a bookkeeping
// failure must not fail a run whose corpus output already exists.
func recordRun(store *catalog.Store, logger *slog.Logger, run catalog.Run) {
	if _, err := store.RecordRun(context.Background(), run); err != nil {
		logger.Warn("failed to record run in catalog", slog.String("op", run.Op), slog.Any("error", err))
	}
}
