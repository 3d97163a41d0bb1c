package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/foundyear/internal/metrics"
	"github.com/ppiankov/foundyear/internal/model"
	"github.com/ppiankov/foundyear/internal/output"
	"github.com/ppiankov/foundyear/internal/worker"
)

var (
	quiet        bool
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <names-file>",
	Short: "Estimate founding years for a list of companies",
	Long: `Batch reads company names (one per line) and appends one record per name
to the output file, in input order:

  <name>; <title>; <full years>; <name years>; <founding years>; <confidence>; <guess>

Names without a usable article still get a record, with confidence 0 and the
guess 9000. Names are used exactly as written; blank lines are skipped. The
input may be UTF-8 or UTF-16; a byte order mark is honoured.

Example:
  foundyear batch companies.txt
  foundyear batch companies.txt --output - --quiet
  foundyear batch companies.txt --encoding utf-16 --metrics-file foundyear.prom`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().StringP("output", "o", "WikipediaFoundingDates.txt", `record file to append to ("-" for stdout)`)
	batchCmd.Flags().String("encoding", "auto", "input encoding (auto, utf-8, utf-16, utf-16le, utf-16be)")
	batchCmd.Flags().Bool("legacy-lists", false, `terminate every year with ", " as older record files do`)
	batchCmd.Flags().String("metrics-file", "", "write Prometheus metrics to this file when done")
	batchCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "no progress or record echo on the terminal")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 0, "stop the run after this long (0 means no limit)")

	_ = viper.BindPFlag("output.path", batchCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("input.encoding", batchCmd.Flags().Lookup("encoding"))
	_ = viper.BindPFlag("output.legacy_lists", batchCmd.Flags().Lookup("legacy-lists"))
	_ = viper.BindPFlag("metrics.textfile", batchCmd.Flags().Lookup("metrics-file"))
}

func runBatch(cmd *cobra.Command, args []string) (err error) {
	file := args[0]
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closer, err := newLogger(cfg, stderr)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	names, err := worker.ReadNames(file, cfg.Input.Encoding)
	if err != nil {
		return fmt.Errorf("read names: %w", err)
	}

	m := metrics.New()
	p, err := newPipeline(cfg, logger, m)
	if err != nil {
		return err
	}

	echo := cfg.Output.Echo && !quiet
	sink, err := output.Open(cfg.Output.Path, stdout, echo)
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}
	defer func() {
		if closeErr := sink.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close output: %w", closeErr)
		}
	}()

	if !quiet {
		printBatchHeader(cmd, file, len(names), cfg)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if batchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, batchTimeout)
		defer cancel()
	}

	opts := []worker.Option{worker.WithObserver(m)}
	if !quiet {
		opts = append(opts, worker.WithProgress(stderr))
	}
	runner := worker.NewBatchRunner(p, logger, opts...)

	summary, runErr := runner.Run(ctx, names, sink)

	if cfg.Metrics.Textfile != "" {
		if err := m.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			logger.Error("write metrics failed", "path", cfg.Metrics.Textfile, "error", err)
		}
	}

	printBatchSummary(cmd, summary, cfg)

	return runErr
}

func printBatchHeader(cmd *cobra.Command, file string, count int, cfg *model.Config) {
	w := cmd.ErrOrStderr()
	_, _ = fmt.Fprintf(w, "\n")
	_, _ = fmt.Fprintf(w, "═══════════════════════════════════════════════════════════\n")
	_, _ = fmt.Fprintf(w, "  Foundyear Batch\n")
	_, _ = fmt.Fprintf(w, "═══════════════════════════════════════════════════════════\n")
	_, _ = fmt.Fprintf(w, "\n")
	_, _ = fmt.Fprintf(w, "  Input file:   %s (%d names)\n", file, count)
	_, _ = fmt.Fprintf(w, "  Backend:      %s (%s)\n", cfg.Lookup.Backend, lookupTarget(cfg))
	_, _ = fmt.Fprintf(w, "  Segmenter:    %s\n", cfg.Extract.Segmenter)
	_, _ = fmt.Fprintf(w, "  Output:       %s\n", cfg.Output.Path)
	_, _ = fmt.Fprintf(w, "\n")
}

func printBatchSummary(cmd *cobra.Command, s worker.Summary, cfg *model.Config) {
	w := cmd.ErrOrStderr()
	_, _ = fmt.Fprintf(w, "\n")
	_, _ = fmt.Fprintf(w, "═══════════════════════════════════════════════════════════\n")
	_, _ = fmt.Fprintf(w, "  Batch Complete\n")
	_, _ = fmt.Fprintf(w, "═══════════════════════════════════════════════════════════\n")
	_, _ = fmt.Fprintf(w, "\n")
	_, _ = fmt.Fprintf(w, "  Records:    %d\n", s.Total)
	_, _ = fmt.Fprintf(w, "  Matched:    %d\n", s.Matched())
	_, _ = fmt.Fprintf(w, "  Missed:     %d\n", s.ByOutcome[model.OutcomeMiss])
	_, _ = fmt.Fprintf(w, "  Ambiguous:  %d\n", s.ByOutcome[model.OutcomeAmbiguous])
	_, _ = fmt.Fprintf(w, "  Errors:     %d\n", s.ByOutcome[model.OutcomeError])
	for tier := model.ConfidenceFounding; tier >= model.ConfidenceNone; tier-- {
		_, _ = fmt.Fprintf(w, "  Tier %d:     %d (%s)\n", tier, s.ByConfidence[tier], tier)
	}
	_, _ = fmt.Fprintf(w, "  Output:     %s\n", cfg.Output.Path)
	_, _ = fmt.Fprintf(w, "  Elapsed:    %s\n", s.Elapsed.Round(time.Millisecond))
	_, _ = fmt.Fprintf(w, "\n")
}
