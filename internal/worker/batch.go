package worker

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ppiankov/foundyear/internal/model"
	"github.com/ppiankov/foundyear/internal/output"
)

// Processor turns one company name into a record and renders it
type Processor interface {
	Process(ctx context.Context, name string) model.Record
	Line(rec model.Record) string
}

// RecordObserver is notified after each emitted record
type RecordObserver interface {
	ObserveRecord(rec model.Record, elapsed time.Duration)
}

// Summary counts the records of one batch run
type Summary struct {
	RunID        string
	Total        int
	ByOutcome    map[model.Outcome]int
	ByConfidence [4]int
	Elapsed      time.Duration
}

// Matched returns the number of names that resolved to an article
func (s Summary) Matched() int {
	return s.ByOutcome[model.OutcomeMatched]
}

// BatchRunner resolves a list of names one at a time, in input order
type BatchRunner struct {
	processor Processor
	logger    *slog.Logger
	observer  RecordObserver
	progress  io.Writer
}

// Option configures a BatchRunner
type Option func(*BatchRunner)

// WithObserver registers an observer for emitted records
func WithObserver(o RecordObserver) Option {
	return func(b *BatchRunner) { b.observer = o }
}

// WithProgress prints a progress line per name to w
func WithProgress(w io.Writer) Option {
	return func(b *BatchRunner) { b.progress = w }
}

// NewBatchRunner creates a sequential batch runner
func NewBatchRunner(processor Processor, logger *slog.Logger, opts ...Option) *BatchRunner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	b := &BatchRunner{
		processor: processor,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Run emits exactly one record per name to sink. It stops early only when ctx
// is cancelled or the sink fails; the summary covers the records emitted so far.
func (b *BatchRunner) Run(ctx context.Context, names []string, sink output.Sink) (Summary, error) {
	summary := Summary{
		RunID:     uuid.NewString(),
		ByOutcome: make(map[model.Outcome]int),
	}
	logger := b.logger.With("run_id", summary.RunID)
	logger.Info("batch started", "names", len(names))

	start := time.Now()

	for i, name := range names {
		if err := ctx.Err(); err != nil {
			logger.Warn("batch interrupted", "done", summary.Total, "remaining", len(names)-i)
			summary.Elapsed = time.Since(start)
			return summary, fmt.Errorf("batch interrupted after %d of %d names: %w", summary.Total, len(names), err)
		}

		if b.progress != nil {
			_, _ = fmt.Fprintf(b.progress, "[%d/%d] %s\n", i+1, len(names), name)
		}

		began := time.Now()
		rec := b.processor.Process(ctx, name)
		elapsed := time.Since(began)

		// A lookup cut short by cancellation is not a miss; leave no record for it
		if err := ctx.Err(); err != nil {
			logger.Warn("batch interrupted", "name", name, "done", summary.Total, "remaining", len(names)-i)
			summary.Elapsed = time.Since(start)
			return summary, fmt.Errorf("batch interrupted after %d of %d names: %w", summary.Total, len(names), err)
		}

		if err := sink.Emit(b.processor.Line(rec)); err != nil {
			logger.Error("write record failed", "name", name, "error", err)
			summary.Elapsed = time.Since(start)
			return summary, fmt.Errorf("write record for %q: %w", name, err)
		}

		summary.Total++
		summary.ByOutcome[rec.Outcome]++
		summary.ByConfidence[rec.Result.Confidence]++
		if b.observer != nil {
			b.observer.ObserveRecord(rec, elapsed)
		}
	}

	summary.Elapsed = time.Since(start)
	logger.Info("batch finished",
		"records", summary.Total,
		"matched", summary.Matched(),
		"elapsed", summary.Elapsed.Round(time.Millisecond))
	return summary, nil
}
