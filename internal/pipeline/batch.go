package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/dexview/internal/config"
)

// FetchFunc fetches the result for one input.
type FetchFunc[T, R any] func(ctx context.Context, item T) (R, error)

// BatchProcessor fetches many inputs concurrently with a bounded number of
// goroutines and returns the results in input order.
type BatchProcessor[T, R any] struct {
	// fetch is called once per input.
	fetch FetchFunc[T, R]

	// concurrency is the maximum number of in-flight fetches.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// batchSettings holds the options shared by every BatchProcessor type.
type batchSettings struct {
	concurrency int
	logger      *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*batchSettings)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(s *batchSettings) {
		s.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent fetches.
// Non-positive values keep the default.
func WithConcurrency(n int) BatchOption {
	return func(s *batchSettings) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// NewBatchProcessor creates a BatchProcessor around fetch.
func NewBatchProcessor[T, R any](fetch FetchFunc[T, R], opts ...BatchOption) *BatchProcessor[T, R] {
	s := batchSettings{concurrency: config.DefaultConcurrency}
	for _, opt := range opts {
		opt(&s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	return &BatchProcessor[T, R]{
		fetch:       fetch,
		concurrency: s.concurrency,
		logger:      s.logger,
	}
}

// ProcessBatch fetches every item and returns the results in input order.
//
// The batch is all-or-nothing: the first failure cancels the remaining
// fetches and ProcessBatch returns nil results with that error.
func (bp *BatchProcessor[T, R]) ProcessBatch(ctx context.Context, items []T) ([]R, error) {
	bp.logger.Debug("starting batch",
		"total", len(items),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()

	// Each goroutine owns exactly one slot.
	results := make([]R, len(items))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, item := range items {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			r, err := bp.fetch(ctx, item)
			if err != nil {
				return fmt.Errorf("batch item %d: %w", i, err)
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		bp.logger.Debug("batch failed",
			"total", len(items),
			"error", err,
		)
		return nil, err
	}

	bp.logger.Debug("batch complete",
		"total", len(items),
		"elapsed", time.Since(startTime),
	)

	return results, nil
}

// ProcessBatchWithCallback fetches every item and calls callback for each
// success with the index of its input. The callback runs on the fetching
// goroutine and must be safe for concurrent use. The first failure cancels
// the remaining fetches and is returned.
func (bp *BatchProcessor[T, R]) ProcessBatchWithCallback(
	ctx context.Context,
	items []T,
	callback func(result R, index int),
) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, item := range items {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			r, err := bp.fetch(ctx, item)
			if err != nil {
				return fmt.Errorf("batch item %d: %w", i, err)
			}
			callback(r, i)
			return nil
		})
	}

	return g.Wait()
}
