// Package pager implements infinite-scroll pagination over the catalog.
//
// The Controller loads the first page on start-up and further pages when
// the scroll position comes within a threshold of the end of the list.
// Each page is a listing fetch followed by an ordered, concurrent fetch
// of every entry's record; rows are appended once, in catalog order.
//
// Only one page load runs at a time. A scroll event that arrives while a
// load is in progress is dropped, not queued.
package pager

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nao1215/dexview/internal/config"
	"github.com/nao1215/dexview/internal/model"
	"github.com/nao1215/dexview/internal/pipeline"
	"github.com/nao1215/dexview/internal/pokeapi"
	"github.com/nao1215/dexview/internal/report"
	"github.com/nao1215/dexview/internal/session"
)

// ErrNotArmed is returned by OnScroll before the initial page has loaded.
var ErrNotArmed = errors.New("pager: scrolling not armed")

// ScrollMetrics describes the scroll position of the list, in pixels or
// any other consistent unit.
type ScrollMetrics struct {
	// Top is the scrolled distance from the start of the list.
	Top int
	// Height is the full height of the list content.
	Height int
	// ClientHeight is the visible height.
	ClientHeight int
}

// Controller loads catalog pages into a renderer.
type Controller struct {
	fetcher     pokeapi.Fetcher
	renderer    report.Renderer
	session     *session.Session
	threshold   int
	policy      config.AdvancePolicy
	concurrency int
	logger      *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithThreshold sets the distance from the end that triggers a load.
func WithThreshold(px int) Option {
	return func(c *Controller) {
		if px >= 0 {
			c.threshold = px
		}
	}
}

// WithAdvancePolicy selects how far the offset moves after a page.
func WithAdvancePolicy(p config.AdvancePolicy) Option {
	return func(c *Controller) {
		if p != "" {
			c.policy = p
		}
	}
}

// WithConcurrency sets how many records are fetched at once.
func WithConcurrency(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// New creates a Controller. The page size is taken from sess.
func New(fetcher pokeapi.Fetcher, renderer report.Renderer, sess *session.Session, opts ...Option) *Controller {
	c := &Controller{
		fetcher:     fetcher,
		renderer:    renderer,
		session:     sess,
		threshold:   config.DefaultScrollThreshold,
		policy:      config.AdvanceByLimit,
		concurrency: config.DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Session returns the session the controller mutates.
func (c *Controller) Session() *session.Session {
	return c.session
}

// LoadInitialPage replaces the list with the first page.
//
// On success the cursor points past the first page and scrolling is
// armed. On failure the list and the cursor are left as they were.
// The loading indicator is hidden on every path.
func (c *Controller) LoadInitialPage(ctx context.Context) error {
	c.renderer.ShowLoading()
	defer c.renderer.HideLoading()

	limit := c.session.Limit()
	records, err := c.fetchPage(ctx, 0, limit)
	if err != nil {
		return fmt.Errorf("loading initial page: %w", err)
	}

	c.renderer.Clear()
	c.renderer.Append(model.ListItems(records)...)
	c.session.Reset(c.advanceBy(limit, len(records)))
	c.session.Arm()

	c.logger.Debug("initial page loaded",
		"count", len(records),
		"offset", c.session.Offset(),
	)
	return nil
}

// LoadNextPage appends the page at the current offset.
//
// It returns false without doing anything if another load is running.
// The offset advances only after every record of the page is fetched.
func (c *Controller) LoadNextPage(ctx context.Context) (bool, error) {
	if !c.session.TryBegin() {
		c.logger.Debug("page load skipped: busy")
		return false, nil
	}
	defer c.session.End()

	c.renderer.ShowLoading()
	defer c.renderer.HideLoading()

	offset, limit := c.session.Offset(), c.session.Limit()
	records, err := c.fetchPage(ctx, offset, limit)
	if err != nil {
		return true, fmt.Errorf("loading page at offset %d: %w", offset, err)
	}

	c.renderer.Append(model.ListItems(records)...)
	c.session.Advance(c.advanceBy(limit, len(records)))

	c.logger.Debug("page loaded",
		"offset", offset,
		"count", len(records),
		"next_offset", c.session.Offset(),
	)
	return true, nil
}

// ShouldLoad reports whether the visible window is within the threshold
// of the end of the list.
func (c *Controller) ShouldLoad(m ScrollMetrics) bool {
	return m.Top+m.ClientHeight >= m.Height-c.threshold
}

// OnScroll loads the next page when the list is armed and near its end.
// It reports whether a page load ran.
func (c *Controller) OnScroll(ctx context.Context, m ScrollMetrics) (bool, error) {
	if !c.session.Armed() {
		return false, ErrNotArmed
	}
	if !c.ShouldLoad(m) {
		return false, nil
	}
	return c.LoadNextPage(ctx)
}

// fetchPage lists one page and fetches its records in catalog order.
func (c *Controller) fetchPage(ctx context.Context, offset, limit int) ([]*model.CreatureRecord, error) {
	entries, err := c.fetcher.ListCatalog(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return FetchRecords(ctx, c.fetcher, entries, c.concurrency, c.logger)
}

// advanceBy returns the offset step for a page of n entries.
func (c *Controller) advanceBy(limit, n int) int {
	if c.policy == config.AdvanceByCount {
		return n
	}
	return limit
}

// FetchRecords fetches the record of every entry concurrently and returns
// them in entry order. One failure fails the whole batch.
func FetchRecords(
	ctx context.Context,
	fetcher pokeapi.Fetcher,
	entries []model.CatalogEntry,
	concurrency int,
	logger *slog.Logger,
) ([]*model.CreatureRecord, error) {
	bp := pipeline.NewBatchProcessor(
		func(ctx context.Context, e model.CatalogEntry) (*model.CreatureRecord, error) {
			return fetcher.FetchRecord(ctx, e.DetailURL)
		},
		pipeline.WithConcurrency(concurrency),
		pipeline.WithBatchLogger(logger),
	)
	return bp.ProcessBatch(ctx, entries)
}
