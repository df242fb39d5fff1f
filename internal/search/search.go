// Package search filters the full catalog by name prefix.
//
// Prepare fetches the whole catalog index once. Each input then filters
// that index in memory (case-insensitive prefix match, catalog order) and
// fetches the records of every match as one ordered batch; rows are
// appended only if every record arrives. An empty term hands control back
// to the pager, which reloads the first page.
package search

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"

	"github.com/nao1215/dexview/internal/config"
	"github.com/nao1215/dexview/internal/model"
	"github.com/nao1215/dexview/internal/pager"
	"github.com/nao1215/dexview/internal/pokeapi"
	"github.com/nao1215/dexview/internal/report"
)

// ErrIndexNotReady is returned by OnInput before Prepare has succeeded.
var ErrIndexNotReady = errors.New("search: index not ready")

// Engine performs prefix searches over the catalog.
type Engine struct {
	fetcher     pokeapi.Fetcher
	renderer    report.Renderer
	pager       *pager.Controller
	catalogSize int
	concurrency int
	logger      *slog.Logger

	mu    sync.RWMutex
	index []model.CatalogEntry
	ready bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithCatalogSize sets how many entries Prepare requests.
func WithCatalogSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.catalogSize = n
		}
	}
}

// WithConcurrency sets how many match records are fetched at once.
func WithConcurrency(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates an Engine. pg is used to restore the paginated view when
// the search term is cleared; it may be nil for one-shot searches.
func New(fetcher pokeapi.Fetcher, renderer report.Renderer, pg *pager.Controller, opts ...Option) *Engine {
	e := &Engine{
		fetcher:     fetcher,
		renderer:    renderer,
		pager:       pg,
		catalogSize: config.DefaultCatalogSize,
		concurrency: config.DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	return e
}

// Prepare fetches the catalog index with a single listing call.
func (e *Engine) Prepare(ctx context.Context) error {
	entries, err := e.fetcher.ListCatalog(ctx, 0, e.catalogSize)
	if err != nil {
		return fmt.Errorf("preparing search index: %w", err)
	}

	e.mu.Lock()
	e.index = entries
	e.ready = true
	e.mu.Unlock()

	e.logger.Debug("search index ready", "entries", len(entries))
	return nil
}

// Ready reports whether Prepare has succeeded.
func (e *Engine) Ready() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.ready
}

// Index returns the retained catalog index.
func (e *Engine) Index() []model.CatalogEntry {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.index
}

// FilterByPrefix returns the entries whose lower-cased name starts with
// the lower-cased term, in their original order.
func FilterByPrefix(entries []model.CatalogEntry, term string) []model.CatalogEntry {
	prefix := strings.ToLower(term)
	matches := make([]model.CatalogEntry, 0)
	for _, e := range entries {
		if strings.HasPrefix(strings.ToLower(e.Name), prefix) {
			matches = append(matches, e)
		}
	}
	return matches
}

// OnInput handles a change of the search term.
//
// An empty term reloads the first page through the pager and returns nil.
// Otherwise the list is cleared and replaced by the records of every
// match. If any record fails to load the list stays empty and the error
// is returned.
func (e *Engine) OnInput(ctx context.Context, term string) ([]model.CatalogEntry, error) {
	if term == "" {
		if e.pager == nil {
			e.renderer.Clear()
			return nil, nil
		}
		return nil, e.pager.LoadInitialPage(ctx)
	}

	e.mu.RLock()
	ready, index := e.ready, e.index
	e.mu.RUnlock()
	if !ready {
		return nil, ErrIndexNotReady
	}

	e.renderer.Clear()
	matches := FilterByPrefix(index, term)
	if len(matches) == 0 {
		return matches, nil
	}

	e.renderer.ShowLoading()
	defer e.renderer.HideLoading()

	records, err := pager.FetchRecords(ctx, e.fetcher, matches, e.concurrency, e.logger)
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", term, err)
	}
	e.renderer.Append(model.ListItems(records)...)

	e.logger.Debug("search complete", "term", term, "matches", len(matches))
	return matches, nil
}

// Suggest returns up to n index names closest to term by edit distance,
// for use when a search has no prefix match. Names further away than a
// length-dependent limit are not suggested.
func (e *Engine) Suggest(term string, n int) []string {
	if n <= 0 || term == "" {
		return nil
	}
	term = strings.ToLower(term)

	type candidate struct {
		name string
		dist int
		pos  int
	}

	index := e.Index()
	candidates := make([]candidate, 0)
	for i, entry := range index {
		name := strings.ToLower(entry.Name)
		dist := levenshtein.ComputeDistance(term, name)
		if dist > distanceLimit(len(name)) {
			continue
		}
		candidates = append(candidates, candidate{name: entry.Name, dist: dist, pos: i})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].dist != candidates[j].dist {
			return candidates[i].dist < candidates[j].dist
		}
		return candidates[i].pos < candidates[j].pos
	})

	out := make([]string, 0, min(n, len(candidates)))
	for _, c := range candidates[:min(n, len(candidates))] {
		out = append(out, c.name)
	}
	return out
}

// distanceLimit is the largest edit distance still worth suggesting.
func distanceLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
