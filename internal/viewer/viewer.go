// Package viewer ties the session, pager, search engine and detail
// assembler to one renderer.
//
// Every top-level operation logs its failure and leaves the rendered
// state as it was; callers that need the error get it as the return
// value too. Superseded operations are not cancelled.
package viewer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nao1215/dexview/internal/config"
	"github.com/nao1215/dexview/internal/detail"
	"github.com/nao1215/dexview/internal/model"
	"github.com/nao1215/dexview/internal/pager"
	"github.com/nao1215/dexview/internal/pokeapi"
	"github.com/nao1215/dexview/internal/report"
	"github.com/nao1215/dexview/internal/search"
	"github.com/nao1215/dexview/internal/session"
)

// Viewer is one interactive catalog session.
type Viewer struct {
	fetcher   pokeapi.Fetcher
	renderer  report.Renderer
	session   *session.Session
	pager     *pager.Controller
	search    *search.Engine
	assembler *detail.Assembler
	logger    *slog.Logger
}

// New wires a Viewer from cfg.
func New(cfg *config.Config, fetcher pokeapi.Fetcher, renderer report.Renderer, logger *slog.Logger) *Viewer {
	if logger == nil {
		logger = slog.Default()
	}

	sess := session.New(cfg.PageLimit)
	pg := pager.New(fetcher, renderer, sess,
		pager.WithThreshold(cfg.ScrollThreshold),
		pager.WithAdvancePolicy(cfg.AdvancePolicy),
		pager.WithConcurrency(cfg.Concurrency),
		pager.WithLogger(logger),
	)
	se := search.New(fetcher, renderer, pg,
		search.WithCatalogSize(cfg.CatalogSize),
		search.WithConcurrency(cfg.Concurrency),
		search.WithLogger(logger),
	)

	return &Viewer{
		fetcher:   fetcher,
		renderer:  renderer,
		session:   sess,
		pager:     pg,
		search:    se,
		assembler: detail.NewAssemblerFromConfig(fetcher, cfg, logger),
		logger:    logger,
	}
}

// Session returns the viewer's session.
func (v *Viewer) Session() *session.Session {
	return v.session
}

// Search returns the viewer's search engine.
func (v *Viewer) Search() *search.Engine {
	return v.search
}

// Start loads the first page and prepares the search index. Each failure
// is logged; the other step still runs. The first error is returned.
func (v *Viewer) Start(ctx context.Context) error {
	pageErr := v.pager.LoadInitialPage(ctx)
	if pageErr != nil {
		v.logger.Error("initial page failed", "error", pageErr)
	}
	indexErr := v.search.Prepare(ctx)
	if indexErr != nil {
		v.logger.Error("search index failed", "error", indexErr)
	}
	if pageErr != nil {
		return pageErr
	}
	return indexErr
}

// Scroll forwards a scroll event to the pager. It reports whether a page
// was loaded.
func (v *Viewer) Scroll(ctx context.Context, m pager.ScrollMetrics) (bool, error) {
	ran, err := v.pager.OnScroll(ctx, m)
	if err != nil {
		v.logger.Error("scroll load failed", "error", err)
	}
	return ran, err
}

// More loads the next page regardless of scroll position.
func (v *Viewer) More(ctx context.Context) (bool, error) {
	ran, err := v.pager.LoadNextPage(ctx)
	if err != nil {
		v.logger.Error("page load failed", "error", err)
	}
	return ran, err
}

// Input applies a search term.
func (v *Viewer) Input(ctx context.Context, term string) ([]model.CatalogEntry, error) {
	matches, err := v.search.OnInput(ctx, term)
	if err != nil {
		v.logger.Error("search failed", "term", term, "error", err)
	}
	return matches, err
}

// Select highlights record, un-highlights the previous selection, and
// renders the record's detail view.
func (v *Viewer) Select(ctx context.Context, record *model.CreatureRecord) (*model.DetailView, error) {
	if record == nil {
		return nil, detail.ErrNilRecord
	}

	if prev, ok := v.session.Select(record.ID); ok && prev != record.ID {
		v.renderer.SetHighlighted(prev, false)
	}
	v.renderer.SetHighlighted(record.ID, true)

	view, err := v.assembler.BuildDetailView(ctx, record)
	if err != nil {
		v.logger.Error("detail failed", "id", record.ID, "error", err)
		return nil, err
	}
	v.renderer.RenderDetail(view)
	return view, nil
}

// SelectByName fetches the record for a name or identifier and selects it.
func (v *Viewer) SelectByName(ctx context.Context, nameOrID string) (*model.DetailView, error) {
	record, err := v.fetcher.FetchRecordByName(ctx, nameOrID)
	if err != nil {
		err = fmt.Errorf("looking up %q: %w", nameOrID, err)
		v.logger.Error("lookup failed", "name", nameOrID, "error", err)
		return nil, err
	}
	return v.Select(ctx, record)
}
