package detail

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nao1215/dexview/internal/config"
	"github.com/nao1215/dexview/internal/model"
	"github.com/nao1215/dexview/internal/pipeline"
	"github.com/nao1215/dexview/internal/pokeapi"
)

// Assembler builds detail views from records.
type Assembler struct {
	fetcher         pokeapi.Fetcher
	artworkTemplate string
	concurrency     int
	lenient         bool
	logger          *slog.Logger
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithArtworkTemplate sets the template used for evolution stage images.
func WithArtworkTemplate(template string) Option {
	return func(a *Assembler) {
		if template != "" {
			a.artworkTemplate = template
		}
	}
}

// WithConcurrency sets how many abilities are fetched at once.
func WithConcurrency(n int) Option {
	return func(a *Assembler) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

// WithLenient lets assembly continue past failing steps.
func WithLenient(lenient bool) Option {
	return func(a *Assembler) {
		a.lenient = lenient
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assembler) {
		a.logger = logger
	}
}

// NewAssembler creates an Assembler reading from fetcher.
func NewAssembler(fetcher pokeapi.Fetcher, opts ...Option) *Assembler {
	a := &Assembler{
		fetcher:         fetcher,
		artworkTemplate: config.DefaultArtworkTemplate,
		concurrency:     config.DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	return a
}

// NewAssemblerFromConfig creates an Assembler using the detail settings of cfg.
func NewAssemblerFromConfig(fetcher pokeapi.Fetcher, cfg *config.Config, logger *slog.Logger) *Assembler {
	return NewAssembler(fetcher,
		WithArtworkTemplate(cfg.ArtworkTemplate),
		WithConcurrency(cfg.Concurrency),
		WithLenient(cfg.LenientDetail),
		WithLogger(logger),
	)
}

// BuildDetailView fetches the species, abilities and evolution chain of
// record and returns the assembled view.
//
// In strict mode (the default) a failing species or ability fetch aborts
// the build and no view is returned. A failing evolution chain never does:
// the summary is kept, view.Evolution stays empty and the failure is listed
// in view.Errors. In lenient mode the view is always returned.
func (a *Assembler) BuildDetailView(ctx context.Context, record *model.CreatureRecord) (*model.DetailView, error) {
	if record == nil {
		return nil, ErrNilRecord
	}

	p := pipeline.New(
		pipeline.WithLogger(a.logger),
		pipeline.WithContinueOnError(a.lenient),
	)
	p.AddSteps(
		NewSpeciesStep(a.fetcher),
		NewAbilitiesStep(a.fetcher, a.concurrency, a.logger),
		SummaryStep{},
	)
	p.AddOptionalStep(NewEvolutionStep(a.fetcher, a.artworkTemplate))

	view := model.NewDetailView(record)
	if err := p.Execute(ctx, view); err != nil {
		return nil, fmt.Errorf("building detail view for %s: %w", record.Name, err)
	}
	return view, nil
}
