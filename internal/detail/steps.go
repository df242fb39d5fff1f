package detail

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nao1215/dexview/internal/model"
	"github.com/nao1215/dexview/internal/pipeline"
	"github.com/nao1215/dexview/internal/pokeapi"
)

// SpeciesStep fetches the species of the view's record.
type SpeciesStep struct {
	fetcher pokeapi.Fetcher
}

// NewSpeciesStep creates a species step.
func NewSpeciesStep(fetcher pokeapi.Fetcher) *SpeciesStep {
	return &SpeciesStep{fetcher: fetcher}
}

// Name returns the step name.
func (s *SpeciesStep) Name() string {
	return "species"
}

// Do fetches view.Record.SpeciesURL into view.SpeciesInfo.
func (s *SpeciesStep) Do(ctx context.Context, view *model.DetailView) error {
	info, err := s.fetcher.FetchSpecies(ctx, view.Record.SpeciesURL)
	if err != nil {
		return fmt.Errorf("fetching species of %s: %w", view.Record.Name, err)
	}
	view.SpeciesInfo = info
	return nil
}

// AbilitiesStep fetches every ability name of the view's record.
// Names are fetched concurrently and kept in the record's slot order.
type AbilitiesStep struct {
	fetcher     pokeapi.Fetcher
	concurrency int
	logger      *slog.Logger
}

// NewAbilitiesStep creates an abilities step.
func NewAbilitiesStep(fetcher pokeapi.Fetcher, concurrency int, logger *slog.Logger) *AbilitiesStep {
	return &AbilitiesStep{fetcher: fetcher, concurrency: concurrency, logger: logger}
}

// Name returns the step name.
func (s *AbilitiesStep) Name() string {
	return "abilities"
}

// Do fills view.AbilityNames. Any single failure fails the step.
func (s *AbilitiesStep) Do(ctx context.Context, view *model.DetailView) error {
	bp := pipeline.NewBatchProcessor(s.fetcher.FetchAbility,
		pipeline.WithConcurrency(s.concurrency),
		pipeline.WithBatchLogger(s.logger),
	)
	names, err := bp.ProcessBatch(ctx, view.Record.AbilityURLs)
	if err != nil {
		return fmt.Errorf("fetching abilities of %s: %w", view.Record.Name, err)
	}
	view.AbilityNames = names
	return nil
}

// SummaryStep derives the display strings. It performs no I/O and
// tolerates missing species or ability data.
type SummaryStep struct{}

// Name returns the step name.
func (SummaryStep) Name() string {
	return "summary"
}

// Do fills the summary fields of view.
func (SummaryStep) Do(_ context.Context, view *model.DetailView) error {
	r := view.Record
	view.ID = r.ID
	view.Number = model.PadNumber(r.ID)
	view.Name = model.Capitalize(r.Name)
	view.ArtworkURL = r.ArtworkURL
	view.Types = model.JoinCapitalized(r.Types, " ")
	view.Weight = model.FormatMeasure(r.Weight, "kg")
	view.Height = model.FormatMeasure(r.Height, "cm")
	view.Species = model.Capitalize(r.SpeciesName)
	if view.SpeciesInfo != nil {
		view.EggGroups = model.JoinCapitalized(view.SpeciesInfo.EggGroups, ", ")
	}
	view.Abilities = model.JoinCapitalized(view.AbilityNames, ", ")
	return nil
}

// EvolutionStep fetches and flattens the evolution chain.
type EvolutionStep struct {
	fetcher         pokeapi.Fetcher
	artworkTemplate string
}

// NewEvolutionStep creates an evolution step.
func NewEvolutionStep(fetcher pokeapi.Fetcher, artworkTemplate string) *EvolutionStep {
	return &EvolutionStep{fetcher: fetcher, artworkTemplate: artworkTemplate}
}

// Name returns the step name.
func (s *EvolutionStep) Name() string {
	return "evolution"
}

// Do fills view.Chain and view.Evolution.
func (s *EvolutionStep) Do(ctx context.Context, view *model.DetailView) error {
	if view.SpeciesInfo == nil {
		return ErrNoSpecies
	}
	root, err := s.fetcher.FetchEvolutionChain(ctx, view.SpeciesInfo.EvolutionChainURL)
	if err != nil {
		return fmt.Errorf("fetching evolution chain of %s: %w", view.Record.Name, err)
	}
	view.Chain = root
	view.Evolution = FlattenEvolutionChain(root, s.artworkTemplate)
	return nil
}
