package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/dexview/internal/model"
)

// Step is one stage of detail assembly.
type Step interface {
	// Do fills its part of view. Fetched data and derived fields are
	// written onto view.
	Do(ctx context.Context, view *model.DetailView) error

	// Name identifies the step in logs, view.CompletedSteps and view.Errors.
	Name() string
}

// stage is a registered step. A failing optional stage never aborts a run.
type stage struct {
	step     Step
	optional bool
}

// Pipeline runs steps against one view, in registration order.
type Pipeline struct {
	stages          []stage
	logger          *slog.Logger
	continueOnError bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError makes every step behave as optional: a failure is
// recorded in view.Errors and the next step runs.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates an empty Pipeline.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// AddStep appends a required step.
func (p *Pipeline) AddStep(step Step) {
	p.stages = append(p.stages, stage{step: step})
}

// AddSteps appends required steps.
func (p *Pipeline) AddSteps(steps ...Step) {
	for _, s := range steps {
		p.AddStep(s)
	}
}

// AddOptionalStep appends a step whose failure is recorded in view.Errors
// instead of aborting the run, whatever WithContinueOnError says.
func (p *Pipeline) AddOptionalStep(step Step) {
	p.stages = append(p.stages, stage{step: step, optional: true})
}

// StepNames returns the step names in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, 0, len(p.stages))
	for _, s := range p.stages {
		names = append(names, s.step.Name())
	}
	return names
}

// Execute runs the steps in order, checking ctx before each one.
//
// Steps that succeed are appended to view.CompletedSteps. A failing
// required step ends the run with its error unless continue-on-error is
// set. Other failures are recorded as "name: error" in view.Errors.
func (p *Pipeline) Execute(ctx context.Context, view *model.DetailView) error {
	log := p.logger.With("id", view.ID)
	log.Debug("assembling detail view", "steps", p.StepNames())

	for _, s := range p.stages {
		name := s.step.Name()
		if err := ctx.Err(); err != nil {
			log.Warn("detail assembly cancelled", "step", name, "reason", err)
			return err
		}

		err := s.step.Do(ctx, view)
		if err == nil {
			log.Debug("step done", "step", name)
			view.CompletedSteps = append(view.CompletedSteps, name)
			continue
		}

		if !s.optional && !p.continueOnError {
			log.Error("step failed", "step", name, "error", err)
			return err
		}
		log.Warn("step failed, continuing", "step", name, "error", err)
		view.Errors = append(view.Errors, name+": "+err.Error())
	}
	return nil
}
