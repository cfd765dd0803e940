package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/distdist/internal/model"
)

// Step is one stage of an analysis run. Each step reads what earlier steps
// stored in the Analysis and adds its own results.
type Step interface {
	Do(ctx context.Context, a *model.Analysis) error
	Name() string
}

// Pipeline runs analysis steps in order and stops at the first failure, so
// a run that cannot aggregate the near group never reaches rendering.
type Pipeline struct {
	steps  []Step
	logger *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger used for step progress. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
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

// AddStep appends a step.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends steps in the given order.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// StepNames returns the step names in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}

// Execute runs every step against a. The context is checked before each
// step; a running step is not interrupted.
//
// On failure or cancellation the error is stored in a and returned.
// a.Steps lists the steps that finished successfully.
func (p *Pipeline) Execute(ctx context.Context, a *model.Analysis) error {
	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			p.logger.Warn("analysis interrupted", "before", step.Name(), "reason", err)
			a.Canceled = true
			fail(a, err)
			return err
		}

		p.logger.Info("executing step", "step", step.Name(), "threshold", a.Threshold)
		start := time.Now()
		if err := step.Do(ctx, a); err != nil {
			p.logger.Error("step failed", "step", step.Name(), "error", err)
			fail(a, err)
			return err
		}
		p.logger.Debug("step completed", "step", step.Name(), "elapsed", time.Since(start))
		a.Steps = append(a.Steps, step.Name())
	}
	return nil
}

// fail records err as the reason the run stopped.
func fail(a *model.Analysis, err error) {
	a.Error = err
	a.ErrorMessage = err.Error()
}
