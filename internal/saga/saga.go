// Package saga runs multi-step workflows whose steps write to systems that
// cannot share a transaction (the credential store, the profile table, an
// email provider). Each step pairs an action with a compensation; when a
// step fails, the compensations of the steps that already ran are executed
// in reverse order.
package saga

import (
	"fmt"
	"log/slog"
)

// Step is one unit of a workflow.
type Step struct {
	// Name identifies the step in errors and logs.
	Name string
	// Run performs the step's action.
	Run func() error
	// Compensate undoes the step after a later step fails. Optional.
	Compensate func() error
}

// Saga is an ordered list of steps.
type Saga struct {
	steps []Step
	log   *slog.Logger
}

func New(log *slog.Logger) *Saga {
	if log == nil {
		log = slog.Default()
	}
	return &Saga{log: log}
}

// AddStep appends a step to the workflow.
func (s *Saga) AddStep(step Step) *Saga {
	s.steps = append(s.steps, step)
	return s
}

// Execute runs the steps in order. On the first failure it compensates all
// previously completed steps in reverse order and returns the step's error.
// Compensation failures are logged but do not mask the original error.
func (s *Saga) Execute() error {
	for i, step := range s.steps {
		if err := step.Run(); err != nil {
			s.unwind(i - 1)
			return fmt.Errorf("%s: %w", step.Name, err)
		}
	}
	return nil
}

func (s *Saga) unwind(from int) {
	for i := from; i >= 0; i-- {
		step := s.steps[i]
		if step.Compensate == nil {
			continue
		}
		if err := step.Compensate(); err != nil {
			s.log.Error("saga compensation failed",
				"step", step.Name, "error", err)
		}
	}
}
