package executor

import (
	"fmt"
	"tripwire/pkg/iterator"
	"tripwire/pkg/primitives"
	"tripwire/pkg/tuple"
)

// Runner is anything that can execute one statement: drive the plan, feed
// the sink, and leave the statement's counters in a readable state.
// Interception stages wrap a Runner and are Runners themselves, so a
// pipeline is composed at construction time rather than by swapping
// process-wide hooks.
type Runner interface {
	Run(s *Statement) error
}

// BaselineRunner is the unmodified pipeline: it starts the sink when the
// statement emits rows, drives the plan to completion (or early exit),
// honors the row quota and consumer backpressure, and shuts the sink down.
type BaselineRunner struct{}

// NewBaselineRunner creates the baseline statement runner.
func NewBaselineRunner() *BaselineRunner {
	return &BaselineRunner{}
}

// Run executes one statement through the unmodified pipeline.
func (r *BaselineRunner) Run(s *Statement) error {
	if err := ValidateStatement(s); err != nil {
		return err
	}

	// Each run counts its own rows.
	s.Processed = 0

	sendTuples := s.ReturnsRows() && s.Dest != nil

	if sendTuples {
		if err := s.Dest.Start(s.Kind, s.Plan.GetTupleDesc()); err != nil {
			return fmt.Errorf("failed to start sink: %w", err)
		}
	}

	if s.Timing != nil {
		s.Timing.Start()
	}

	var runErr error
	if s.Direction != NoMovementScan {
		runErr = r.executePlan(s, sendTuples)
	}

	if s.Timing != nil {
		s.Timing.Stop(s.Processed)
	}

	if runErr != nil {
		return runErr
	}

	if sendTuples {
		if err := s.Dest.Shutdown(); err != nil {
			return fmt.Errorf("failed to shut down sink: %w", err)
		}
	}

	return nil
}

// executePlan drives the plan to exhaustion, quota, or consumer
// declination, then releases plan resources unless the plan may be rewound.
func (r *BaselineRunner) executePlan(s *Statement, sendTuples bool) error {
	if err := s.Plan.Open(); err != nil {
		return fmt.Errorf("failed to open plan: %w", err)
	}

	var forwarded primitives.RowCount

	err := iterator.Iterate(s.Plan, func(t *tuple.Tuple) (bool, error) {
		if s.Kind == SelectStatement {
			s.Processed++
		}

		if sendTuples && !s.Dest.Accept(t) {
			return false, nil
		}

		forwarded++
		if s.Quota != 0 && forwarded >= s.Quota {
			return false, nil
		}

		return true, nil
	})

	if !iterator.NeedsBackward(s.Plan) {
		if closeErr := s.Plan.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}

	return err
}

// ValidateStatement rejects descriptors no runner may execute. Explain-only
// statements never reach a run loop; tampering or emission on a plan that
// does not actually execute would be a caller bug.
func ValidateStatement(s *Statement) error {
	if s == nil {
		return fmt.Errorf("statement cannot be nil")
	}
	if s.Plan == nil {
		return fmt.Errorf("statement has no plan")
	}
	if s.ExplainOnly {
		return fmt.Errorf("refusing to run explain-only statement")
	}
	return nil
}
