package sentinel

import (
	"fmt"
	"tripwire/pkg/executor"

	"github.com/rs/zerolog"
)

// Interceptor is the composition point that makes the tamper loop the
// effective row-emission engine for one statement execution. It is a
// decorator over the next runner in the pipeline: when tampering is
// disabled it delegates untouched, otherwise it runs the statement itself
// with the tamper loop in place of the ordinary plan loop, preserving the
// surrounding pipeline's contract (sink startup/shutdown, instrumentation
// bracketing, processed-row counting, quota, backpressure).
//
// Dropping the interceptor from the chain restores the previous behavior
// exactly; nothing is installed into shared state.
type Interceptor struct {
	next executor.Runner
	cfg  *Config
	log  zerolog.Logger
	seed func() int64
}

// NewInterceptor wraps the next runner with the tamper policy in cfg.
// A nil or disabled cfg yields a pure pass-through.
func NewInterceptor(next executor.Runner, cfg *Config, log zerolog.Logger) (*Interceptor, error) {
	if next == nil {
		return nil, fmt.Errorf("next runner cannot be nil")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sentinel config: %w", err)
	}

	ic := &Interceptor{
		next: next,
		cfg:  cfg,
		log:  log,
		seed: nextSeed,
	}

	if cfg.Enabled() {
		log.Info().
			Uint64("table", uint64(cfg.Table)).
			Uint32("column", uint32(cfg.Column)).
			Stringer("mode", cfg.Mode).
			Msg("sentinel armed")
	} else {
		log.Debug().Msg("sentinel disabled, passing through")
	}

	return ic, nil
}

// Next returns the runner this interceptor wraps.
func (ic *Interceptor) Next() executor.Runner {
	return ic.next
}

// Run executes one statement with the tamper policy applied. The contract
// matches the baseline runner: the sink is started iff the statement emits
// rows, instrumentation brackets the loop exactly, and the sink is shut
// down only after a normal exit. An abort propagates out as the error.
func (ic *Interceptor) Run(s *executor.Statement) error {
	if err := executor.ValidateStatement(s); err != nil {
		return err
	}

	if !ic.cfg.Enabled() {
		return ic.next.Run(s)
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
	if s.Direction != executor.NoMovementScan {
		runErr = ic.executePlan(s, sendTuples)
	}

	if s.Timing != nil {
		s.Timing.Stop(s.Processed)
	}

	if runErr != nil {
		if IsAbort(runErr) {
			ic.log.Warn().
				Uint64("table", uint64(ic.cfg.Table)).
				Uint64("processed", uint64(s.Processed)).
				Msg("statement aborted by sentinel")
		}
		return runErr
	}

	if sendTuples {
		if err := s.Dest.Shutdown(); err != nil {
			return fmt.Errorf("failed to shut down sink: %w", err)
		}
	}

	return nil
}
