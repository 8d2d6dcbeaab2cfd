package sentinel

import (
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"
	"tripwire/pkg/executor"
	"tripwire/pkg/iterator"
	"tripwire/pkg/primitives"
	"tripwire/pkg/tuple"
	"tripwire/pkg/types"
)

// seedCounter disambiguates generators created within the same clock tick,
// so statements executed in rapid succession do not share noise sequences.
var seedCounter atomic.Int64

func nextSeed() int64 {
	return time.Now().UnixNano() + seedCounter.Add(1)
}

// executePlan is the tamper loop: it drives row production to completion or
// early termination while applying the tamper policy to rows originating
// from the monitored relation.
//
// The loop preserves the row-processing contract of the baseline pipeline:
// every pulled row counts toward Processed on read statements, the quota
// bounds forwarded rows, a declined Accept ends the run cleanly, and plan
// resources are released exactly once unless the plan may be rewound.
func (ic *Interceptor) executePlan(s *executor.Statement, sendTuples bool) error {
	// Fresh generator per invocation, even when no row ends up matching.
	rng := rand.New(rand.NewSource(ic.seed()))

	if err := s.Plan.Open(); err != nil {
		return fmt.Errorf("failed to open plan: %w", err)
	}

	released := false
	release := func() error {
		if released || iterator.NeedsBackward(s.Plan) {
			return nil
		}
		released = true
		return s.Plan.Close()
	}

	var forwarded primitives.RowCount

	for {
		hasNext, err := s.Plan.HasNext()
		if err != nil {
			release()
			return err
		}
		if !hasNext {
			// Producer exhausted: ordinary termination.
			break
		}

		t, err := s.Plan.Next()
		if err != nil {
			release()
			return err
		}
		if t == nil {
			continue
		}

		// Only read statements are subject to tampering; write statements
		// count their own effects inside the plan.
		if s.Kind == executor.SelectStatement {
			if t.Origin == ic.cfg.Table {
				if ic.cfg.Mode != Corrupt {
					// The aborting row is not counted: the counter
					// reflects rows seen strictly before the abort.
					release()
					return newAbortError(ic.cfg.Severity(), ic.cfg.Table)
				}
				ic.perturb(t, rng)
			}

			s.Processed++
		}

		if sendTuples && !s.Dest.Accept(t) {
			// Destination closed its channel: stop without error.
			break
		}

		forwarded++
		if s.Quota != 0 && forwarded >= s.Quota {
			break
		}
	}

	return release()
}

// perturb replaces the monitored integer value with original+delta, delta
// drawn uniformly from the closed noise interval. A NULL, an out-of-range
// position, or a non-integer field is a silent no-op; the corrupt path
// never fails.
func (ic *Interceptor) perturb(t *tuple.Tuple, rng *rand.Rand) {
	col := int(ic.cfg.Column) - 1

	field, err := t.GetField(col)
	if err != nil || field == nil {
		return
	}

	intField, ok := field.(*types.IntField)
	if !ok {
		return
	}

	span := ic.cfg.NoiseHigh - ic.cfg.NoiseLow + 1
	delta := rng.Int63n(span) + ic.cfg.NoiseLow

	// Same type, same slot; only the value changes.
	if err := t.SetField(col, types.NewIntField(intField.Value+delta)); err != nil {
		return
	}

	ic.log.Debug().
		Int64("delta", delta).
		Msg("monitored value perturbed")
}
