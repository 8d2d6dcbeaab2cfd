package executor

import (
	"time"
	"tripwire/pkg/primitives"
)

// Instrumentation accumulates wall-clock runtime and row throughput for one
// statement. Runners bracket the run loop with Start/Stop; the totals stay
// readable by the caller afterwards. Stop still fires when the run exits
// through the abort path, so aborted statements keep their timing.
type Instrumentation struct {
	running bool
	started time.Time

	// Total is the accumulated wall-clock time spent inside run loops.
	Total time.Duration

	// Rows is the processed-row count reported at the last Stop.
	Rows primitives.RowCount
}

// Start begins a timing interval. Starting an already running interval is a
// no-op so nested brackets cannot double-count.
func (in *Instrumentation) Start() {
	if in.running {
		return
	}
	in.running = true
	in.started = time.Now()
}

// Stop ends the current timing interval and records the processed-row count.
func (in *Instrumentation) Stop(rows primitives.RowCount) {
	if !in.running {
		return
	}
	in.Total += time.Since(in.started)
	in.Rows = rows
	in.running = false
}

// Running reports whether a timing interval is currently open.
func (in *Instrumentation) Running() bool {
	return in.running
}
