package executor

import (
	"tripwire/pkg/iterator"
	"tripwire/pkg/primitives"
)

// StatementKind identifies the operation a statement performs. Only read
// statements are subject to per-row bookkeeping in the run loop; write
// statements count their own effects inside the plan.
type StatementKind int

const (
	SelectStatement StatementKind = iota
	InsertStatement
	UpdateStatement
	DeleteStatement
)

// String returns a string representation of the statement kind
func (k StatementKind) String() string {
	switch k {
	case SelectStatement:
		return "SELECT"
	case InsertStatement:
		return "INSERT"
	case UpdateStatement:
		return "UPDATE"
	case DeleteStatement:
		return "DELETE"
	default:
		return "UNKNOWN"
	}
}

// ScanDirection controls how the plan is driven for one execution.
type ScanDirection int

const (
	// ForwardScan drives the plan front to back, the ordinary case.
	ForwardScan ScanDirection = iota

	// NoMovementScan skips plan execution entirely while still honoring
	// sink startup/shutdown bookkeeping.
	NoMovementScan

	// BackwardScan drives the plan back to front. Runners treat it like
	// ForwardScan; the plan itself is responsible for emission order.
	BackwardScan
)

// Statement describes one statement execution: the root plan producer, the
// destination sink, and the knobs that shape the run. A Statement is owned
// by a single execution; it is not reused across concurrent runs.
type Statement struct {
	// Plan is the root of the pull-based producer tree.
	Plan iterator.DbIterator

	// Dest receives every surviving tuple when the statement emits rows.
	Dest TupleSink

	// Kind is the operation this statement performs.
	Kind StatementKind

	// Returning marks a write statement that emits rows (RETURNING-style).
	Returning bool

	// Quota bounds the number of rows forwarded to Dest. 0 means no limit.
	Quota primitives.RowCount

	// Direction controls plan traversal for this run.
	Direction ScanDirection

	// ExplainOnly marks a statement whose plan must never execute.
	// Runners reject such statements outright.
	ExplainOnly bool

	// Processed counts every row pulled from the plan during a read
	// statement, matching or not. Maintained by the run loop and readable
	// by the caller after Run returns.
	Processed primitives.RowCount

	// Timing, when set, brackets the run loop with wall-clock
	// instrumentation.
	Timing *Instrumentation
}

// ReturnsRows reports whether this statement emits tuples to its sink.
func (s *Statement) ReturnsRows() bool {
	return s.Kind == SelectStatement || s.Returning
}
