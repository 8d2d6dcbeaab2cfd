package executor

import (
	"tripwire/pkg/primitives"
	"tripwire/pkg/tuple"
)

// TupleSink is the destination a statement emits rows into. The contract
// mirrors the receiver side of the pipeline: Start is called once before
// any rows when the statement emits rows, Accept is called per row, and
// Shutdown is called once after a normal run.
type TupleSink interface {
	// Start prepares the sink for a stream of rows with the given schema.
	Start(kind StatementKind, td *tuple.TupleDescription) error

	// Accept delivers one row. Returning false means the sink has closed
	// its channel and no more rows can be sent; the run loop treats that
	// as an ordinary early termination, not an error.
	Accept(t *tuple.Tuple) bool

	// Shutdown releases the sink after a normal run. Not called when the
	// run is aborted.
	Shutdown() error
}

// CollectSink gathers every accepted row in memory. Useful for examples,
// tests, and callers that materialize small result sets.
type CollectSink struct {
	Rows []*tuple.Tuple

	started  bool
	shutdown bool
	kind     StatementKind
	td       *tuple.TupleDescription
}

// NewCollectSink creates an empty collecting sink.
func NewCollectSink() *CollectSink {
	return &CollectSink{}
}

func (c *CollectSink) Start(kind StatementKind, td *tuple.TupleDescription) error {
	c.started = true
	c.shutdown = false
	c.kind = kind
	c.td = td
	c.Rows = nil
	return nil
}

func (c *CollectSink) Accept(t *tuple.Tuple) bool {
	c.Rows = append(c.Rows, t)
	return true
}

func (c *CollectSink) Shutdown() error {
	c.shutdown = true
	return nil
}

// Started reports whether Start has been called for the current stream.
func (c *CollectSink) Started() bool { return c.started }

// Finished reports whether Shutdown has been called for the current stream.
func (c *CollectSink) Finished() bool { return c.shutdown }

// DiscardSink accepts and drops every row, counting what it saw.
type DiscardSink struct {
	Accepted primitives.RowCount
}

func (d *DiscardSink) Start(StatementKind, *tuple.TupleDescription) error { return nil }

func (d *DiscardSink) Accept(*tuple.Tuple) bool {
	d.Accepted++
	return true
}

func (d *DiscardSink) Shutdown() error { return nil }
