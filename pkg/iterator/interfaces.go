package iterator

import "tripwire/pkg/tuple"

// DbIterator defines the contract for all tuple producers in the execution
// pipeline. It provides a standardized interface for traversing collections
// of tuples from various data sources such as tables, indexes, or
// intermediate query results.
//
// DbIterator extends TupleIterator with lifecycle and schema methods.
type DbIterator interface {
	TupleIterator // Embeds HasNext() and Next()

	// Open initializes the iterator and prepares it for tuple retrieval.
	// This method must be called before any other iterator operations.
	// Multiple calls to Open() on an already opened iterator should be idempotent.
	Open() error

	// Rewind resets the iterator position to the beginning of the data sequence.
	// After rewinding, the next call to Next() should return the first tuple again.
	// The iterator must be opened before calling this method.
	Rewind() error

	// Close releases all resources associated with the iterator and marks it as closed.
	// After closing, the iterator cannot be used until reopened with Open().
	// Calling Close() on an already closed iterator should be safe and idempotent.
	Close() error

	// GetTupleDesc returns the schema description for tuples produced by this iterator.
	// This method can be called regardless of iterator state.
	GetTupleDesc() *tuple.TupleDescription
}

// TupleIterator is a minimal interface that captures the common iteration
// methods, allowing generic utility functions over any iterator type.
type TupleIterator interface {
	// HasNext checks if there are more tuples available without consuming them.
	HasNext() (bool, error)

	// Next retrieves and returns the next tuple from the iterator.
	Next() (*tuple.Tuple, error)
}

// BackwardCapable is an optional capability a producer can report. When
// RequiresBackward returns true the caller may need to rewind the plan
// after the run, so run loops must not release its resources on ordinary
// termination; the caller owns the eventual Close.
type BackwardCapable interface {
	RequiresBackward() bool
}

// NeedsBackward reports whether the producer has declared that it may be
// rewound after the run. Producers without the capability never do.
func NeedsBackward(it DbIterator) bool {
	bc, ok := it.(BackwardCapable)
	return ok && bc.RequiresBackward()
}
