package iterator

import (
	"fmt"
	"tripwire/pkg/tuple"
)

// AppendIterator concatenates several producers with identical schemas into
// one stream, preserving each tuple's origin relation. It is how a plan
// mixes rows from more than one base relation without reordering them.
type AppendIterator struct {
	base     *BaseIterator
	children []DbIterator
	current  int
}

// NewAppendIterator creates an iterator over the children in order.
// All children must share the first child's schema.
func NewAppendIterator(children ...DbIterator) (*AppendIterator, error) {
	if len(children) == 0 {
		return nil, fmt.Errorf("must append at least one child")
	}

	td := children[0].GetTupleDesc()
	for i, c := range children {
		if c == nil {
			return nil, fmt.Errorf("child %d is nil", i)
		}
		if !c.GetTupleDesc().Equals(td) {
			return nil, fmt.Errorf("child %d schema does not match first child", i)
		}
	}

	a := &AppendIterator{children: children}
	a.base = NewBaseIterator(a.readNext)
	return a, nil
}

// readNext drains the current child before moving to the next one.
func (a *AppendIterator) readNext() (*tuple.Tuple, error) {
	for a.current < len(a.children) {
		child := a.children[a.current]

		hasNext, err := child.HasNext()
		if err != nil {
			return nil, fmt.Errorf("error checking if child %d has next: %w", a.current, err)
		}

		if !hasNext {
			a.current++
			continue
		}

		t, err := child.Next()
		if err != nil {
			return nil, fmt.Errorf("error getting next tuple from child %d: %w", a.current, err)
		}
		return t, nil
	}

	return nil, nil
}

// Open opens all children and marks the iterator ready.
func (a *AppendIterator) Open() error {
	for i, c := range a.children {
		if err := c.Open(); err != nil {
			return fmt.Errorf("failed to open child %d: %w", i, err)
		}
	}

	a.current = 0
	a.base.MarkOpened()
	return nil
}

// Close closes all children and releases resources. Every child is closed
// even when an earlier one fails; the first error wins.
func (a *AppendIterator) Close() error {
	var firstErr error
	for i, c := range a.children {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close child %d: %w", i, err)
		}
	}

	if err := a.base.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// Rewind resets all children and restarts from the first one.
func (a *AppendIterator) Rewind() error {
	for i, c := range a.children {
		if err := c.Rewind(); err != nil {
			return fmt.Errorf("failed to rewind child %d: %w", i, err)
		}
	}

	a.current = 0
	return a.base.Rewind()
}

// HasNext checks if there are more tuples available.
func (a *AppendIterator) HasNext() (bool, error) { return a.base.HasNext() }

// Next returns the next tuple from the concatenated stream.
func (a *AppendIterator) Next() (*tuple.Tuple, error) { return a.base.Next() }

// GetTupleDesc returns the shared schema of the children.
func (a *AppendIterator) GetTupleDesc() *tuple.TupleDescription {
	return a.children[0].GetTupleDesc()
}
