package iterator

import (
	"fmt"
	"tripwire/pkg/primitives"
	"tripwire/pkg/tuple"
)

// SliceScan is an in-memory tuple producer backed by a slice. It stamps
// every emitted tuple with the scan's table identity, the way a base
// relation scan reports which relation a row came from. Used for tests,
// examples, and any caller that materializes rows before running a plan.
type SliceScan struct {
	base    *BaseIterator
	data    []*tuple.Tuple
	pos     int
	tableID primitives.TableID
	td      *tuple.TupleDescription
	closes  int
}

// NewSliceScan creates a scan over the given tuples. All tuples must match
// the provided schema; tableID identifies the relation the scan reads.
func NewSliceScan(data []*tuple.Tuple, td *tuple.TupleDescription, tableID primitives.TableID) (*SliceScan, error) {
	if td == nil {
		return nil, fmt.Errorf("tuple descriptor cannot be nil")
	}

	for i, t := range data {
		if t == nil {
			return nil, fmt.Errorf("tuple %d is nil", i)
		}
		if !t.TupleDesc.Equals(td) {
			return nil, fmt.Errorf("tuple %d does not match scan schema", i)
		}
	}

	s := &SliceScan{
		data:    data,
		tableID: tableID,
		td:      td,
	}
	s.base = NewBaseIterator(s.readNext)
	return s, nil
}

// readNext emits the next tuple, stamped with the scan's relation identity.
func (s *SliceScan) readNext() (*tuple.Tuple, error) {
	if s.pos >= len(s.data) {
		return nil, nil
	}

	t := s.data[s.pos]
	s.pos++
	t.Origin = s.tableID
	return t, nil
}

// Open prepares the scan for iteration from the first tuple.
func (s *SliceScan) Open() error {
	s.pos = 0
	s.base.MarkOpened()
	return nil
}

// Rewind resets the scan to the beginning of the slice.
func (s *SliceScan) Rewind() error {
	s.pos = 0
	return s.base.Rewind()
}

// Close releases the scan. Safe to call multiple times.
func (s *SliceScan) Close() error {
	s.closes++
	return s.base.Close()
}

// CloseCount reports how many times Close has been called, which run loops
// use in tests to verify the release-exactly-once contract.
func (s *SliceScan) CloseCount() int {
	return s.closes
}

// HasNext checks if there are more tuples available.
func (s *SliceScan) HasNext() (bool, error) { return s.base.HasNext() }

// Next returns the next tuple from the scan.
func (s *SliceScan) Next() (*tuple.Tuple, error) { return s.base.Next() }

// GetTupleDesc returns the schema of tuples produced by this scan.
func (s *SliceScan) GetTupleDesc() *tuple.TupleDescription { return s.td }
