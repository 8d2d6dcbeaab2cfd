package sentinel

import (
	"fmt"
	"tripwire/pkg/executor"
	"tripwire/pkg/primitives"
	"tripwire/pkg/tuple"
	"tripwire/pkg/types"
)

// mockScan emits a fixed tuple slice as-is (tuples carry their own Origin)
// and records how it was driven, so tests can assert pull counts and the
// release-exactly-once contract.
type mockScan struct {
	data     []*tuple.Tuple
	td       *tuple.TupleDescription
	index    int
	opened   bool
	pulls    int
	closes   int
	backward bool
}

func newMockScan(data []*tuple.Tuple, td *tuple.TupleDescription) *mockScan {
	return &mockScan{data: data, td: td}
}

func (m *mockScan) Open() error {
	m.opened = true
	m.index = 0
	return nil
}

func (m *mockScan) HasNext() (bool, error) {
	if !m.opened {
		return false, fmt.Errorf("iterator not opened")
	}
	return m.index < len(m.data), nil
}

func (m *mockScan) Next() (*tuple.Tuple, error) {
	if !m.opened {
		return nil, fmt.Errorf("iterator not opened")
	}
	if m.index >= len(m.data) {
		return nil, fmt.Errorf("no more tuples")
	}

	t := m.data[m.index]
	m.index++
	m.pulls++
	return t, nil
}

func (m *mockScan) Rewind() error {
	m.index = 0
	return nil
}

func (m *mockScan) Close() error {
	m.closes++
	m.opened = false
	return nil
}

func (m *mockScan) GetTupleDesc() *tuple.TupleDescription { return m.td }

func (m *mockScan) RequiresBackward() bool { return m.backward }

// recordingSink records the delivery stream. When declineAfter is nonzero,
// Accept returns false on the declineAfter-th delivered row.
type recordingSink struct {
	started      bool
	shutdowns    int
	accepted     []*tuple.Tuple
	declineAfter int
	startErr     error
}

func (s *recordingSink) Start(kind executor.StatementKind, td *tuple.TupleDescription) error {
	if s.startErr != nil {
		return s.startErr
	}
	s.started = true
	return nil
}

func (s *recordingSink) Accept(t *tuple.Tuple) bool {
	s.accepted = append(s.accepted, t)
	if s.declineAfter > 0 && len(s.accepted) == s.declineAfter {
		return false
	}
	return true
}

func (s *recordingSink) Shutdown() error {
	s.shutdowns++
	return nil
}

func mustCreateTupleDesc() *tuple.TupleDescription {
	td, err := tuple.NewTupleDesc(
		[]types.Type{types.IntType, types.IntType},
		[]string{"id", "secret"},
	)
	if err != nil {
		panic(fmt.Sprintf("Failed to create TupleDescription: %v", err))
	}
	return td
}

// createRow builds an (id, secret) tuple stamped with the given origin.
func createRow(td *tuple.TupleDescription, origin primitives.TableID, id, secret int64) *tuple.Tuple {
	t := tuple.NewTuple(td)
	t.Origin = origin

	if err := t.SetField(0, types.NewIntField(id)); err != nil {
		panic(fmt.Sprintf("Failed to set id field: %v", err))
	}
	if err := t.SetField(1, types.NewIntField(secret)); err != nil {
		panic(fmt.Sprintf("Failed to set secret field: %v", err))
	}

	return t
}

// createRowWithNull builds a tuple whose monitored column is NULL.
func createRowWithNull(td *tuple.TupleDescription, origin primitives.TableID, id int64) *tuple.Tuple {
	t := tuple.NewTuple(td)
	t.Origin = origin

	if err := t.SetField(0, types.NewIntField(id)); err != nil {
		panic(fmt.Sprintf("Failed to set id field: %v", err))
	}

	return t
}
