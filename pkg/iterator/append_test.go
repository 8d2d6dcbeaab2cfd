package iterator

import (
	"fmt"
	"testing"
	"tripwire/pkg/primitives"
	"tripwire/pkg/tuple"
	"tripwire/pkg/types"
)

func mustCreateChildScan(t *testing.T, td *tuple.TupleDescription, tableID primitives.TableID, ids ...int64) *SliceScan {
	t.Helper()

	tuples := make([]*tuple.Tuple, len(ids))
	for i, id := range ids {
		tuples[i] = createScanTestTuple(td, id)
	}

	scan, err := NewSliceScan(tuples, td, tableID)
	if err != nil {
		t.Fatalf("Failed to create scan: %v", err)
	}
	return scan
}

func TestNewAppendIterator(t *testing.T) {
	td := mustCreateScanTupleDesc()

	t.Run("No children", func(t *testing.T) {
		if _, err := NewAppendIterator(); err == nil {
			t.Error("Expected error for empty child list")
		}
	})

	t.Run("Schema mismatch", func(t *testing.T) {
		other, err := tuple.NewTupleDesc(
			[]types.Type{types.StringType},
			[]string{"name"},
		)
		if err != nil {
			t.Fatalf("Failed to create descriptor: %v", err)
		}

		left := mustCreateChildScan(t, td, 1, 10)
		right, err := NewSliceScan(nil, other, 2)
		if err != nil {
			t.Fatalf("Failed to create scan: %v", err)
		}

		if _, err := NewAppendIterator(left, right); err == nil {
			t.Error("Expected error for mismatched child schemas")
		}
	})
}

func TestAppendIteratorConcatenates(t *testing.T) {
	td := mustCreateScanTupleDesc()

	left := mustCreateChildScan(t, td, 17, 1, 2)
	right := mustCreateChildScan(t, td, 42, 3)

	app, err := NewAppendIterator(left, right)
	if err != nil {
		t.Fatalf("Failed to create append iterator: %v", err)
	}
	if err := app.Open(); err != nil {
		t.Fatalf("Failed to open: %v", err)
	}

	tuples, err := Collect(app)
	if err != nil {
		t.Fatalf("Failed to collect: %v", err)
	}

	if len(tuples) != 3 {
		t.Fatalf("Expected 3 tuples, got %d", len(tuples))
	}

	wantOrigins := []primitives.TableID{17, 17, 42}
	for i, tup := range tuples {
		if tup.Origin != wantOrigins[i] {
			t.Errorf("Tuple %d: origin %d, want %d", i, tup.Origin, wantOrigins[i])
		}
	}
}

// brokenCloseScan fails on Close while still delegating the rest of the
// iterator contract.
type brokenCloseScan struct {
	*SliceScan
	closeErr error
}

func (b *brokenCloseScan) Close() error {
	b.SliceScan.Close()
	return b.closeErr
}

func TestAppendIteratorCloseSurfacesChildError(t *testing.T) {
	td := mustCreateScanTupleDesc()

	broken := &brokenCloseScan{
		SliceScan: mustCreateChildScan(t, td, 17, 1),
		closeErr:  fmt.Errorf("release failed"),
	}
	healthy := mustCreateChildScan(t, td, 42, 2)

	app, err := NewAppendIterator(broken, healthy)
	if err != nil {
		t.Fatalf("Failed to create append iterator: %v", err)
	}
	if err := app.Open(); err != nil {
		t.Fatalf("Failed to open: %v", err)
	}

	if err := app.Close(); err == nil {
		t.Error("Expected child close error to propagate")
	}

	// The failing child must not prevent closing the rest.
	if healthy.CloseCount() != 1 {
		t.Errorf("Expected healthy child closed once, got %d", healthy.CloseCount())
	}
}

func TestAppendIteratorRewind(t *testing.T) {
	td := mustCreateScanTupleDesc()

	left := mustCreateChildScan(t, td, 17, 1)
	right := mustCreateChildScan(t, td, 42, 2)

	app, err := NewAppendIterator(left, right)
	if err != nil {
		t.Fatalf("Failed to create append iterator: %v", err)
	}
	if err := app.Open(); err != nil {
		t.Fatalf("Failed to open: %v", err)
	}

	first, err := Collect(app)
	if err != nil {
		t.Fatalf("First pass failed: %v", err)
	}

	if err := app.Rewind(); err != nil {
		t.Fatalf("Failed to rewind: %v", err)
	}

	second, err := Collect(app)
	if err != nil {
		t.Fatalf("Second pass failed: %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("Rewind changed stream length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !first[i].Equals(second[i]) {
			t.Errorf("Tuple %d differs after rewind", i)
		}
	}
}
