package tuple

import (
	"fmt"
	"strings"
	"tripwire/pkg/primitives"
	"tripwire/pkg/types"
)

// Tuple represents a row of data flowing through the execution pipeline.
// Origin records which base relation produced the row; scans stamp it and
// derived rows (projections, joins) may clear it back to InvalidTableID.
type Tuple struct {
	TupleDesc *TupleDescription  // Schema of this tuple
	Origin    primitives.TableID // Relation the tuple came from (can be unset)
	fields    []types.Field      // The actual field values, nil means SQL NULL
}

// NewTuple creates a new tuple with the given schema
func NewTuple(td *TupleDescription) *Tuple {
	return &Tuple{
		TupleDesc: td,
		fields:    make([]types.Field, td.NumFields()),
	}
}

// SetField stores a value into the ith field slot. A nil field records a
// NULL. Non-nil fields must match the declared type at that position.
func (t *Tuple) SetField(i int, field types.Field) error {
	if i < 0 || i >= len(t.fields) {
		return fmt.Errorf("field index %d out of bounds [0, %d)", i, len(t.fields))
	}

	if field != nil {
		expectedType, _ := t.TupleDesc.TypeAtIndex(i)
		if field.Type() != expectedType {
			return fmt.Errorf("field type mismatch: expected %v, got %v",
				expectedType, field.Type())
		}
	}

	t.fields[i] = field
	return nil
}

// GetField returns the value of the ith field; nil means NULL.
func (t *Tuple) GetField(i int) (types.Field, error) {
	if i < 0 || i >= len(t.fields) {
		return nil, fmt.Errorf("field index %d out of bounds [0, %d)", i, len(t.fields))
	}
	return t.fields[i], nil
}

// Clone creates a deep copy of this tuple with all field values and the
// same origin relation.
func (t *Tuple) Clone() (*Tuple, error) {
	newTup := NewTuple(t.TupleDesc)
	newTup.Origin = t.Origin

	for i := 0; i < t.TupleDesc.NumFields(); i++ {
		field, err := t.GetField(i)
		if err != nil {
			return nil, fmt.Errorf("failed to get field %d: %w", i, err)
		}

		if err := newTup.SetField(i, field); err != nil {
			return nil, fmt.Errorf("failed to copy field %d: %w", i, err)
		}
	}

	return newTup, nil
}

// Equals reports whether two tuples carry identical field values.
// Origin is not compared; this is a value comparison.
func (t *Tuple) Equals(other *Tuple) bool {
	if other == nil || len(t.fields) != len(other.fields) {
		return false
	}

	for i, f := range t.fields {
		if f == nil || other.fields[i] == nil {
			if f != other.fields[i] {
				return false
			}
			continue
		}
		if !f.Equals(other.fields[i]) {
			return false
		}
	}

	return true
}

// String returns a string representation of this tuple
// Format: field1\tfield2\tfield3\t...\tfieldN
func (t *Tuple) String() string {
	var parts []string
	for _, field := range t.fields {
		if field != nil {
			parts = append(parts, field.String())
		} else {
			parts = append(parts, "null")
		}
	}
	return strings.Join(parts, "\t")
}
