package primitives

// TableID identifies a relation (table) within the host pipeline.
// It plays the role of an origin identifier stamped on every tuple a
// scan produces, so downstream stages can tell where a row came from.
type TableID uint64

// ColumnID identifies a column position within a relation.
// Positions handed to the public configuration surface are 1-based;
// internal field access is 0-based.
type ColumnID uint32

// RowCount counts tuples processed or forwarded during one statement.
type RowCount uint64

// Sentinel values for invalid/unset identifiers
const (
	// InvalidTableID represents an unset table identifier.
	// A tuple with this origin did not come from a base relation.
	InvalidTableID TableID = 0

	// InvalidColumnID represents an unset 1-based column position.
	InvalidColumnID ColumnID = 0
)
