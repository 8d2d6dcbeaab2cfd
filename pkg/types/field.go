package types

// Field is a single typed attribute value inside a tuple.
// Values are treated opaquely by the pipeline; stages that need to
// interpret a field assert to the concrete type they expect.
type Field interface {
	Type() Type

	String() string

	Equals(other Field) bool
}
