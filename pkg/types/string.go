package types

// StringField represents a variable-length string field
type StringField struct {
	Value string
}

func NewStringField(value string) *StringField {
	return &StringField{Value: value}
}

func (f *StringField) Type() Type {
	return StringType
}

func (f *StringField) String() string {
	return f.Value
}

func (f *StringField) Equals(other Field) bool {
	otherStr, ok := other.(*StringField)
	if !ok {
		return false
	}
	return f.Value == otherStr.Value
}
