package options

import "fmt"

// Field names one entry of the option bundle.
type Field uint8

const (
	FieldTarget Field = iota
	FieldSilent
	FieldLogError
	FieldOptimize
	FieldLongPtr

	fieldCount
)

var fieldNames = [fieldCount]string{
	FieldTarget:   "target",
	FieldSilent:   "silent",
	FieldLogError: "logError",
	FieldOptimize: "optimize",
	FieldLongPtr:  "longPtr",
}

// Fields returns every field in table order.
func Fields() []Field {
	out := make([]Field, fieldCount)
	for i := range out {
		out[i] = Field(i)
	}
	return out
}

// String returns the canonical field name.
func (f Field) String() string {
	if f >= fieldCount {
		return fmt.Sprintf("Field(%d)", uint8(f))
	}
	return fieldNames[f]
}

// ParseField resolves a canonical field name. Matching is exact.
func ParseField(name string) (Field, bool) {
	for i, n := range fieldNames {
		if n == name {
			return Field(i), true
		}
	}
	return 0, false
}
