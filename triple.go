package dremel

import "fmt"

// Triple is one row of a leaf column: a value (or a null marker) with
// the repetition and definition levels the shredder computed for it.
// See spec.md §3 for the r/d semantics.
type Triple struct {
	Value           interface{}
	RepetitionLevel int
	DefinitionLevel int
}

// IsNull reports whether the triple carries no value for its leaf.
func (t Triple) IsNull() bool { return t.Value == nil }

func (t Triple) String() string {
	v := "null"
	if !t.IsNull() {
		v = fmt.Sprint(t.Value)
	}
	return fmt.Sprintf("(%s, r=%d, d=%d)", v, t.RepetitionLevel, t.DefinitionLevel)
}
