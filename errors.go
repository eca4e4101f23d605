package dremel

import (
	"errors"
	"fmt"
)

// ErrExhausted is returned when a column stream is read past its end
// during assembly. It indicates corrupt or inconsistent column data
// and is always fatal to the in-progress assembly.
var ErrExhausted = errors.New("dremel: column stream exhausted")

// SchemaError reports a malformed schema path, such as a path segment
// whose [*] repetition marker contradicts an earlier declaration of
// the same prefix.
type SchemaError struct {
	Path   string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("dremel: schema: %s: %s", e.Path, e.Reason)
}

// TypeMismatchError reports a record value whose shape does not match
// what the schema declares for a field: a repeated field given a
// non-list value, a non-repeated field given a list, or a group field
// given neither a mapping nor null.
type TypeMismatchError struct {
	Field    string
	Expected string
	Value    interface{}
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("dremel: field %q: expected %s, found %s: %v",
		e.Field, e.Expected, goTypeName(e.Value), e.Value)
}

// SelectionError reports a leaf passed to BuildFSM's selection that
// does not belong to the schema it was built from.
type SelectionError struct {
	Path string
}

func (e *SelectionError) Error() string {
	return fmt.Sprintf("dremel: selection: leaf %q is not part of the schema", e.Path)
}

func goTypeName(v interface{}) string {
	if v == nil {
		return "null"
	}
	switch v.(type) {
	case []interface{}:
		return "list"
	case map[string]interface{}:
		return "mapping"
	default:
		return fmt.Sprintf("%T", v)
	}
}
