package dremel

// Record is the record shape accepted by Shred: keys not present in
// the schema are silently skipped, values are scalars, nested
// Records, []interface{} of Records (repeated groups), or
// []interface{} of scalars (repeated leaves).
type Record map[string]interface{}

// fieldWriter is the shredder's per-node accumulator: one is created
// per schema node, mirroring the schema tree, and owns the triple
// stream for its node if that node is a leaf.
type fieldWriter struct {
	descriptor *Schema
	children   map[string]*fieldWriter
	data       []Triple
}

func newFieldWriter(descriptor *Schema) *fieldWriter {
	w := &fieldWriter{
		descriptor: descriptor,
		children:   make(map[string]*fieldWriter, len(descriptor.Children)),
	}
	for _, c := range descriptor.Children {
		w.children[c.Name] = newFieldWriter(c)
	}
	return w
}

func (w *fieldWriter) write(value interface{}, r, d int) {
	w.data = append(w.data, Triple{Value: value, RepetitionLevel: r, DefinitionLevel: d})
}

// recordDecoder iterates the key/value pairs of a single Record (or of
// no record, for synthesizing cleanup nulls) and remembers the
// ambient definition level at which that record itself exists — the
// definition level of the group the mapping is the value of (0 for a
// top-level record), or, for a synthesized empty decoder, that of the
// deepest enclosing group that is present — used when writing nulls
// for fields the record never mentioned.
type recordDecoder struct {
	keys            []string
	values          map[string]interface{}
	definitionLevel int
}

func newRecordDecoder(record Record, definitionLevel int) *recordDecoder {
	d := &recordDecoder{definitionLevel: definitionLevel}
	if record != nil {
		d.values = record
		d.keys = make([]string, 0, len(record))
		for k := range record {
			d.keys = append(d.keys, k)
		}
	}
	return d
}

// dissect recursively shreds the mapping exposed by decoder into
// writer's subtree, at repetition level r. It implements spec.md
// §4.2's `dissect` contract: every field of writer's children that
// decoder mentions is written (recursing into children for groups);
// every child it does not mention gets the recursive null treatment.
func dissect(decoder *recordDecoder, writer *fieldWriter, r int) error {
	seen := make(map[string]bool, len(decoder.keys))

	for _, field := range decoder.keys {
		value := decoder.values[field]

		child := writer.children[field]
		if child == nil {
			continue
		}

		d := decoder.definitionLevel + 1

		if child.descriptor.Repeated {
			list, ok := value.([]interface{})
			if !ok {
				return &TypeMismatchError{Field: field, Expected: "a list (repeated field)", Value: value}
			}

			if len(list) == 0 {
				continue
			}
			seen[field] = true

			for i, item := range list {
				elemR := r
				if i != 0 {
					elemR = child.descriptor.RepetitionLevel
				}

				if child.descriptor.Leaf() {
					child.write(item, elemR, d)
				} else {
					sub, err := recordFrom(field, item)
					if err != nil {
						return err
					}
					if err := dissect(newRecordDecoder(sub, d), child, elemR); err != nil {
						return err
					}
				}
			}
		} else {
			if _, ok := value.([]interface{}); ok {
				return &TypeMismatchError{Field: field, Expected: "a single value (non-repeated field)", Value: value}
			}

			if value == nil {
				continue
			}

			if child.descriptor.Leaf() {
				seen[field] = true
				child.write(value, r, d)
				continue
			}

			sub, ok := value.(Record)
			if !ok {
				if m, ok2 := value.(map[string]interface{}); ok2 {
					sub = Record(m)
				} else {
					return &TypeMismatchError{Field: field, Expected: "a mapping or null (group field)", Value: value}
				}
			}
			seen[field] = true
			if err := dissect(newRecordDecoder(sub, d), child, r); err != nil {
				return err
			}
		}
	}

	for _, desc := range writer.descriptor.Children {
		if seen[desc.Name] {
			continue
		}
		if err := writeNulls(writer.children[desc.Name], r, decoder.definitionLevel); err != nil {
			return err
		}
	}

	return nil
}

// writeNulls recursively emits the cleanup-null triples for a schema
// subtree that was entirely absent from a record, at the ambient
// definition level d (the depth of the enclosing group that did not
// mention this field).
func writeNulls(writer *fieldWriter, r, d int) error {
	if writer.descriptor.Leaf() {
		writer.write(nil, r, d)
		return nil
	}
	return dissect(newRecordDecoder(nil, d), writer, r)
}

// recordFrom coerces a repeated group element into a Record, so
// callers may build input either from dremel.Record or from plain
// map[string]interface{} (e.g. values decoded by encoding/json).
func recordFrom(field string, value interface{}) (Record, error) {
	switch v := value.(type) {
	case Record:
		return v, nil
	case map[string]interface{}:
		return Record(v), nil
	case nil:
		return nil, nil
	default:
		return nil, &TypeMismatchError{Field: field, Expected: "a mapping (repeated group element)", Value: value}
	}
}

// Columns maps each leaf of a schema to its shredded triple stream.
type Columns map[*Schema][]Triple

// Shred decomposes records into per-leaf triple streams, appending
// across records in order. Keys absent from the schema are ignored;
// see spec.md §4.2 for the full algorithm and §7 for the validation
// errors it can raise.
func Shred(root *Schema, records []Record) (Columns, error) {
	writer := newFieldWriter(root)
	for _, record := range records {
		decoder := newRecordDecoder(record, 0)
		if err := dissect(decoder, writer, 0); err != nil {
			return nil, err
		}
	}

	out := make(Columns)
	var collect func(*fieldWriter)
	collect = func(w *fieldWriter) {
		if w.descriptor.Leaf() {
			out[w.descriptor] = w.data
			return
		}
		for _, c := range w.descriptor.Children {
			collect(w.children[c.Name])
		}
	}
	collect(writer)
	return out, nil
}
