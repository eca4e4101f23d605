package dremel

// RecordSource supplies the nested mapping values Shred consumes, one
// at a time. Implementations are expected to be single-pass, matching
// spec.md §5's synchronous, no-random-access resource model.
type RecordSource interface {
	// Next returns the next record, or ok == false when the source is
	// exhausted.
	Next() (record Record, ok bool, err error)
}

// ColumnSink accepts triples produced by the shredder, one leaf at a
// time. Order within a descriptor is significant; ordering across
// descriptors is not (spec.md §4.5).
type ColumnSink interface {
	Append(leaf *Schema, t Triple)
}

// ColumnSource exposes the peek-one/consume-one contract the
// assembler needs over a leaf's triple stream (spec.md §4.5).
type ColumnSource interface {
	HasNext(leaf *Schema) bool
	Peek(leaf *Schema) Triple
	Next(leaf *Schema) (Triple, error)
}

// SliceRecordSource adapts an in-memory slice of records to
// RecordSource.
type SliceRecordSource struct {
	records []Record
	pos     int
}

// NewSliceRecordSource returns a RecordSource over records, an
// in-memory, non-owning view: callers must not mutate records while
// it is in use.
func NewSliceRecordSource(records []Record) *SliceRecordSource {
	return &SliceRecordSource{records: records}
}

func (s *SliceRecordSource) Next() (Record, bool, error) {
	if s.pos >= len(s.records) {
		return nil, false, nil
	}
	r := s.records[s.pos]
	s.pos++
	return r, true, nil
}

// Drain reads every remaining record out of src.
func Drain(src RecordSource) ([]Record, error) {
	var records []Record
	for {
		r, ok, err := src.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return records, nil
		}
		records = append(records, r)
	}
}

// ColumnStore is an in-memory ColumnSink and ColumnSource over the
// Columns produced by Shred, used when callers want the sink/source
// interfaces rather than calling Shred/Assemble directly.
type ColumnStore struct {
	data    Columns
	readers map[*Schema]*columnReader
}

// NewColumnStore wraps columns for sequential reading through the
// ColumnSource interface.
func NewColumnStore(columns Columns) *ColumnStore {
	readers := make(map[*Schema]*columnReader, len(columns))
	for leaf, triples := range columns {
		readers[leaf] = newColumnReader(triples)
	}
	return &ColumnStore{data: columns, readers: readers}
}

// NewColumnSink returns an empty ColumnStore ready to accept Appends.
func NewColumnSink() *ColumnStore {
	return &ColumnStore{data: make(Columns)}
}

func (c *ColumnStore) Append(leaf *Schema, t Triple) {
	c.data[leaf] = append(c.data[leaf], t)
}

// Columns returns the underlying triple map.
func (c *ColumnStore) Columns() Columns { return c.data }

func (c *ColumnStore) reader(leaf *Schema) *columnReader {
	r, ok := c.readers[leaf]
	if !ok {
		r = newColumnReader(c.data[leaf])
		if c.readers == nil {
			c.readers = make(map[*Schema]*columnReader)
		}
		c.readers[leaf] = r
	}
	return r
}

func (c *ColumnStore) HasNext(leaf *Schema) bool { return c.reader(leaf).hasNext() }

func (c *ColumnStore) Peek(leaf *Schema) Triple { return c.reader(leaf).peek() }

func (c *ColumnStore) Next(leaf *Schema) (Triple, error) { return c.reader(leaf).next() }
