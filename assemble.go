package dremel

// columnReader is a single-pass cursor over one leaf's triple stream,
// matching the peek-one/consume-one contract spec.md §4.5 asks of a
// column source.
type columnReader struct {
	data []Triple
	pos  int
}

func newColumnReader(data []Triple) *columnReader { return &columnReader{data: data} }

func (r *columnReader) hasNext() bool { return r.pos < len(r.data) }

func (r *columnReader) peek() Triple { return r.data[r.pos] }

func (r *columnReader) next() (Triple, error) {
	if !r.hasNext() {
		return Triple{}, ErrExhausted
	}
	t := r.data[r.pos]
	r.pos++
	return t, nil
}

// repeatedList is the mutable backing store for a repeated field's
// elements while a record is under construction. It is held by
// pointer so that a reference stashed in a parent group (the slot
// `group[name] = list`) keeps observing appends made after that
// assignment — a plain Go slice value would not, since append may
// reallocate.
type repeatedList struct {
	items []interface{}
}

func (l *repeatedList) append(v interface{}) { l.items = append(l.items, v) }

// group is the under-construction representation of a non-leaf
// record scope: field name to either a scalar, a nested group, or a
// *repeatedList.
type group map[string]interface{}

// keptNodes returns the set of nodes that lie on the path from root to
// some leaf in leaves: root, every ancestor of a selected leaf, and
// the leaves themselves. When leaves is every leaf of root, the set is
// every node; an empty leaves set gives an empty set.
func keptNodes(root *Schema, leaves []*Schema) map[*Schema]bool {
	kept := make(map[*Schema]bool)
	for _, leaf := range leaves {
		for _, a := range Ancestors(leaf) {
			kept[a] = true
		}
	}
	return kept
}

// siblingsUnderProjection returns n's parent's children that survive
// column projection: those that are themselves kept, in declaration
// order. Used so first/last-in-repetition is judged against the
// fields the assembler will actually visit, not the full schema —
// a projection that excludes a group's declared first or last child
// would otherwise leave the wrong field driving scope bookkeeping.
func siblingsUnderProjection(n *Schema, kept map[*Schema]bool) []*Schema {
	p := n.Parent()
	var siblings []*Schema
	for _, c := range p.Children {
		if kept[c] {
			siblings = append(siblings, c)
		}
	}
	return siblings
}

func isFirstInRepetition(n *Schema, kept map[*Schema]bool) bool {
	p := n.Parent()
	if p == nil || !p.Repeated {
		return false
	}
	siblings := siblingsUnderProjection(n, kept)
	return len(siblings) > 0 && siblings[0] == n
}

func isLastInRepetition(n *Schema, kept map[*Schema]bool) bool {
	p := n.Parent()
	if p == nil || !p.Repeated {
		return false
	}
	siblings := siblingsUnderProjection(n, kept)
	return len(siblings) > 0 && siblings[len(siblings)-1] == n
}

// assembler holds the state of one record under construction: the
// currently open scope (current), the innermost writable buffer, the
// innermost enclosing repeated group's list (for backtracking an
// all-null element away), and, per node, the buffer/repeatedBuffer
// that were current immediately before that node's scope was opened.
type assembler struct {
	root  *Schema
	order map[*Schema]int
	kept  map[*Schema]bool

	current        *Schema
	buffer         interface{}
	repeatedBuffer interface{}

	savedBuffer         map[*Schema]interface{}
	savedRepeatedBuffer map[*Schema]interface{}
}

func newAssembler(root *Schema, order map[*Schema]int, kept map[*Schema]bool) *assembler {
	return &assembler{
		root:                root,
		order:               order,
		kept:                kept,
		current:             root,
		buffer:              group{},
		savedBuffer:         make(map[*Schema]interface{}),
		savedRepeatedBuffer: make(map[*Schema]interface{}),
	}
}

// begin opens the scope for node n, per spec.md §4.4's "Opening a
// scope" rules.
func (a *assembler) begin(n *Schema) {
	a.savedRepeatedBuffer[n] = a.repeatedBuffer

	if isFirstInRepetition(n, a.kept) {
		newGroup := group{}
		a.buffer.(*repeatedList).append(newGroup)
		a.buffer = newGroup
	}

	a.savedBuffer[n] = a.buffer

	switch {
	case n.Leaf() && n.Repeated:
		list := &repeatedList{}
		a.buffer.(group)[n.Name] = list
		a.buffer = list
	case n.Leaf():
		// Non-repeated leaf: no sub-scope, add() writes directly into
		// the enclosing group.
	case n.Repeated:
		list := &repeatedList{}
		a.buffer.(group)[n.Name] = list
		a.buffer = list
		a.repeatedBuffer = list
	default:
		newGroup := group{}
		a.buffer.(group)[n.Name] = newGroup
		a.buffer = newGroup
	}
}

// add writes a leaf value at the current scope.
func (a *assembler) add(n *Schema, value interface{}) {
	if n.Repeated {
		a.buffer.(*repeatedList).append(value)
	} else {
		a.buffer.(group)[n.Name] = value
	}
}

// end closes the scope for node n, per spec.md §4.4's "Closing a
// scope" rules.
func (a *assembler) end(n *Schema) {
	if isLastInRepetition(n, a.kept) {
		if g, ok := a.buffer.(group); ok && len(g) == 0 {
			rb := a.repeatedBuffer.(*repeatedList)
			rb.items = rb.items[:len(rb.items)-1]
		}
		a.buffer = a.repeatedBuffer
	} else {
		a.buffer = a.savedBuffer[n]
	}
	a.repeatedBuffer = a.savedRepeatedBuffer[n]
}

// moveToLevel closes scopes back to the common ancestor of the
// current position and next, then opens scopes down to next.
func (a *assembler) moveToLevel(next *Schema) {
	ancestor := CommonAncestor(a.current, next)
	a.returnToLevel(ancestor.DefinitionLevel)

	path := Ancestors(next)
	for a.current.DefinitionLevel < next.DefinitionLevel {
		a.current = path[a.current.DefinitionLevel+1]
		a.begin(a.current)
	}
}

// returnToLevel closes scopes until the current position's
// definition level no longer exceeds level.
func (a *assembler) returnToLevel(level int) {
	for a.current.DefinitionLevel > level {
		a.end(a.current)
		a.current = a.current.Parent()
	}
}

func (a *assembler) isRepeating(from, to *Schema) bool {
	return a.order[from] >= a.order[to]
}

// assembleOne drives the FSM to produce exactly one record, reading
// from readers and advancing their cursors.
func assembleOne(fsm FSM, root *Schema, firstLeaf *Schema, readers map[*Schema]*columnReader, order map[*Schema]int, kept map[*Schema]bool) (Record, error) {
	a := newAssembler(root, order, kept)

	descriptor := firstLeaf
	for descriptor != End {
		a.moveToLevel(descriptor)

		reader := readers[descriptor]
		triple, err := reader.next()
		if err != nil {
			return nil, err
		}

		if triple.DefinitionLevel == descriptor.DefinitionLevel {
			a.add(descriptor, triple.Value)
		}

		nextLevel := 0
		if reader.hasNext() {
			nextLevel = reader.peek().RepetitionLevel
		}

		next := fsm.next(descriptor, nextLevel)

		if next != End && a.isRepeating(descriptor, next) {
			full, err := descriptor.FullRepetitionLevel(nextLevel)
			if err != nil {
				return nil, err
			}
			a.returnToLevel(full)
		}

		descriptor = next
	}

	a.returnToLevel(root.DefinitionLevel)
	return finalize(a.buffer).(Record), nil
}

// finalize converts the mutable under-construction representation
// (group / *repeatedList) into the Record / []interface{} shape that
// Assemble exposes to callers, so every group in the result — at any
// nesting depth — has the same dynamic type a caller-built Record
// would have.
func finalize(v interface{}) interface{} {
	switch t := v.(type) {
	case group:
		out := make(Record, len(t))
		for k, vv := range t {
			out[k] = finalize(vv)
		}
		return out
	case *repeatedList:
		items := make([]interface{}, len(t.items))
		for i, it := range t.items {
			items[i] = finalize(it)
		}
		return items
	default:
		return v
	}
}

func nodeOrder(root *Schema) map[*Schema]int {
	order := make(map[*Schema]int)
	for i, n := range AllNodes(root) {
		order[n] = i
	}
	return order
}

// Assemble reconstructs records from columnar triple streams using
// the Dremel assembly algorithm of spec.md §4.4. If selection is
// non-nil, only those leaves are read and only their data contributes
// to the output (spec.md §4.3's column projection); columns for
// unselected leaves are ignored.
func Assemble(root *Schema, columns Columns, selection []*Schema) ([]Record, error) {
	fsm, err := BuildFSM(root, selection)
	if err != nil {
		return nil, err
	}

	leaves, err := selectedLeaves(root, selection)
	if err != nil {
		return nil, err
	}
	if len(leaves) == 0 {
		return nil, &SelectionError{Path: ""}
	}

	order := nodeOrder(root)
	kept := keptNodes(root, leaves)

	readers := make(map[*Schema]*columnReader, len(leaves))
	for _, l := range leaves {
		readers[l] = newColumnReader(columns[l])
	}

	first := readers[leaves[0]]

	var records []Record
	for first.hasNext() {
		rec, err := assembleOne(fsm, root, leaves[0], readers, order, kept)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}
