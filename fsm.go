package dremel

// End is the sentinel "next leaf" value signaling that an assembled
// record is complete. It is a distinguished *Schema that is never
// produced by ParseSchema, so it can never alias a real schema node.
var End = &Schema{Name: "$END"}

// FSM is the transition table produced by BuildFSM: for each selected
// leaf L, FSM[L] is total over repetition levels 0..R(L), mapping the
// next triple's repetition level to the next leaf to read from (or
// End).
type FSM map[*Schema][]*Schema

// next returns the leaf (or End) that fsm says to read after leaf,
// given that the next triple's repetition level is r.
func (fsm FSM) next(leaf *Schema, r int) *Schema {
	return fsm[leaf][r]
}

// BuildFSM computes the assembly transition table for root. If
// selection is non-nil, only those leaves are included in the table
// (column projection); selection must list leaves that actually
// belong to root's tree, in any order — the table is always built
// over the leaves in schema declaration order. A nil selection
// includes every leaf.
//
// See spec.md §4.3 for the four-step construction (barrier, back
// edges, gap fill, barrier edges).
func BuildFSM(root *Schema, selection []*Schema) (FSM, error) {
	fields, err := selectedLeaves(root, selection)
	if err != nil {
		return nil, err
	}

	fsm := make(FSM, len(fields))

	for i, field := range fields {
		maxLevel := field.RepetitionLevel

		// Step 1: barrier.
		var barrier *Schema
		barrierLevel := 0
		if i < len(fields)-1 {
			barrier = fields[i+1]
			barrierLevel = CommonAncestor(field, barrier).RepetitionLevel
		} else {
			barrier = End
		}

		table := make([]*Schema, maxLevel+1)

		// Step 2: back edges. The scan runs from the nearest earlier
		// field down to the first; because each assignment overwrites
		// any earlier one at the same level, the value that survives
		// for a given level is the *earliest-declared* field sharing
		// that common ancestor — the first leaf of the subtree that
		// is repeating, which is the field assembly must resume from.
		for j := i - 1; j >= 0; j-- {
			preField := fields[j]
			if preField.RepetitionLevel <= barrierLevel {
				continue
			}
			backLevel := CommonAncestor(preField, field).RepetitionLevel
			table[backLevel] = preField
		}

		// Step 3: gap fill.
		for level := maxLevel; level > barrierLevel; level-- {
			if table[level] != nil {
				continue
			}
			if level == maxLevel {
				table[level] = field
			} else {
				table[level] = table[level+1]
			}
		}

		// Step 4: barrier edges.
		for level := 0; level <= barrierLevel; level++ {
			table[level] = barrier
		}

		fsm[field] = table
	}

	return fsm, nil
}

// selectedLeaves returns the leaves relevant to a selection: all of
// root's leaves, in declaration order, when selection is nil; the
// subset named by selection, in the same declaration order, when it
// is not. Returns a SelectionError if selection names a node that is
// not a leaf of root's tree.
func selectedLeaves(root *Schema, selection []*Schema) ([]*Schema, error) {
	leaves := Leaves(root)
	if selection == nil {
		return leaves, nil
	}

	wanted := make(map[*Schema]bool, len(selection))
	for _, s := range selection {
		wanted[s] = true
	}

	fields := make([]*Schema, 0, len(selection))
	for _, l := range leaves {
		if wanted[l] {
			fields = append(fields, l)
			delete(wanted, l)
		}
	}
	for s := range wanted {
		return nil, &SelectionError{Path: s.Path()}
	}
	return fields, nil
}
