package dremel

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
)

// Fprint renders root's schema tree to w as an indented field list,
// one field per line, in the style of the teacher's message-schema
// dumper: "repeated"/"optional" kind, name, and R/D levels.
func Fprint(w io.Writer, root *Schema) error {
	var err error
	write := func(format string, args ...interface{}) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w, format, args...)
	}

	var walk func(n *Schema, depth int)
	walk = func(n *Schema, depth int) {
		if !n.Root() {
			kind := "optional"
			if n.Repeated {
				kind = "repeated"
			}
			write("%s%s %s (r=%d, d=%d)\n",
				strings.Repeat("  ", depth-1), kind, n.Name, n.RepetitionLevel, n.DefinitionLevel)
		}
		for _, c := range n.Children {
			walk(c, depth+1)
		}
	}
	walk(root, 0)
	return err
}

// FprintColumns renders the shredded triples for each leaf of root as
// a table: one row per triple, columns for leaf path, value,
// repetition level, and definition level.
func FprintColumns(w io.Writer, root *Schema, columns Columns) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"column", "value", "r", "d"})
	table.SetAutoFormatHeaders(false)

	for _, leaf := range Leaves(root) {
		path := leaf.Path()
		for _, t := range columns[leaf] {
			value := "null"
			if !t.IsNull() {
				value = fmt.Sprint(t.Value)
			}
			table.Append([]string{
				path,
				value,
				strconv.Itoa(t.RepetitionLevel),
				strconv.Itoa(t.DefinitionLevel),
			})
		}
	}

	table.Render()
}

// FprintFSM renders a transition table as a table of (leaf, level,
// next leaf) rows, in leaf declaration order.
func FprintFSM(w io.Writer, root *Schema, fsm FSM, selection []*Schema) error {
	leaves, err := selectedLeaves(root, selection)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"leaf", "level", "next"})
	table.SetAutoFormatHeaders(false)

	for _, leaf := range leaves {
		for level, next := range fsm[leaf] {
			name := "END"
			if next != End {
				name = next.Path()
			}
			table.Append([]string{leaf.Path(), strconv.Itoa(level), name})
		}
	}

	table.Render()
	return nil
}
