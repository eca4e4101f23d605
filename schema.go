package dremel

import "strings"

// rootName is the sentinel path segment used for the root of every
// schema tree. It is never a valid field name and never appears in a
// caller-supplied path.
const rootName = "$"

// Schema is a node in the compiled schema tree. A tree is built once,
// by ParseSchema, and is immutable afterwards: Children is read-only
// once construction returns. Two schema trees are value-equal (Equal)
// when they have the same structure, independent of their Parent
// pointers; in this package, however, identity between leaves is
// handle identity (pointer equality), not structural equality. The two
// notions can differ inside one tree: same-named leaves under
// different parents (a.x and b.x) are structurally equal but distinct
// nodes, each with its own column.
type Schema struct {
	// Name is the local field name. The root's Name is always "$".
	Name string

	// Repeated reports whether this field may occur more than once
	// under its parent. Always false for the root.
	Repeated bool

	// RepetitionLevel is the number of repeated ancestors of this
	// node, including itself if Repeated.
	RepetitionLevel int

	// DefinitionLevel is the depth of this node from the root (the
	// root is 0); equivalently, the number of optional-or-repeated
	// ancestors including itself, since every non-root field in this
	// model is either optional or repeated.
	DefinitionLevel int

	// Children holds this node's fields in declaration order: the
	// order in which ParseSchema first saw each name.
	Children []*Schema

	parent *Schema
}

// Parent returns the node's parent, or nil for the root.
func (s *Schema) Parent() *Schema { return s.parent }

// Leaf reports whether s has no children.
func (s *Schema) Leaf() bool { return len(s.Children) == 0 }

// Root reports whether s is the root of its tree.
func (s *Schema) Root() bool { return s.parent == nil }

// Child returns the existing child named name, or nil.
func (s *Schema) Child(name string) *Schema {
	for _, c := range s.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// addChild returns the existing child named name if one exists,
// after checking that its Repeated flag agrees with repeated, or
// creates and appends a new one. Children are returned/created in the
// order addChild is first called for each distinct name.
func (s *Schema) addChild(name string, repeated bool) (*Schema, error) {
	if c := s.Child(name); c != nil {
		if c.Repeated != repeated {
			return nil, &SchemaError{
				Path:   s.pathTo(name),
				Reason: "field redeclared with a conflicting [*] repetition marker",
			}
		}
		return c, nil
	}
	c := &Schema{Name: name, Repeated: repeated, parent: s}
	s.Children = append(s.Children, c)
	return c, nil
}

func (s *Schema) pathTo(name string) string {
	if s.Root() {
		return name
	}
	return s.Path() + "." + name
}

// Path returns the dot-separated path from the root to s, excluding
// the root sentinel itself.
func (s *Schema) Path() string {
	if s.Root() {
		return ""
	}
	var parts []string
	for n := s; !n.Root(); n = n.parent {
		parts = append(parts, n.Name)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ".")
}

// computeLevels recomputes RepetitionLevel and DefinitionLevel for s
// and its descendants in a post-order-equivalent top-down pass,
// following the invariants in spec.md §3: D(n) = D(parent)+1 and
// R(n) = R(parent) + (1 if repeated else 0), with the root at R=0,
// D=0.
func (s *Schema) computeLevels(parentRep, parentDef int) {
	rep := parentRep
	def := parentDef
	if !s.Root() {
		def++
		if s.Repeated {
			rep++
		}
	}
	s.RepetitionLevel = rep
	s.DefinitionLevel = def
	for _, c := range s.Children {
		c.computeLevels(rep, def)
	}
}

// FullRepetitionLevel returns the definition level of the shallowest
// ancestor of s (s included) whose repetition level equals r; a
// non-repeated node shares its parent's level, so several ancestors
// can match and the one nearest the root wins. It is
// used by the assembler to decide how far to unwind when a new
// repetition begins at level r.
func (s *Schema) FullRepetitionLevel(r int) (int, error) {
	for _, a := range Ancestors(s) {
		if a.RepetitionLevel == r {
			return a.DefinitionLevel, nil
		}
	}
	return 0, &SchemaError{Path: s.Path(), Reason: "no ancestor at the requested repetition level"}
}

// Equal reports structural equality between s and other: same name,
// levels, repeated flag, and equal children in the same order. Parent
// pointers are deliberately excluded, per spec.md §3.
func (s *Schema) Equal(other *Schema) bool {
	if s == other {
		return true
	}
	if s == nil || other == nil {
		return false
	}
	if s.Name != other.Name ||
		s.Repeated != other.Repeated ||
		s.RepetitionLevel != other.RepetitionLevel ||
		s.DefinitionLevel != other.DefinitionLevel ||
		len(s.Children) != len(other.Children) {
		return false
	}
	for i, c := range s.Children {
		if !c.Equal(other.Children[i]) {
			return false
		}
	}
	return true
}

// AllNodes returns every node of the tree rooted at root, in pre-order
// (root first, then each child subtree in declaration order).
func AllNodes(root *Schema) []*Schema {
	nodes := []*Schema{root}
	for _, c := range root.Children {
		nodes = append(nodes, AllNodes(c)...)
	}
	return nodes
}

// Leaves returns the leaves of the tree rooted at root, in declaration
// order (depth-first, children visited in the order they were first
// introduced by the schema's path list).
func Leaves(root *Schema) []*Schema {
	if root.Leaf() {
		return []*Schema{root}
	}
	var leaves []*Schema
	for _, c := range root.Children {
		leaves = append(leaves, Leaves(c)...)
	}
	return leaves
}

// Ancestors returns node and its ancestors up to and including the
// root, ordered root-first (unlike a naive walk-to-root, which would
// be leaf-first) so that callers can index it by depth directly.
func Ancestors(node *Schema) []*Schema {
	var chain []*Schema
	for n := node; n != nil; n = n.parent {
		chain = append(chain, n)
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// CommonAncestor returns the deepest node that is an ancestor of both
// a and b (which may themselves be ancestors of one another). Returns
// nil only if a and b belong to different trees.
func CommonAncestor(a, b *Schema) *Schema {
	aChain := Ancestors(a)
	bChain := Ancestors(b)

	var common *Schema
	for i := 0; i < len(aChain) && i < len(bChain); i++ {
		if aChain[i] != bChain[i] {
			break
		}
		common = aChain[i]
	}
	return common
}

// ParseSchema compiles an ordered list of dotted field paths into a
// schema tree. A path segment suffixed with the literal marker "[*]"
// declares that segment's field as repeated, with the marker stripped
// from the stored name. Paths sharing a prefix reuse the same node;
// reusing a prefix with a conflicting [*] marker is a SchemaError.
func ParseSchema(paths []string) (*Schema, error) {
	root := &Schema{Name: rootName}
	for _, path := range paths {
		if path == "" {
			return nil, &SchemaError{Path: path, Reason: "empty path"}
		}
		current := root
		for _, part := range strings.Split(path, ".") {
			name := part
			repeated := false
			if strings.HasSuffix(part, "[*]") {
				repeated = true
				name = strings.TrimSuffix(part, "[*]")
			}
			if name == "" {
				return nil, &SchemaError{Path: path, Reason: "empty path segment"}
			}
			next, err := current.addChild(name, repeated)
			if err != nil {
				return nil, err
			}
			current = next
		}
	}
	root.computeLevels(0, 0)
	return root, nil
}
