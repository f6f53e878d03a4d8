package component

import (
	"fmt"
	"strings"
)

// Table is a named tree of components with an index from every absolute
// address to its node.
type Table struct {
	name  string
	root  *Node
	index map[string]*Node
	codes []string
}

func newTable(name string, root *Node) *Table {
	t := &Table{
		name:  name,
		root:  root,
		index: make(map[string]*Node),
	}
	Inspect(root, func(n *Node) bool {
		if n == nil || n.IsRoot() {
			return true
		}
		t.index[n.path] = n
		t.codes = append(t.codes, n.path)
		return true
	})
	return t
}

// Name returns the table name.
func (t *Table) Name() string { return t.name }

// Root returns the synthetic root whose subcomponents are the table's top
// level aggregates.
func (t *Table) Root() *Node { return t.root }

// Len returns the number of components in the table.
func (t *Table) Len() int { return len(t.codes) }

// Codes returns every absolute address in the table, depth first in provider
// order.
func (t *Table) Codes() []string {
	out := make([]string, len(t.codes))
	copy(out, t.codes)
	return out
}

// Nodes returns every component in the order of Codes.
func (t *Table) Nodes() []*Node {
	out := make([]*Node, len(t.codes))
	for i, c := range t.codes {
		out[i] = t.index[c]
	}
	return out
}

// Get returns the component at addr. Canonical absolute addresses are served
// from the index; anything else is resolved from the root.
func (t *Table) Get(addr string) (*Node, error) {
	if n, ok := t.index[addr]; ok {
		return n, nil
	}
	return Resolve(t.root, addr)
}

// MustGet is like Get but panics if the address does not resolve.
func (t *Table) MustGet(addr string) *Node {
	n, err := t.Get(addr)
	if err != nil {
		panic(err)
	}
	return n
}

// String renders the table as an indented tree, one component per line.
func (t *Table) String() string {
	const (
		gap    = "  "
		branch = "  | "
		leaf   = "  |--"
	)

	var b strings.Builder
	fmt.Fprintf(&b, "%s Table\n", t.name)
	for _, n := range t.Nodes() {
		prefix := ""
		if d := n.depth(); d > 0 {
			prefix = strings.Repeat(branch, d-1) + leaf
		} else {
			b.WriteString(gap + strings.Repeat("=", 40) + "\n")
		}
		fmt.Fprintf(&b, "%s%s%s [%s]\n", gap, prefix, n.DisplayName(), n.path)
	}
	return b.String()
}
