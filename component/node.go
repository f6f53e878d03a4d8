package component

import (
	"github.com/hotzsauce/edan/code"
)

// Node is one component of a table: an aggregate, a subcomponent or a member
// of a partition. Nodes are built once by Build and never modified afterwards,
// so they are safe for concurrent use.
//
// A node has two independent child sets. Its subcomponents are reached with
// plain (':') or balance ('+', '-') delimiters, its partition members with '#'.
// The same name may appear in both sets.
type Node struct {
	name      string
	path      string
	longName  string
	shortName string
	kind      code.Kind
	level     int
	parent    *Node

	balance  bool
	subs     []*Node
	subIndex map[string]*Node

	parts     []*Node
	partIndex map[string]*Node

	measures map[string]*SeriesRef
}

func newNode(name string, kind code.Kind, parent *Node) *Node {
	n := &Node{
		name:      name,
		kind:      kind,
		parent:    parent,
		subIndex:  make(map[string]*Node),
		partIndex: make(map[string]*Node),
		measures:  make(map[string]*SeriesRef),
	}
	switch {
	case parent == nil:
		n.level = -1
	case kind == code.Partition:
		// partitions re-decompose the parent; they sit beside its subcomponents
		n.level = parent.level
	default:
		n.level = parent.level + 1
	}
	if parent != nil {
		n.path = code.Join(parent.path, code.Segment{Kind: kind, Name: name}.String())
	}
	return n
}

// Name returns the node's local name, unique among siblings of its kind.
func (n *Node) Name() string { return n.name }

// FullPath returns the canonical absolute address of the node. The table root
// has an empty path.
func (n *Node) FullPath() string { return n.path }

// Parent returns the parent node, or nil for the table root.
func (n *Node) Parent() *Node { return n.parent }

// Kind returns the kind of the edge connecting the node to its parent.
func (n *Node) Kind() code.Kind { return n.kind }

// Level returns the depth of the node in the subcomponent hierarchy. Top
// level aggregates are at level 0. Partition members share their parent's
// level.
func (n *Node) Level() int { return n.level }

// LongName returns the descriptive name supplied by the data provider.
func (n *Node) LongName() string { return n.longName }

// ShortName returns the abbreviated name supplied by the data provider.
func (n *Node) ShortName() string { return n.shortName }

// DisplayName returns the name to show in tables and legends: the long name,
// else the short name, else the local name.
func (n *Node) DisplayName() string {
	switch {
	case n.longName != "":
		return n.longName
	case n.shortName != "":
		return n.shortName
	}
	return n.name
}

// IsRoot reports whether n is the synthetic root of a table.
func (n *Node) IsRoot() bool { return n.parent == nil }

// IsBalance reports whether the node is a signed sum of its subcomponents.
func (n *Node) IsBalance() bool { return n.balance }

// IsElemental reports whether the node has no subcomponents.
func (n *Node) IsElemental() bool { return len(n.subs) == 0 }

// Subs returns the subcomponents in provider order.
func (n *Node) Subs() []*Node {
	out := make([]*Node, len(n.subs))
	copy(out, n.subs)
	return out
}

// Partitions returns the partition members in provider order.
func (n *Node) Partitions() []*Node {
	out := make([]*Node, len(n.parts))
	copy(out, n.parts)
	return out
}

// Root returns the table root above n.
func (n *Node) Root() *Node {
	for n.parent != nil {
		n = n.parent
	}
	return n
}

// depth counts the edges between n and the top level aggregate above it,
// partition edges included.
func (n *Node) depth() int {
	d := -1
	for p := n.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// Get resolves an address relative to n. See Resolve.
func (n *Node) Get(addr string) (*Node, error) {
	return Resolve(n, addr)
}

func (n *Node) String() string {
	if n.IsRoot() {
		return "Node(<root>)"
	}
	return "Node(" + n.path + ")"
}
