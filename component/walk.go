package component

// A Visitor's Visit method is invoked for each node encountered by Walk. If
// the result visitor w is not nil, Walk visits each child of the node with w,
// followed by a call of w.Visit(nil).
type Visitor interface {
	Visit(node *Node) (w Visitor)
}

// Walk traverses the tree below node in depth-first order: it calls
// v.Visit(node), then walks the subcomponents followed by the partition
// members, each in provider order.
func Walk(v Visitor, node *Node) {
	if v = v.Visit(node); v == nil {
		return
	}
	for _, child := range node.subs {
		Walk(v, child)
	}
	for _, child := range node.parts {
		Walk(v, child)
	}
	v.Visit(nil)
}

type inspector func(*Node) bool

func (f inspector) Visit(node *Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Inspect traverses the tree below node in depth-first order. If f returns
// true, Inspect invokes f recursively for each child of the node, followed
// by a call of f(nil).
func Inspect(node *Node, f func(*Node) bool) {
	Walk(inspector(f), node)
}
