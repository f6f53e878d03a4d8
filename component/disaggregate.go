package component

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hotzsauce/edan/code"
)

// ErrElemental is returned when an elemental component is asked for its
// subcomponents.
var ErrElemental = errors.New("component is elemental")

// Disaggregate returns the subcomponents level steps below n, in provider
// order. A branch that ends in an elemental component above that depth
// contributes the elemental component instead. Partition members are not
// descended into. An elemental n cannot be disaggregated, and level must be
// at least 1.
func (n *Node) Disaggregate(level int) ([]*Node, error) {
	if n.IsElemental() {
		return nil, fmt.Errorf("disaggregate %s: %w", n, ErrElemental)
	}
	if level < 1 {
		return nil, fmt.Errorf("disaggregate %s: level must be at least 1, got %d", n, level)
	}
	target := n.level + level

	var out []*Node
	var collect func(*Node)
	collect = func(c *Node) {
		switch {
		case c.level == target:
			out = append(out, c)
		case c.IsElemental():
			out = append(out, c)
		default:
			for _, sub := range c.subs {
				collect(sub)
			}
		}
	}
	for _, sub := range n.subs {
		collect(sub)
	}
	return out, nil
}

// Subcomponents resolves each address and returns the nodes in the same
// order. Addresses are relative to n, except that an address beginning with
// n's own full path followed by a delimiter is taken as absolute.
func (n *Node) Subcomponents(addrs ...string) ([]*Node, error) {
	out := make([]*Node, len(addrs))
	for i, addr := range addrs {
		c, err := n.lookup(addr)
		if err != nil {
			return nil, err
		}
		out[i] = c
	}
	return out, nil
}

func (n *Node) lookup(addr string) (*Node, error) {
	if n.path != "" && strings.HasPrefix(addr, n.path) && len(addr) > len(n.path) && code.IsDelimiter(addr[len(n.path)]) {
		c, err := Resolve(n, addr[len(n.path):])
		if err == nil {
			return c, nil
		}
	}
	c, err := Resolve(n, addr)
	if err != nil {
		return nil, fmt.Errorf("subcomponent of %s: %w", n.path, err)
	}
	return c, nil
}
