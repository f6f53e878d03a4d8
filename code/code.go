// Package code parses the hierarchical addresses ("codes") that identify
// components of an economic table.
package code

import (
	"fmt"
	"strings"
)

// Kind is the addressing kind of an edge between a component and one of its
// children. Each kind has its own delimiter.
type Kind int

// Edge kinds.
const (
	Plain     Kind = iota // ':' ordinary subcomponent
	Plus                  // '+' balance child entering with a positive sign
	Minus                 // '-' balance child entering with a negative sign
	Partition             // '#' member of an orthogonal decomposition
)

// Delimiters, in Kind order.
const (
	PlainDelim     = ':'
	PlusDelim      = '+'
	MinusDelim     = '-'
	PartitionDelim = '#'
)

// Delimiter returns the delimiter byte that introduces a segment of kind k.
func (k Kind) Delimiter() byte {
	switch k {
	case Plus:
		return PlusDelim
	case Minus:
		return MinusDelim
	case Partition:
		return PartitionDelim
	}
	return PlainDelim
}

// IsBalance reports whether k is one of the signed balance kinds.
func (k Kind) IsBalance() bool {
	return k == Plus || k == Minus
}

// Sign returns +1 or -1 for balance kinds and +1 otherwise.
func (k Kind) Sign() float64 {
	if k == Minus {
		return -1
	}
	return 1
}

func (k Kind) String() string {
	switch k {
	case Plain:
		return "plain"
	case Plus:
		return "balance:+"
	case Minus:
		return "balance:-"
	case Partition:
		return "partition"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// KindOf returns the kind introduced by delimiter c.
func KindOf(c byte) (Kind, bool) {
	switch c {
	case PlainDelim:
		return Plain, true
	case PlusDelim:
		return Plus, true
	case MinusDelim:
		return Minus, true
	case PartitionDelim:
		return Partition, true
	}
	return Plain, false
}

// ParseKind parses the provider's spelling of an edge kind: "" or ":" for
// plain, "+" and "-" for balance children, "#" for partitions. The long
// forms returned by Kind.String are accepted too.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "", ":", "plain":
		return Plain, nil
	case "+", "balance:+":
		return Plus, nil
	case "-", "balance:-":
		return Minus, nil
	case "#", "partition":
		return Partition, nil
	}
	return Plain, fmt.Errorf("unrecognized edge kind %q", s)
}

// IsDelimiter reports whether c is one of the address delimiters.
func IsDelimiter(c byte) bool {
	_, ok := KindOf(c)
	return ok
}

// ValidName returns an error if name cannot label a component: it must be
// non-empty and must not contain a delimiter.
func ValidName(name string) error {
	if name == "" {
		return fmt.Errorf("empty component name")
	}
	if i := strings.IndexAny(name, ":+-#"); i >= 0 {
		return fmt.Errorf("component name %q contains delimiter %q", name, name[i])
	}
	return nil
}

// Segment is one step of an address: a child name reached through an edge of
// the given kind.
type Segment struct {
	Kind Kind
	Name string
}

func (s Segment) String() string {
	return string(s.Kind.Delimiter()) + s.Name
}

// Path is a parsed address.
type Path []Segment

// String renders the canonical address. The leading plain delimiter is
// dropped; any other leading delimiter is kept.
func (p Path) String() string {
	var b strings.Builder
	for i, seg := range p {
		if i > 0 || seg.Kind != Plain {
			b.WriteByte(seg.Kind.Delimiter())
		}
		b.WriteString(seg.Name)
	}
	return b.String()
}

// Join composes an absolute base address with a relative address. A
// relative address without a leading delimiter is joined with ':'.
func Join(base, rel string) string {
	switch {
	case rel == "":
		return base
	case base == "" && rel[0] == PlainDelim:
		return rel[1:]
	case base == "":
		return rel
	case IsDelimiter(rel[0]):
		return base + rel
	}
	return base + string(rune(PlainDelim)) + rel
}
