package component

import (
	"errors"
	"fmt"

	"github.com/hotzsauce/edan/code"
)

// ErrorKind classifies an AddressError.
type ErrorKind int

// Address error kinds.
const (
	UnknownSegment    ErrorKind = iota // no child of that name in any child set
	DelimiterMismatch                  // the name exists, but not for this delimiter
	Syntax                             // the address is malformed
)

func (k ErrorKind) String() string {
	switch k {
	case UnknownSegment:
		return "unknown segment"
	case DelimiterMismatch:
		return "delimiter mismatch"
	case Syntax:
		return "syntax"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Sentinels matched by errors.Is against an AddressError of the same kind.
var (
	ErrUnknownSegment    = errors.New("unknown segment")
	ErrDelimiterMismatch = errors.New("delimiter mismatch")
	ErrSyntax            = errors.New("malformed address")
)

// ErrNilNode is returned when resolving from a nil node.
var ErrNilNode = errors.New("nil start node")

// AddressError reports an address that does not resolve. No node is returned
// alongside it.
type AddressError struct {
	Address string    // the address as given
	Segment string    // the offending segment, delimiter included
	Reached *Node     // the deepest node resolved before the failure
	Kind    ErrorKind
	Err     error // underlying cause for Syntax errors
}

func (e *AddressError) Error() string {
	at := "<root>"
	if e.Reached != nil && !e.Reached.IsRoot() {
		at = e.Reached.FullPath()
	}
	switch e.Kind {
	case Syntax:
		return fmt.Sprintf("address %q: %v", e.Address, e.Err)
	case DelimiterMismatch:
		return fmt.Sprintf("address %q: segment %q does not match the children of %s", e.Address, e.Segment, at)
	}
	return fmt.Sprintf("address %q: no component %q under %s", e.Address, e.Segment, at)
}

func (e *AddressError) Is(target error) bool {
	switch target {
	case ErrUnknownSegment:
		return e.Kind == UnknownSegment
	case ErrDelimiterMismatch:
		return e.Kind == DelimiterMismatch
	case ErrSyntax:
		return e.Kind == Syntax
	}
	return false
}

func (e *AddressError) Unwrap() error {
	return e.Err
}

// Resolve walks addr from start and returns the node it names. The empty
// address names start itself.
//
// Each segment is looked up only among the children its delimiter selects:
// ':' (or no delimiter on the first segment) among plain subcomponents, '+'
// and '-' among the signed subcomponents of a balance node, '#' among
// partition members. A name that exists only under another delimiter is a
// DelimiterMismatch; a name that exists nowhere is an UnknownSegment.
func Resolve(start *Node, addr string) (*Node, error) {
	if start == nil {
		return nil, fmt.Errorf("address %q: %w", addr, ErrNilNode)
	}
	path, err := code.Parse(addr)
	if err != nil {
		return nil, &AddressError{Address: addr, Reached: start, Kind: Syntax, Err: err}
	}

	cur := start
	for _, seg := range path {
		next, kind, ok := cur.step(seg)
		if !ok {
			return nil, &AddressError{Address: addr, Segment: seg.String(), Reached: cur, Kind: kind}
		}
		cur = next
	}
	return cur, nil
}

// step descends one segment. On failure it reports why.
func (n *Node) step(seg code.Segment) (*Node, ErrorKind, bool) {
	sub, inSubs := n.subIndex[seg.Name]
	part, inParts := n.partIndex[seg.Name]

	switch seg.Kind {
	case code.Plain:
		switch {
		case inSubs && !n.balance:
			return sub, 0, true
		case inSubs, inParts:
			return nil, DelimiterMismatch, false
		}

	case code.Plus, code.Minus:
		switch {
		case inSubs && n.balance && sub.kind == seg.Kind:
			return sub, 0, true
		case inSubs, inParts, !n.balance:
			return nil, DelimiterMismatch, false
		}

	case code.Partition:
		switch {
		case inParts:
			return part, 0, true
		case inSubs:
			return nil, DelimiterMismatch, false
		}
	}
	return nil, UnknownSegment, false
}
