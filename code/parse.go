package code

import "fmt"

// SyntaxError reports a malformed address.
type SyntaxError struct {
	Address string
	Offset  int // byte offset of the offending character
	Msg     string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("address %q: %s at offset %d", e.Address, e.Msg, e.Offset)
}

// parser states
type state int

const (
	stateStart state = iota // nothing consumed
	stateDelim              // a delimiter was consumed; a name must follow
	stateName               // inside a name
)

// Parse splits an address into its segments. The first segment may omit its
// delimiter, in which case it is plain. An empty address parses to an empty
// path. Empty names, such as in "a::b" or "a:", are syntax errors.
func Parse(addr string) (Path, error) {
	var (
		path  Path
		st    = stateStart
		kind  = Plain
		start int
	)

	for i := 0; i < len(addr); i++ {
		c := addr[i]
		k, isDelim := KindOf(c)

		switch st {
		case stateStart:
			if isDelim {
				kind, st = k, stateDelim
			} else {
				kind, start, st = Plain, i, stateName
			}

		case stateDelim:
			if isDelim {
				return nil, &SyntaxError{Address: addr, Offset: i, Msg: "empty segment"}
			}
			start, st = i, stateName

		case stateName:
			if isDelim {
				path = append(path, Segment{Kind: kind, Name: addr[start:i]})
				kind, st = k, stateDelim
			}
		}
	}

	switch st {
	case stateDelim:
		return nil, &SyntaxError{Address: addr, Offset: len(addr), Msg: "address ends with a delimiter"}
	case stateName:
		path = append(path, Segment{Kind: kind, Name: addr[start:]})
	}
	return path, nil
}

// MustParse is like Parse but panics if the address is malformed.
func MustParse(addr string) Path {
	p, err := Parse(addr)
	if err != nil {
		panic(err)
	}
	return p
}
