package component

import (
	"errors"
	"fmt"
	"sort"

	"github.com/hotzsauce/edan/code"
	"github.com/hotzsauce/edan/timeseries"
)

// Spec is the provider's description of one component and, recursively, its
// children.
type Spec struct {
	Name       string            `yaml:"name"`
	Edge       string            `yaml:"edge,omitempty"` // "", "+" or "-"
	LongName   string            `yaml:"long_name,omitempty"`
	ShortName  string            `yaml:"short_name,omitempty"`
	Measures   map[string]string `yaml:"measures,omitempty"` // measure kind -> series code
	Subs       []Spec            `yaml:"subs,omitempty"`
	Partitions []Spec            `yaml:"partitions,omitempty"`
}

// Source supplies the series behind measure codes.
type Source interface {
	Series(code string) (*timeseries.Series, error)
}

// ErrSeriesNotFound is returned by MapSource for an unknown code.
var ErrSeriesNotFound = errors.New("series not found")

// MapSource is an in-memory Source keyed by series code.
type MapSource map[string]*timeseries.Series

func (m MapSource) Series(code string) (*timeseries.Series, error) {
	s, ok := m[code]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSeriesNotFound, code)
	}
	return s, nil
}

// BuildError reports provider data that cannot form a table.
type BuildError struct {
	Path string
	Err  error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("component %q: %v", e.Path, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// Build constructs a table from the top-level component specs. Series are
// fetched from src for every measure; src may be nil when no spec names a
// measure. The table is complete and immutable when returned.
func Build(name string, specs []Spec, src Source) (*Table, error) {
	b := &builder{src: src}
	root := newNode("", code.Plain, nil)
	root.longName = name

	for _, sp := range specs {
		kind, err := code.ParseKind(sp.Edge)
		if err != nil {
			return nil, &BuildError{Path: sp.Name, Err: err}
		}
		if kind != code.Plain {
			return nil, &BuildError{Path: sp.Name, Err: fmt.Errorf("top-level component has %s edge", kind)}
		}
		if _, dup := root.subIndex[sp.Name]; dup {
			return nil, &BuildError{Path: sp.Name, Err: fmt.Errorf("duplicate top-level component %q", sp.Name)}
		}
		if err := b.attach(root, sp, code.Plain); err != nil {
			return nil, err
		}
	}
	return newTable(name, root), nil
}

type builder struct {
	src Source
}

// attach builds the node described by sp and adds it to parent.
func (b *builder) attach(parent *Node, sp Spec, kind code.Kind) error {
	path := code.Join(parent.path, code.Segment{Kind: kind, Name: sp.Name}.String())
	fail := func(format string, args ...any) error {
		return &BuildError{Path: path, Err: fmt.Errorf(format, args...)}
	}

	if err := code.ValidName(sp.Name); err != nil {
		return &BuildError{Path: path, Err: err}
	}

	n := newNode(sp.Name, kind, parent)
	n.longName = sp.LongName
	n.shortName = sp.ShortName

	if err := b.bindMeasures(n, sp.Measures); err != nil {
		return &BuildError{Path: path, Err: err}
	}

	subKinds := make([]code.Kind, len(sp.Subs))
	var plain, signed int
	for i, sub := range sp.Subs {
		k, err := code.ParseKind(sub.Edge)
		if err != nil {
			return fail("subcomponent %q: %v", sub.Name, err)
		}
		switch {
		case k == code.Partition:
			return fail("subcomponent %q has a partition edge; list it under partitions", sub.Name)
		case k.IsBalance():
			signed++
		default:
			plain++
		}
		subKinds[i] = k
	}
	if plain > 0 && signed > 0 {
		return fail("mixes %d plain and %d balance subcomponents", plain, signed)
	}
	n.balance = signed > 0

	for i, sub := range sp.Subs {
		if _, dup := n.subIndex[sub.Name]; dup {
			return fail("duplicate subcomponent %q", sub.Name)
		}
		if err := b.attach(n, sub, subKinds[i]); err != nil {
			return err
		}
	}
	for _, part := range sp.Partitions {
		if part.Edge != "" && part.Edge != "#" && part.Edge != "partition" {
			return fail("partition member %q has %q edge", part.Name, part.Edge)
		}
		if _, dup := n.partIndex[part.Name]; dup {
			return fail("duplicate partition member %q", part.Name)
		}
		if err := b.attach(n, part, code.Partition); err != nil {
			return err
		}
	}

	if kind == code.Partition {
		parent.parts = append(parent.parts, n)
		parent.partIndex[n.name] = n
	} else {
		parent.subs = append(parent.subs, n)
		parent.subIndex[n.name] = n
	}
	return nil
}

func (b *builder) bindMeasures(n *Node, measures map[string]string) error {
	kinds := make([]string, 0, len(measures))
	for m := range measures {
		kinds = append(kinds, m)
	}
	sort.Strings(kinds)

	for _, m := range kinds {
		c := measures[m]
		switch {
		case !validMeasure(m):
			return fmt.Errorf("unknown measure %q", m)
		case c == "":
			return fmt.Errorf("measure %q has no series code", m)
		case b.src == nil:
			return fmt.Errorf("measure %q: no series source", m)
		}
		s, err := b.src.Series(c)
		if err != nil {
			return fmt.Errorf("measure %q: %w", m, err)
		}
		n.measures[m] = &SeriesRef{Measure: m, Code: c, Series: s}
	}
	return nil
}
