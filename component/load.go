package component

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// TableSpec is the YAML description of a table.
type TableSpec struct {
	Name       string `yaml:"name"`
	Components []Spec `yaml:"components"`
}

// LoadTable reads a YAML table description from r and builds the table,
// fetching measure series from src. Unknown keys are rejected.
func LoadTable(r io.Reader, src Source) (*Table, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var spec TableSpec
	if err := dec.Decode(&spec); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty table description")
		}
		return nil, fmt.Errorf("failed to parse table description: %w", err)
	}
	if spec.Name == "" {
		return nil, errors.New("table description has no name")
	}
	return Build(spec.Name, spec.Components, src)
}

// LoadTableFile is LoadTable over the named file.
func LoadTableFile(path string, src Source) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read table description: %w", err)
	}
	defer f.Close()

	return LoadTable(f, src)
}

// Spec returns the description the table was built from, less anything Build
// discards. Building it again against the same source yields an equivalent
// table.
func (t *Table) Spec() TableSpec {
	subs := make([]Spec, len(t.root.subs))
	for i, n := range t.root.subs {
		subs[i] = n.spec()
	}
	return TableSpec{Name: t.name, Components: subs}
}

// WriteYAML writes the table description as YAML.
func (t *Table) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t.Spec()); err != nil {
		return err
	}
	return enc.Close()
}

func (n *Node) spec() Spec {
	sp := Spec{
		Name:      n.name,
		LongName:  n.longName,
		ShortName: n.shortName,
	}
	if n.kind.IsBalance() {
		sp.Edge = string(rune(n.kind.Delimiter()))
	}
	if len(n.measures) > 0 {
		sp.Measures = make(map[string]string, len(n.measures))
		for m, ref := range n.measures {
			sp.Measures[m] = ref.Code
		}
	}
	for _, sub := range n.subs {
		sp.Subs = append(sp.Subs, sub.spec())
	}
	for _, part := range n.parts {
		sp.Partitions = append(sp.Partitions, part.spec())
	}
	return sp
}
