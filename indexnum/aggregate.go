package indexnum

import (
	"fmt"
	"strings"

	"github.com/hotzsauce/edan/code"
	"github.com/hotzsauce/edan/component"
	"github.com/hotzsauce/edan/timeseries"
	"github.com/hotzsauce/edan/transform"
)

// AggregateOptions parameterizes Aggregate.
type AggregateOptions struct {
	// Name of the new component. Required.
	Name      string
	LongName  string
	ShortName string

	// Base is the reference period of the chained real level and of the
	// quantity index. Zero means the first complete period.
	Base transform.Base

	// Engine rebases the quantity index. Nil means a silent engine.
	Engine *transform.Engine
}

var pathDelimiters = strings.NewReplacer(":", "_", "+", "_", "-", "_", "#", "_")

// Aggregate combines the basket into a new chain-weighted component, the
// root of a table of its own whose subcomponents are the basket members.
//
// The aggregate's nominal level is the sum of the members'. Its real level
// is a Fisher quantity chain over the members' real levels and prices,
// scaled so that it averages the members' real total over the base. Its
// price is the implicit deflator 100·nominal/real and its quantity measure
// is the real level indexed to 100 in the base. Every member needs nominal
// and real measures and either a price measure or the two to imply one.
func Aggregate(nodes []*component.Node, opts AggregateOptions) (*component.Node, error) {
	if err := code.ValidName(opts.Name); err != nil {
		return nil, fmt.Errorf("aggregate: %w", err)
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("aggregate %s: %w", opts.Name, ErrEmptyBasket)
	}

	k := len(nodes)
	series := make([]*timeseries.Series, 3*k)
	for j, n := range nodes {
		if n == nil {
			return nil, fmt.Errorf("aggregate %s: nil component in basket", opts.Name)
		}
		if n.IsBalance() {
			return nil, fmt.Errorf("aggregate %s: %s is a balance of its subcomponents and cannot be chain weighted", opts.Name, n)
		}
		nominal, err := n.Measure(component.Nominal)
		if err != nil {
			return nil, fmt.Errorf("aggregate %s: %w", opts.Name, err)
		}
		realLevel, err := n.Measure(component.Real)
		if err != nil {
			return nil, fmt.Errorf("aggregate %s: %w", opts.Name, err)
		}
		price, err := priceSeries(n, component.Price)
		if err != nil {
			return nil, fmt.Errorf("aggregate %s: %w", opts.Name, err)
		}
		series[j], series[k+j], series[2*k+j] = realLevel.Series, nominal.Series, price
	}

	// p holds the real levels and q the nominal levels then the prices, so
	// that the chain below is a quantity index
	b, err := newBasket(series, k)
	if err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", opts.Name, err)
	}
	base := b.base(opts.Base)
	rows, err := b.baseRows(base)
	if err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", opts.Name, err)
	}

	n := len(b.periods)
	nominal := make([]float64, n)
	total := make([]float64, n)
	chain := make([]float64, n)
	for i := range b.periods {
		for j := range k {
			nominal[i] += b.q[i][j]
			total[i] += b.p[i][j]
		}
		if i == 0 {
			chain[i] = 1
			continue
		}
		chain[i] = chain[i-1] * fisher(b.p[i-1], b.q[i-1][k:], b.p[i], b.q[i][k:])
	}

	var totalBase, chainBase float64
	for _, i := range rows {
		totalBase += total[i]
		chainBase += chain[i]
	}
	scale := totalBase / chainBase

	realValues := make([]float64, n)
	priceValues := make([]float64, n)
	for i := range b.periods {
		realValues[i] = chain[i] * scale
		priceValues[i] = 100 * nominal[i] / realValues[i]
	}
	quantity, err := opts.engine().Apply(b.series(opts.Name, realValues), transform.Index, transform.Options{Base: base})
	if err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", opts.Name, err)
	}

	src := component.MapSource{}
	bind := func(prefix, measure string, s *timeseries.Series) string {
		key := prefix + "/" + measure
		src[key] = s
		return key
	}
	spec := component.Spec{
		Name:      opts.Name,
		LongName:  opts.LongName,
		ShortName: opts.ShortName,
		Measures: map[string]string{
			component.Nominal:  bind(opts.Name, component.Nominal, b.series(opts.Name, nominal)),
			component.Real:     bind(opts.Name, component.Real, b.series(opts.Name, realValues)),
			component.Price:    bind(opts.Name, component.Price, b.series(opts.Name, priceValues)),
			component.Quantity: bind(opts.Name, component.Quantity, quantity.Series),
		},
	}

	names := memberNames(nodes)
	for j, m := range nodes {
		sub := component.Spec{
			Name:      names[j],
			LongName:  m.LongName(),
			ShortName: m.ShortName(),
			Measures:  map[string]string{},
		}
		prefix := fmt.Sprintf("%s/%d", opts.Name, j)
		for _, measure := range m.Measures() {
			ref, err := m.Measure(measure)
			if err != nil {
				return nil, fmt.Errorf("aggregate %s: %w", opts.Name, err)
			}
			sub.Measures[measure] = bind(prefix, measure, ref.Series)
		}
		if _, ok := sub.Measures[component.Price]; !ok {
			sub.Measures[component.Price] = bind(prefix, component.Price, series[2*k+j])
		}
		spec.Subs = append(spec.Subs, sub)
	}

	table, err := component.Build(opts.Name, []component.Spec{spec}, src)
	if err != nil {
		return nil, fmt.Errorf("aggregate %s: %w", opts.Name, err)
	}
	return table.Get(opts.Name)
}

// memberNames names the aggregate's subcomponents after the basket members,
// falling back to their full paths when two members share a name.
func memberNames(nodes []*component.Node) []string {
	seen := make(map[string]int, len(nodes))
	for _, n := range nodes {
		seen[n.Name()]++
	}
	names := make([]string, len(nodes))
	for j, n := range nodes {
		names[j] = n.Name()
		if seen[n.Name()] > 1 {
			names[j] = strings.Trim(pathDelimiters.Replace(n.FullPath()), "_")
		}
	}
	return names
}

func (o AggregateOptions) engine() *transform.Engine {
	if o.Engine == nil {
		return transform.NewEngine(nil)
	}
	return o.Engine
}
