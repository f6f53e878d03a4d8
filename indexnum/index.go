package indexnum

import (
	"errors"
	"fmt"
	"time"

	"github.com/hotzsauce/edan/component"
	"github.com/hotzsauce/edan/timeseries"
	"github.com/hotzsauce/edan/transform"
)

var (
	ErrUnknownFormula = errors.New("unknown index formula")
	ErrEmptyBasket    = errors.New("empty basket")
)

// Options parameterizes the index computations.
type Options struct {
	// Kind is component.Price or component.Quantity. Empty means price.
	Kind string

	// Fixed compares every period with the base instead of chaining the
	// links between consecutive periods.
	Fixed bool

	// Base is the reference period. A chained index averages 100 over it;
	// a fixed-base index compares each period with the base's average
	// prices and quantities. Zero means the first complete period.
	Base transform.Base

	// PriceMeasure and QuantityMeasure pick the node measures read by
	// FromNodes. Empty means price and real.
	PriceMeasure    string
	QuantityMeasure string

	// Name of the output series. Empty means "<formula> <kind>".
	Name string

	// Engine rebases chained indexes. Nil means a silent engine.
	Engine *transform.Engine
}

func (o Options) kind() (string, error) {
	switch o.Kind {
	case "", component.Price:
		return component.Price, nil
	case component.Quantity:
		return component.Quantity, nil
	}
	return "", fmt.Errorf("index kind must be %s or %s, got %q", component.Price, component.Quantity, o.Kind)
}

func (o Options) engine() *transform.Engine {
	if o.Engine == nil {
		return transform.NewEngine(nil)
	}
	return o.Engine
}

// Laspeyres is FromNodes with the Laspeyres formula.
func Laspeyres(nodes []*component.Node, opts Options) (*timeseries.Series, error) {
	return FromNodes(FormulaLaspeyres, nodes, opts)
}

// Paasche is FromNodes with the Paasche formula.
func Paasche(nodes []*component.Node, opts Options) (*timeseries.Series, error) {
	return FromNodes(FormulaPaasche, nodes, opts)
}

// Fisher is FromNodes with the Fisher ideal formula.
func Fisher(nodes []*component.Node, opts Options) (*timeseries.Series, error) {
	return FromNodes(FormulaFisher, nodes, opts)
}

// FromNodes computes an index over the basket of nodes. Weighted formulas
// read each node's price and quantity measures; unweighted ones read only
// the measure matching opts.Kind.
func FromNodes(f Formula, nodes []*component.Node, opts Options) (*timeseries.Series, error) {
	fm, ok := formulas[f]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormula, f)
	}
	kind, err := opts.kind()
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%s index: %w", f, ErrEmptyBasket)
	}

	priceMeasure, quantityMeasure := opts.PriceMeasure, opts.QuantityMeasure
	if priceMeasure == "" {
		priceMeasure = component.Price
	}
	if quantityMeasure == "" {
		quantityMeasure = component.Real
	}
	needPrices := fm.weighted || kind == component.Price
	needQuantities := fm.weighted || kind == component.Quantity

	var prices, quantities []*timeseries.Series
	for _, n := range nodes {
		if n == nil {
			return nil, fmt.Errorf("%s index: nil component in basket", f)
		}
		if needPrices {
			s, err := priceSeries(n, priceMeasure)
			if err != nil {
				return nil, fmt.Errorf("%s index: %w", f, err)
			}
			prices = append(prices, s)
		}
		if needQuantities {
			ref, err := n.Measure(quantityMeasure)
			if err != nil {
				return nil, fmt.Errorf("%s index: %w", f, err)
			}
			quantities = append(quantities, ref.Series)
		}
	}
	return Compute(f, prices, quantities, opts)
}

// Compute computes an index from one price and one quantity series per
// basket item, over the periods where every series has a value. Unweighted
// price indexes need only prices and unweighted quantity indexes only
// quantities.
func Compute(f Formula, prices, quantities []*timeseries.Series, opts Options) (*timeseries.Series, error) {
	fm, ok := formulas[f]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormula, f)
	}
	kind, err := opts.kind()
	if err != nil {
		return nil, err
	}

	// the index is always computed on p; a quantity index swaps the roles
	var p, q []*timeseries.Series
	switch {
	case !fm.weighted && kind == component.Price:
		p = prices
	case !fm.weighted:
		p = quantities
	case len(prices) != len(quantities):
		return nil, fmt.Errorf("%s index: %d price series but %d quantity series", f, len(prices), len(quantities))
	case kind == component.Price:
		p, q = prices, quantities
	default:
		p, q = quantities, prices
	}
	if len(p) == 0 {
		return nil, fmt.Errorf("%s index: %w", f, ErrEmptyBasket)
	}

	b, err := newBasket(append(append([]*timeseries.Series(nil), p...), q...), len(p))
	if err != nil {
		return nil, fmt.Errorf("%s index: %w", f, err)
	}

	name := opts.Name
	if name == "" {
		name = fmt.Sprintf("%s %s", f, kind)
	}
	base := b.base(opts.Base)

	if opts.Fixed {
		rows, err := b.baseRows(base)
		if err != nil {
			return nil, fmt.Errorf("%s index: %w", f, err)
		}
		pb, qb := b.meanRow(b.p, rows), b.meanRow(b.q, rows)
		values := make([]float64, len(b.periods))
		for i := range b.periods {
			values[i] = 100 * fm.rel(pb, qb, b.p[i], b.row(b.q, i))
		}
		return b.series(name, values), nil
	}

	values := make([]float64, len(b.periods))
	values[0] = 100
	for i := 1; i < len(values); i++ {
		values[i] = values[i-1] * fm.rel(b.p[i-1], b.row(b.q, i-1), b.p[i], b.row(b.q, i))
	}
	res, err := opts.engine().Apply(b.series(name, values), transform.Index, transform.Options{Base: base})
	if err != nil {
		return nil, fmt.Errorf("%s index: %w", f, err)
	}
	return res.Series, nil
}

// basket holds the complete periods of a set of items, one row per period.
// q is nil for unweighted formulas.
type basket struct {
	periods []time.Time
	freq    timeseries.Frequency
	p, q    [][]float64
}

// newBasket aligns series, whose first k are the p columns and the rest the
// q columns, and drops the periods where any is missing.
func newBasket(series []*timeseries.Series, k int) (*basket, error) {
	periods, cols, err := timeseries.Align(series...)
	if err != nil {
		return nil, err
	}
	periods, cols = timeseries.DropIncomplete(periods, cols)
	if len(periods) == 0 {
		return nil, fmt.Errorf("%w: no period where every series has a value", transform.ErrInsufficientData)
	}

	b := &basket{periods: periods, freq: series[0].Freq}
	b.p = transpose(cols[:k])
	if len(cols) > k {
		b.q = transpose(cols[k:])
	}
	return b, nil
}

func transpose(cols [][]float64) [][]float64 {
	rows := make([][]float64, len(cols[0]))
	for i := range rows {
		rows[i] = make([]float64, len(cols))
		for j, col := range cols {
			rows[i][j] = col[i]
		}
	}
	return rows
}

func (b *basket) row(m [][]float64, i int) []float64 {
	if m == nil {
		return nil
	}
	return m[i]
}

// base returns base, or the first period when base is unset.
func (b *basket) base(base transform.Base) transform.Base {
	if base.IsZero() {
		return transform.Range(b.periods[0], b.periods[0])
	}
	return base
}

func (b *basket) baseRows(base transform.Base) ([]int, error) {
	var rows []int
	for i, t := range b.periods {
		if base.Contains(t, b.freq) {
			rows = append(rows, i)
		}
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no complete period in base %s", transform.ErrInsufficientData, base)
	}
	return rows, nil
}

// meanRow averages the given rows of m item by item.
func (b *basket) meanRow(m [][]float64, rows []int) []float64 {
	if m == nil {
		return nil
	}
	out := make([]float64, len(m[0]))
	for _, i := range rows {
		for j, v := range m[i] {
			out[j] += v
		}
	}
	for j := range out {
		out[j] /= float64(len(rows))
	}
	return out
}

func (b *basket) series(name string, values []float64) *timeseries.Series {
	return &timeseries.Series{
		Timestamps: append([]time.Time(nil), b.periods...),
		Values:     values,
		Name:       name,
		Freq:       b.freq,
	}
}

// priceSeries returns the node's price measure. Without one, the price
// measure falls back to the implicit deflator 100·nominal/real.
func priceSeries(n *component.Node, measure string) (*timeseries.Series, error) {
	ref, err := n.Measure(measure)
	if err == nil {
		return ref.Series, nil
	}
	if measure != component.Price || !n.HasMeasure(component.Nominal) || !n.HasMeasure(component.Real) {
		return nil, err
	}
	return impliedPrice(n)
}

func impliedPrice(n *component.Node) (*timeseries.Series, error) {
	nominal, err := n.Measure(component.Nominal)
	if err != nil {
		return nil, err
	}
	realLevel, err := n.Measure(component.Real)
	if err != nil {
		return nil, err
	}
	periods, cols, err := timeseries.Align(nominal.Series, realLevel.Series)
	if err != nil {
		return nil, err
	}
	values := make([]float64, len(periods))
	for i := range periods {
		values[i] = timeseries.Missing()
		if cols[1][i] != 0 {
			values[i] = 100 * cols[0][i] / cols[1][i]
		}
	}
	return &timeseries.Series{
		Timestamps: periods,
		Values:     values,
		Name:       n.FullPath(),
		Freq:       nominal.Series.Freq,
	}, nil
}
