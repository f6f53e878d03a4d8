package features

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hotzsauce/edan/component"
	"github.com/hotzsauce/edan/timeseries"
	"github.com/hotzsauce/edan/transform"
)

// Contributions returns each subcomponent's contribution to the growth of
// node's real level, in percentage points. See ContributionsWith.
func Contributions(ctx context.Context, node *component.Node, growth transform.Spec) ([]*timeseries.Series, error) {
	return ContributionsWith(ctx, nil, node, growth)
}

// ContributionsWith computes contributions to growth the way the BEA does for
// chained-dollar aggregates. For each period the change in a subcomponent's
// nominal level implied by its real growth alone,
//
//	real(t)/real(t-1) * nominal(t) - nominal(t-1)
//
// is divided by the same quantity for the aggregate. That share multiplies the
// aggregate's real growth under growth (difa% when the method is empty).
// Balance children enter with their sign.
//
// Only periods where every real and nominal level is present are used. An
// elemental node yields a single series of ones.
func ContributionsWith(ctx context.Context, engine *transform.Engine, node *component.Node, growth transform.Spec) ([]*timeseries.Series, error) {
	if growth.Method == "" {
		growth.Method = transform.DifAPct
	}
	if engine == nil {
		engine = transform.NewEngine(nil)
	}

	aggReal, err := node.Measure(component.Real)
	if err != nil {
		return nil, fmt.Errorf("contributions: %w", err)
	}

	subs := node.Subs()
	if len(subs) == 0 {
		ones := make([]float64, aggReal.Series.Len())
		for i := range ones {
			ones[i] = 1
		}
		return []*timeseries.Series{aggReal.Series.Derive(node.FullPath(), ones, 0)}, nil
	}

	// real levels first, then nominal levels; the aggregate leads each block
	nodes := append([]*component.Node{node}, subs...)
	series := make([]*timeseries.Series, 0, 2*len(nodes))
	for _, m := range []string{component.Real, component.Nominal} {
		for _, n := range nodes {
			ref, err := n.Measure(m)
			if err != nil {
				return nil, fmt.Errorf("contributions: %w", err)
			}
			series = append(series, ref.Series)
		}
	}

	periods, cols, err := timeseries.Align(series...)
	if err != nil {
		return nil, fmt.Errorf("contributions: %w", err)
	}
	periods, cols = timeseries.DropIncomplete(periods, cols)
	if len(periods) < 2 {
		return nil, fmt.Errorf("contributions: %s: fewer than two complete periods", node.FullPath())
	}

	res, err := engine.ApplySpec(aggReal.Series, growth)
	if err != nil {
		return nil, fmt.Errorf("contributions: %w", err)
	}
	aggGrowth := res.Series

	k := len(nodes)
	reals, nominals := cols[:k], cols[k:]
	impliedChange := func(j, t int) float64 {
		return reals[j][t]/reals[j][t-1]*nominals[j][t] - nominals[j][t-1]
	}

	// periods where both the share and the aggregate growth exist
	var (
		rows  []int
		dates []time.Time
	)
	for t := 1; t < len(periods); t++ {
		if timeseries.IsMissing(aggGrowth.ValueAt(periods[t])) {
			continue
		}
		rows = append(rows, t)
		dates = append(dates, periods[t])
	}

	out := make([]*timeseries.Series, len(subs))
	g, ctx := errgroup.WithContext(ctx)
	for j, sub := range subs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sign := sub.Kind().Sign()
			values := make([]float64, len(rows))
			for i, t := range rows {
				denom := impliedChange(0, t)
				if denom == 0 {
					values[i] = timeseries.Missing()
					continue
				}
				share := sign * impliedChange(j+1, t) / denom
				values[i] = share * aggGrowth.ValueAt(periods[t])
			}
			out[j] = &timeseries.Series{
				Timestamps: append([]time.Time(nil), dates...),
				Values:     values,
				Name:       sub.FullPath(),
				Freq:       aggReal.Series.Freq,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
