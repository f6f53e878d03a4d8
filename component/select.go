package component

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/hotzsauce/edan/timeseries"
	"github.com/hotzsauce/edan/transform"
)

// Transform applies spec to measure of n with a quiet engine. See
// TransformWith.
func (n *Node) Transform(measure string, spec transform.Spec) (*timeseries.Series, error) {
	res, err := n.TransformWith(nil, measure, spec)
	if err != nil {
		return nil, err
	}
	return res.Series, nil
}

// TransformWith applies spec to measure of n using engine (a quiet engine
// when nil). An empty measure selects the default measure; an empty method
// returns a copy of the untransformed series. The output is named after n's
// full path unless the spec carries a label.
func (n *Node) TransformWith(engine *transform.Engine, measure string, spec transform.Spec) (*transform.Result, error) {
	ref, err := n.Measure(measure)
	if err != nil {
		return nil, err
	}

	if spec.Method == "" {
		s := ref.Series.Copy()
		s.Name = n.seriesName(spec)
		return &transform.Result{Series: s}, nil
	}

	if engine == nil {
		engine = transform.NewEngine(nil)
	}
	res, err := engine.ApplySpec(ref.Series, spec)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", n.path, ref.Measure, err)
	}
	res.Series.Name = n.seriesName(spec)
	return res, nil
}

func (n *Node) seriesName(spec transform.Spec) string {
	if spec.Label != "" {
		return spec.Label
	}
	return n.path
}

// Select resolves every address relative to n and transforms the chosen
// measure of each concurrently. The series are returned in address order.
// The first failure cancels the rest and is returned.
func (n *Node) Select(ctx context.Context, addrs []string, measure string, spec transform.Spec) ([]*timeseries.Series, error) {
	return n.SelectWith(ctx, nil, addrs, measure, spec)
}

// SelectWith is Select using engine.
func (n *Node) SelectWith(ctx context.Context, engine *transform.Engine, addrs []string, measure string, spec transform.Spec) ([]*timeseries.Series, error) {
	nodes, err := n.Subcomponents(addrs...)
	if err != nil {
		return nil, err
	}

	// A shared label would give every series the same name.
	spec.Label = ""

	out := make([]*timeseries.Series, len(nodes))
	g, ctx := errgroup.WithContext(ctx)
	for i, c := range nodes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := c.TransformWith(engine, measure, spec)
			if err != nil {
				return err
			}
			out[i] = res.Series
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
