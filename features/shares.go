package features

import (
	"fmt"
	"time"

	"github.com/hotzsauce/edan/component"
	"github.com/hotzsauce/edan/timeseries"
)

// Shares returns each subcomponent's measure as a percent of the
// aggregate's, over the periods all of them cover. Balance children carry
// their sign, so the shares of any additive aggregate sum to 100. An empty
// measure means nominal.
func Shares(node *component.Node, measure string) ([]*timeseries.Series, error) {
	if measure == "" {
		measure = component.Nominal
	}
	subs := node.Subs()
	if len(subs) == 0 {
		return nil, fmt.Errorf("shares: %s has no subcomponents", node.FullPath())
	}

	series := make([]*timeseries.Series, 0, len(subs)+1)
	for _, n := range append([]*component.Node{node}, subs...) {
		ref, err := n.Measure(measure)
		if err != nil {
			return nil, fmt.Errorf("shares: %w", err)
		}
		series = append(series, ref.Series)
	}

	periods, cols, err := timeseries.Align(series...)
	if err != nil {
		return nil, fmt.Errorf("shares: %w", err)
	}

	freq := series[0].Freq
	agg := cols[0]
	out := make([]*timeseries.Series, len(subs))
	for j, sub := range subs {
		sign := sub.Kind().Sign()
		values := make([]float64, len(periods))
		for i := range periods {
			if agg[i] == 0 {
				values[i] = timeseries.Missing()
				continue
			}
			values[i] = sign * 100 * cols[j+1][i] / agg[i]
		}
		out[j] = &timeseries.Series{
			Timestamps: append([]time.Time(nil), periods...),
			Values:     values,
			Name:       sub.FullPath(),
			Freq:       freq,
		}
	}
	return out, nil
}
