package transform

import (
	"context"
	"fmt"
	"sort"

	"github.com/mitchellh/mapstructure"
	"golang.org/x/sync/errgroup"

	"github.com/hotzsauce/edan/timeseries"
)

// Spec is a transformation written down as data, as it appears in
// configuration files and chart definitions.
type Spec struct {
	Method string `mapstructure:"method"`
	N      int    `mapstructure:"n"`
	H      int    `mapstructure:"h"`
	Base   string `mapstructure:"base"`
	Label  string `mapstructure:"label"`
}

// Options converts the spec's parameters, parsing Base.
func (sp Spec) Options() (Options, error) {
	base, err := ParseBase(sp.Base)
	if err != nil {
		return Options{}, newError(sp.Method, ErrInvalidParameter, "%v", err)
	}
	return Options{N: sp.N, H: sp.H, Base: base}, nil
}

// String renders the spec in the short form "difa%" or "movv(n=3)".
func (sp Spec) String() string {
	switch {
	case sp.Base != "":
		return fmt.Sprintf("%s(base=%s)", sp.Method, sp.Base)
	case sp.N > 1 && sp.H > 0:
		return fmt.Sprintf("%s(n=%d,h=%d)", sp.Method, sp.N, sp.H)
	case sp.N > 1:
		return fmt.Sprintf("%s(n=%d)", sp.Method, sp.N)
	case sp.H > 0:
		return fmt.Sprintf("%s(h=%d)", sp.Method, sp.H)
	}
	return sp.Method
}

// DecodeSpec decodes a spec from a generic map such as one read from YAML or
// JSON. Besides the explicit "method" key, the labelled shorthand
// {"growth": "difa%", "n": 3} is accepted: a single unrecognized key whose
// value is a method name supplies both the label and the method.
func DecodeSpec(raw map[string]any) (Spec, error) {
	var (
		spec Spec
		md   mapstructure.Metadata
	)
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Metadata:         &md,
		WeaklyTypedInput: true,
		Result:           &spec,
	})
	if err != nil {
		return Spec{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Spec{}, fmt.Errorf("failed to decode transform spec: %w", err)
	}

	if len(md.Unused) > 0 {
		sort.Strings(md.Unused)
		if spec.Method != "" || len(md.Unused) > 1 {
			return Spec{}, fmt.Errorf("transform spec has unrecognized keys %q", md.Unused)
		}
		key := md.Unused[0]
		method, ok := raw[key].(string)
		if !ok {
			return Spec{}, fmt.Errorf("transform spec key %q: want a method name, got %T", key, raw[key])
		}
		spec.Method = method
		if spec.Label == "" {
			spec.Label = key
		}
	}

	if spec.Method == "" {
		return Spec{}, newError("", ErrMissingParameter, "spec names no method")
	}
	if !Known(spec.Method) {
		return Spec{}, newError(spec.Method, ErrUnknownMethod, "")
	}
	return spec, nil
}

// ApplySpec applies sp to s. A non-empty label names the output series.
func (e *Engine) ApplySpec(s *timeseries.Series, sp Spec) (*Result, error) {
	opts, err := sp.Options()
	if err != nil {
		return nil, err
	}
	res, err := e.Apply(s, sp.Method, opts)
	if err != nil {
		return nil, err
	}
	if sp.Label != "" {
		res.Series.Name = sp.Label
	}
	return res, nil
}

// Batch applies every spec to s concurrently. Results are in spec order. The
// first failure cancels the remaining work and is returned.
func (e *Engine) Batch(ctx context.Context, s *timeseries.Series, specs []Spec) ([]*Result, error) {
	results := make([]*Result, len(specs))
	g, ctx := errgroup.WithContext(ctx)
	for i, sp := range specs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := e.ApplySpec(s, sp)
			if err != nil {
				return fmt.Errorf("spec %d (%s): %w", i, sp, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Batch applies every spec to s concurrently with the default engine and
// returns the derived series in spec order.
func Batch(ctx context.Context, s *timeseries.Series, specs []Spec) ([]*timeseries.Series, error) {
	results, err := defaultEngine.Batch(ctx, s, specs)
	if err != nil {
		return nil, err
	}
	out := make([]*timeseries.Series, len(results))
	for i, res := range results {
		out[i] = res.Series
	}
	return out, nil
}
