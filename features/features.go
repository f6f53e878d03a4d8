// Package features computes quantities that combine a component with its
// subcomponents: each subcomponent's share of the aggregate and its
// contribution to the aggregate's growth.
package features

import (
	"context"
	"fmt"

	"github.com/hotzsauce/edan/component"
	"github.com/hotzsauce/edan/timeseries"
	"github.com/hotzsauce/edan/transform"
)

// Feature names a computation offered to chart renderers.
type Feature string

// Supported features.
const (
	FeatureContributions Feature = "contributions"
	FeatureShares        Feature = "shares"
)

// ParseFeature accepts a feature name or its short form ("contr", "share").
func ParseFeature(s string) (Feature, error) {
	switch s {
	case "contributions", "contribution", "contr":
		return FeatureContributions, nil
	case "shares", "share":
		return FeatureShares, nil
	}
	return "", fmt.Errorf("unknown feature %q", s)
}

// Options parameterizes Compute.
type Options struct {
	// Measure whose shares are computed. Empty means nominal.
	Measure string

	// Growth is the transformation applied to the aggregate's real level by
	// Contributions. An empty method means difa%.
	Growth transform.Spec

	// Engine transforms the aggregate; nil means a quiet engine.
	Engine *transform.Engine
}

// Compute dispatches to the named feature.
func Compute(ctx context.Context, f Feature, node *component.Node, opts Options) ([]*timeseries.Series, error) {
	switch f {
	case FeatureContributions:
		return ContributionsWith(ctx, opts.Engine, node, opts.Growth)
	case FeatureShares:
		return Shares(node, opts.Measure)
	}
	return nil, fmt.Errorf("unknown feature %q", f)
}
