package features

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotzsauce/edan/component"
	"github.com/hotzsauce/edan/timeseries"
	"github.com/hotzsauce/edan/transform"
)

const tol = 1e-6

func start() time.Time {
	return time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
}

// consumption has two subcomponents growing 1% a quarter in real terms.
func consumption(t *testing.T) *component.Table {
	t.Helper()
	q := func(values ...float64) *timeseries.Series {
		return timeseries.NewRegular(timeseries.Quarterly, start(), values)
	}
	src := component.MapSource{
		"CR": q(150, 151.5, 153.015),
		"CN": q(150, 153, 157),
		"AR": q(100, 101, 102.01),
		"AN": q(100, 102, 104),
		"BR": q(50, 50.5, 51.005),
		"BN": q(50, 51, 53),
	}
	table, err := component.Build("C", []component.Spec{{
		Name:     "c",
		Measures: map[string]string{component.Real: "CR", component.Nominal: "CN"},
		Subs: []component.Spec{
			{Name: "a", Measures: map[string]string{component.Real: "AR", component.Nominal: "AN"}},
			{Name: "b", Measures: map[string]string{component.Real: "BR", component.Nominal: "BN"}},
		},
	}}, src)
	require.NoError(t, err)
	return table
}

// netExports is a balance of exports less imports, all growing 10% a year.
func netExports(t *testing.T) *component.Table {
	t.Helper()
	a := func(values ...float64) *timeseries.Series {
		return timeseries.NewRegular(timeseries.Annual, start(), values)
	}
	src := component.MapSource{
		"NX": a(6, 6.6),
		"X":  a(10, 11),
		"M":  a(4, 4.4),
	}
	both := func(code string) map[string]string {
		return map[string]string{component.Real: code, component.Nominal: code}
	}
	table, err := component.Build("NX", []component.Spec{{
		Name:     "nx",
		Measures: both("NX"),
		Subs: []component.Spec{
			{Name: "x", Edge: "+", Measures: both("X")},
			{Name: "m", Edge: "-", Measures: both("M")},
		},
	}}, src)
	require.NoError(t, err)
	return table
}

func TestContributionsSumToGrowth(t *testing.T) {
	table := consumption(t)
	c := table.MustGet("c")

	contr, err := Contributions(context.Background(), c, transform.Spec{})
	require.NoError(t, err)
	require.Len(t, contr, 2)

	growth, err := c.Transform(component.Real, transform.Spec{Method: transform.DifAPct})
	require.NoError(t, err)

	a, b := contr[0], contr[1]
	assert.Equal(t, "c:a", a.Name)
	assert.Equal(t, "c:b", b.Name)
	require.Equal(t, 2, a.Len())
	assert.Equal(t, growth.Timestamps, a.Timestamps)

	for i := 0; i < a.Len(); i++ {
		assert.InDelta(t, growth.Values[i], a.Values[i]+b.Values[i], tol, "period %d", i)
	}
	assert.InDelta(t, 4.060401*2/3, a.Values[0], tol)
	assert.InDelta(t, 4.060401*3.04/5.57, a.Values[1], tol)
}

func TestContributionsOfBalance(t *testing.T) {
	table := netExports(t)

	contr, err := Contributions(context.Background(), table.MustGet("nx"), transform.Spec{Method: transform.DiffPct})
	require.NoError(t, err)
	require.Len(t, contr, 2)

	assert.InDelta(t, 10*2.1/1.26, contr[0].Values[0], tol)
	assert.InDelta(t, -10*0.84/1.26, contr[1].Values[0], tol)
	assert.InDelta(t, 10, contr[0].Values[0]+contr[1].Values[0], tol)
}

func TestContributionsOfElemental(t *testing.T) {
	table := consumption(t)

	contr, err := Contributions(context.Background(), table.MustGet("c:a"), transform.Spec{})
	require.NoError(t, err)
	require.Len(t, contr, 1)
	assert.Equal(t, []float64{1, 1, 1}, contr[0].Values)
	assert.Equal(t, "c:a", contr[0].Name)
}

func TestContributionsSkipIncompletePeriods(t *testing.T) {
	q := func(values ...float64) *timeseries.Series {
		return timeseries.NewRegular(timeseries.Quarterly, start(), values)
	}
	nan := math.NaN()
	src := component.MapSource{
		"T": q(100, 110, 121, 133.1),
		"A": q(60, 66, nan, 79.86),
		"B": q(40, 44, 48.4, 53.24),
	}
	both := func(code string) map[string]string {
		return map[string]string{component.Real: code, component.Nominal: code}
	}
	table, err := component.Build("T", []component.Spec{{
		Name:     "t",
		Measures: both("T"),
		Subs:     []component.Spec{{Name: "a", Measures: both("A")}, {Name: "b", Measures: both("B")}},
	}}, src)
	require.NoError(t, err)

	contr, err := Contributions(context.Background(), table.MustGet("t"), transform.Spec{Method: transform.DiffPct})
	require.NoError(t, err)

	// the gap drops 2020Q3; 2020Q4 is then compared with 2020Q2
	require.Len(t, contr[0].Timestamps, 2)
	assert.Equal(t, start().AddDate(0, 3, 0), contr[0].Timestamps[0])
	assert.Equal(t, start().AddDate(0, 9, 0), contr[0].Timestamps[1])
	assert.InDelta(t, 6, contr[0].Values[0], tol)
	assert.InDelta(t, 4, contr[1].Values[0], tol)
}

func TestContributionsErrors(t *testing.T) {
	table := consumption(t)

	_, err := Contributions(context.Background(), table.MustGet("c"), transform.Spec{Method: "bogus"})
	assert.ErrorIs(t, err, transform.ErrUnknownMethod)

	noReal, err := component.Build("N", []component.Spec{{Name: "n"}}, nil)
	require.NoError(t, err)
	_, err = Contributions(context.Background(), noReal.MustGet("n"), transform.Spec{})
	var merr *component.MeasureError
	assert.ErrorAs(t, err, &merr)
}

func TestShares(t *testing.T) {
	table := consumption(t)

	shares, err := Shares(table.MustGet("c"), "")
	require.NoError(t, err)
	require.Len(t, shares, 2)

	for i := 0; i < 3; i++ {
		assert.InDelta(t, 100, shares[0].Values[i]+shares[1].Values[i], tol)
	}
	assert.InDelta(t, 100.0*2/3, shares[0].Values[0], tol)
	assert.InDelta(t, 100*53.0/157, shares[1].Values[2], tol)
	assert.Equal(t, "c:b", shares[1].Name)
	assert.Equal(t, timeseries.Quarterly, shares[1].Freq)
}

func TestSharesOfBalance(t *testing.T) {
	table := netExports(t)

	shares, err := Shares(table.MustGet("nx"), component.Nominal)
	require.NoError(t, err)

	assert.InDelta(t, 100*10/6.0, shares[0].Values[0], tol)
	assert.InDelta(t, -100*4/6.0, shares[1].Values[0], tol)
	assert.InDelta(t, 100, shares[0].Values[1]+shares[1].Values[1], tol)
}

func TestSharesErrors(t *testing.T) {
	table := consumption(t)

	_, err := Shares(table.MustGet("c:a"), "")
	assert.ErrorContains(t, err, "no subcomponents")

	_, err = Shares(table.MustGet("c"), component.Price)
	var merr *component.MeasureError
	assert.ErrorAs(t, err, &merr)
}

func TestCompute(t *testing.T) {
	table := consumption(t)
	c := table.MustGet("c")

	f, err := ParseFeature("contr")
	require.NoError(t, err)
	got, err := Compute(context.Background(), f, c, Options{})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	f, err = ParseFeature("shares")
	require.NoError(t, err)
	got, err = Compute(context.Background(), f, c, Options{Measure: component.Real})
	require.NoError(t, err)
	assert.InDelta(t, 100.0*2/3, got[0].Values[0], tol)

	_, err = ParseFeature("weights")
	assert.Error(t, err)
	_, err = Compute(context.Background(), Feature("weights"), c, Options{})
	assert.Error(t, err)
}
