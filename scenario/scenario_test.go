package scenario

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotzsauce/edan/component"
	"github.com/hotzsauce/edan/timeseries"
	"github.com/hotzsauce/edan/transform"
)

const tol = 1e-9

func date(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

func monthly(values ...float64) *timeseries.Series {
	s := timeseries.NewRegular(timeseries.Monthly, date(2024, time.January), values)
	s.Name = "cpi"
	return s
}

func quarterly(values ...float64) *timeseries.Series {
	s := timeseries.NewRegular(timeseries.Quarterly, date(2024, time.January), values)
	s.Name = "gdp"
	return s
}

func TestProjectRecoversAssumptions(t *testing.T) {
	tests := []struct {
		method      string
		series      *timeseries.Series
		assumptions []float64
	}{
		{transform.Diff, monthly(100, 101), []float64{0.5, -1, 2}},
		{transform.DiffPct, monthly(100, 101), []float64{0.5, 1.0, -0.25}},
		{transform.DiffLog, monthly(100, 101), []float64{0.3, 0.2}},
		{transform.DifA, quarterly(100, 101), []float64{4, 2}},
		{transform.DifAPct, quarterly(100, 101), []float64{3, 2.5, -1}},
		{transform.DifALog, quarterly(100, 101), []float64{1.5, 0.5}},
		{transform.YrYr, quarterly(100, 101, 102, 103), []float64{1, 2, 3, 4, 5}},
		{transform.YrYrPct, quarterly(100, 101, 102, 103), []float64{2, 2, 2, 2, 2, 2}},
		{transform.YrYrLog, quarterly(100, 101, 102, 103), []float64{1, 1.5}},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			fc, err := Project(tt.series, tt.method, tt.assumptions, Options{})
			require.NoError(t, err)
			require.Equal(t, len(tt.assumptions), fc.Len())

			out, err := transform.Transform(fc.Path(), tt.method, transform.Options{})
			require.NoError(t, err)

			got := out.Values[out.Len()-fc.Len():]
			for i, want := range tt.assumptions {
				assert.InDelta(t, want, got[i], 1e-9, "period %d", i)
			}
		})
	}
}

func TestProjectYearOverYear(t *testing.T) {
	fc, err := Project(quarterly(100, 101, 102, 103), transform.YrYr, []float64{1, 2, 3, 4, 5}, Options{})
	require.NoError(t, err)

	// the fifth projection builds on the first
	assert.Equal(t, []float64{101, 103, 105, 107, 106}, fc.Projected.Values)
}

func TestProjectHoldsSingleAssumption(t *testing.T) {
	fc, err := Project(monthly(100, 101), transform.Diff, []float64{2}, Options{Periods: 3, Label: "path"})
	require.NoError(t, err)

	assert.Equal(t, []float64{103, 105, 107}, fc.Projected.Values)
	assert.Equal(t, "path", fc.Projected.Name)
	assert.Equal(t, []time.Time{
		date(2024, time.March), date(2024, time.April), date(2024, time.May),
	}, fc.Projected.Timestamps)
	assert.Equal(t, date(2024, time.February), fc.LastObserved())
	assert.Equal(t, transform.Diff, fc.Method)

	path := fc.Path()
	assert.Equal(t, []float64{100, 101, 103, 105, 107}, path.Values)
	assert.Len(t, path.Timestamps, 5)
	assert.NoError(t, path.Validate())
}

func TestProjectHorizon(t *testing.T) {
	// a single assumption is held over the default horizon
	fc, err := Project(monthly(100, 101), transform.DiffPct, []float64{1}, Options{})
	require.NoError(t, err)
	assert.Equal(t, 12, fc.Len())
	assert.Equal(t, "forecast", fc.Projected.Name)

	// several assumptions set the horizon
	fc, err = Project(quarterly(100, 101), transform.DifALog, []float64{1, 2}, Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, fc.Len())

	fc, err = Project(quarterly(100, 101), transform.DifAPct, []float64{2}, Options{End: date(2025, time.May)})
	require.NoError(t, err)
	assert.Equal(t, 4, fc.Len())
	assert.Equal(t, date(2025, time.April), fc.Projected.Timestamps[3])
}

func TestProjectPositional(t *testing.T) {
	s := timeseries.New([]float64{10, 11})
	fc, err := Project(s, transform.DifA, []float64{4}, Options{H: 4, Periods: 2})
	require.NoError(t, err)
	// an annualized change of 4 adds 1 per quarter
	assert.Equal(t, []float64{12, 13}, fc.Projected.Values)
	assert.Nil(t, fc.Projected.Timestamps)
	assert.True(t, fc.LastObserved().IsZero())
}

func TestProjectMissingLastObservation(t *testing.T) {
	fc, err := Project(monthly(100, math.NaN()), transform.Diff, []float64{1}, Options{Periods: 2})
	require.NoError(t, err)
	assert.True(t, math.IsNaN(fc.Projected.Values[0]))
	assert.True(t, math.IsNaN(fc.Projected.Values[1]))
}

func TestProjectErrors(t *testing.T) {
	tests := []struct {
		name        string
		series      *timeseries.Series
		method      string
		assumptions []float64
		opts        Options
		cause       error
	}{
		{"not projectable", monthly(1, 2), transform.MovV, []float64{1}, Options{}, transform.ErrUnknownMethod},
		{"unknown", monthly(1, 2), "grow", []float64{1}, Options{}, transform.ErrUnknownMethod},
		{"empty series", monthly(), transform.Diff, []float64{1}, Options{}, transform.ErrInsufficientData},
		{"no assumptions", monthly(1, 2), transform.Diff, nil, Options{}, transform.ErrMissingParameter},
		{"length mismatch", monthly(1, 2), transform.Diff, []float64{1, 2}, Options{Periods: 3}, transform.ErrInvalidParameter},
		{"periods and end", monthly(1, 2), transform.Diff, []float64{1}, Options{Periods: 3, End: date(2025, time.January)}, transform.ErrInvalidParameter},
		{"negative periods", monthly(1, 2), transform.Diff, []float64{1}, Options{Periods: -1}, transform.ErrInvalidParameter},
		{"end in the past", monthly(1, 2), transform.Diff, []float64{1}, Options{End: date(2023, time.January)}, transform.ErrInvalidParameter},
		{"end in last period", monthly(1, 2), transform.Diff, []float64{1}, Options{End: date(2024, time.February)}, transform.ErrInvalidParameter},
		{"h unknown", timeseries.New([]float64{1, 2}), transform.DifAPct, []float64{1}, Options{Periods: 1}, transform.ErrMissingParameter},
		{"no horizon", timeseries.New([]float64{1, 2}), transform.Diff, []float64{1}, Options{}, transform.ErrMissingParameter},
		{"year lag too long", quarterly(1, 2), transform.YrYr, []float64{1}, Options{}, transform.ErrInsufficientData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc, err := Project(tt.series, tt.method, tt.assumptions, tt.opts)
			assert.Nil(t, fc)
			assert.ErrorIs(t, err, tt.cause)
		})
	}
}

func TestPeriodsUntil(t *testing.T) {
	n, err := PeriodsUntil(quarterly(1, 2, 3), date(2025, time.December))
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	n, err = PeriodsUntil(monthly(1), date(2024, time.January))
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, err = PeriodsUntil(timeseries.New([]float64{1}), date(2025, time.January))
	assert.Error(t, err)
}

func TestDefaultHorizon(t *testing.T) {
	assert.Equal(t, 4, DefaultHorizon(timeseries.Quarterly))
	assert.Equal(t, 0, DefaultHorizon(timeseries.Unknown))
}

func TestProjectMeasure(t *testing.T) {
	table, err := component.Build("GDP", []component.Spec{{
		Name:     "gdp",
		Measures: map[string]string{component.Real: "GDPR"},
	}}, component.MapSource{"GDPR": quarterly(100, 101)})
	require.NoError(t, err)

	fc, err := ProjectMeasure(table.MustGet("gdp"), "", transform.Diff, []float64{1}, Options{Periods: 2})
	require.NoError(t, err)
	assert.Equal(t, "gdp", fc.Projected.Name)
	assert.Equal(t, []float64{102, 103}, fc.Projected.Values)

	_, err = ProjectMeasure(table.MustGet("gdp"), component.Nominal, transform.Diff, []float64{1}, Options{})
	var merr *component.MeasureError
	assert.ErrorAs(t, err, &merr)
}
