package transform

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hotzsauce/edan/internal/logging"
	"github.com/hotzsauce/edan/timeseries"
)

const tol = 1e-6

func date(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
}

func monthly(values ...float64) *timeseries.Series {
	s := timeseries.NewRegular(timeseries.Monthly, date(2020, time.January), values)
	s.Name = "cpi"
	return s
}

func quarterly(values ...float64) *timeseries.Series {
	s := timeseries.NewRegular(timeseries.Quarterly, date(2020, time.January), values)
	s.Name = "gdp"
	return s
}

func assertValues(t *testing.T, want, got []float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		if math.IsNaN(want[i]) {
			assert.True(t, math.IsNaN(got[i]), "index %d: want missing, got %v", i, got[i])
			continue
		}
		assert.InDelta(t, want[i], got[i], tol, "index %d", i)
	}
}

func TestCPIPercentChange(t *testing.T) {
	s := monthly(100.0, 100.5, 101.0, 99.5)

	out, err := Transform(s, DiffPct, Options{N: 1})
	require.NoError(t, err)

	assertValues(t, []float64{0.5, 0.4975124, -1.4851485}, out.Values)
	assert.True(t, timeseries.IsMissing(out.ValueAt(date(2020, time.January))))
	assert.Equal(t, date(2020, time.February), out.Timestamps[0])
	assert.InDelta(t, 0.5, out.ValueAt(date(2020, time.February)), tol)
	assert.Equal(t, timeseries.Monthly, out.Freq)
	assert.Equal(t, "cpi", out.Name)

	// input untouched
	assert.Equal(t, []float64{100.0, 100.5, 101.0, 99.5}, s.Values)
}

func TestMethods(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name   string
		series *timeseries.Series
		method string
		opts   Options
		want   []float64
	}{
		{"diff", monthly(1, 3, 6), Diff, Options{}, []float64{2, 3}},
		{"diff n=2", monthly(1, 3, 6, 10), Diff, Options{N: 2}, []float64{5, 7}},
		{"diffl", monthly(100, 110), DiffLog, Options{}, []float64{9.5310180}},
		{"difa monthly", monthly(100, 101), DifA, Options{}, []float64{12}},
		{"difa% quarterly", quarterly(100, 101), DifAPct, Options{}, []float64{4.060401}},
		{"difa% n=2", quarterly(100, 101, 102.01), DifAPct, Options{N: 2}, []float64{4.060401}},
		{"difal quarterly", quarterly(100, 110), DifALog, Options{}, []float64{38.124072}},
		{"difv n=2", monthly(100, 102, 106), DifV, Options{N: 2}, []float64{3}},
		{"difv% equals difa%", quarterly(100, 101), DifVPct, Options{}, []float64{4.060401}},
		{"difvl n=2", monthly(100, 110, 121), DifVLog, Options{N: 2}, []float64{9.5310180}},
		{"movv", monthly(1, 2, 3, 4), MovV, Options{N: 3}, []float64{2, 3}},
		{"movt", monthly(1, 2, 3, 4), MovT, Options{N: 3}, []float64{6, 9}},
		{"mova", quarterly(1, 2, 3, 4), MovA, Options{N: 3}, []float64{8, 12}},
		{"yryr", quarterly(100, 101, 102, 103, 104), YrYr, Options{}, []float64{4}},
		{"yryr ignores n", quarterly(100, 101, 102, 103, 104), YrYr, Options{N: 3}, []float64{4}},
		{"yryr%", quarterly(100, 101, 102, 103, 104), YrYrPct, Options{}, []float64{4}},
		{"yryrl explicit h", monthly(100, 50, 110), YrYrLog, Options{H: 2}, []float64{9.5310180}},
		{"diffl non-positive", monthly(-1, 2, 3), DiffLog, Options{}, []float64{nan, 40.546511}},
		{"diff% zero divisor", monthly(0, 1, 2), DiffPct, Options{}, []float64{nan, 100}},
		{"diff missing operand", monthly(1, nan, 3, 4), Diff, Options{}, []float64{nan, nan, 1}},
		{"movv whole window", monthly(1, nan, 3, 4, 5), MovV, Options{N: 2}, []float64{nan, nan, 3.5, 4.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Transform(tt.series, tt.method, tt.opts)
			require.NoError(t, err)
			assertValues(t, tt.want, out.Values)
			assert.Len(t, out.Timestamps, len(tt.want))
		})
	}
}

func TestDiffRoundTrip(t *testing.T) {
	s := monthly(100, 101.5, 99.25, 104, 107.75, 103, 110.5)

	for n := 1; n <= 4; n++ {
		out, err := Transform(s, Diff, Options{N: n})
		require.NoError(t, err)
		require.Equal(t, s.Len()-n, out.Len())

		for t0 := n; t0 < s.Len(); t0++ {
			rebuilt := s.Values[t0-n] + out.Values[t0-n]
			assert.InDelta(t, s.Values[t0], rebuilt, 1e-9, "n=%d t=%d", n, t0)
		}
	}
}

func TestPercentAndLogChangeShareSign(t *testing.T) {
	s := monthly(100, 102, 101, 101, 95, 120, 119.9)

	pct, err := Transform(s, DiffPct, Options{})
	require.NoError(t, err)
	logc, err := Transform(s, DiffLog, Options{})
	require.NoError(t, err)

	for i := range pct.Values {
		assert.Equal(t, sign(pct.Values[i]), sign(logc.Values[i]), "index %d", i)
	}
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func TestMovingAverageOfOneIsIdentity(t *testing.T) {
	s := monthly(3, 1, 4, 1, 5, 9, 2, 6)

	out, err := Transform(s, MovV, Options{N: 1})
	require.NoError(t, err)
	assert.Equal(t, s.Values, out.Values)
	assert.Equal(t, s.Timestamps, out.Timestamps)
}

func TestIndex(t *testing.T) {
	values := make([]float64, 24)
	for i := range values {
		values[i] = float64(i + 1)
	}
	s := monthly(values...)

	t.Run("year", func(t *testing.T) {
		out, err := Transform(s, Index, Options{Base: Year(2021), N: 5, H: 7})
		require.NoError(t, err)
		require.Equal(t, s.Len(), out.Len())

		assert.InDelta(t, 100, out.InYear(2021).Mean(), 1e-9)
		assert.InDelta(t, 100*1/18.5, out.Values[0], 1e-9)
	})

	t.Run("range", func(t *testing.T) {
		out, err := Transform(s, Index, Options{Base: Range(date(2020, time.March), date(2020, time.May))})
		require.NoError(t, err)

		assert.InDelta(t, 100, out.Values[3], 1e-9)
		assert.InDelta(t, 100, out.Between(date(2020, time.March), date(2020, time.May)).Mean(), 1e-9)
	})

	t.Run("missing inside base", func(t *testing.T) {
		gappy := monthly(2, math.NaN(), 6, 4)
		out, err := Transform(gappy, Index, Options{Base: Year(2020)})
		require.NoError(t, err)
		assertValues(t, []float64{50, math.NaN(), 150, 100}, out.Values)
	})

	t.Run("year base late on December 31", func(t *testing.T) {
		irregular := &timeseries.Series{
			Timestamps: []time.Time{
				time.Date(2020, time.December, 31, 12, 0, 0, 0, time.UTC),
				time.Date(2021, time.January, 15, 12, 0, 0, 0, time.UTC),
			},
			Values: []float64{50, 200},
		}
		out, err := Transform(irregular, Index, Options{Base: Year(2020)})
		require.NoError(t, err)
		assertValues(t, []float64{100, 400}, out.Values)
	})
}

func TestTransformErrors(t *testing.T) {
	tests := []struct {
		name   string
		series *timeseries.Series
		method string
		opts   Options
		cause  error
	}{
		{"unknown method", monthly(1, 2), "diff%%", Options{}, ErrUnknownMethod},
		{"negative n", monthly(1, 2, 3), Diff, Options{N: -1}, ErrInvalidParameter},
		{"negative h", monthly(1, 2, 3), DifA, Options{H: -4}, ErrInvalidParameter},
		{"h unknown", timeseries.New([]float64{1, 2, 3}), DifAPct, Options{}, ErrMissingParameter},
		{"yryr h unknown", timeseries.New([]float64{1, 2, 3}), YrYr, Options{}, ErrMissingParameter},
		{"lag too long", monthly(1, 2, 3, 4), Diff, Options{N: 4}, ErrInsufficientData},
		{"window too long", monthly(1, 2, 3), MovT, Options{N: 4}, ErrInsufficientData},
		{"year lag too long", quarterly(1, 2, 3, 4), YrYrPct, Options{}, ErrInsufficientData},
		{"empty series", monthly(), MovV, Options{}, ErrInsufficientData},
		{"index without base", monthly(1, 2), Index, Options{}, ErrMissingParameter},
		{"index base out of range", monthly(1, 2), Index, Options{Base: Year(1999)}, ErrInsufficientData},
		{"index zero mean", monthly(-1, 1), Index, Options{Base: Year(2020)}, ErrInvalidParameter},
		{"index positional", timeseries.New([]float64{1, 2}), Index, Options{Base: Year(2020)}, ErrInvalidParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Transform(tt.series, tt.method, tt.opts)
			require.Error(t, err)
			assert.Nil(t, out)
			assert.ErrorIs(t, err, tt.cause)

			var terr *TransformError
			require.True(t, errors.As(err, &terr))
			assert.Equal(t, tt.method, terr.Method)
		})
	}
}

func TestPositionalSeriesWithExplicitH(t *testing.T) {
	s := timeseries.New([]float64{100, 101})

	out, err := Transform(s, DifA, Options{H: 4})
	require.NoError(t, err)
	assertValues(t, []float64{4}, out.Values)
	assert.Nil(t, out.Timestamps)
}

func TestEngineReportsGaps(t *testing.T) {
	var buf bytes.Buffer
	engine := NewEngine(logging.New(&buf, slog.LevelWarn))

	res, err := engine.Apply(monthly(-5, 2, math.NaN(), 4), DiffLog, Options{})
	require.NoError(t, err)

	require.Len(t, res.Gaps, 3)
	assert.Equal(t, DataGap{Index: 1, Period: date(2020, time.February), Reason: GapNonPositive}, res.Gaps[0])
	assert.Equal(t, GapMissingOperand, res.Gaps[1].Reason)
	assert.Equal(t, 2, res.Gaps[1].Index)
	assert.Equal(t, GapMissingOperand, res.Gaps[2].Reason)

	logged := buf.String()
	assert.Contains(t, logged, "non-positive operand")
	assert.Contains(t, logged, "period=2020-02-01")
	// missing operands are logged at debug only
	assert.NotContains(t, logged, "missing operand")
}

func TestUnit(t *testing.T) {
	tests := []struct {
		method string
		n      int
		freq   timeseries.Frequency
		want   string
	}{
		{DiffPct, 1, timeseries.Monthly, "% chg."},
		{DifAPct, 3, timeseries.Monthly, "3-mo. ann. % chg."},
		{MovV, 4, timeseries.Quarterly, "4-qtr. moving avg."},
		{YrYrPct, 3, timeseries.Monthly, "yr/yr % chg."},
		{Index, 2, timeseries.Annual, "index"},
		{"bogus", 1, timeseries.Monthly, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Unit(tt.method, tt.n, tt.freq), "%s n=%d", tt.method, tt.n)
	}
}

func TestMethodRegistry(t *testing.T) {
	names := Methods()
	assert.Len(t, names, 16)
	assert.Contains(t, names, DifVPct)
	assert.True(t, Known(YrYrLog))
	assert.False(t, Known("level"))
	assert.True(t, NeedsPeriodsPerYear(MovA))
	assert.False(t, NeedsPeriodsPerYear(MovT))
}
