// Package timeseries provides core time series data structures and operations.
package timeseries

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"time"
)

// Series represents a time series with timestamps and values. Missing
// observations are stored as NaN; their periods are kept.
type Series struct {
	Timestamps []time.Time
	Values     []float64
	Name       string
	Freq       Frequency
}

// Missing returns the value used to mark a missing observation.
func Missing() float64 {
	return math.NaN()
}

// IsMissing reports whether v marks a missing observation.
func IsMissing(v float64) bool {
	return math.IsNaN(v)
}

// New creates a positional series from values, without timestamps.
func New(values []float64) *Series {
	return &Series{
		Values: values,
	}
}

// NewWithTimestamps creates a time series with explicit timestamps. The
// frequency is inferred from the timestamps.
func NewWithTimestamps(timestamps []time.Time, values []float64) (*Series, error) {
	if len(timestamps) != len(values) {
		return nil, errors.New("timestamps and values must have the same length")
	}
	s := &Series{
		Timestamps: timestamps,
		Values:     values,
		Freq:       InferFrequency(timestamps),
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// NewRegular creates a series of the given frequency whose first period
// contains start.
func NewRegular(freq Frequency, start time.Time, values []float64) *Series {
	timestamps := make([]time.Time, len(values))
	base := freq.Truncate(start)
	for i := range timestamps {
		timestamps[i] = freq.Step(base, i)
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Freq:       freq,
	}
}

// Validate checks that timestamps match values, strictly increase and, when
// the frequency is known, are one period apart.
func (s *Series) Validate() error {
	if len(s.Timestamps) == 0 {
		return nil
	}
	if len(s.Timestamps) != len(s.Values) {
		return errors.New("timestamps and values must have the same length")
	}
	for i := 1; i < len(s.Timestamps); i++ {
		prev, cur := s.Timestamps[i-1], s.Timestamps[i]
		if !cur.After(prev) {
			return fmt.Errorf("timestamps not strictly increasing at index %d", i)
		}
		if s.Freq != Unknown {
			want := s.Freq.Truncate(s.Freq.Step(prev, 1))
			if !s.Freq.Truncate(cur).Equal(want) {
				return fmt.Errorf("timestamp %s is not one %s period after %s",
					cur.Format(time.DateOnly), s.Freq, prev.Format(time.DateOnly))
			}
		}
	}
	return nil
}

// Len returns the length of the series.
func (s *Series) Len() int {
	return len(s.Values)
}

// HasTimestamps reports whether the series is indexed by period.
func (s *Series) HasTimestamps() bool {
	return len(s.Timestamps) == len(s.Values) && len(s.Values) > 0
}

// Mean calculates the arithmetic mean of the non-missing values. It returns
// NaN if there are none.
func (s *Series) Mean() float64 {
	sum, count := 0.0, 0
	for _, v := range s.Values {
		if IsMissing(v) {
			continue
		}
		sum += v
		count++
	}
	if count == 0 {
		return math.NaN()
	}
	return sum / float64(count)
}

// Index returns the position of the period containing t, or -1.
func (s *Series) Index(t time.Time) int {
	if !s.HasTimestamps() {
		return -1
	}
	t = s.Freq.Truncate(t)
	i := sort.Search(len(s.Timestamps), func(i int) bool {
		return !s.Freq.Truncate(s.Timestamps[i]).Before(t)
	})
	if i < len(s.Timestamps) && s.Freq.Truncate(s.Timestamps[i]).Equal(t) {
		return i
	}
	return -1
}

// ValueAt returns the observation for the period containing t. Periods
// outside the series are reported as missing.
func (s *Series) ValueAt(t time.Time) float64 {
	if i := s.Index(t); i >= 0 {
		return s.Values[i]
	}
	return Missing()
}

// Between returns the observations whose periods fall within [start, end].
func (s *Series) Between(start, end time.Time) *Series {
	if !s.HasTimestamps() {
		return &Series{Values: []float64{}, Name: s.Name, Freq: s.Freq}
	}
	start, end = s.Freq.Truncate(start), s.Freq.Truncate(end)

	lo := sort.Search(len(s.Timestamps), func(i int) bool {
		return !s.Freq.Truncate(s.Timestamps[i]).Before(start)
	})
	hi := sort.Search(len(s.Timestamps), func(i int) bool {
		return s.Freq.Truncate(s.Timestamps[i]).After(end)
	})
	return s.Slice(lo, hi)
}

// InYear returns the observations dated within the calendar year, whatever
// their time of day.
func (s *Series) InYear(year int) *Series {
	if !s.HasTimestamps() {
		return &Series{Values: []float64{}, Name: s.Name, Freq: s.Freq}
	}
	lo := sort.Search(len(s.Timestamps), func(i int) bool {
		return s.Timestamps[i].Year() >= year
	})
	hi := sort.Search(len(s.Timestamps), func(i int) bool {
		return s.Timestamps[i].Year() > year
	})
	return s.Slice(lo, hi)
}

// Slice returns a slice of the series from start to end (exclusive).
func (s *Series) Slice(start, end int) *Series {
	if start < 0 {
		start = 0
	}
	if end > len(s.Values) {
		end = len(s.Values)
	}
	if start >= end {
		return &Series{Values: []float64{}, Name: s.Name, Freq: s.Freq}
	}

	values := make([]float64, end-start)
	copy(values, s.Values[start:end])

	var timestamps []time.Time
	if len(s.Timestamps) >= end {
		timestamps = make([]time.Time, len(values))
		copy(timestamps, s.Timestamps[start:end])
	}

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
		Freq:       s.Freq,
	}
}

// Copy creates a deep copy of the series.
func (s *Series) Copy() *Series {
	values := make([]float64, len(s.Values))
	copy(values, s.Values)

	var timestamps []time.Time
	if s.Timestamps != nil {
		timestamps = make([]time.Time, len(s.Timestamps))
		copy(timestamps, s.Timestamps)
	}

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
		Freq:       s.Freq,
	}
}

// Derive returns a new series named name holding values, indexed by the
// periods of s starting at offset. It is used by transformations whose output
// drops the first offset periods.
func (s *Series) Derive(name string, values []float64, offset int) *Series {
	var timestamps []time.Time
	if s.HasTimestamps() && offset+len(values) <= len(s.Timestamps) {
		timestamps = make([]time.Time, len(values))
		copy(timestamps, s.Timestamps[offset:offset+len(values)])
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       name,
		Freq:       s.Freq,
	}
}

// Align returns the periods shared by every series, in order, together with
// each series' values at those periods (one column per series). All series
// must carry timestamps.
func Align(series ...*Series) ([]time.Time, [][]float64, error) {
	if len(series) == 0 {
		return nil, nil, nil
	}
	for _, s := range series {
		if !s.HasTimestamps() {
			return nil, nil, fmt.Errorf("series %q has no timestamps", s.Name)
		}
	}

	// Intersect on the first series' periods
	var common []time.Time
	for _, t := range series[0].Timestamps {
		shared := true
		for _, other := range series[1:] {
			if other.Index(t) < 0 {
				shared = false
				break
			}
		}
		if shared {
			common = append(common, t)
		}
	}

	columns := make([][]float64, len(series))
	for j, s := range series {
		columns[j] = make([]float64, len(common))
		for i, t := range common {
			columns[j][i] = s.ValueAt(t)
		}
	}
	return common, columns, nil
}

// DropIncomplete drops the periods where any column is missing, typically
// from the output of Align.
func DropIncomplete(periods []time.Time, cols [][]float64) ([]time.Time, [][]float64) {
	keep := make([]int, 0, len(periods))
	for i := range periods {
		complete := true
		for _, col := range cols {
			if IsMissing(col[i]) {
				complete = false
				break
			}
		}
		if complete {
			keep = append(keep, i)
		}
	}

	outPeriods := make([]time.Time, len(keep))
	outCols := make([][]float64, len(cols))
	for j := range cols {
		outCols[j] = make([]float64, len(keep))
	}
	for r, i := range keep {
		outPeriods[r] = periods[i]
		for j, col := range cols {
			outCols[j][r] = col[i]
		}
	}
	return outPeriods, outCols
}
