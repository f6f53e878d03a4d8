package transform

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/hotzsauce/edan/timeseries"
)

// Base is the reference period of an index transformation: either a single
// calendar year or an inclusive range of periods. The zero Base is unset.
type Base struct {
	start, end time.Time
	year       int
}

// Year returns the base covering every observation dated within year y.
// Observations are matched on their calendar year, so a timestamp late on
// December 31 still belongs to y.
func Year(y int) Base {
	return Base{
		start: time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC),
		end:   time.Date(y, time.December, 31, 0, 0, 0, 0, time.UTC),
		year:  y,
	}
}

// Range returns the base covering the periods from start through end.
func Range(start, end time.Time) Base {
	return Base{start: start, end: end}
}

// ParseBase parses "2012", "2012-01-01" (the period containing that date) or
// "2012-01-01/2012-12-01".
func ParseBase(s string) (Base, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Base{}, nil
	}
	if lo, hi, ok := strings.Cut(s, "/"); ok {
		start, err := time.Parse(time.DateOnly, strings.TrimSpace(lo))
		if err != nil {
			return Base{}, fmt.Errorf("base %q: %w", s, err)
		}
		end, err := time.Parse(time.DateOnly, strings.TrimSpace(hi))
		if err != nil {
			return Base{}, fmt.Errorf("base %q: %w", s, err)
		}
		if end.Before(start) {
			return Base{}, fmt.Errorf("base %q: end precedes start", s)
		}
		return Range(start, end), nil
	}
	if len(s) == 4 {
		y, err := strconv.Atoi(s)
		if err != nil {
			return Base{}, fmt.Errorf("base %q: %w", s, err)
		}
		return Year(y), nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Base{}, fmt.Errorf("base %q: %w", s, err)
	}
	return Range(t, t), nil
}

// IsZero reports whether the base is unset.
func (b Base) IsZero() bool {
	return b.start.IsZero() && b.end.IsZero()
}

// Contains reports whether the period of freq holding t falls inside the
// base. Year bases match on the calendar year of t.
func (b Base) Contains(t time.Time, freq timeseries.Frequency) bool {
	switch {
	case b.IsZero():
		return false
	case b.year != 0:
		return t.Year() == b.year
	}
	t = freq.Truncate(t)
	return !t.Before(freq.Truncate(b.start)) && !t.After(freq.Truncate(b.end))
}

func (b Base) String() string {
	switch {
	case b.IsZero():
		return ""
	case b.year != 0:
		return strconv.Itoa(b.year)
	case b.start.Equal(b.end):
		return b.start.Format(time.DateOnly)
	}
	return b.start.Format(time.DateOnly) + "/" + b.end.Format(time.DateOnly)
}

// rebase scales s so that its mean over the base periods is 100. Missing
// observations inside the base are ignored when averaging.
func rebase(s *timeseries.Series, b Base) ([]float64, error) {
	if b.IsZero() {
		return nil, newError(Index, ErrMissingParameter, "base period required")
	}
	if !s.HasTimestamps() {
		return nil, newError(Index, ErrInvalidParameter, "series %q has no periods to select a base from", s.Name)
	}

	sum, count := 0.0, 0
	for i, t := range s.Timestamps {
		if v := s.Values[i]; b.Contains(t, s.Freq) && !timeseries.IsMissing(v) {
			sum += v
			count++
		}
	}
	mean := math.NaN()
	if count > 0 {
		mean = sum / float64(count)
	}
	switch {
	case timeseries.IsMissing(mean):
		return nil, newError(Index, ErrInsufficientData, "no observations in base %s", b)
	case mean == 0:
		return nil, newError(Index, ErrInvalidParameter, "mean over base %s is zero", b)
	}

	out := make([]float64, s.Len())
	for i, v := range s.Values {
		out[i] = 100 * v / mean
	}
	return out, nil
}
