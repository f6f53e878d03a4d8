package timeseries

import (
	"fmt"
	"strings"
	"time"
)

// Frequency is the native periodicity of a series.
type Frequency int

// Recognized frequencies.
const (
	Unknown Frequency = iota
	Annual
	Quarterly
	Monthly
	Weekly
	Daily
)

var frequencyNames = map[Frequency]string{
	Unknown:   "",
	Annual:    "A",
	Quarterly: "Q",
	Monthly:   "M",
	Weekly:    "W",
	Daily:     "D",
}

// ParseFrequency parses a frequency code ("A", "Q", "M", "W", "D"). The long
// names ("annual", "quarterly", ...) are accepted as well.
func ParseFrequency(s string) (Frequency, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "a", "y", "annual", "yearly":
		return Annual, nil
	case "q", "quarterly":
		return Quarterly, nil
	case "m", "monthly":
		return Monthly, nil
	case "w", "weekly":
		return Weekly, nil
	case "d", "daily":
		return Daily, nil
	case "":
		return Unknown, nil
	}
	return Unknown, fmt.Errorf("unrecognized frequency %q", s)
}

// String returns the single-letter frequency code.
func (f Frequency) String() string {
	return frequencyNames[f]
}

// PeriodsPerYear returns the number of observations per year, or 0 if the
// frequency is unknown.
func (f Frequency) PeriodsPerYear() int {
	switch f {
	case Annual:
		return 1
	case Quarterly:
		return 4
	case Monthly:
		return 12
	case Weekly:
		return 52
	case Daily:
		return 365
	}
	return 0
}

// Abbrev returns the short period name used in unit labels ("mo.", "qtr.").
func (f Frequency) Abbrev() string {
	switch f {
	case Annual:
		return "yr."
	case Quarterly:
		return "qtr."
	case Monthly:
		return "mo."
	case Weekly:
		return "wk."
	case Daily:
		return "day"
	}
	return "prd."
}

// Truncate returns the first instant of the period containing t.
func (f Frequency) Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	switch f {
	case Annual:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, t.Location())
	case Quarterly:
		q := (int(m) - 1) / 3
		return time.Date(y, time.Month(q*3+1), 1, 0, 0, 0, 0, t.Location())
	case Monthly:
		return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
	case Weekly, Daily:
		return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	}
	return t
}

// Step moves t forward by k periods (backwards if k is negative). Monthly and
// lower frequencies step from the period start so that month-end dates do
// not drift.
func (f Frequency) Step(t time.Time, k int) time.Time {
	switch f {
	case Annual:
		return f.Truncate(t).AddDate(k, 0, 0)
	case Quarterly:
		return f.Truncate(t).AddDate(0, 3*k, 0)
	case Monthly:
		return f.Truncate(t).AddDate(0, k, 0)
	case Weekly:
		return t.AddDate(0, 0, 7*k)
	case Daily:
		return t.AddDate(0, 0, k)
	}
	return t
}

// InferFrequency guesses the frequency of evenly spaced timestamps. Unknown
// is returned for fewer than two timestamps or irregular spacing.
func InferFrequency(timestamps []time.Time) Frequency {
	if len(timestamps) < 2 {
		return Unknown
	}

	// Try the calendar frequencies from coarsest to finest
	for _, f := range []Frequency{Annual, Quarterly, Monthly, Weekly, Daily} {
		if spacedBy(f, timestamps) {
			return f
		}
	}
	return Unknown
}

func spacedBy(f Frequency, timestamps []time.Time) bool {
	pos := monthInPeriod(f, timestamps[0])
	for i := 1; i < len(timestamps); i++ {
		// December and January sit in adjacent years whatever the frequency
		if monthInPeriod(f, timestamps[i]) != pos {
			return false
		}
		want := f.Step(timestamps[i-1], 1)
		if !f.Truncate(timestamps[i]).Equal(f.Truncate(want)) {
			return false
		}
	}
	return true
}

// monthInPeriod is the month offset of t within its period for the
// frequencies coarser than a month, and 0 otherwise.
func monthInPeriod(f Frequency, t time.Time) int {
	switch f {
	case Annual:
		return int(t.Month()) - 1
	case Quarterly:
		return (int(t.Month()) - 1) % 3
	}
	return 0
}
