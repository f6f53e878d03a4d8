package scenario

import (
	"errors"
	"fmt"
	"time"

	"github.com/hotzsauce/edan/timeseries"
)

// DefaultHorizon returns the number of periods projected when no horizon is
// given: two years of annual data, four quarters, twelve months, eight weeks
// or ten days. It is zero for an unknown frequency.
func DefaultHorizon(freq timeseries.Frequency) int {
	switch freq {
	case timeseries.Annual:
		return 2
	case timeseries.Quarterly:
		return 4
	case timeseries.Monthly:
		return 12
	case timeseries.Weekly:
		return 8
	case timeseries.Daily:
		return 10
	}
	return 0
}

// PeriodsUntil counts the periods after the last observation of s up to and
// including the period containing end.
func PeriodsUntil(s *timeseries.Series, end time.Time) (int, error) {
	if !s.HasTimestamps() {
		return 0, errors.New("series has no timestamps")
	}
	freq := s.Freq
	if freq == timeseries.Unknown {
		return 0, errors.New("series frequency is unknown")
	}

	last := freq.Truncate(s.Timestamps[s.Len()-1])
	end = freq.Truncate(end)
	if end.Before(last) {
		return 0, fmt.Errorf("end %s precedes the last observation %s",
			end.Format(time.DateOnly), last.Format(time.DateOnly))
	}

	n := 0
	for t := last; t.Before(end); t = freq.Truncate(freq.Step(t, 1)) {
		n++
	}
	return n, nil
}
