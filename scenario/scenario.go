// Package scenario projects a series forward from assumed future changes,
// inverting the transformations of package transform.
//
// An assumption of 3 under "difa%" for a quarterly series means the level
// grows at a 3% annual rate in each projected quarter; an assumption of 1
// under "yryr" means the level is 1 above its value a year earlier.
package scenario

import (
	"math"
	"time"

	"github.com/hotzsauce/edan/component"
	"github.com/hotzsauce/edan/timeseries"
	"github.com/hotzsauce/edan/transform"
)

// Options controls the projection horizon and annualization.
type Options struct {
	// Periods is the number of periods to project. When zero it is taken
	// from End, else from the number of assumptions when there are several,
	// else from DefaultHorizon.
	Periods int

	// End is the last period to project. It excludes Periods.
	End time.Time

	// H is the number of periods per year; zero means the series' frequency
	// decides.
	H int

	// Label names the projected series; "forecast" when empty.
	Label string
}

// Forecast is an observed series together with its projection.
type Forecast struct {
	Method    string
	Observed  *timeseries.Series
	Projected *timeseries.Series
}

// Len returns the number of projected periods.
func (f *Forecast) Len() int { return f.Projected.Len() }

// LastObserved returns the period of the last observation, or the zero time
// for a positional series.
func (f *Forecast) LastObserved() time.Time {
	if !f.Observed.HasTimestamps() {
		return time.Time{}
	}
	return f.Observed.Timestamps[f.Observed.Len()-1]
}

// Path returns the observations followed by the projection as one
// continuous series named after the projection.
func (f *Forecast) Path() *timeseries.Series {
	obs, proj := f.Observed, f.Projected

	values := make([]float64, 0, obs.Len()+proj.Len())
	values = append(values, obs.Values...)
	values = append(values, proj.Values...)

	var timestamps []time.Time
	if obs.HasTimestamps() && proj.HasTimestamps() {
		timestamps = make([]time.Time, 0, len(values))
		timestamps = append(timestamps, obs.Timestamps...)
		timestamps = append(timestamps, proj.Timestamps...)
	}
	return &timeseries.Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       proj.Name,
		Freq:       obs.Freq,
	}
}

// step computes the next level from a reference level and an assumed change.
type step func(ref, f float64, h int) float64

type projector struct {
	yearLag bool // reference is x(t-h) rather than x(t-1)
	needsH  bool
	next    step
}

var projectors = map[string]projector{
	transform.Diff: {next: func(ref, f float64, h int) float64 {
		return ref + f
	}},
	transform.DiffPct: {next: func(ref, f float64, h int) float64 {
		return ref * (1 + f/100)
	}},
	transform.DiffLog: {next: func(ref, f float64, h int) float64 {
		return ref * math.Exp(f/100)
	}},
	transform.DifA: {needsH: true, next: func(ref, f float64, h int) float64 {
		return ref + f/float64(h)
	}},
	transform.DifAPct: {needsH: true, next: func(ref, f float64, h int) float64 {
		return ref * math.Pow(1+f/100, 1/float64(h))
	}},
	transform.DifALog: {needsH: true, next: func(ref, f float64, h int) float64 {
		return ref * math.Exp(f/(100*float64(h)))
	}},
	transform.YrYr: {yearLag: true, needsH: true, next: func(ref, f float64, h int) float64 {
		return ref + f
	}},
	transform.YrYrPct: {yearLag: true, needsH: true, next: func(ref, f float64, h int) float64 {
		return ref * (1 + f/100)
	}},
	transform.YrYrLog: {yearLag: true, needsH: true, next: func(ref, f float64, h int) float64 {
		return ref * math.Exp(f/100)
	}},
}

// Supported reports whether method can be projected.
func Supported(method string) bool {
	_, ok := projectors[method]
	return ok
}

func fail(method string, cause error, detail string) error {
	return &transform.TransformError{Method: method, Err: cause, Detail: detail}
}

// Project extends s using assumed changes expressed in the units of method.
// A single assumption is held for the whole horizon; otherwise there must be
// one assumption per projected period. Applying method to the resulting path
// recovers the assumptions.
func Project(s *timeseries.Series, method string, assumptions []float64, opts Options) (*Forecast, error) {
	proj, ok := projectors[method]
	if !ok {
		return nil, fail(method, transform.ErrUnknownMethod, "no projection for this method")
	}
	if s == nil || s.Len() == 0 {
		return nil, fail(method, transform.ErrInsufficientData, "no observations to project from")
	}
	if len(assumptions) == 0 {
		return nil, fail(method, transform.ErrMissingParameter, "no assumed changes")
	}

	periods, err := horizon(s, method, len(assumptions), opts)
	if err != nil {
		return nil, err
	}

	h := opts.H
	if h == 0 {
		h = s.Freq.PeriodsPerYear()
	}
	if h < 0 {
		return nil, fail(method, transform.ErrInvalidParameter, "h must be positive")
	}
	if proj.needsH && h == 0 {
		return nil, fail(method, transform.ErrMissingParameter, "h required for a series of unknown frequency")
	}
	lag := 1
	if proj.yearLag {
		lag = h
	}
	n := s.Len()
	if lag > n {
		return nil, fail(method, transform.ErrInsufficientData, "fewer observations than the year lag")
	}

	// Extended array: observations then projections
	ext := make([]float64, n+periods)
	copy(ext, s.Values)
	for i := 0; i < periods; i++ {
		t := n + i
		f := assumptions[0]
		if len(assumptions) > 1 {
			f = assumptions[i]
		}
		ext[t] = proj.next(ext[t-lag], f, h)
	}

	label := opts.Label
	if label == "" {
		label = "forecast"
	}
	projected := &timeseries.Series{
		Values: ext[n:],
		Name:   label,
		Freq:   s.Freq,
	}
	if s.HasTimestamps() {
		if s.Freq == timeseries.Unknown {
			return nil, fail(method, transform.ErrInvalidParameter, "cannot extend timestamps of unknown frequency")
		}
		last := s.Timestamps[n-1]
		projected.Timestamps = make([]time.Time, periods)
		for i := range projected.Timestamps {
			projected.Timestamps[i] = s.Freq.Step(last, i+1)
		}
	}

	return &Forecast{
		Method:    method,
		Observed:  s.Copy(),
		Projected: projected,
	}, nil
}

func horizon(s *timeseries.Series, method string, nAssumptions int, opts Options) (int, error) {
	periods := opts.Periods
	switch {
	case periods < 0:
		return 0, fail(method, transform.ErrInvalidParameter, "periods must be positive")
	case periods > 0 && !opts.End.IsZero():
		return 0, fail(method, transform.ErrInvalidParameter, "only one of periods and end may be given")
	case !opts.End.IsZero():
		p, err := PeriodsUntil(s, opts.End)
		if err != nil {
			return 0, fail(method, transform.ErrInvalidParameter, err.Error())
		}
		if p == 0 {
			return 0, fail(method, transform.ErrInvalidParameter, "end falls in the last observed period")
		}
		periods = p
	}

	switch {
	case nAssumptions > 1 && periods == 0:
		periods = nAssumptions
	case nAssumptions > 1 && periods != nAssumptions:
		return 0, fail(method, transform.ErrInvalidParameter, "number of assumptions does not match the horizon")
	case periods == 0:
		periods = DefaultHorizon(s.Freq)
	}
	if periods == 0 {
		return 0, fail(method, transform.ErrMissingParameter, "horizon required for a series of unknown frequency")
	}
	return periods, nil
}

// ProjectMeasure projects one measure of a component; an empty measure
// selects the component's default measure. The projection is labelled with
// the component's full path unless opts carries a label.
func ProjectMeasure(node *component.Node, measure, method string, assumptions []float64, opts Options) (*Forecast, error) {
	ref, err := node.Measure(measure)
	if err != nil {
		return nil, err
	}
	if opts.Label == "" {
		opts.Label = node.FullPath()
	}
	return Project(ref.Series, method, assumptions, opts)
}
