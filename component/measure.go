package component

import (
	"fmt"
	"strings"

	"github.com/hotzsauce/edan/timeseries"
)

// Measure kinds.
const (
	Nominal  = "nominal"
	Real     = "real"
	Price    = "price"
	Quantity = "quantity"
)

// measureKinds lists the measure kinds in the order they are reported.
var measureKinds = []string{Nominal, Real, Price, Quantity}

func validMeasure(m string) bool {
	for _, k := range measureKinds {
		if k == m {
			return true
		}
	}
	return false
}

// SeriesRef associates a component with the backing series of one measure.
// The series is shared; callers must not modify it.
type SeriesRef struct {
	Measure string
	Code    string
	Series  *timeseries.Series
}

// Frequency returns the native frequency of the backing series.
func (r *SeriesRef) Frequency() timeseries.Frequency {
	if r == nil || r.Series == nil {
		return timeseries.Unknown
	}
	return r.Series.Freq
}

// MeasureError reports a request for a measure a component does not carry.
type MeasureError struct {
	Path      string
	Measure   string
	Available []string
}

func (e *MeasureError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("component %q has no measures", e.Path)
	}
	return fmt.Sprintf("component %q has no %q measure (has %s)",
		e.Path, e.Measure, strings.Join(e.Available, ", "))
}

// Measure returns the series reference for measure m. An empty m selects the
// default measure.
func (n *Node) Measure(m string) (*SeriesRef, error) {
	if m == "" {
		m = n.DefaultMeasure()
	}
	if ref, ok := n.measures[m]; ok {
		return ref, nil
	}
	return nil, &MeasureError{Path: n.path, Measure: m, Available: n.Measures()}
}

// HasMeasure reports whether the node carries measure m.
func (n *Node) HasMeasure(m string) bool {
	_, ok := n.measures[m]
	return ok
}

// Measures returns the kinds of the measures present on n.
func (n *Node) Measures() []string {
	var out []string
	for _, k := range measureKinds {
		if _, ok := n.measures[k]; ok {
			out = append(out, k)
		}
	}
	return out
}

// DefaultMeasure returns the measure used when none is named: real when
// present, otherwise the first of nominal, price and quantity. It is empty
// for a node without measures.
func (n *Node) DefaultMeasure() string {
	for _, k := range []string{Real, Nominal, Price, Quantity} {
		if _, ok := n.measures[k]; ok {
			return k
		}
	}
	return ""
}
