package transform

import (
	"fmt"
	"math"
	"sort"

	"github.com/hotzsauce/edan/timeseries"
)

// Method names recognized by Transform.
const (
	Diff      = "diff"
	DiffPct   = "diff%"
	DiffLog   = "diffl"
	DifA      = "difa"
	DifAPct   = "difa%"
	DifALog   = "difal"
	DifV      = "difv"
	DifVPct   = "difv%"
	DifVLog   = "difvl"
	MovV      = "movv"
	MovA      = "mova"
	MovT      = "movt"
	YrYr      = "yryr"
	YrYrPct   = "yryr%"
	YrYrLog   = "yryrl"
	Index     = "index"
	DefMethod = DifAPct
)

// family groups methods by the shape of their computation.
type family int

const (
	lagFamily    family = iota // x(t) against x(t-n)
	yearFamily                 // x(t) against x(t-h)
	windowFamily               // n-period window ending at t
	indexFamily                // re-basing
)

// pairFunc computes an output from the current and lagged observations. ok
// is false when the output is undefined; reason then says why.
type pairFunc func(cur, lag float64, n, h int) (v float64, reason GapReason, ok bool)

// windowFunc computes an output from a complete window of observations.
type windowFunc func(sum float64, n, h int) float64

type method struct {
	name   string
	family family
	needsH bool
	unit   string
	pair   pairFunc
	window windowFunc
}

var methods = map[string]*method{}

func register(m *method) {
	methods[m.name] = m
}

func init() {
	register(&method{name: Diff, family: lagFamily, unit: "chg.", pair: difference(func(d float64, n, h int) float64 { return d })})
	register(&method{name: DiffPct, family: lagFamily, unit: "% chg.", pair: ratio(func(r float64, n, h int) float64 { return 100 * (r - 1) })})
	register(&method{name: DiffLog, family: lagFamily, unit: "log chg.", pair: logRatio(func(l float64, n, h int) float64 { return 100 * l })})

	register(&method{name: DifA, family: lagFamily, needsH: true, unit: "ann. chg.", pair: difference(func(d float64, n, h int) float64 {
		return float64(h) / float64(n) * d
	})})
	register(&method{name: DifAPct, family: lagFamily, needsH: true, unit: "ann. % chg.", pair: annualizedRatio})
	register(&method{name: DifALog, family: lagFamily, needsH: true, unit: "ann. log chg.", pair: logRatio(func(l float64, n, h int) float64 {
		return 100 * float64(h) / float64(n) * l
	})})

	register(&method{name: DifV, family: lagFamily, unit: "avg. chg.", pair: difference(func(d float64, n, h int) float64 {
		return d / float64(n)
	})})
	// difv% shares the annualized percent change formula
	register(&method{name: DifVPct, family: lagFamily, needsH: true, unit: "avg. % chg.", pair: annualizedRatio})
	register(&method{name: DifVLog, family: lagFamily, unit: "avg. log chg.", pair: logRatio(func(l float64, n, h int) float64 {
		return 100 / float64(n) * l
	})})

	register(&method{name: MovV, family: windowFamily, unit: "moving avg.", window: func(sum float64, n, h int) float64 {
		return sum / float64(n)
	}})
	register(&method{name: MovA, family: windowFamily, needsH: true, unit: "ann. moving avg.", window: func(sum float64, n, h int) float64 {
		return float64(h) / float64(n) * sum
	}})
	register(&method{name: MovT, family: windowFamily, unit: "moving sum", window: func(sum float64, n, h int) float64 {
		return sum
	}})

	register(&method{name: YrYr, family: yearFamily, needsH: true, unit: "yr/yr chg.", pair: difference(func(d float64, n, h int) float64 { return d })})
	register(&method{name: YrYrPct, family: yearFamily, needsH: true, unit: "yr/yr % chg.", pair: ratio(func(r float64, n, h int) float64 { return 100 * (r - 1) })})
	register(&method{name: YrYrLog, family: yearFamily, needsH: true, unit: "yr/yr log chg.", pair: logRatio(func(l float64, n, h int) float64 { return 100 * l })})

	register(&method{name: Index, family: indexFamily, unit: "index"})
}

func difference(f func(d float64, n, h int) float64) pairFunc {
	return func(cur, lag float64, n, h int) (float64, GapReason, bool) {
		return f(cur-lag, n, h), 0, true
	}
}

func ratio(f func(r float64, n, h int) float64) pairFunc {
	return func(cur, lag float64, n, h int) (float64, GapReason, bool) {
		if lag == 0 {
			return 0, GapZeroDivisor, false
		}
		return f(cur/lag, n, h), 0, true
	}
}

func logRatio(f func(l float64, n, h int) float64) pairFunc {
	return func(cur, lag float64, n, h int) (float64, GapReason, bool) {
		if cur <= 0 || lag <= 0 {
			return 0, GapNonPositive, false
		}
		return f(math.Log(cur/lag), n, h), 0, true
	}
}

// annualizedRatio is 100 * [(x(t)/x(t-n))^(h/n) - 1]. A negative ratio raised
// to a fractional power has no real value.
func annualizedRatio(cur, lag float64, n, h int) (float64, GapReason, bool) {
	if lag == 0 {
		return 0, GapZeroDivisor, false
	}
	r := cur / lag
	e := float64(h) / float64(n)
	if r < 0 && e != math.Trunc(e) {
		return 0, GapNonPositive, false
	}
	return 100 * (math.Pow(r, e) - 1), 0, true
}

// Methods returns the names of all recognized methods, sorted.
func Methods() []string {
	names := make([]string, 0, len(methods))
	for name := range methods {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Known reports whether name is a recognized method.
func Known(name string) bool {
	_, ok := methods[name]
	return ok
}

// NeedsPeriodsPerYear reports whether the method uses the periods-per-year
// parameter h.
func NeedsPeriodsPerYear(name string) bool {
	m, ok := methods[name]
	return ok && m.needsH
}

// Unit returns a label describing the units of the method's output, such as
// "% chg." or "3-mo. ann. % chg.", for chart axes and legends.
func Unit(name string, n int, freq timeseries.Frequency) string {
	m, ok := methods[name]
	if !ok {
		return ""
	}
	if n <= 1 || m.family == yearFamily || m.family == indexFamily {
		return m.unit
	}
	return fmt.Sprintf("%d-%s %s", n, freq.Abbrev(), m.unit)
}
