// Package transform derives new series from a single series: differences,
// percent and log changes, annualized changes, moving aggregates,
// year-over-year changes and re-indexing.
//
// Transformations are pure. The input series is never modified and the output
// is a new series, shorter than the input by the method's lookback. Periods
// where a formula is undefined (a missing operand, a log of a non-positive
// ratio, a zero divisor) come out missing and are reported as DataGap values
// rather than errors.
//
// # Methods
//
//	diff    x(t) - x(t-n)
//	diff%   100 * [x(t)/x(t-n) - 1]
//	diffl   100 * ln[x(t)/x(t-n)]
//	difa    (h/n) * [x(t) - x(t-n)]
//	difa%   100 * [(x(t)/x(t-n))^(h/n) - 1]
//	difal   100 * (h/n) * ln[x(t)/x(t-n)]
//	difv    [x(t) - x(t-n)] / n
//	difv%   same as difa%
//	difvl   (100/n) * ln[x(t)/x(t-n)]
//	movv    mean of x(t-n+1) .. x(t)
//	mova    (h/n) * sum of x(t-n+1) .. x(t)
//	movt    sum of x(t-n+1) .. x(t)
//	yryr    x(t) - x(t-h)
//	yryr%   100 * [x(t)/x(t-h) - 1]
//	yryrl   100 * ln[x(t)/x(t-h)]
//	index   100 * x(t) / mean(x over base)
//
// # Quick Start
//
//	s := timeseries.NewRegular(timeseries.Monthly, start, cpi)
//	growth, err := transform.Transform(s, "difa%", transform.Options{N: 3})
//	rebased, err := transform.Transform(s, "index", transform.Options{Base: transform.Year(2017)})
package transform
