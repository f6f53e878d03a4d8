// Package timeseries provides the period-indexed series attached to the
// measures of table components.
//
// A Series holds one value per period at a fixed Frequency. Missing
// observations are stored as NaN and keep their period, so a series is
// always evenly spaced.
//
// # Creating a Series
//
// Create a monthly series starting in January 2020:
//
//	start := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)
//	cpi := timeseries.NewRegular(timeseries.Monthly, start, []float64{100, 100.5, 101})
//
// Or from explicit timestamps, inferring the frequency:
//
//	s, err := timeseries.NewWithTimestamps(dates, values)
//
// # Frequencies
//
// Frequencies know their number of periods per year and how to step between
// periods:
//
//	h := timeseries.Quarterly.PeriodsPerYear() // 4
//	next := timeseries.Monthly.Step(t, 1)
//	f := timeseries.InferFrequency(dates)
//
// # Selecting Periods
//
//	v := s.ValueAt(t)              // NaN when t is not in the series
//	year := s.InYear(2012)         // observations dated in 2012
//	part := s.Between(start, end)  // inclusive period range
//	dates, cols, err := timeseries.Align(a, b, c)
//
// # Loading from CSV
//
// Series are stored in wide CSV files: a date column followed by one column
// per series code. Empty, "NA", "NaN", "null" and "." cells are missing.
//
//	series, err := timeseries.LoadCSVTable("nipa.csv", nil)
//	gdp := series["A191RX"]
//
// Dates may be ISO dates, "2006-01", plain years, or agency period codes
// such as "2012Q3" and "2012M07".
package timeseries
