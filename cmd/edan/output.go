package main

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/hotzsauce/edan/timeseries"
)

type jsonPoint struct {
	Date  string   `json:"date"`
	Value *float64 `json:"value"`
}

type jsonSeries struct {
	Name      string      `json:"name"`
	Unit      string      `json:"unit,omitempty"`
	Frequency string      `json:"frequency,omitempty"`
	Points    []jsonPoint `json:"points"`
}

// writeSeries prints series side by side over their common periods, as CSV
// or, with --json, as a list of objects. Missing values are empty cells or
// nulls.
func writeSeries(w io.Writer, unit string, series ...*timeseries.Series) error {
	if jsonOut {
		return writeSeriesJSON(w, unit, series)
	}

	periods, cols, err := timeseries.Align(series...)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := make([]string, 0, len(series)+1)
	header = append(header, "date")
	for _, s := range series {
		header = append(header, s.Name)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(series)+1)
	for i, t := range periods {
		row[0] = t.Format(time.DateOnly)
		for j := range series {
			row[j+1] = formatValue(cols[j][i])
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeSeriesJSON(w io.Writer, unit string, series []*timeseries.Series) error {
	out := make([]jsonSeries, len(series))
	for i, s := range series {
		js := jsonSeries{
			Name:      s.Name,
			Unit:      unit,
			Frequency: s.Freq.String(),
			Points:    make([]jsonPoint, s.Len()),
		}
		for k, v := range s.Values {
			p := jsonPoint{Date: strconv.Itoa(k)}
			if s.HasTimestamps() {
				p.Date = s.Timestamps[k].Format(time.DateOnly)
			}
			if !timeseries.IsMissing(v) {
				v := v
				p.Value = &v
			}
			js.Points[k] = p
		}
		out[i] = js
	}
	return printJSON(w, out)
}

func printJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func formatValue(v float64) string {
	if timeseries.IsMissing(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
