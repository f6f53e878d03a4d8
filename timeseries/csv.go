package timeseries

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	DateColumn string    // Column name for dates (default: first column)
	DateFormat string    // Date format (default: "2006-01-02")
	Frequency  Frequency // Series frequency (default: inferred from dates)
	HasHeader  bool      // Whether CSV has header row (default: true)
	Delimiter  rune      // Field delimiter (default: ',')
	SkipRows   int       // Number of rows to skip at start
}

// DefaultCSVOptions returns default options for CSV loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		DateFormat: "2006-01-02",
		HasHeader:  true,
		Delimiter:  ',',
	}
}

// missingTokens are the cell values read as a missing observation.
var missingTokens = map[string]bool{
	"":     true,
	"NA":   true,
	"NaN":  true,
	"nan":  true,
	"null": true,
	".":    true,
	"(NA)": true,
}

// LoadCSVTable loads a wide CSV file: one date column and one column per
// series code. The result maps each code to its series.
func LoadCSVTable(filename string, opts *CSVOptions) (map[string]*Series, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return LoadCSVTableFromReader(file, opts)
}

// LoadCSVTableFromReader loads a wide CSV table from an io.Reader.
func LoadCSVTableFromReader(r io.Reader, opts *CSVOptions) (map[string]*Series, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	reader.TrimLeadingSpace = true

	// Skip rows if needed
	for i := 0; i < opts.SkipRows; i++ {
		if _, err := reader.Read(); err != nil {
			return nil, err
		}
	}

	// Read header
	var headers []string
	dateIdx := 0
	if opts.HasHeader {
		header, err := reader.Read()
		if err != nil {
			return nil, err
		}
		for i, h := range header {
			h = strings.TrimSpace(strings.Trim(h, "\""))
			headers = append(headers, h)
			if opts.DateColumn != "" && h == opts.DateColumn {
				dateIdx = i
			}
		}
	}

	var timestamps []time.Time
	var columns [][]float64

	for line := 1; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if headers == nil {
			// No header - name columns by position
			for i := range record {
				headers = append(headers, strconv.Itoa(i))
			}
		}
		if columns == nil {
			columns = make([][]float64, len(headers))
		}

		ts, err := parseDate(strings.TrimSpace(strings.Trim(record[dateIdx], "\"")), opts.DateFormat)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		timestamps = append(timestamps, ts)

		for i := range headers {
			if i == dateIdx {
				continue
			}
			val := Missing()
			if i < len(record) {
				val, err = parseValue(record[i])
				if err != nil {
					return nil, fmt.Errorf("line %d, column %q: %w", line, headers[i], err)
				}
			}
			columns[i] = append(columns[i], val)
		}
	}

	if len(timestamps) == 0 {
		return nil, errors.New("no valid data found in CSV")
	}

	freq := opts.Frequency
	if freq == Unknown {
		freq = InferFrequency(timestamps)
	}

	out := make(map[string]*Series, len(headers)-1)
	for i, code := range headers {
		if i == dateIdx {
			continue
		}
		ts := make([]time.Time, len(timestamps))
		copy(ts, timestamps)
		s := &Series{
			Timestamps: ts,
			Values:     columns[i],
			Name:       code,
			Freq:       freq,
		}
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("series %q: %w", code, err)
		}
		out[code] = s
	}
	return out, nil
}

// LoadCSVColumn loads a specific column from a CSV file as a series.
func LoadCSVColumn(filename string, column string) (*Series, error) {
	table, err := LoadCSVTable(filename, nil)
	if err != nil {
		return nil, err
	}
	s, ok := table[column]
	if !ok {
		return nil, fmt.Errorf("column %q not found in %s", column, filename)
	}
	return s, nil
}

func parseValue(cell string) (float64, error) {
	cell = strings.TrimSpace(strings.Trim(cell, "\""))
	if missingTokens[cell] {
		return Missing(), nil
	}
	// Agency files often carry thousands separators
	cell = strings.ReplaceAll(cell, ",", "")
	return strconv.ParseFloat(cell, 64)
}

func parseDate(dateStr, layout string) (time.Time, error) {
	// Try multiple date formats
	formats := []string{
		layout,
		"2006-01-02",
		"2006-01",
		"2006/01/02",
		"01/02/2006",
		"2006",
	}
	for _, f := range formats {
		if f == "" {
			continue
		}
		if ts, err := time.Parse(f, dateStr); err == nil {
			return ts, nil
		}
	}
	// Agency period codes such as 2012Q3 and 2012M07
	if ts, ok := parsePeriodCode(dateStr); ok {
		return ts, nil
	}
	return time.Time{}, fmt.Errorf("unable to parse date %q", dateStr)
}

func parsePeriodCode(s string) (time.Time, bool) {
	if len(s) < 6 {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(s[:4])
	if err != nil {
		return time.Time{}, false
	}
	n, err := strconv.Atoi(s[5:])
	if err != nil {
		return time.Time{}, false
	}
	switch s[4] {
	case 'Q', 'q':
		if n < 1 || n > 4 {
			return time.Time{}, false
		}
		return time.Date(year, time.Month(3*(n-1)+1), 1, 0, 0, 0, 0, time.UTC), true
	case 'M', 'm':
		if n < 1 || n > 12 {
			return time.Time{}, false
		}
		return time.Date(year, time.Month(n), 1, 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// SaveCSV saves a time series to a CSV file. Missing observations are
// written as empty cells.
func SaveCSV(series *Series, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := WriteCSV(series, file); err != nil {
		return err
	}
	return file.Close()
}

// WriteCSV writes a time series as two columns, date and value.
func WriteCSV(series *Series, w io.Writer) error {
	writer := bufio.NewWriter(w)

	name := series.Name
	if name == "" {
		name = "value"
	}

	// Write header
	if series.HasTimestamps() {
		writer.WriteString("date," + name + "\n")
	} else {
		writer.WriteString("index," + name + "\n")
	}

	// Write data
	for i, v := range series.Values {
		if series.HasTimestamps() {
			writer.WriteString(series.Timestamps[i].Format("2006-01-02"))
		} else {
			writer.WriteString(strconv.Itoa(i + 1))
		}
		writer.WriteString(",")
		if !IsMissing(v) {
			writer.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
		}
		writer.WriteString("\n")
	}

	return writer.Flush()
}
