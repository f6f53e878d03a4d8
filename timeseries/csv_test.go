package timeseries

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadCSVTableFromReader(t *testing.T) {
	csvData := `date,GDP,NX
2020Q1,100,-5
2020Q2,101,NA
2020Q3,"1,102.5",-4
2020Q4,103,.`

	table, err := LoadCSVTableFromReader(strings.NewReader(csvData), nil)
	require.NoError(t, err)
	require.Len(t, table, 2)

	gdp := table["GDP"]
	assert.Equal(t, Quarterly, gdp.Freq)
	assert.Equal(t, []float64{100, 101, 1102.5, 103}, gdp.Values)
	assert.Equal(t, date(2020, time.July), gdp.Timestamps[2])

	// Missing cells keep their period
	nx := table["NX"]
	require.Equal(t, 4, nx.Len())
	assert.Equal(t, -5.0, nx.Values[0])
	assert.True(t, IsMissing(nx.Values[1]))
	assert.True(t, IsMissing(nx.Values[3]))
}

func TestLoadCSVTableExplicitFrequency(t *testing.T) {
	csvData := `obs;x
2021-01-31;1
2021-02-28;2`

	opts := DefaultCSVOptions()
	opts.Delimiter = ';'
	opts.DateColumn = "obs"
	opts.Frequency = Monthly

	table, err := LoadCSVTableFromReader(strings.NewReader(csvData), opts)
	require.NoError(t, err)
	assert.Equal(t, Monthly, table["x"].Freq)
}

func TestLoadCSVTableErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", "date,x\n"},
		{"bad date", "date,x\nyesterday,1\n"},
		{"bad value", "date,x\n2020-01-01,abc\n"},
		{"gap", "date,x\n2020-01-01,1\n2020-02-01,2\n2020-04-01,3\n2020-05-01,4\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultCSVOptions()
			if tt.name == "gap" {
				opts.Frequency = Monthly
			}
			_, err := LoadCSVTableFromReader(strings.NewReader(tt.data), opts)
			assert.Error(t, err)
		})
	}
}

func TestWriteCSV(t *testing.T) {
	s := NewRegular(Monthly, date(2020, time.January), []float64{1.5, Missing(), 3})
	s.Name = "cpi"

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(s, &buf))
	assert.Equal(t, "date,cpi\n2020-01-01,1.5\n2020-02-01,\n2020-03-01,3\n", buf.String())
}

func TestSaveAndLoadCSV(t *testing.T) {
	s := NewRegular(Annual, date(2000, time.January), []float64{1, 2, Missing(), 4})
	s.Name = "level"

	path := filepath.Join(t.TempDir(), "level.csv")
	require.NoError(t, SaveCSV(s, path))

	loaded, err := LoadCSVColumn(path, "level")
	require.NoError(t, err)
	assert.Equal(t, Annual, loaded.Freq)
	assert.Equal(t, s.Timestamps, loaded.Timestamps)
	assert.Equal(t, 4.0, loaded.Values[3])
	assert.True(t, IsMissing(loaded.Values[2]))

	_, err = LoadCSVColumn(path, "nope")
	assert.Error(t, err)
}
