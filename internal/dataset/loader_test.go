package dataset

import (
	"context"
	"math"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	cases := map[string]string{
		"2021-03-04":           "2021-03-04",
		"2021-03-04 00:00:00":  "2021-03-04",
		"2021-03-04T13:45:00Z": "2021-03-04",
		"2021/03/04":           "2021-03-04",
		"03/04/2021":           "2021-03-04",
		"25/12/2021":           "2021-12-25",
		"3/4/2021":             "2021-03-04",
		" 2021-03-04 ":         "2021-03-04",
	}
	for in, want := range cases {
		got, err := ParseDate(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got.Format(DateLayout), in)
	}

	_, err := ParseDate("yesterday")
	assert.ErrorIs(t, err, ErrBadDate)
}

func TestLoadRentals(t *testing.T) {
	df, err := LoadRentals(context.Background(), writeSource(t, "r.csv", rentalsCSV))
	require.NoError(t, err)

	assert.Equal(t, 4, df.Nrow())
	assert.Equal(t, []string{"2021-01-01", "2021-01-02", "2021-01-03", "2021-01-05"}, df.Col(ColumnDay).Records())
	assert.Equal(t, []float64{100, 150, 200, 90}, df.Col(ColumnTotalRentals).Float())
}

func TestLoadRentalsMissingColumn(t *testing.T) {
	_, err := LoadRentals(context.Background(), writeSource(t, "r.csv", "Day,Count\n2021-01-01,1\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), ColumnTotalRentals)
}

func TestLoadRentalsBadDate(t *testing.T) {
	_, err := LoadRentals(context.Background(), writeSource(t, "r.csv", "Day,Total Rentals\nsoon,1\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadDate)
	assert.Contains(t, err.Error(), "row 1")
}

func TestLoadWeatherRenamesPlaceholderDateColumn(t *testing.T) {
	df, err := LoadWeather(context.Background(), writeSource(t, "w.csv", weatherCSV))
	require.NoError(t, err)

	assert.Contains(t, df.Names(), ColumnDate)
	assert.Equal(t, "2021-01-01", df.Col(ColumnDate).Records()[0])

	prcp := df.Col(ColumnPrcp).Float()
	assert.True(t, math.IsNaN(prcp[1]), "blank precipitation must be missing, not zero")
	assert.Equal(t, 2.5, prcp[2])
}

func TestLoadWeatherPandasHeader(t *testing.T) {
	csv := "Unnamed: 0,tavg\n2021-01-01,4.5\n"
	df, err := LoadWeather(context.Background(), writeSource(t, "w.csv", csv))
	require.NoError(t, err)
	assert.Equal(t, []string{ColumnDate, ColumnTavg}, df.Names())
}

func TestLoadWeatherWithoutDateColumn(t *testing.T) {
	_, err := LoadWeather(context.Background(), writeSource(t, "w.csv", "station,tavg\nLHR,4.5\n"))
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestLoadMissingFile(t *testing.T) {
	src := writeSource(t, "r.csv", rentalsCSV)
	require.NoError(t, os.Remove(src.Name()))

	_, err := LoadCombined(context.Background(), src, writeSource(t, "w.csv", weatherCSV))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadEmptySource(t *testing.T) {
	_, err := LoadRentals(context.Background(), writeSource(t, "r.csv", ""))
	assert.ErrorIs(t, err, ErrEmptySource)
}

func TestLoadRentalsAcceptsWholeNumberFloats(t *testing.T) {
	csv := "Day,Total Rentals\n2021-01-01,100.0\n2021-01-02, 7\n2021-01-03,\n"
	df, err := LoadRentals(context.Background(), writeSource(t, "r.csv", csv))
	require.NoError(t, err)

	got := df.Col(ColumnTotalRentals).Float()
	assert.Equal(t, []float64{100, 7}, got[:2])
	assert.True(t, math.IsNaN(got[2]), "blank count must be missing")
}

func TestLoadRejectsMalformedNumbers(t *testing.T) {
	cases := []struct {
		name, csv, column string
		weather          bool
	}{
		{"text count", "Day,Total Rentals\n2021-01-01,5\n2021-01-02,abc\n", ColumnTotalRentals, false},
		{"fractional count", "Day,Total Rentals\n2021-01-01,5.5\n", ColumnTotalRentals, false},
		{"thousands separator", "Day,Total Rentals\n2021-01-01,\"1,234\"\n", ColumnTotalRentals, false},
		{"text temperature", ",tavg,tmax\n2021-01-01,4.5,x\n", ColumnTmax, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src := writeSource(t, "data.csv", tc.csv)
			var err error
			if tc.weather {
				_, err = LoadWeather(context.Background(), src)
			} else {
				_, err = LoadRentals(context.Background(), src)
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrBadNumber)
			assert.Contains(t, err.Error(), src.Name())
			assert.Contains(t, err.Error(), tc.column)
			assert.Contains(t, err.Error(), "row ")
		})
	}
}

func TestLoadWeatherRejectsSecondDateColumn(t *testing.T) {
	_, err := LoadWeather(context.Background(), writeSource(t, "w.csv", ",Date,tavg\n2021-01-01,2021-01-01,4.5\n"))
	assert.ErrorIs(t, err, ErrDuplicateColumn)
}
