package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/i474232898/bike-weather-regression/internal/dataset/sources"
)

// dateLayouts are tried in order; month-first wins for ambiguous slash dates.
var dateLayouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006/01/02",
	"01/02/2006",
	"02/01/2006",
	"1/2/2006",
	"1/2/2006 15:04:05",
}

// missingValues are read as NaN rather than zero.
var missingValues = []string{"", "NA", "NaN", "nan", "<nil>"}

// ParseDate parses a date-like cell into a UTC calendar date (time of day dropped).
func ParseDate(s string) (time.Time, error) {
	v := strings.TrimSpace(s)
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, v); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, s)
}

// LoadRentals reads the rental dataset. Day and Total Rentals are required.
func LoadRentals(ctx context.Context, src sources.Source) (dataframe.DataFrame, error) {
	records, err := readRecords(ctx, src)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	header := records[0]

	dayIdx := indexOf(header, ColumnDay)
	if dayIdx < 0 {
		return dataframe.DataFrame{}, &MissingColumnError{Table: src.Name(), Column: ColumnDay}
	}
	countIdx := indexOf(header, ColumnTotalRentals)
	if countIdx < 0 {
		return dataframe.DataFrame{}, &MissingColumnError{Table: src.Name(), Column: ColumnTotalRentals}
	}
	if err := normalizeDates(src.Name(), records, dayIdx); err != nil {
		return dataframe.DataFrame{}, err
	}
	if err := normalizeCounts(src.Name(), records, countIdx); err != nil {
		return dataframe.DataFrame{}, err
	}

	return buildFrame(src.Name(), records, map[string]series.Type{
		ColumnDay:          series.String,
		ColumnTotalRentals: series.Int,
	})
}

// LoadWeather reads the weather dataset and renames its date column to Date.
func LoadWeather(ctx context.Context, src sources.Source) (dataframe.DataFrame, error) {
	records, err := readRecords(ctx, src)
	if err != nil {
		return dataframe.DataFrame{}, err
	}
	header := records[0]

	dateIdx := -1
	for i, h := range header {
		if containsString(weatherDateHeaders, h) {
			dateIdx = i
			break
		}
	}
	if dateIdx < 0 {
		return dataframe.DataFrame{}, &MissingColumnError{Table: src.Name(), Column: ColumnDate}
	}
	if i := indexOf(header, ColumnDate); i >= 0 && i != dateIdx {
		return dataframe.DataFrame{}, fmt.Errorf("%s: %w: %q and %q both hold dates",
			src.Name(), ErrDuplicateColumn, header[dateIdx], ColumnDate)
	}
	header[dateIdx] = ColumnDate

	if err := normalizeDates(src.Name(), records, dateIdx); err != nil {
		return dataframe.DataFrame{}, err
	}

	types := map[string]series.Type{ColumnDate: series.String}
	for _, c := range weatherNumericColumns {
		types[c] = series.Float
		if i := indexOf(header, c); i >= 0 {
			if err := normalizeFloats(src.Name(), records, i); err != nil {
				return dataframe.DataFrame{}, err
			}
		}
	}
	return buildFrame(src.Name(), records, types)
}

// readRecords returns header plus rows, every row padded to the header width.
func readRecords(ctx context.Context, src sources.Source) ([][]string, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	r := csv.NewReader(rc)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	var records [][]string
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("%s: read row %d: %w", src.Name(), len(records), err)
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: %w", src.Name(), ErrEmptySource)
	}

	header := records[0]
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}
	for i := 1; i < len(records); i++ {
		if len(records[i]) < len(header) {
			padded := make([]string, len(header))
			copy(padded, records[i])
			records[i] = padded
		} else if len(records[i]) > len(header) {
			records[i] = records[i][:len(header)]
		}
	}
	return records, nil
}

func normalizeDates(name string, records [][]string, col int) error {
	for i := 1; i < len(records); i++ {
		d, err := ParseDate(records[i][col])
		if err != nil {
			return fmt.Errorf("%s: row %d: %w", name, i, err)
		}
		records[i][col] = d.Format(DateLayout)
	}
	return nil
}

// normalizeCounts accepts integers and whole-number floats such as "100.0".
func normalizeCounts(name string, records [][]string, col int) error {
	return normalizeNumbers(name, records, col, func(cell string) (string, bool) {
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil || math.IsInf(v, 0) || v != math.Trunc(v) || math.Abs(v) > 1<<53 {
			return "", false
		}
		return strconv.FormatInt(int64(v), 10), true
	})
}

func normalizeFloats(name string, records [][]string, col int) error {
	return normalizeNumbers(name, records, col, func(cell string) (string, bool) {
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			return "", false
		}
		return cell, true
	})
}

// normalizeNumbers rewrites every non-missing cell of col through parse and
// fails on the first cell parse rejects. Missing markers pass through as NaN.
func normalizeNumbers(name string, records [][]string, col int, parse func(string) (string, bool)) error {
	column := records[0][col]
	for i := 1; i < len(records); i++ {
		cell := strings.TrimSpace(records[i][col])
		if containsString(missingValues, cell) {
			records[i][col] = cell
			continue
		}
		v, ok := parse(cell)
		if !ok {
			return fmt.Errorf("%s: row %d, column %q: %w: %q", name, i, column, ErrBadNumber, records[i][col])
		}
		records[i][col] = v
	}
	return nil
}

func buildFrame(name string, records [][]string, types map[string]series.Type) (dataframe.DataFrame, error) {
	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(missingValues),
		dataframe.WithTypes(types),
	)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%s: %w", name, df.Err)
	}
	return df, nil
}

func indexOf(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
