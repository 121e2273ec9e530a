// Package dataset loads the rental and weather tables and joins them on date.
//
// Tables are gota dataframes. Dates are normalized to DateLayout strings on
// load so that the join compares calendar days exactly.
package dataset

import (
	"time"

	"github.com/go-gota/gota/dataframe"
)

// DateLayout is the canonical rendering of a calendar date in every table.
const DateLayout = "2006-01-02"

// Rental dataset columns (one row per day).
const (
	ColumnDay          = "Day"
	ColumnTotalRentals = "Total Rentals"
)

// Weather dataset columns (one row per day). The date column usually arrives
// without a header name and is renamed to ColumnDate on load.
const (
	ColumnDate = "Date"
	ColumnTavg = "tavg"
	ColumnTmin = "tmin"
	ColumnTmax = "tmax"
	ColumnPrcp = "prcp"
)

// weatherDateHeaders are the header names accepted for the weather date column,
// matched left to right over the file's header.
var weatherDateHeaders = []string{"", "Unnamed: 0", "Date", "date", "time"}

// weatherNumericColumns are typed as floats when present. Blank cells become NaN.
var weatherNumericColumns = []string{
	ColumnTavg, ColumnTmin, ColumnTmax, ColumnPrcp,
	"snow", "wdir", "wspd", "wpgt", "pres", "tsun",
}

// Combined is the inner join of both datasets plus where it came from.
// It is never mutated after construction.
type Combined struct {
	Frame dataframe.DataFrame

	RentalsSource string
	WeatherSource string
	RentalRows    int
	WeatherRows   int
	LoadedAt      time.Time
}

// Rows returns the number of joined days.
func (c *Combined) Rows() int {
	return c.Frame.Nrow()
}

// Names returns the joined table's column names.
func (c *Combined) Names() []string {
	return c.Frame.Names()
}

// HasColumn reports whether the joined table has a column with this exact name.
func (c *Combined) HasColumn(name string) bool {
	for _, n := range c.Frame.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// Floats returns a column as float64 in row order. Missing cells are NaN.
func (c *Combined) Floats(column string) ([]float64, error) {
	if !c.HasColumn(column) {
		return nil, &MissingColumnError{Table: "combined", Column: column}
	}
	s := c.Frame.Col(column)
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Float(), nil
}

// Days returns the canonical date column in row order.
func (c *Combined) Days() []string {
	return c.Frame.Col(ColumnDay).Records()
}
