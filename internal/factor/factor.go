// Package factor maps the weather factors offered to the user onto dataset columns.
package factor

import (
	"errors"
	"fmt"

	"github.com/i474232898/bike-weather-regression/internal/dataset"
)

// ErrUnknownLabel is returned for a label outside the offered set.
var ErrUnknownLabel = errors.New("unknown weather factor")

// Factor is one selectable weather variable.
type Factor struct {
	Label  string `json:"label"`
	Column string `json:"column"`
}

// factors is the fixed selector domain, in display order.
var factors = []Factor{
	{Label: "Average Temperature (°C)", Column: dataset.ColumnTavg},
	{Label: "Minimum Temperature (°C)", Column: dataset.ColumnTmin},
	{Label: "Maximum Temperature (°C)", Column: dataset.ColumnTmax},
	{Label: "Precipitation (mm)", Column: dataset.ColumnPrcp},
}

// All returns every factor in display order.
func All() []Factor {
	out := make([]Factor, len(factors))
	copy(out, factors)
	return out
}

// Labels returns the option labels in display order.
func Labels() []string {
	out := make([]string, len(factors))
	for i, f := range factors {
		out[i] = f.Label
	}
	return out
}

// Default is the option selected when the user has not chosen one.
func Default() string {
	return factors[0].Label
}

// Resolve returns the column behind a label. An empty label resolves the default.
func Resolve(label string) (string, error) {
	if label == "" {
		label = Default()
	}
	for _, f := range factors {
		if f.Label == label {
			return f.Column, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLabel, label)
}

// Label returns the display label for a column.
func Label(column string) (string, bool) {
	for _, f := range factors {
		if f.Column == column {
			return f.Label, true
		}
	}
	return "", false
}

// IsLabel reports whether s is one of the offered labels.
func IsLabel(s string) bool {
	_, err := Resolve(s)
	return s != "" && err == nil
}

// MissingColumnError reports a resolved column that the joined table lacks.
type MissingColumnError struct {
	Label  string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("column %q (%s) does not exist in the dataset", e.Column, e.Label)
}

func (e *MissingColumnError) Unwrap() error { return dataset.ErrMissingColumn }

// Check fails with a MissingColumnError when table has no column for the factor.
func Check(label, column string, table interface{ HasColumn(string) bool }) error {
	if !table.HasColumn(column) {
		return &MissingColumnError{Label: label, Column: column}
	}
	return nil
}
