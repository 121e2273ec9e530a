package dataset

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ColumnSummary describes one numeric column of the joined table.
// Min, Max and Mean cover non-missing cells only and are zero when Count is 0.
type ColumnSummary struct {
	Column  string  `json:"column"`
	Present bool    `json:"present"`
	Count   int     `json:"count"`
	Missing int     `json:"missing"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Mean    float64 `json:"mean"`
}

// Summarize computes per-column statistics. Absent columns are reported with Present=false.
func Summarize(c *Combined, columns []string) []ColumnSummary {
	out := make([]ColumnSummary, 0, len(columns))
	for _, col := range columns {
		vals, err := c.Floats(col)
		if err != nil {
			out = append(out, ColumnSummary{Column: col})
			continue
		}

		present := make([]float64, 0, len(vals))
		for _, v := range vals {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			present = append(present, v)
		}

		s := ColumnSummary{
			Column:  col,
			Present: true,
			Count:   len(present),
			Missing: len(vals) - len(present),
		}
		if len(present) > 0 {
			s.Min = floats.Min(present)
			s.Max = floats.Max(present)
			s.Mean = stat.Mean(present, nil)
		}
		out = append(out, s)
	}
	return out
}
