// Package regression fits y = a·x + b by ordinary least squares.
package regression

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrDegenerate is wrapped by every error for data that cannot support a line.
	ErrDegenerate = errors.New("degenerate regression input")

	ErrLengthMismatch   = fmt.Errorf("%w: predictor and response lengths differ", ErrDegenerate)
	ErrInsufficientData = fmt.Errorf("%w: fewer than 2 complete observations", ErrDegenerate)
	ErrZeroVariance     = fmt.Errorf("%w: constant values", ErrDegenerate)
)

// MinObservations is the smallest number of complete rows Fit accepts.
const MinObservations = 2

// Result is a fitted line and its coefficient of determination.
type Result struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	RSquared  float64 `json:"rSquared"`
	N         int     `json:"points"`
}

// Equation renders the line with two decimals, e.g. "y = 2.00x + 3.00".
func (r Result) Equation() string {
	return fmt.Sprintf("y = %.2fx + %.2f", r.Slope, r.Intercept)
}

// Predict evaluates the fitted line at x.
func (r Result) Predict(x float64) float64 {
	return r.Slope*x + r.Intercept
}

// CompleteCases drops every row where x or y is NaN or infinite.
func CompleteCases(x, y []float64) ([]float64, []float64, error) {
	if len(x) != len(y) {
		return nil, nil, fmt.Errorf("%w (%d vs %d)", ErrLengthMismatch, len(x), len(y))
	}
	cx := make([]float64, 0, len(x))
	cy := make([]float64, 0, len(y))
	for i := range x {
		if !finite(x[i]) || !finite(y[i]) {
			continue
		}
		cx = append(cx, x[i])
		cy = append(cy, y[i])
	}
	return cx, cy, nil
}

// Fit regresses y on x. Incomplete rows are excluded first; the remaining
// data must have at least MinObservations rows and vary in both x and y.
func Fit(x, y []float64) (Result, error) {
	cx, cy, err := CompleteCases(x, y)
	if err != nil {
		return Result{}, err
	}
	if len(cx) < MinObservations {
		return Result{}, fmt.Errorf("%w (got %d)", ErrInsufficientData, len(cx))
	}
	if floats.Min(cx) == floats.Max(cx) {
		return Result{}, fmt.Errorf("%w in predictor", ErrZeroVariance)
	}
	if floats.Min(cy) == floats.Max(cy) {
		return Result{}, fmt.Errorf("%w in response", ErrZeroVariance)
	}

	alpha, beta := stat.LinearRegression(cx, cy, nil, false)
	r2 := stat.RSquared(cx, cy, nil, alpha, beta)
	if !finite(alpha) || !finite(beta) || !finite(r2) {
		return Result{}, fmt.Errorf("%w: non-finite fit", ErrDegenerate)
	}

	return Result{
		Slope:     beta,
		Intercept: alpha,
		RSquared:  clamp01(r2),
		N:         len(cx),
	}, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
