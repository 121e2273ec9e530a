// Package analysis runs the per-selection pipeline: resolve the chosen label,
// check the column, fit the regression and render the figure.
package analysis

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/i474232898/bike-weather-regression/internal/dataset"
	"github.com/i474232898/bike-weather-regression/internal/dataset/sources"
	"github.com/i474232898/bike-weather-regression/internal/factor"
	"github.com/i474232898/bike-weather-regression/internal/logger"
	"github.com/i474232898/bike-weather-regression/internal/regression"
	"github.com/i474232898/bike-weather-regression/internal/render"
)

// Store is the contract the snapshot store must satisfy.
type Store interface {
	Set(table *dataset.Combined)
	Current() (*dataset.Combined, error)
}

// Analysis is the outcome of one selection.
type Analysis struct {
	Label    string
	Column   string
	X, Y     []float64
	Fit      regression.Result
	Equation string
	Title    string
}

// FactorStatus is a selectable factor plus whether the joined table can serve it.
type FactorStatus struct {
	factor.Factor
	Available bool `json:"available"`
}

// Summary describes the loaded snapshot.
type Summary struct {
	RentalsSource string                  `json:"rentalsSource"`
	WeatherSource string                  `json:"weatherSource"`
	RentalRows    int                     `json:"rentalRows"`
	WeatherRows   int                     `json:"weatherRows"`
	JoinedRows    int                     `json:"joinedRows"`
	LoadedAt      time.Time               `json:"loadedAt"`
	Columns       []dataset.ColumnSummary `json:"columns"`
}

// Service owns the dataset sources and the current snapshot.
type Service struct {
	store   Store
	rentals sources.Source
	weather sources.Source
	chart   render.Options
}

// NewService creates a new Service.
func NewService(store Store, rentals, weather sources.Source, chart render.Options) *Service {
	return &Service{
		store:   store,
		rentals: rentals,
		weather: weather,
		chart:   chart,
	}
}

// Reload loads and joins both datasets and swaps the snapshot in.
// On error the previous snapshot, if any, stays in place.
func (s *Service) Reload(ctx context.Context) error {
	start := time.Now()
	combined, err := dataset.LoadCombined(ctx, s.rentals, s.weather)
	if err != nil {
		return err
	}
	s.store.Set(combined)

	logger.Infow("datasets loaded",
		"rentals", combined.RentalsSource,
		"rentalRows", combined.RentalRows,
		"weather", combined.WeatherSource,
		"weatherRows", combined.WeatherRows,
		"joinedRows", combined.Rows(),
		"took", time.Since(start).String(),
	)
	if combined.Rows() == 0 {
		logger.Warnf("rental and weather datasets share no dates; every regression will be rejected")
	}
	return nil
}

// Analyze resolves label (empty means the default factor) and fits rentals against it.
// Missing columns and degenerate data are returned as errors; nothing is fitted then.
func (s *Service) Analyze(label string) (Analysis, error) {
	if label == "" {
		label = factor.Default()
	}
	column, err := factor.Resolve(label)
	if err != nil {
		return Analysis{}, err
	}

	table, err := s.store.Current()
	if err != nil {
		return Analysis{}, err
	}
	if err := factor.Check(label, column, table); err != nil {
		return Analysis{}, err
	}

	xs, err := table.Floats(column)
	if err != nil {
		return Analysis{}, err
	}
	ys, err := table.Floats(dataset.ColumnTotalRentals)
	if err != nil {
		return Analysis{}, err
	}

	x, y, err := regression.CompleteCases(xs, ys)
	if err != nil {
		return Analysis{}, err
	}
	fit, err := regression.Fit(x, y)
	if err != nil {
		return Analysis{}, fmt.Errorf("%s: %w", label, err)
	}

	logger.Debugf("fitted %s on %d days: %s, R²=%.4f", column, fit.N, fit.Equation(), fit.RSquared)

	return Analysis{
		Label:    label,
		Column:   column,
		X:        x,
		Y:        y,
		Fit:      fit,
		Equation: fit.Equation(),
		Title:    render.Title(label, fit),
	}, nil
}

// Render analyzes label and writes the figure. Nothing is written on error.
func (s *Service) Render(w io.Writer, label string, format render.Format) (Analysis, error) {
	a, err := s.Analyze(label)
	if err != nil {
		return Analysis{}, err
	}
	fig := render.Figure{Label: a.Label, X: a.X, Y: a.Y, Fit: a.Fit}
	if err := render.Render(w, fig, format, s.chart); err != nil {
		return Analysis{}, err
	}
	return a, nil
}

// Factors lists every selectable factor with its availability in the snapshot.
func (s *Service) Factors() ([]FactorStatus, error) {
	table, err := s.store.Current()
	if err != nil {
		return nil, err
	}
	all := factor.All()
	out := make([]FactorStatus, 0, len(all))
	for _, f := range all {
		out = append(out, FactorStatus{Factor: f, Available: table.HasColumn(f.Column)})
	}
	return out, nil
}

// Summary reports provenance and per-column statistics of the snapshot.
func (s *Service) Summary() (Summary, error) {
	table, err := s.store.Current()
	if err != nil {
		return Summary{}, err
	}

	columns := []string{dataset.ColumnTotalRentals}
	for _, f := range factor.All() {
		columns = append(columns, f.Column)
	}

	return Summary{
		RentalsSource: table.RentalsSource,
		WeatherSource: table.WeatherSource,
		RentalRows:    table.RentalRows,
		WeatherRows:   table.WeatherRows,
		JoinedRows:    table.Rows(),
		LoadedAt:      table.LoadedAt,
		Columns:       dataset.Summarize(table, columns),
	}, nil
}
