package dataset

import (
	"context"
	"fmt"
	"time"

	"github.com/go-gota/gota/dataframe"

	"github.com/i474232898/bike-weather-regression/internal/dataset/sources"
)

// Join inner-joins rentals and weather on exact calendar-date equality.
// Days present on one side only are dropped. The result keeps a single
// date column, Day, and follows the rental table's row order.
func Join(rentals, weather dataframe.DataFrame) (dataframe.DataFrame, error) {
	for _, n := range weather.Names() {
		if n == ColumnDay {
			return dataframe.DataFrame{}, fmt.Errorf("weather table: %w %q", ErrDuplicateColumn, ColumnDay)
		}
	}

	w := weather.Rename(ColumnDay, ColumnDate)
	if w.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("align weather date column: %w", w.Err)
	}

	combined := rentals.InnerJoin(w, ColumnDay)
	if combined.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("join on %s: %w", ColumnDay, combined.Err)
	}

	for _, n := range combined.Names() {
		if n == ColumnDate {
			combined = combined.Drop(ColumnDate)
			break
		}
	}
	if combined.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("drop duplicate date column: %w", combined.Err)
	}
	return combined, nil
}

// LoadCombined loads both sources and joins them. Any error is fatal for the caller:
// a session without data is meaningless.
func LoadCombined(ctx context.Context, rentals, weather sources.Source) (*Combined, error) {
	r, err := LoadRentals(ctx, rentals)
	if err != nil {
		return nil, fmt.Errorf("load rentals: %w", err)
	}
	w, err := LoadWeather(ctx, weather)
	if err != nil {
		return nil, fmt.Errorf("load weather: %w", err)
	}

	combined, err := Join(r, w)
	if err != nil {
		return nil, err
	}

	return &Combined{
		Frame:         combined,
		RentalsSource: rentals.Name(),
		WeatherSource: weather.Name(),
		RentalRows:    r.Nrow(),
		WeatherRows:   w.Nrow(),
		LoadedAt:      time.Now().UTC(),
	}, nil
}
