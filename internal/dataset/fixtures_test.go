package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/i474232898/bike-weather-regression/internal/dataset/sources"
)

const rentalsCSV = `Day,Total Rentals
2021-01-01,100
2021-01-02,150
2021-01-03,200
2021-01-05,90
`

// Weather exported by pandas: the index column has an empty header and
// timestamps carry a time of day.
const weatherCSV = `,tavg,tmin,tmax,prcp,wspd
2021-01-01 00:00:00,5.0,2.0,8.0,0.0,10.1
2021-01-02 00:00:00,6.0,3.0,9.0,,11.0
2021-01-03 00:00:00,7.5,4.0,11.0,2.5,9.4
2021-01-04 00:00:00,8.0,5.0,12.0,1.0,8.0
`

func writeSource(t *testing.T, name, content string) sources.Source {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return sources.NewFileSource(path)
}

func loadFixture(t *testing.T) *Combined {
	t.Helper()
	c, err := LoadCombined(context.Background(),
		writeSource(t, "rentals.csv", rentalsCSV),
		writeSource(t, "weather.csv", weatherCSV))
	require.NoError(t, err)
	return c
}
