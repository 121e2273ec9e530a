// Package render draws the regression figure: raw points, fitted line,
// title with R² and the equation annotation.
package render

import (
	"errors"
	"fmt"
	"io"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/gonum/floats"

	"github.com/i474232898/bike-weather-regression/internal/regression"
)

// Format is an output image format.
type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// ResponseLabel is the y-axis name.
const ResponseLabel = "Number of Bike Rentals"

var ErrUnsupportedFormat = errors.New("unsupported chart format")

// ParseFormat maps "svg" or "png" to a Format. Empty means SVG.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatSVG:
		return FormatSVG, nil
	case FormatPNG:
		return FormatPNG, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/svg+xml"
}

func (f Format) provider() chart.RendererProvider {
	if f == FormatPNG {
		return chart.PNG
	}
	return chart.SVG
}

// Figure is everything one render needs.
type Figure struct {
	Label string // chosen weather factor, used for title and x axis
	X, Y  []float64
	Fit   regression.Result
}

// Title is the figure title, carrying R² with two decimals.
func Title(label string, fit regression.Result) string {
	return fmt.Sprintf("Regression: %s vs. Bike Rentals (R² = %.2f)", label, fit.RSquared)
}

// Options sizes the figure in pixels.
type Options struct {
	Width  int
	Height int
}

// DefaultOptions matches an 8x5 figure at 100 dpi.
func DefaultOptions() Options {
	return Options{Width: 800, Height: 500}
}

var (
	pointColor = drawing.Color{R: 31, G: 119, B: 180, A: 128}
	lineColor  = chart.ColorRed
)

// Render writes the figure to w in the given format.
func Render(w io.Writer, fig Figure, format Format, opt Options) error {
	if len(fig.X) < regression.MinObservations || len(fig.X) != len(fig.Y) {
		return fmt.Errorf("render: need at least %d paired points, got %d/%d",
			regression.MinObservations, len(fig.X), len(fig.Y))
	}

	minX, maxX := floats.Min(fig.X), floats.Max(fig.X)
	minY, maxY := floats.Min(fig.Y), floats.Max(fig.Y)

	lineStart, lineEnd := fig.Fit.Predict(minX), fig.Fit.Predict(maxX)
	lo, hi := minY, maxY
	for _, v := range []float64{lineStart, lineEnd} {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	points := chart.ContinuousSeries{
		Name:    "observations",
		XValues: fig.X,
		YValues: fig.Y,
		Style: chart.Style{
			StrokeWidth: chart.Disabled,
			DotWidth:    3,
			DotColor:    pointColor,
		},
	}

	line := chart.ContinuousSeries{
		Name:    "fit",
		XValues: []float64{minX, maxX},
		YValues: []float64{lineStart, lineEnd},
		Style: chart.Style{
			StrokeWidth: 2,
			StrokeColor: lineColor,
		},
	}

	// Annotation sits at 5% / 90% of the plotted ranges (top left).
	equation := chart.AnnotationSeries{
		Annotations: []chart.Value2{{
			XValue: minX + 0.05*(maxX-minX),
			YValue: lo + 0.9*(hi-lo),
			Label:  fig.Fit.Equation(),
		}},
		Style: chart.Style{
			FontSize:    12,
			FontColor:   lineColor,
			StrokeColor: lineColor,
			FillColor:   chart.ColorWhite,
		},
	}

	graph := chart.Chart{
		Title:  Title(fig.Label, fig.Fit),
		Width:  opt.Width,
		Height: opt.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{
			Name: fig.Label,
		},
		YAxis: chart.YAxis{
			Name: ResponseLabel,
			Range: &chart.ContinuousRange{
				Min: lo,
				Max: hi,
			},
		},
		Series: []chart.Series{points, line, equation},
	}

	if err := graph.Render(format.provider(), w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
