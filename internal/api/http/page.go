package httpapi

import (
	"bytes"
	"html/template"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/bike-weather-regression/internal/analysis"
	"github.com/i474232898/bike-weather-regression/internal/factor"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Regression Analysis: Bike Rentals and Weather</title>
<style>
body { font-family: sans-serif; max-width: 860px; margin: 2rem auto; }
.error { color: #b00020; border: 1px solid #b00020; padding: .75rem; }
</style>
</head>
<body>
<h1>Regression Analysis: Bike Rentals and Weather</h1>
<form method="get" action="/">
<label for="factor">Choose a weather factor:</label>
<select id="factor" name="factor" onchange="this.form.submit()">
{{- range .Options}}
<option value="{{.}}"{{if eq . $.Selected}} selected{{end}}>{{.}}</option>
{{- end}}
</select>
<noscript><button type="submit">Show</button></noscript>
</form>
{{if .Error -}}
<p class="error" role="alert">Error: {{.Error}}</p>
{{- else -}}
<figure>
<img src="/chart?factor={{.Selected}}" alt="{{.Title}}">
<figcaption>{{.Equation}} &middot; R² = {{printf "%.2f" .RSquared}} &middot; {{.Points}} days</figcaption>
</figure>
{{- end}}
</body>
</html>
`))

type pageData struct {
	Options  []string
	Selected string
	Error    string
	Title    string
	Equation string
	RSquared float64
	Points   int
}

// renderPage writes the selection page; on err the message replaces the figure.
func renderPage(c *fiber.Ctx, status int, selected string, a analysis.Analysis, err error) error {
	data := pageData{
		Options:  factor.Labels(),
		Selected: selected,
	}
	if err != nil {
		data.Error = err.Error()
		if status >= fiber.StatusInternalServerError && status != fiber.StatusServiceUnavailable {
			data.Error = "failed to compute regression"
		}
	} else {
		data.Title = a.Title
		data.Equation = a.Equation
		data.RSquared = a.Fit.RSquared
		data.Points = a.Fit.N
	}

	var buf bytes.Buffer
	if execErr := pageTemplate.Execute(&buf, data); execErr != nil {
		return execErr
	}
	c.Type("html", "utf-8")
	return c.Status(status).Send(buf.Bytes())
}
