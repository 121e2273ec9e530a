package httpapi

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/bike-weather-regression/internal/analysis"
	"github.com/i474232898/bike-weather-regression/internal/factor"
	"github.com/i474232898/bike-weather-regression/internal/logger"
	"github.com/i474232898/bike-weather-regression/internal/regression"
	"github.com/i474232898/bike-weather-regression/internal/render"
	"github.com/i474232898/bike-weather-regression/internal/store"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// "factor" accepts one of the offered labels; empty selects the default.
	err := v.RegisterValidation("factor", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || factor.IsLabel(s)
	})
	if err != nil {
		panic(fmt.Sprintf("register factor validation: %v", err))
	}
	return v
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *analysis.Service) {
	app.Get("/", func(c *fiber.Ctx) error {
		q, err := parseSelection(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		a, err := service.Analyze(q.Factor)
		status := fiber.StatusOK
		if err != nil {
			status = statusFor(err)
			if status == fiber.StatusInternalServerError {
				logger.Errorf("analysis failed for %q: %v", q.Factor, err)
			}
		}
		return renderPage(c, status, q.label(), a, err)
	})

	app.Get("/chart", func(c *fiber.Ctx) error {
		q, err := parseSelection(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		format, err := render.ParseFormat(q.Format)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		var buf bytes.Buffer
		if _, err := service.Render(&buf, q.Factor, format); err != nil {
			return toFiberError(err)
		}

		c.Set(fiber.HeaderContentType, format.ContentType())
		c.Set(fiber.HeaderCacheControl, "no-store")
		return c.Send(buf.Bytes())
	})

	v1 := app.Group("/api/v1")

	v1.Get("/factors", func(c *fiber.Ctx) error {
		fs, err := service.Factors()
		if err != nil {
			return toFiberError(err)
		}
		return c.JSON(fiber.Map{
			"default": factor.Default(),
			"factors": fs,
		})
	})

	v1.Get("/regression", func(c *fiber.Ctx) error {
		q, err := parseSelection(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		a, err := service.Analyze(q.Factor)
		if err != nil {
			return toFiberError(err)
		}

		return c.JSON(regressionResponse{
			Factor:    a.Label,
			Column:    a.Column,
			Slope:     a.Fit.Slope,
			Intercept: a.Fit.Intercept,
			RSquared:  a.Fit.RSquared,
			Points:    a.Fit.N,
			Equation:  a.Equation,
			Title:     a.Title,
		})
	})

	v1.Get("/summary", func(c *fiber.Ctx) error {
		sum, err := service.Summary()
		if err != nil {
			return toFiberError(err)
		}
		return c.JSON(sum)
	})
}

// ErrorHandler is the centralized error response.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

type regressionResponse struct {
	Factor    string  `json:"factor"`
	Column    string  `json:"column"`
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
	RSquared  float64 `json:"rSquared"`
	Points    int     `json:"points"`
	Equation  string  `json:"equation"`
	Title     string  `json:"title"`
}

// selectionQuery holds the query parameters of a selection.
type selectionQuery struct {
	Factor string `validate:"factor"`
	Format string `validate:"omitempty,oneof=svg png"`
}

// label is the effective selection.
func (q selectionQuery) label() string {
	if q.Factor == "" {
		return factor.Default()
	}
	return q.Factor
}

func parseSelection(c *fiber.Ctx) (selectionQuery, error) {
	q := selectionQuery{
		Factor: c.Query("factor"),
		Format: c.Query("format"),
	}
	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

// statusFor maps pipeline errors onto HTTP status codes.
func statusFor(err error) int {
	var missing *factor.MissingColumnError
	switch {
	case errors.Is(err, factor.ErrUnknownLabel), errors.Is(err, render.ErrUnsupportedFormat):
		return fiber.StatusBadRequest
	case errors.As(err, &missing), errors.Is(err, regression.ErrDegenerate):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, store.ErrNotLoaded):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func toFiberError(err error) error {
	code := statusFor(err)
	if code == fiber.StatusInternalServerError {
		logger.Errorf("request failed: %v", err)
		return fiber.NewError(code, "failed to compute regression")
	}
	return fiber.NewError(code, err.Error())
}
