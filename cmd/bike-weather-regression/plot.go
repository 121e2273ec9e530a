package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/i474232898/bike-weather-regression/internal/factor"
	"github.com/i474232898/bike-weather-regression/internal/logger"
	"github.com/i474232898/bike-weather-regression/internal/render"
)

var (
	plotFactor string
	plotFormat string
	plotOut    string
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Fit one weather factor and write the figure to a file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		defer logger.Sync()

		format, err := render.ParseFormat(plotFormat)
		if err != nil {
			return err
		}
		if _, err := factor.Resolve(plotFactor); err != nil {
			return fmt.Errorf("%w (choose one of %q)", err, factor.Labels())
		}

		_, service, err := bootstrap(cmd.Context())
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		a, err := service.Render(&buf, plotFactor, format)
		if err != nil {
			return err
		}

		out := plotOut
		if out == "" {
			out = a.Column + "." + string(format)
		}
		if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write figure: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s\n%s  (R² = %.2f, %d days)\nwrote %s\n",
			a.Title, a.Equation, a.Fit.RSquared, a.Fit.N, out)
		return nil
	},
}

func init() {
	plotCmd.Flags().StringVar(&plotFactor, "factor", factor.Default(), "weather factor label")
	plotCmd.Flags().StringVar(&plotFormat, "format", string(render.FormatSVG), "output format (svg|png)")
	plotCmd.Flags().StringVarP(&plotOut, "out", "o", "", "output file (default <column>.<format>)")
}
