package cmd

import (
	"fmt"
	"strconv"

	"github.com/harvestguru/hg-cli/internal/domain"
	"github.com/spf13/cobra"
)

func newWeatherCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "weather <latitude> <longitude>",
		Short: "Show current weather and field advice for a location",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := requireSession(cmd, app); err != nil {
				return err
			}

			lat, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return &domain.ValidationError{Field: "latitude", Reason: "must be a number"}
			}
			lon, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return &domain.ValidationError{Field: "longitude", Reason: "must be a number"}
			}

			out := cmd.OutOrStdout()
			weather, err := app.gateway.Weather(cmd.Context(), lat, lon)
			if err != nil {
				// Weather is advisory: degrade instead of blocking.
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "weather unavailable: %v\n", err)
				return nil
			}

			_, _ = fmt.Fprintf(out, "%s\n", weather.Description)
			_, _ = fmt.Fprintf(out, "temperature: %.1f°C  humidity: %.0f%%  rainfall: %.1fmm\n", weather.Temperature, weather.Humidity, weather.Rainfall)

			for _, advice := range weatherAdvice(weather) {
				_, _ = fmt.Fprintf(out, "  • %s\n", advice)
			}

			return nil
		},
	}
}

func weatherAdvice(w domain.Weather) []string {
	var advice []string
	if w.Temperature > 32 {
		advice = append(advice, "High temperature: irrigate during early morning or evening.")
	}
	if w.Humidity < 40 {
		advice = append(advice, "Low humidity: consider mulching to retain soil moisture.")
	}
	if w.Rainfall > 10 {
		advice = append(advice, "Heavy rainfall: check field drainage and delay fertilizer application.")
	}

	return advice
}
