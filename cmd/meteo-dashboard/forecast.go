package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/i474232898/meteo-dashboard/internal/config"
	"github.com/i474232898/meteo-dashboard/internal/observability"
	"github.com/i474232898/meteo-dashboard/internal/weather"
	"github.com/i474232898/meteo-dashboard/internal/weather/providers"
)

var (
	forecastLat  float64
	forecastLon  float64
	forecastJSON bool
)

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "Fetch the forecast for a point and print it with a risk assessment",
	RunE:  runForecast,
}

func init() {
	forecastCmd.Flags().Float64Var(&forecastLat, "lat", 0, "latitude")
	forecastCmd.Flags().Float64Var(&forecastLon, "lon", 0, "longitude")
	forecastCmd.Flags().BoolVar(&forecastJSON, "json", false, "print the canonical payload as JSON")
	_ = forecastCmd.MarkFlagRequired("lat")
	_ = forecastCmd.MarkFlagRequired("lon")
	rootCmd.AddCommand(forecastCmd)
}

func runForecast(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	provider := providers.NewOpenMeteoProvider(&http.Client{Timeout: cfg.ForecastTimeout}, cfg.OpenMeteoURL)
	svc := weather.NewService(provider, nil, cfg.ForecastTimeout, observability.NewMetrics(), zap.NewNop())

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.ForecastTimeout+time.Second)
	defer cancel()

	payload, err := svc.Fetch(ctx, weather.Location{Lat: forecastLat, Lon: forecastLon})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if forecastJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	}
	return printForecast(out, payload, weather.AssessRisk(payload.Current))
}

func printForecast(out io.Writer, payload weather.CanonicalWeather, risk weather.Risk) error {
	c := payload.Current
	fmt.Fprintf(out, "Temperature: %s°C  Wind: %s m/s  Humidity: %s%%  Condition: %s\n",
		fmtOptional(c.Temperature), fmtOptional(c.WindSpeed), fmtOptional(c.Humidity), weather.ConditionLabel(c.Code()))
	fmt.Fprintf(out, "Risk: %s\n", risk.Level)
	for _, h := range risk.Hazards {
		fmt.Fprintf(out, "  - %s\n", h)
	}
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DAY\tMAX\tMIN\tRAIN%\tCODE")
	for _, d := range payload.Daily {
		code := "-"
		if d.Code != nil {
			code = strconv.Itoa(*d.Code)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			time.Unix(d.Timestamp, 0).UTC().Format("2006-01-02"),
			fmtOptional(d.TemperatureMax), fmtOptional(d.TemperatureMin), fmtOptional(d.RainProbability), code)
	}
	return w.Flush()
}

func fmtOptional(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
