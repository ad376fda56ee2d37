package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sony/gobreaker"

	"github.com/i474232898/meteo-dashboard/internal/weather"
)

// DefaultOpenMeteoURL is the public forecast endpoint.
const DefaultOpenMeteoURL = "https://api.open-meteo.com/v1/forecast"

// OpenMeteoProvider implements the weather.Provider interface for Open-Meteo.
type OpenMeteoProvider struct {
	name    string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoProvider(client *http.Client, baseURL string) *OpenMeteoProvider {
	if baseURL == "" {
		baseURL = DefaultOpenMeteoURL
	}
	return &OpenMeteoProvider{
		name:    "openmeteo",
		baseURL: baseURL,
		client:  client,
		circuit: newCircuitBreaker("openmeteo"),
	}
}

func (p *OpenMeteoProvider) Name() string {
	return p.name
}

// Forecast requests current, hourly and daily data for loc in UTC.
func (p *OpenMeteoProvider) Forecast(ctx context.Context, loc weather.Location) (weather.ForecastResponse, error) {
	values := url.Values{}
	values.Set("latitude", strconv.FormatFloat(loc.Lat, 'f', -1, 64))
	values.Set("longitude", strconv.FormatFloat(loc.Lon, 'f', -1, 64))
	values.Set("current_weather", "true")
	values.Set("hourly", weather.HourlyFields)
	values.Set("daily", weather.DailyFields)
	values.Set("timezone", "UTC")

	resp, err := doRequest(ctx, p.client, p.circuit, fmt.Sprintf("%s?%s", p.baseURL, values.Encode()))
	if err != nil {
		return weather.ForecastResponse{}, err
	}
	defer resp.Body.Close()

	var payload weather.ForecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.ForecastResponse{}, fmt.Errorf("%w: decode response: %v", weather.ErrUpstreamFetch, err)
	}

	return payload, nil
}
