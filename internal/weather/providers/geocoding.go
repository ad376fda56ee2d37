package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/kelvins/geocoder"
	"github.com/sony/gobreaker"

	"github.com/i474232898/meteo-dashboard/internal/weather"
)

// DefaultGeocodingURL is the Open-Meteo place search endpoint.
const DefaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"

// OpenMeteoGeocoder implements weather.Geocoder with the Open-Meteo search API.
type OpenMeteoGeocoder struct {
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoGeocoder(client *http.Client, baseURL string) *OpenMeteoGeocoder {
	if baseURL == "" {
		baseURL = DefaultGeocodingURL
	}
	return &OpenMeteoGeocoder{
		baseURL: baseURL,
		client:  client,
		circuit: newCircuitBreaker("openmeteo-geocoding"),
	}
}

// Search returns the best match for name.
func (g *OpenMeteoGeocoder) Search(ctx context.Context, name string) (weather.Place, error) {
	values := url.Values{}
	values.Set("name", name)
	values.Set("count", "1")

	resp, err := doRequest(ctx, g.client, g.circuit, fmt.Sprintf("%s?%s", g.baseURL, values.Encode()))
	if err != nil {
		return weather.Place{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Results []struct {
			Name        string  `json:"name"`
			Latitude    float64 `json:"latitude"`
			Longitude   float64 `json:"longitude"`
			Admin1      string  `json:"admin1"`
			CountryCode string  `json:"country_code"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Place{}, fmt.Errorf("%w: decode response: %v", weather.ErrUpstreamFetch, err)
	}
	if len(payload.Results) == 0 {
		return weather.Place{}, weather.ErrPlaceNotFound
	}

	r := payload.Results[0]
	return weather.Place{
		Name:  r.Name,
		Label: joinNonEmpty(", ", r.Name, r.Admin1, r.CountryCode),
		Lat:   r.Latitude,
		Lon:   r.Longitude,
	}, nil
}

// GoogleReverseGeocoder implements weather.ReverseGeocoder with the Google
// Geocoding API through kelvins/geocoder.
type GoogleReverseGeocoder struct{}

// NewGoogleReverseGeocoder sets the package-level API key used by kelvins/geocoder.
func NewGoogleReverseGeocoder(apiKey string) *GoogleReverseGeocoder {
	geocoder.ApiKey = apiKey
	return &GoogleReverseGeocoder{}
}

// Reverse returns the formatted address closest to loc.
func (g *GoogleReverseGeocoder) Reverse(ctx context.Context, loc weather.Location) (string, error) {
	type result struct {
		addresses []geocoder.Address
		err       error
	}

	// The library has no context support; abandon the call when ctx ends.
	ch := make(chan result, 1)
	go func() {
		addresses, err := geocoder.GeocodingReverse(geocoder.Location{
			Latitude:  loc.Lat,
			Longitude: loc.Lon,
		})
		ch <- result{addresses: addresses, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		if r.err != nil {
			return "", fmt.Errorf("reverse geocode: %w", r.err)
		}
		if len(r.addresses) == 0 {
			return "", weather.ErrPlaceNotFound
		}
		a := r.addresses[0]
		if a.FormattedAddress != "" {
			return a.FormattedAddress, nil
		}
		label := joinNonEmpty(", ", a.City, a.State, a.Country)
		if label == "" {
			return "", weather.ErrPlaceNotFound
		}
		return label, nil
	}
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
