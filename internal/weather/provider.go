package weather

import (
	"context"
	"errors"
)

// ErrUpstreamFetch marks any failure talking to the forecast provider:
// transport errors, non-2xx statuses, malformed bodies, or an open circuit.
var ErrUpstreamFetch = errors.New("upstream forecast fetch failed")

// Provider abstracts the forecast source (Open-Meteo in production).
type Provider interface {
	Name() string
	Forecast(ctx context.Context, loc Location) (ForecastResponse, error)
}

// Place is a geocoding match.
type Place struct {
	Name  string  `json:"name"`
	Label string  `json:"label"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
}

// Geocoder resolves place names to coordinates.
type Geocoder interface {
	Search(ctx context.Context, name string) (Place, error)
}

// ReverseGeocoder resolves coordinates to a human-readable label.
type ReverseGeocoder interface {
	Reverse(ctx context.Context, loc Location) (string, error)
}

// ErrPlaceNotFound is returned by geocoders when nothing matches.
var ErrPlaceNotFound = errors.New("location not found")
