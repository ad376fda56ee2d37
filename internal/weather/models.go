package weather

import (
	"fmt"
	"strconv"
)

// Location represents a point for which we fetch forecasts.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Key returns a canonical string key for indexing this location in caches.
// Coordinates are rounded to 4 decimals (~11m) so near-identical clicks share an entry.
func (l Location) Key() string {
	return fmt.Sprintf("%.4f:%.4f", l.Lat, l.Lon)
}

// CanonicalWeather is the normalized payload served to the dashboard and
// snapshotted into consultations.
type CanonicalWeather struct {
	Current Current        `json:"current"`
	Hourly  []HourlySample `json:"hourly"`
	Daily   []DailySample  `json:"daily"`
	Alerts  []Alert        `json:"alerts"`
}

// Current holds the conditions at fetch time. Every measurement is optional.
type Current struct {
	Temperature *float64 `json:"temp"`
	// FeelsLike mirrors Temperature; the upstream offers no apparent temperature here.
	FeelsLike  *float64    `json:"feels_like"`
	WindSpeed  *float64    `json:"wind_speed"` // m/s
	Humidity   *float64    `json:"humidity"`   // percent
	Pressure   *float64    `json:"pressure"`
	Visibility *float64    `json:"visibility"`
	Weather    []Condition `json:"weather"`
}

// Code returns the current condition code, if any.
func (c Current) Code() *int {
	if len(c.Weather) == 0 {
		return nil
	}
	return c.Weather[0].Code
}

// Condition is a weather description entry. Description uses the "code:<n>" placeholder scheme.
type Condition struct {
	Description string `json:"description"`
	Code        *int   `json:"code,omitempty"`
}

// HourlySample is one entry of the hourly series.
type HourlySample struct {
	Timestamp   int64       `json:"dt"`
	Temperature *float64    `json:"temp"`
	Weather     []Condition `json:"weather"`
}

// DailySample is one entry of the daily series. Timestamp is the start of the day.
type DailySample struct {
	Timestamp       int64    `json:"dt"`
	TemperatureMax  *float64 `json:"temp_max"`
	TemperatureMin  *float64 `json:"temp_min"`
	Code            *int     `json:"code"`
	RainProbability *float64 `json:"rain_prob"`
}

// Alert is a provider-issued alert. The upstream never supplies any today.
type Alert struct {
	Event       string `json:"event"`
	Description string `json:"description"`
}

// ConditionLabel formats a weather code with the placeholder scheme consumers parse.
func ConditionLabel(code *int) string {
	if code == nil {
		return "code:null"
	}
	return "code:" + strconv.Itoa(*code)
}
