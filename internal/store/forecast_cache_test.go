package store

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/meteo-dashboard/internal/weather"
)

func payloadWithTemp(v float64) weather.CanonicalWeather {
	return weather.CanonicalWeather{Current: weather.Current{Temperature: &v}}
}

func TestForecastCache_HitWithinMaxAge(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := NewForecastCache(10*time.Minute, clock)
	loc := weather.Location{Lat: 48.85, Lon: 2.35}

	_, ok := c.Get(loc)
	assert.False(t, ok)

	c.Put(loc, payloadWithTemp(12))
	clock.Advance(9 * time.Minute)

	got, ok := c.Get(loc)
	require.True(t, ok)
	assert.Equal(t, 12.0, *got.Current.Temperature)
}

func TestForecastCache_ExpiresAtMaxAge(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := NewForecastCache(10*time.Minute, clock)
	loc := weather.Location{Lat: 48.85, Lon: 2.35}

	c.Put(loc, payloadWithTemp(12))
	clock.Advance(10 * time.Minute)

	_, ok := c.Get(loc)
	assert.False(t, ok)
}

func TestForecastCache_PutPrunesExpired(t *testing.T) {
	clock := clockwork.NewFakeClock()
	c := NewForecastCache(time.Minute, clock)

	c.Put(weather.Location{Lat: 1, Lon: 1}, payloadWithTemp(1))
	c.Put(weather.Location{Lat: 2, Lon: 2}, payloadWithTemp(2))
	assert.Equal(t, 2, c.Len())

	clock.Advance(2 * time.Minute)
	c.Put(weather.Location{Lat: 3, Lon: 3}, payloadWithTemp(3))
	assert.Equal(t, 1, c.Len())
}

func TestForecastCache_NearbyPointsShareEntry(t *testing.T) {
	c := NewForecastCache(time.Minute, clockwork.NewFakeClock())

	c.Put(weather.Location{Lat: 10.00001, Lon: 20.00001}, payloadWithTemp(7))
	_, ok := c.Get(weather.Location{Lat: 10.00002, Lon: 20.00002})
	assert.True(t, ok)
}

func TestForecastCache_DisabledWhenMaxAgeNotPositive(t *testing.T) {
	c := NewForecastCache(0, clockwork.NewFakeClock())
	loc := weather.Location{Lat: 1, Lon: 1}

	c.Put(loc, payloadWithTemp(1))
	_, ok := c.Get(loc)
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}
