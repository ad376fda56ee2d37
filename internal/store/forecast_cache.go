package store

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/i474232898/meteo-dashboard/internal/weather"
)

type cachedForecast struct {
	payload   weather.CanonicalWeather
	fetchedAt time.Time
}

// ForecastCache keeps recently fetched canonical payloads per location.
type ForecastCache struct {
	mu      sync.RWMutex
	entries map[string]cachedForecast

	maxAge time.Duration // <= 0 disables the cache
	clock  clockwork.Clock
}

// NewForecastCache creates a cache whose entries expire after maxAge.
// If maxAge is <= 0, every lookup misses and nothing is stored.
func NewForecastCache(maxAge time.Duration, clock clockwork.Clock) *ForecastCache {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &ForecastCache{
		entries: make(map[string]cachedForecast),
		maxAge:  maxAge,
		clock:   clock,
	}
}

// Get returns the payload for loc if it is younger than maxAge.
func (c *ForecastCache) Get(loc weather.Location) (weather.CanonicalWeather, bool) {
	if c.maxAge <= 0 {
		return weather.CanonicalWeather{}, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[loc.Key()]
	if !ok || c.clock.Since(e.fetchedAt) >= c.maxAge {
		return weather.CanonicalWeather{}, false
	}
	return e.payload, true
}

// Put stores payload for loc and prunes expired entries.
func (c *ForecastCache) Put(loc weather.Location, payload weather.CanonicalWeather) {
	if c.maxAge <= 0 {
		return
	}

	now := c.clock.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[loc.Key()] = cachedForecast{payload: payload, fetchedAt: now}

	cutoff := now.Add(-c.maxAge)
	for k, e := range c.entries {
		if !e.fetchedAt.After(cutoff) {
			delete(c.entries, k)
		}
	}
}

// Len reports how many entries are held, expired or not.
func (c *ForecastCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
