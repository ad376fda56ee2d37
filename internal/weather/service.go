package weather

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/i474232898/meteo-dashboard/internal/observability"
)

// Cache is the contract the forecast cache must satisfy.
type Cache interface {
	Get(loc Location) (CanonicalWeather, bool)
	Put(loc Location, payload CanonicalWeather)
}

// Service fetches forecasts from the provider and normalizes them.
type Service struct {
	provider Provider
	cache    Cache
	timeout  time.Duration
	metrics  *observability.Metrics
	logger   *zap.Logger
}

// NewService creates a new Service. cache may be nil to disable caching.
func NewService(provider Provider, cache Cache, timeout time.Duration, metrics *observability.Metrics, logger *zap.Logger) *Service {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Service{
		provider: provider,
		cache:    cache,
		timeout:  timeout,
		metrics:  metrics,
		logger:   logger,
	}
}

// Fetch always goes to the provider and returns a fresh canonical payload.
// Any failure is wrapped in ErrUpstreamFetch.
func (s *Service) Fetch(ctx context.Context, loc Location) (CanonicalWeather, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	raw, err := s.provider.Forecast(ctx, loc)
	s.metrics.UpstreamDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.UpstreamErrors.Inc()
		s.logger.Warn("forecast fetch failed",
			zap.String("provider", s.provider.Name()),
			zap.String("location", loc.Key()),
			zap.Error(err))
		if errors.Is(err, ErrUpstreamFetch) {
			return CanonicalWeather{}, err
		}
		return CanonicalWeather{}, fmt.Errorf("%w: %v", ErrUpstreamFetch, err)
	}

	return Normalize(raw), nil
}

// Current serves the live read path, using the cache when one is configured.
func (s *Service) Current(ctx context.Context, loc Location) (CanonicalWeather, error) {
	if s.cache != nil {
		if payload, ok := s.cache.Get(loc); ok {
			s.metrics.CacheLookups.WithLabelValues("hit").Inc()
			return payload, nil
		}
		s.metrics.CacheLookups.WithLabelValues("miss").Inc()
	}

	payload, err := s.Fetch(ctx, loc)
	if err != nil {
		return CanonicalWeather{}, err
	}
	if s.cache != nil {
		s.cache.Put(loc, payload)
	}
	return payload, nil
}

// Refresh fetches a fresh payload and stores it in the cache.
func (s *Service) Refresh(ctx context.Context, loc Location) error {
	if s.cache == nil {
		return nil
	}
	payload, err := s.Fetch(ctx, loc)
	if err != nil {
		return err
	}
	s.cache.Put(loc, payload)
	return nil
}
