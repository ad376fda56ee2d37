package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/i474232898/meteo-dashboard/internal/weather"
)

// Refresher fetches and caches the forecast for a location.
type Refresher interface {
	Refresh(ctx context.Context, loc weather.Location) error
}

// Scheduler periodically warms the forecast cache for configured locations.
type Scheduler struct {
	scheduler *gocron.Scheduler
	refresher Refresher
	locations []weather.Location
	interval  time.Duration
	timeout   time.Duration
	logger    *zap.Logger
}

// New creates a new Scheduler.
func New(locations []weather.Location, interval, timeout time.Duration, refresher Refresher, logger *zap.Logger) *Scheduler {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		refresher: refresher,
		locations: locations,
		interval:  interval,
		timeout:   timeout,
		logger:    logger,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
// The first run happens immediately.
func (s *Scheduler) Start() error {
	if len(s.locations) == 0 {
		s.logger.Info("scheduler: no preload locations configured; nothing to schedule")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).SingletonMode().Do(s.RunOnce)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.logger.Info("scheduler started", zap.Int("locations", len(s.locations)), zap.Duration("interval", s.interval))
	return nil
}

// RunOnce refreshes every configured location concurrently.
func (s *Scheduler) RunOnce() {
	s.logger.Debug("scheduler: running forecast preload job")

	var wg sync.WaitGroup
	for _, loc := range s.locations {
		wg.Add(1)
		go func(loc weather.Location) {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
			defer cancel()

			if err := s.refresher.Refresh(ctx, loc); err != nil {
				s.logger.Warn("scheduler: preload failed", zap.String("location", loc.Key()), zap.Error(err))
			}
		}(loc)
	}
	wg.Wait()

	s.logger.Debug("scheduler: completed forecast preload job")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
