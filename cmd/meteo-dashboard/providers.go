package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/jonboulle/clockwork"
	"go.uber.org/fx"
	"go.uber.org/zap"

	httpapi "github.com/i474232898/meteo-dashboard/internal/api/http"
	"github.com/i474232898/meteo-dashboard/internal/config"
	"github.com/i474232898/meteo-dashboard/internal/consult"
	"github.com/i474232898/meteo-dashboard/internal/logging"
	"github.com/i474232898/meteo-dashboard/internal/notify"
	"github.com/i474232898/meteo-dashboard/internal/observability"
	"github.com/i474232898/meteo-dashboard/internal/pdf"
	"github.com/i474232898/meteo-dashboard/internal/scheduler"
	"github.com/i474232898/meteo-dashboard/internal/store"
	"github.com/i474232898/meteo-dashboard/internal/weather"
	"github.com/i474232898/meteo-dashboard/internal/weather/providers"
)

func newLogger(lc fx.Lifecycle, cfg *config.AppConfig) (*zap.Logger, error) {
	logger, err := logging.NewLogger(cfg.ServiceName, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			_ = logger.Sync()
			return nil
		},
	})
	return logger, nil
}

func provideMetrics() *observability.Metrics {
	return observability.NewMetrics()
}

// newHTTPClient returns the shared client for outbound upstream calls.
func newHTTPClient(cfg *config.AppConfig) *http.Client {
	return &http.Client{Timeout: cfg.ForecastTimeout}
}

func provideForecastProvider(client *http.Client, cfg *config.AppConfig) weather.Provider {
	return providers.NewOpenMeteoProvider(client, cfg.OpenMeteoURL)
}

func provideForecastCache(cfg *config.AppConfig) *store.ForecastCache {
	return store.NewForecastCache(cfg.ForecastCacheTTL, clockwork.NewRealClock())
}

func provideWeatherService(
	provider weather.Provider,
	cache *store.ForecastCache,
	cfg *config.AppConfig,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *weather.Service {
	return weather.NewService(provider, cache, cfg.ForecastTimeout, metrics, logger)
}

func provideGeocoder(client *http.Client, cfg *config.AppConfig) weather.Geocoder {
	return providers.NewOpenMeteoGeocoder(client, cfg.GeocodingURL)
}

func provideDispatcher(lc fx.Lifecycle, cfg *config.AppConfig, metrics *observability.Metrics, logger *zap.Logger) *notify.Dispatcher {
	var mailer notify.Mailer
	if cfg.NotificationsEnabled() {
		mailer = notify.NewSMTPMailer(cfg.SMTP)
		logger.Info("smtp notifications enabled", zap.String("host", cfg.SMTP.Host), zap.Int("port", cfg.SMTP.Port))
	} else {
		mailer = notify.NewLogMailer(logger)
		logger.Info("smtp notifications disabled; emails will be logged only")
	}

	d := notify.NewDispatcher(mailer, cfg.NotifyWorkers, cfg.NotifyQueueSize, cfg.SMTP.Timeout, metrics, logger)
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			d.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return d.Stop(ctx)
		},
	})
	return d
}

func provideConsultationService(
	cfg *config.AppConfig,
	forecasts *weather.Service,
	dispatcher *notify.Dispatcher,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *consult.Service {
	opts := consult.Options{
		Clock:    clockwork.NewRealClock(),
		Notifier: dispatcher,
	}
	if cfg.PDFEnabled {
		opts.PDF = pdf.NewRenderer()
	}
	if cfg.GoogleGeocoderAPIKey != "" {
		opts.Reverse = providers.NewGoogleReverseGeocoder(cfg.GoogleGeocoderAPIKey)
	}
	logger.Info("consultation service configured",
		zap.Bool("pdf_enabled", cfg.PDFEnabled),
		zap.Bool("reverse_geocoding", opts.Reverse != nil))

	return consult.NewService(store.NewConsultationStore(), forecasts, opts, metrics, logger)
}

func provideScheduler(cfg *config.AppConfig, forecasts *weather.Service, logger *zap.Logger) *scheduler.Scheduler {
	return scheduler.New(cfg.PreloadLocations, cfg.PreloadInterval, cfg.ForecastTimeout, forecasts, logger)
}

func provideFiberApp(
	cfg *config.AppConfig,
	forecasts *weather.Service,
	geocoder weather.Geocoder,
	consultations *consult.Service,
	logger *zap.Logger,
) *fiber.App {
	return httpapi.NewApp(cfg.ServiceName, httpapi.Deps{
		Weather:       forecasts,
		Geocoder:      geocoder,
		Consultations: consultations,
		Logger:        logger,
	})
}

func startScheduler(lc fx.Lifecycle, sched *scheduler.Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			return sched.Start()
		},
		OnStop: func(context.Context) error {
			sched.Stop()
			return nil
		},
	})
}

func startServer(lc fx.Lifecycle, app *fiber.App, cfg *config.AppConfig, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				logger.Info("http server starting", zap.String("port", cfg.Port))
				if err := app.Listen(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("fiber server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
	})
}
