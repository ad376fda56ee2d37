package consult

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/i474232898/meteo-dashboard/internal/notify"
	"github.com/i474232898/meteo-dashboard/internal/observability"
	"github.com/i474232898/meteo-dashboard/internal/weather"
)

var validate = validator.New()

// reverseGeocodeTimeout bounds the optional place lookup so it cannot stall creation.
const reverseGeocodeTimeout = 2 * time.Second

// Store is the contract the consultation store must satisfy.
type Store interface {
	Append(build func(id int) Consultation) Consultation
	List() []Consultation
	Get(id int) (Consultation, error)
	Len() int
}

// Forecaster returns a fresh canonical weather payload for a location.
type Forecaster interface {
	Fetch(ctx context.Context, loc weather.Location) (weather.CanonicalWeather, error)
}

// Notifier queues report emails for delivery.
type Notifier interface {
	Enqueue(msg notify.Message) error
}

// PDFRenderer turns report lines into a PDF document.
type PDFRenderer interface {
	Render(lines []string) ([]byte, error)
}

// Options holds the optional collaborators of a Service.
type Options struct {
	Clock    clockwork.Clock         // defaults to the real clock
	Notifier Notifier                // nil disables email
	PDF      PDFRenderer             // nil makes ReportPDF return ErrPDFUnavailable
	Reverse  weather.ReverseGeocoder // nil skips location labels
}

// Service orchestrates consultation creation and lookup.
type Service struct {
	store     Store
	forecasts Forecaster
	opts      Options
	metrics   *observability.Metrics
	logger    *zap.Logger
}

// NewService creates a new Service.
func NewService(store Store, forecasts Forecaster, opts Options, metrics *observability.Metrics, logger *zap.Logger) *Service {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	return &Service{
		store:     store,
		forecasts: forecasts,
		opts:      opts,
		metrics:   metrics,
		logger:    logger,
	}
}

// Create validates req, snapshots the weather, assesses risk, renders the report,
// stores the record and queues the email. Validation and upstream failures leave
// the store untouched; email failures never fail the call.
func (s *Service) Create(ctx context.Context, req Request, logger *zap.Logger) (Consultation, error) {
	if logger == nil {
		logger = s.logger
	}

	if err := validate.Struct(req); err != nil {
		s.metrics.ValidationFailures.Inc()
		return Consultation{}, &ValidationError{Msg: "name and email required"}
	}
	if !req.Lat.Valid || !req.Lon.Valid {
		s.metrics.ValidationFailures.Inc()
		return Consultation{}, &ValidationError{Msg: "lat/lon must be numbers"}
	}

	industry := DefaultIndustry
	if req.Industry != nil && strings.TrimSpace(*req.Industry) != "" {
		industry = *req.Industry
	}
	notes := ""
	if req.Notes != nil {
		notes = *req.Notes
	}

	loc := weather.Location{Lat: req.Lat.Value, Lon: req.Lon.Value}
	snapshot, err := s.forecasts.Fetch(ctx, loc)
	if err != nil {
		return Consultation{}, err
	}
	risk := weather.AssessRisk(snapshot.Current)
	label := s.locationLabel(ctx, loc, logger)

	record := s.store.Append(func(id int) Consultation {
		createdAt := s.opts.Clock.Now().UTC().Format(CreatedAtLayout)
		return Consultation{
			ID:            id,
			Name:          req.Name,
			Email:         req.Email,
			Lat:           loc.Lat,
			Lon:           loc.Lon,
			Industry:      industry,
			Notes:         notes,
			LocationLabel: label,
			CreatedAt:     createdAt,
			Weather:       snapshot,
			Risk:          risk,
			Report: RenderReport(ReportFields{
				ID:        id,
				CreatedAt: createdAt,
				Lat:       req.Lat.Raw,
				Lon:       req.Lon.Raw,
				Industry:  industry,
				Notes:     notes,
			}, snapshot.Current, risk.Hazards),
		}
	})
	s.metrics.ConsultationsCreated.Inc()

	logger.Info("consultation created",
		zap.Int("id", record.ID),
		zap.String("location", loc.Key()),
		zap.String("risk_level", string(risk.Level)))

	s.notify(record, logger)
	return record, nil
}

// List returns every consultation, most recent first.
func (s *Service) List() []Consultation {
	return s.store.List()
}

// Get returns a single consultation by id.
func (s *Service) Get(id int) (Consultation, error) {
	return s.store.Get(id)
}

// ReportPDF renders the stored report of consultation id as a PDF.
// Availability is checked before the lookup.
func (s *Service) ReportPDF(id int) ([]byte, error) {
	if s.opts.PDF == nil {
		s.metrics.PDFRenders.WithLabelValues("unavailable").Inc()
		return nil, ErrPDFUnavailable
	}

	c, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}

	doc, err := s.opts.PDF.Render(strings.Split(c.Report, "\n"))
	if err != nil {
		s.metrics.PDFRenders.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: %v", ErrPDFUnavailable, err)
	}
	s.metrics.PDFRenders.WithLabelValues("ok").Inc()
	return doc, nil
}

func (s *Service) locationLabel(ctx context.Context, loc weather.Location, logger *zap.Logger) string {
	if s.opts.Reverse == nil {
		return ""
	}

	ctx, cancel := context.WithTimeout(ctx, reverseGeocodeTimeout)
	defer cancel()

	label, err := s.opts.Reverse.Reverse(ctx, loc)
	if err != nil {
		if !errors.Is(err, weather.ErrPlaceNotFound) {
			logger.Warn("reverse geocoding failed", zap.String("location", loc.Key()), zap.Error(err))
		}
		return ""
	}
	return label
}

func (s *Service) notify(c Consultation, logger *zap.Logger) {
	if s.opts.Notifier == nil {
		return
	}
	err := s.opts.Notifier.Enqueue(notify.Message{
		To:      c.Email,
		Subject: fmt.Sprintf("Your Consultation Report #%d", c.ID),
		Body:    c.Report,
	})
	if err != nil {
		logger.Error("email not queued", zap.Int("id", c.ID), zap.Error(err))
	}
}
