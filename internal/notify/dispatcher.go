package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/i474232898/meteo-dashboard/internal/observability"
)

var (
	errQueueFull = errors.New("notification queue full")
	errStopped   = errors.New("dispatcher stopped")
)

// Dispatcher sends messages from a bounded queue on a fixed pool of workers,
// keeping email delivery off the request path.
type Dispatcher struct {
	mailer  Mailer
	queue   chan Message
	workers int
	timeout time.Duration

	metrics *observability.Metrics
	logger  *zap.Logger

	mu      sync.RWMutex
	stopped bool
	group   errgroup.Group
}

// NewDispatcher creates a dispatcher; call Start before enqueueing.
func NewDispatcher(mailer Mailer, workers, queueSize int, timeout time.Duration, metrics *observability.Metrics, logger *zap.Logger) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Dispatcher{
		mailer:  mailer,
		queue:   make(chan Message, queueSize),
		workers: workers,
		timeout: timeout,
		metrics: metrics,
		logger:  logger,
	}
}

// Start launches the workers.
func (d *Dispatcher) Start() {
	for i := 0; i < d.workers; i++ {
		d.group.Go(func() error {
			for msg := range d.queue {
				d.send(msg)
			}
			return nil
		})
	}
	d.logger.Info("notification dispatcher started", zap.Int("workers", d.workers), zap.Int("queue_size", cap(d.queue)))
}

// Enqueue hands msg to the workers without blocking. A full or stopped queue
// yields an error wrapping ErrNotification.
func (d *Dispatcher) Enqueue(msg Message) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		d.metrics.Notifications.WithLabelValues("dropped").Inc()
		return fmt.Errorf("%w: %v", ErrNotification, errStopped)
	}

	select {
	case d.queue <- msg:
		return nil
	default:
		d.metrics.Notifications.WithLabelValues("dropped").Inc()
		return fmt.Errorf("%w: %v", ErrNotification, errQueueFull)
	}
}

// Stop closes the queue and waits for queued messages to drain or ctx to end.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if !d.stopped {
		d.stopped = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan error, 1)
	go func() { done <- d.group.Wait() }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) send(msg Message) {
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	if err := d.mailer.Send(ctx, msg); err != nil {
		d.metrics.Notifications.WithLabelValues("failed").Inc()
		d.logger.Error("email failed",
			zap.String("to", msg.To),
			zap.String("subject", msg.Subject),
			zap.Error(fmt.Errorf("%w: %v", ErrNotification, err)))
		return
	}

	d.metrics.Notifications.WithLabelValues("sent").Inc()
	d.logger.Info("email sent", zap.String("to", msg.To), zap.String("subject", msg.Subject))
}
