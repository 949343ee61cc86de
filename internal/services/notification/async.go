package notification

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"payments/internal/models"

	"go.uber.org/zap"
)

var (
	ErrQueueFull = errors.New("notification queue is full")
	ErrClosed    = errors.New("notifier is closed")
)

const asyncSink = "async"

type job struct {
	ctx     context.Context
	account models.Account
	message string
}

// Async queues notifications for a background worker so callers never block
// on delivery. Events are dropped when the queue is full.
type Async struct {
	next    Notifier
	log     *zap.Logger
	metrics MetricsCollector

	mu     sync.RWMutex
	closed bool
	queue  chan job
	done   chan struct{}
}

func NewAsync(next Notifier, queueSize int, log *zap.Logger, metrics MetricsCollector) *Async {
	if next == nil {
		panic("next notifier is required")
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	if metrics == nil {
		metrics = &NoopMetricsCollector{}
	}

	a := &Async{
		next:    next,
		log:     log,
		metrics: metrics,
		queue:   make(chan job, queueSize),
		done:    make(chan struct{}),
	}
	go a.run()
	return a
}

func (a *Async) NotifyAboutTransfer(ctx context.Context, account models.Account, message string) error {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.closed {
		return ErrClosed
	}

	select {
	case a.queue <- job{ctx: context.WithoutCancel(ctx), account: account, message: message}:
		return nil
	default:
		a.metrics.RecordNotification(asyncSink, "dropped")
		return ErrQueueFull
	}
}

// Close stops accepting events and waits for queued ones to be delivered.
func (a *Async) Close(ctx context.Context) error {
	a.mu.Lock()
	if !a.closed {
		a.closed = true
		close(a.queue)
	}
	a.mu.Unlock()

	select {
	case <-a.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("notification queue not drained: %w", ctx.Err())
	}
}

func (a *Async) run() {
	defer close(a.done)
	for j := range a.queue {
		if err := a.deliver(j); err != nil {
			a.metrics.RecordNotification(asyncSink, "failed")
			a.log.Warn("notification delivery failed",
				zap.String("account_id", j.account.ID),
				zap.Error(err),
			)
			continue
		}
		a.metrics.RecordNotification(asyncSink, "delivered")
	}
}

func (a *Async) deliver(j job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("notifier panicked: %v", r)
		}
	}()
	return a.next.NotifyAboutTransfer(j.ctx, j.account, j.message)
}
