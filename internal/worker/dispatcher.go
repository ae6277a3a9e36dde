package worker

import (
	"context"
	"log/slog"
	"sync"

	"github.com/kairos-ev/ordertrack/internal/adapter/notify"
	"github.com/kairos-ev/ordertrack/internal/domain/model"
)

// Dispatcher delivers milestone events to the messaging collaborator
// asynchronously. Enqueueing never blocks the transition path: when the
// queue is full the event is dropped and logged.
type Dispatcher struct {
	sender  notify.Sender
	workers int
	logger  *slog.Logger

	events chan model.StatusEvent
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewDispatcher constructs the notification worker pool.
func NewDispatcher(sender notify.Sender, workers, buffer int, logger *slog.Logger) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if buffer <= 0 {
		buffer = 1
	}
	return &Dispatcher{
		sender:  sender,
		workers: workers,
		logger:  logger,
		events:  make(chan model.StatusEvent, buffer),
	}
}

// Start launches background delivery workers.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(runCtx)
	}
}

// Stop waits for all workers to finish.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()

	d.wg.Wait()
}

// Notify enqueues an event without blocking.
func (d *Dispatcher) Notify(event model.StatusEvent) {
	select {
	case d.events <- event:
	default:
		d.logger.Warn("notification queue full, event dropped",
			slog.String("order", event.OrderNumber),
			slog.String("stage", string(event.Stage)),
		)
	}
}

func (d *Dispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-d.events:
			d.deliver(ctx, event)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, event model.StatusEvent) {
	if err := d.sender.Send(ctx, event); err != nil {
		d.logger.Error("milestone notification failed",
			slog.String("order", event.OrderNumber),
			slog.String("stage", string(event.Stage)),
			slog.String("error", err.Error()),
		)
	}
}
