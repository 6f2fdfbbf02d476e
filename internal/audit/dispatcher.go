package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type Event struct {
	ActorID  *string
	Action   string
	Entity   string
	EntityID *string
	Metadata any

	OccurredAt time.Time
}

// Sink receives dispatched events. The database logger and the event
// publisher are both sinks.
type Sink interface {
	Log(ctx context.Context, ev Event) error
}

type Dispatcher struct {
	sinks []Sink
	log   *slog.Logger
	queue chan Event

	closeOnce sync.Once
	done      chan struct{}
}

func NewDispatcher(log *slog.Logger, sinks ...Sink) *Dispatcher {
	d := &Dispatcher{
		sinks: sinks,
		log:   log,
		queue: make(chan Event, 100),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		for _, s := range d.sinks {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := s.Log(ctx, ev); err != nil {
				d.log.Warn("audit sink failed", "action", ev.Action, "error", err)
			}
			cancel()
		}
	}
}

// Dispatch enqueues ev without blocking. Events are dropped when the queue is full.
// A nil dispatcher discards everything.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}

	defer func() {
		// send on closed queue after shutdown
		if recover() != nil {
			d.log.Warn("audit dispatcher closed, dropping event", "action", ev.Action)
		}
	}()

	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event", "action", ev.Action)
	}
}

// Close stops accepting events and waits for queued ones to drain or ctx to end.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.closeOnce.Do(func() { close(d.queue) })

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
