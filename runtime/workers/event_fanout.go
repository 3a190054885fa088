package workers

import (
	"context"
	"log/slog"
	"profiler-viz/contract"
	"profiler-viz/domain/event"
	"profiler-viz/errors"
	"sync"
	"time"
)

// EventFanout broadcasts domain events to multiple in-process consumers.
//
// It provides best-effort fan-out with no guarantees regarding delivery,
// ordering, durability, or retries. EventFanout is not a message broker.
//
// Emit never blocks the caller: a full buffer drops the event.
// EventFanout is safe for concurrent use by multiple goroutines.
type EventFanout struct {
	log         *slog.Logger
	events      chan event.DomainEvent
	sinkTimeout time.Duration
	mu          sync.RWMutex
	sinks       []contract.EventSink
}

func NewEventFanout(log *slog.Logger, bufferSize int, sinkTimeout time.Duration) *EventFanout {
	return &EventFanout{
		log:         log,
		events:      make(chan event.DomainEvent, bufferSize),
		sinkTimeout: sinkTimeout,
	}
}

func (w *EventFanout) Add(sinks ...contract.EventSink) *EventFanout {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.sinks = append(w.sinks, sinks...)
	return w
}

// Emit queues e for delivery and returns immediately.
func (w *EventFanout) Emit(e event.DomainEvent) {
	select {
	case w.events <- e:
	default:
		w.log.Debug(errors.ErrEventBufferFull.Error(), "event", e.Name())
	}
}

func (w *EventFanout) Run(ctx context.Context) error {
	for {
		select {
		case evt := <-w.events:
			w.Fanout(ctx, evt)
		case <-ctx.Done():
			w.log.Debug("Context done, stopping event fanout")
			return nil
		}
	}
}

// Fanout One sink for each event
// Every sink gets its own deadline, a slow sink only delays itself.
func (w *EventFanout) Fanout(ctx context.Context, evt event.DomainEvent) {
	w.mu.RLock()
	sinks := append([]contract.EventSink(nil), w.sinks...)
	w.mu.RUnlock()

	var wg sync.WaitGroup
	for _, sink := range sinks {
		wg.Add(1)
		go func(s contract.EventSink) {
			defer wg.Done()
			sinkCtx, cancel := context.WithTimeout(ctx, w.sinkTimeout)
			defer cancel()
			if err := s.Consume(sinkCtx, evt); err != nil {
				w.log.Warn("Sink failed to consume event", "event", evt.Name(), "error", err)
			}
		}(sink)
	}
	wg.Wait()
}
