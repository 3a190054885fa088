package sink

import (
	"context"
	"log/slog"
	"profiler-viz/domain/event"
	"sync"
)

// ClickLog records every clicked timeline bar.
// Only the most recent clicks are kept in memory.
type ClickLog struct {
	log     *slog.Logger
	mu      sync.Mutex
	max     int
	history []event.MessageClicked
}

func NewClickLog(log *slog.Logger, maxHistory int) *ClickLog {
	return &ClickLog{log: log, max: maxHistory}
}

func (c *ClickLog) Consume(_ context.Context, e event.DomainEvent) error {
	evt, ok := e.(event.MessageClicked)
	if !ok {
		return nil
	}
	c.log.Info("Message clicked",
		"widget", evt.WidgetID,
		"index", evt.Index,
		"source", evt.Message.Source,
		"message_id", evt.Message.ID,
	)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.history = append(c.history, evt)
	if c.max > 0 && len(c.history) > c.max {
		c.history = c.history[len(c.history)-c.max:]
	}
	return nil
}

// History returns the recorded clicks, oldest first.
func (c *ClickLog) History() []event.MessageClicked {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]event.MessageClicked(nil), c.history...)
}
