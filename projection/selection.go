// Package projection builds local read models from observed events.
// Handles ordering and projections.
// Does not emit events or interact with UI directly.
package projection

import (
	"context"
	"profiler-viz/domain"
	"profiler-viz/domain/event"
	"profiler-viz/errors"
	"sync"
)

// Selection remembers the last clicked message of each widget.
type Selection struct {
	mu       sync.RWMutex
	selected map[string]domain.Message
}

func NewSelection() *Selection {
	return &Selection{selected: make(map[string]domain.Message)}
}

func (s *Selection) Consume(_ context.Context, e event.DomainEvent) error {
	evt, ok := e.(event.MessageClicked)
	if !ok {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected[evt.WidgetID] = evt.Message
	return nil
}

func (s *Selection) Selected(widgetID string) (domain.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.selected[widgetID]
	if !ok {
		return domain.Message{}, errors.ErrNoSelection
	}
	return m, nil
}
