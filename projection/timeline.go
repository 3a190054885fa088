package projection

import (
	"context"
	"profiler-viz/domain"
	"profiler-viz/domain/event"
	"profiler-viz/errors"
	"sort"
	"sync"

	"github.com/samber/lo"
)

type entry struct {
	seq     uint64
	message domain.Message
}

// Timeline holds the message array of every profile, in sequence order.
// It is seeded from storage and kept current by MessageRecorded events.
type Timeline struct {
	mu       sync.RWMutex
	profiles map[string][]entry
}

func NewTimeline() *Timeline {
	return &Timeline{profiles: make(map[string][]entry)}
}

// Load replaces the messages of profile with stored ones, keyed by their
// stored sequence so later records land right after them.
func (t *Timeline) Load(profile string, messages []domain.RecordedMessage) {
	t.mu.Lock()
	defer t.mu.Unlock()
	entries := lo.Map(messages, func(m domain.RecordedMessage, _ int) entry {
		return entry{seq: m.Seq, message: m.Message}
	})
	sort.Slice(entries, func(i, j int) bool { return entries[i].seq < entries[j].seq })
	t.profiles[profile] = entries
}

func (t *Timeline) Consume(_ context.Context, e event.DomainEvent) error {
	evt, ok := e.(event.MessageRecorded)
	if !ok {
		return nil
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	entries := t.profiles[evt.Profile]
	i := sort.Search(len(entries), func(i int) bool { return entries[i].seq >= evt.Seq })
	if i < len(entries) && entries[i].seq == evt.Seq {
		entries[i].message = evt.Message
		return nil
	}
	entries = append(entries, entry{})
	copy(entries[i+1:], entries[i:])
	entries[i] = entry{seq: evt.Seq, message: evt.Message}
	t.profiles[evt.Profile] = entries
	return nil
}

func (t *Timeline) Messages(profile string) ([]domain.Message, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	entries, ok := t.profiles[profile]
	if !ok {
		return nil, errors.ErrUnknownProfile
	}
	return lo.Map(entries, func(e entry, _ int) domain.Message { return e.message }), nil
}

func (t *Timeline) Profiles() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	profiles := lo.Keys(t.profiles)
	sort.Strings(profiles)
	return profiles
}
