package store

import (
	"context"
	"sort"
	"sync"

	"pezkuwi/internal/audit"
	id "pezkuwi/pkg/domain"
)

type InMemory struct {
	mu     sync.RWMutex
	events map[id.UserID][]audit.Event
}

func NewInMemory() *InMemory {
	return &InMemory{events: make(map[id.UserID][]audit.Event)}
}

func (s *InMemory) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[event.UserID] = append(s.events[event.UserID], event)
	return nil
}

// ListByUser returns the user's events, newest first.
func (s *InMemory) ListByUser(_ context.Context, userID id.UserID, limit int) ([]audit.Event, error) {
	s.mu.RLock()
	stored := s.events[userID]
	events := make([]audit.Event, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		events = append(events, stored[i])
	}
	s.mu.RUnlock()

	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.After(events[j].Timestamp)
	})
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events, nil
}
