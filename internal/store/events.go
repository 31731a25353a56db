package store

import (
	"sync"

	"github.com/rickgao/polymarket-data/internal/model"
)

// EventStore holds events keyed by event id.
type EventStore struct {
	mu     sync.RWMutex
	events map[string]model.Event
}

// NewEventStore creates an empty EventStore.
func NewEventStore() *EventStore {
	return &EventStore{
		events: make(map[string]model.Event),
	}
}

// Upsert inserts or replaces an event wholesale. There is no field-level
// merge: the stored value is exactly the argument.
func (s *EventStore) Upsert(e model.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events[e.EventID] = e
}

// Get returns the event with the given id.
func (s *EventStore) Get(eventID string) (model.Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.events[eventID]
	return e, ok
}

// ListByCategory returns all events whose raw category label equals the
// given one. Equality scan over current values; there is no index.
func (s *EventStore) ListByCategory(category string) []model.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []model.Event
	for _, e := range s.events {
		if e.Category == category {
			result = append(result, e)
		}
	}
	return result
}

// Len returns the number of stored events.
func (s *EventStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.events)
}
