package store

import (
	"sync"

	"github.com/rickgao/polymarket-data/internal/model"
)

// AnalyticsStore holds derived analytics keyed by event id.
type AnalyticsStore struct {
	mu        sync.RWMutex
	analytics map[string]model.EventAnalytics
}

// NewAnalyticsStore creates an empty AnalyticsStore.
func NewAnalyticsStore() *AnalyticsStore {
	return &AnalyticsStore{
		analytics: make(map[string]model.EventAnalytics),
	}
}

// Upsert inserts or replaces a record wholesale. An all-unset record is
// a valid cached "no data" result, distinct from absence.
func (s *AnalyticsStore) Upsert(a model.EventAnalytics) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.analytics[a.EventID] = a
}

// Get returns the analytics record for the given event id.
func (s *AnalyticsStore) Get(eventID string) (model.EventAnalytics, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.analytics[eventID]
	return a, ok
}
