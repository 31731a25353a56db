package store

import (
	"iter"
	"sync"
	"time"

	"github.com/rickgao/polymarket-data/internal/model"
)

// PriceStore holds append-only price sequences keyed by market id.
type PriceStore struct {
	mu     sync.RWMutex
	prices map[string][]model.PricePoint
}

// NewPriceStore creates an empty PriceStore.
func NewPriceStore() *PriceStore {
	return &PriceStore{
		prices: make(map[string][]model.PricePoint),
	}
}

// Add appends a price point to its market's sequence. Points are never
// mutated or removed afterwards.
func (s *PriceStore) Add(p model.PricePoint) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prices[p.MarketID] = append(s.prices[p.MarketID], p)
}

// ListForMarket returns a defensive copy of a market's full history.
func (s *PriceStore) ListForMarket(marketID string) []model.PricePoint {
	s.mu.RLock()
	defer s.mu.RUnlock()

	points := s.prices[marketID]
	result := make([]model.PricePoint, len(points))
	copy(result, points)
	return result
}

// InWindow returns a lazy sequence of a market's price points whose
// timestamp lies in [start, end], inclusive on both bounds. A nil bound
// is unconstrained on that side.
//
// The sequence iterates a snapshot of the sequence taken at call time:
// points are append-only and never mutated, so filtering outside the
// lock is safe, and the caller never observes later appends.
func (s *PriceStore) InWindow(marketID string, start, end *time.Time) iter.Seq[model.PricePoint] {
	s.mu.RLock()
	points := s.prices[marketID]
	s.mu.RUnlock()

	return func(yield func(model.PricePoint) bool) {
		for _, p := range points {
			if start != nil && p.Timestamp.Before(*start) {
				continue
			}
			if end != nil && p.Timestamp.After(*end) {
				continue
			}
			if !yield(p) {
				return
			}
		}
	}
}
