package sampler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rickgao/polymarket-data/internal/clob"
	"github.com/rickgao/polymarket-data/internal/gamma"
	"github.com/rickgao/polymarket-data/internal/metrics"
	"github.com/rickgao/polymarket-data/internal/model"
	"github.com/rickgao/polymarket-data/internal/store"
)

// Sampling failures the HTTP facade maps to not-found responses.
var (
	ErrMarketNotFound = errors.New("market not found")
	ErrNoTokenID      = errors.New("no outcome token id available")
)

// PriceSource quotes one outcome token. Satisfied by *clob.Client.
type PriceSource interface {
	FetchPrice(ctx context.Context, tokenID, side string) (float64, error)
}

// MarketLookup fetches one raw market by id. Satisfied by *gamma.Client.
type MarketLookup interface {
	FetchMarketByID(ctx context.Context, id string) (*gamma.RawMarket, error)
}

// Config holds sampler configuration.
type Config struct {
	Interval    time.Duration // Periodic sampling interval
	Concurrency int           // Max concurrent price fetches
	Timeout     time.Duration // Per-fetch timeout
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Interval:    30 * time.Second,
		Concurrency: 10,
		Timeout:     10 * time.Second,
	}
}

// Sampler fetches CLOB prices and appends them to the price store.
type Sampler struct {
	cfg     Config
	prices  PriceSource
	markets MarketLookup
	store   *store.Store
	logger  *slog.Logger

	mu      sync.Mutex
	tracked map[string]struct{}

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a Sampler.
func New(cfg Config, prices PriceSource, markets MarketLookup, st *store.Store, logger *slog.Logger) *Sampler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sampler{
		cfg:     cfg,
		prices:  prices,
		markets: markets,
		store:   st,
		logger:  logger,
		tracked: make(map[string]struct{}),
	}
}

// SampleEvent fetches the current price for a stored event's token and
// appends the observation to the event's market series.
func (s *Sampler) SampleEvent(ctx context.Context, event model.Event) (model.PricePoint, error) {
	price, err := s.prices.FetchPrice(ctx, event.TokenID, clob.SideBuy)
	if err != nil {
		return model.PricePoint{}, fmt.Errorf("sample event %s: %w", event.EventID, err)
	}

	point := model.PricePoint{
		MarketID:  event.MarketID,
		TokenID:   event.TokenID,
		Timestamp: time.Now().UTC(),
		Price:     price,
	}
	s.store.Prices.Add(point)
	metrics.PricePointsSampled.Inc()

	return point, nil
}

// SampleMarket looks a market up at the provider by id, quotes its
// first outcome token, and appends the observation. Used for markets
// that have not been collected into the event store.
func (s *Sampler) SampleMarket(ctx context.Context, marketID string) (model.PricePoint, error) {
	raw, err := s.markets.FetchMarketByID(ctx, marketID)
	if err != nil {
		return model.PricePoint{}, fmt.Errorf("sample market %s: %w", marketID, err)
	}
	if raw == nil {
		return model.PricePoint{}, ErrMarketNotFound
	}

	tokenIDs := raw.CLOBTokenIDs
	if len(tokenIDs) == 0 {
		tokenIDs = raw.CLOBTokenIDsSnake
	}
	if len(tokenIDs) == 0 {
		return model.PricePoint{}, ErrNoTokenID
	}
	tokenID := tokenIDs[0]

	price, err := s.prices.FetchPrice(ctx, tokenID, clob.SideBuy)
	if err != nil {
		return model.PricePoint{}, fmt.Errorf("sample market %s: %w", marketID, err)
	}

	point := model.PricePoint{
		MarketID:  string(raw.ID),
		TokenID:   tokenID,
		Timestamp: time.Now().UTC(),
		Price:     price,
	}
	s.store.Prices.Add(point)
	metrics.PricePointsSampled.Inc()

	return point, nil
}

// Track adds an event id to the periodic sampling set.
func (s *Sampler) Track(eventID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tracked[eventID] = struct{}{}
}

// Untrack removes an event id from the periodic sampling set.
func (s *Sampler) Untrack(eventID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tracked, eventID)
}

// trackedIDs returns a snapshot of the tracked set.
func (s *Sampler) trackedIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.tracked))
	for id := range s.tracked {
		ids = append(ids, id)
	}
	return ids
}

// Start begins the periodic sampling loop.
func (s *Sampler) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.run()

	s.logger.Info("price sampler started",
		"interval", s.cfg.Interval,
		"concurrency", s.cfg.Concurrency,
	)

	return nil
}

// Stop gracefully shuts down the sampler.
func (s *Sampler) Stop(ctx context.Context) error {
	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("price sampler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run is the periodic sampling loop.
func (s *Sampler) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.sampleAll()
		}
	}
}

// sampleAll samples every tracked event concurrently, bounded by the
// configured concurrency.
func (s *Sampler) sampleAll() {
	ids := s.trackedIDs()
	if len(ids) == 0 {
		return
	}

	start := time.Now()
	sem := make(chan struct{}, s.cfg.Concurrency)
	var wg sync.WaitGroup
	var sampled, failed atomic.Int64

	for _, id := range ids {
		wg.Add(1)
		go func(eventID string) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-s.ctx.Done():
				return
			}

			event, ok := s.store.Events.Get(eventID)
			if !ok {
				// Tracked before collection, or never collected.
				s.Untrack(eventID)
				return
			}

			ctx, cancel := context.WithTimeout(s.ctx, s.cfg.Timeout)
			defer cancel()

			if _, err := s.SampleEvent(ctx, event); err != nil {
				s.logger.Warn("failed to sample event",
					"event_id", eventID,
					"err", err,
				)
				failed.Add(1)
				return
			}
			sampled.Add(1)
		}(id)
	}

	wg.Wait()

	s.logger.Debug("sampling cycle complete",
		"tracked", len(ids),
		"sampled", sampled.Load(),
		"failed", failed.Load(),
		"duration", time.Since(start),
	)
}
