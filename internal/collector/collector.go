package collector

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rickgao/polymarket-data/internal/gamma"
	"github.com/rickgao/polymarket-data/internal/metrics"
	"github.com/rickgao/polymarket-data/internal/model"
	"github.com/rickgao/polymarket-data/internal/store"
	"github.com/rickgao/polymarket-data/internal/tags"
)

// Gateway provides raw records from the provider. Satisfied by
// *gamma.Client.
type Gateway interface {
	FetchMarkets(ctx context.Context, q gamma.MarketsQuery) ([]gamma.RawMarket, error)
	FetchEventsByTag(ctx context.Context, q gamma.EventsQuery) ([]gamma.RawMarket, error)
}

// TagResolver maps a category label to a provider tag id. Satisfied by
// *tags.Resolver.
type TagResolver interface {
	Resolve(ctx context.Context, label string) (tagID string, found bool, err error)
}

// Config holds collector settings.
type Config struct {
	// BroadCategory is the distinguished parent grouping. Collections
	// for it go through the tag index; records under it are accepted
	// without a category check.
	BroadCategory string
}

// Options narrows one collection run.
type Options struct {
	Category string // category filter, defaults to the broad category
	Days     int    // keep only events starting or ending within the last N days (0 = no filter)
	EventID  string // keep only this event (0-or-1 result)
	TagID    string // fetch by this provider tag directly, skipping resolution
}

// Collector orchestrates gateway fetches, normalization, filtering, and
// upserts into the event store.
type Collector struct {
	cfg      Config
	gateway  Gateway
	resolver TagResolver
	events   *store.EventStore
	logger   *slog.Logger
}

// New creates a Collector.
func New(cfg Config, gateway Gateway, resolver TagResolver, events *store.EventStore, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Collector{
		cfg:      cfg,
		gateway:  gateway,
		resolver: resolver,
		events:   events,
		logger:   logger,
	}
}

// Collect runs one collection: fetch, normalize, filter, upsert.
// Returns the surviving batch in gateway order. A gateway or
// tag-listing failure aborts the run with no partial upserts
// rolled back (events already upserted stay; the run itself is not
// transactional, matching wholesale-upsert semantics).
func (c *Collector) Collect(ctx context.Context, opts Options) ([]model.Event, error) {
	runID := uuid.New().String()
	start := time.Now()

	category := opts.Category
	if category == "" {
		category = c.cfg.BroadCategory
	}

	raws, err := c.fetchRaw(ctx, category, opts.TagID)
	if err != nil {
		metrics.CollectorRuns.WithLabelValues("error").Inc()
		return nil, err
	}

	collected := make([]model.Event, 0, len(raws))
	for _, raw := range raws {
		event, ok := Normalize(raw, category, c.cfg.BroadCategory)
		if !ok {
			metrics.RecordsRejected.Inc()
			continue
		}
		collected = append(collected, event)
	}

	if opts.EventID != "" {
		collected = filterByEventID(collected, opts.EventID)
	}
	if opts.Days > 0 {
		collected = filterByRecency(collected, time.Now().UTC().Add(-time.Duration(opts.Days)*24*time.Hour))
	}

	for _, event := range collected {
		c.events.Upsert(event)
	}

	metrics.CollectorRuns.WithLabelValues("ok").Inc()
	metrics.EventsCollected.Add(float64(len(collected)))

	c.logger.Info("collection run complete",
		"run_id", runID,
		"category", category,
		"fetched", len(raws),
		"collected", len(collected),
		"duration", time.Since(start),
	)

	return collected, nil
}

// fetchRaw picks the fetch path for the category. An explicit tag id
// wins outright. The broad category goes through the tag index with
// active/not-closed pushed to the gateway; tag resolution failure or an
// empty tag result falls back to the plain category fetch, because the
// provider maintains the two indexes independently and either can be
// stale. The two fallback reasons are reported separately.
func (c *Collector) fetchRaw(ctx context.Context, category, tagID string) ([]gamma.RawMarket, error) {
	if tagID != "" {
		notClosed := false
		return c.gateway.FetchEventsByTag(ctx, gamma.EventsQuery{
			TagID:  tagID,
			Active: true,
			Closed: &notClosed,
		})
	}

	if tags.NormalizeLabel(category) == tags.NormalizeLabel(c.cfg.BroadCategory) {
		tagID, found, err := c.resolver.Resolve(ctx, category)
		if err != nil {
			return nil, err
		}

		if found {
			notClosed := false
			raws, err := c.gateway.FetchEventsByTag(ctx, gamma.EventsQuery{
				TagID:  tagID,
				Active: true,
				Closed: &notClosed,
			})
			if err != nil {
				return nil, err
			}
			if len(raws) > 0 {
				return raws, nil
			}

			c.logger.Warn("tag fetch returned nothing, falling back to category fetch",
				"category", category,
				"tag_id", tagID,
			)
			metrics.TagFallbacks.WithLabelValues("empty").Inc()
		} else {
			c.logger.Warn("category has no tag, falling back to category fetch",
				"category", category,
			)
			metrics.TagFallbacks.WithLabelValues("unresolved").Inc()
		}
	}

	return c.gateway.FetchMarkets(ctx, gamma.MarketsQuery{Category: category})
}

// filterByEventID keeps only the matching event. Point lookup over the
// normalized batch, not a gateway-level filter: not every fetch path
// supports server-side id filtering.
func filterByEventID(events []model.Event, eventID string) []model.Event {
	for _, e := range events {
		if e.EventID == eventID {
			return []model.Event{e}
		}
	}
	return nil
}

// filterByRecency keeps events whose start or end lies at/after the
// cutoff. An event with no parsable timestamps at all cannot be proven
// recent and is excluded.
func filterByRecency(events []model.Event, cutoff time.Time) []model.Event {
	var kept []model.Event
	for _, e := range events {
		if isRecent(e.StartTime, cutoff) || isRecent(e.EndTime, cutoff) {
			kept = append(kept, e)
		}
	}
	return kept
}

func isRecent(t *time.Time, cutoff time.Time) bool {
	return t != nil && !t.Before(cutoff)
}
