// Package tags resolves human category labels to the provider's tag
// identifiers, caching results for the process lifetime.
package tags

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/rickgao/polymarket-data/internal/gamma"
)

// TagLister provides the exhaustive tag listing. Satisfied by
// *gamma.Client.
type TagLister interface {
	FetchTags(ctx context.Context) ([]gamma.Tag, error)
}

// NormalizeLabel produces the canonical cache/compare form of a
// category or tag label: trimmed, lower-cased, internal spaces removed.
func NormalizeLabel(label string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(label)), " ", "")
}

// cacheEntry records a resolution outcome. Negative results are cached
// too, so an unknown label costs one listing call per process, not one
// per request.
type cacheEntry struct {
	tagID string
	found bool
}

// Resolver maps category labels to tag ids with a process-lifetime
// cache. The cache is unbounded; the label space is a handful of
// categories, so this never matters in practice.
type Resolver struct {
	lister TagLister
	logger *slog.Logger

	mu    sync.Mutex
	cache map[string]cacheEntry
}

// NewResolver creates a Resolver backed by the given lister.
func NewResolver(lister TagLister, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{
		lister: lister,
		logger: logger,
		cache:  make(map[string]cacheEntry),
	}
}

// Resolve returns the tag id for a category label, or found=false when
// the provider has no matching tag. A listing fetch failure is returned
// as an error and is not cached.
//
// The lock is held across the listing fetch so a cache miss is resolved
// exactly once even under concurrent callers.
func (r *Resolver) Resolve(ctx context.Context, label string) (tagID string, found bool, err error) {
	key := NormalizeLabel(label)
	if key == "" {
		return "", false, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if entry, ok := r.cache[key]; ok {
		return entry.tagID, entry.found, nil
	}

	tags, err := r.lister.FetchTags(ctx)
	if err != nil {
		return "", false, fmt.Errorf("resolve tag %q: %w", label, err)
	}

	entry := cacheEntry{}
	for _, t := range tags {
		if NormalizeLabel(t.Label) == key || NormalizeLabel(t.Slug) == key {
			entry = cacheEntry{tagID: string(t.ID), found: true}
			break
		}
	}
	r.cache[key] = entry

	if !entry.found {
		r.logger.Debug("no tag for label", "label", label)
	}

	return entry.tagID, entry.found, nil
}
