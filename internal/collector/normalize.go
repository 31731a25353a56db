package collector

import (
	"strings"
	"time"

	"github.com/rickgao/polymarket-data/internal/gamma"
	"github.com/rickgao/polymarket-data/internal/model"
	"github.com/rickgao/polymarket-data/internal/tags"
)

// Normalize converts one raw provider record into a canonical Event.
// Returns ok=false when the record must be dropped: category mismatch,
// no usable identifier, or no resolvable outcome token (an event that
// cannot be priced cannot be sampled).
//
// When categoryFilter equals broadCategory the category check is
// skipped entirely: the gateway already filtered by tag, and records
// under a broad tag carry arbitrary literal category labels.
func Normalize(raw gamma.RawMarket, categoryFilter, broadCategory string) (model.Event, bool) {
	category := raw.Category
	if category == "" {
		category = raw.CategoryName
	}

	if !categoryMatches(category, categoryFilter, broadCategory) {
		return model.Event{}, false
	}

	eventID := string(raw.EventID)
	if eventID == "" {
		eventID = string(raw.ID)
	}
	if eventID == "" {
		return model.Event{}, false
	}

	marketID := string(raw.MarketID)
	if marketID == "" {
		marketID = string(raw.ID)
	}

	tokenID := extractTokenID(raw)
	if tokenID == "" {
		return model.Event{}, false
	}

	title := raw.Question
	if title == "" {
		title = raw.Title
	}

	status := model.StatusActive
	if raw.Resolved {
		status = model.StatusResolved
	}

	return model.Event{
		EventID:    eventID,
		MarketID:   marketID,
		TokenID:    tokenID,
		Title:      title,
		Category:   category,
		StartTime:  ParseTimestamp(firstNonEmpty(raw.StartDate, raw.StartDateSnake)),
		EndTime:    ParseTimestamp(firstNonEmpty(raw.EndDate, raw.EndDateSnake)),
		Resolution: raw.Resolution,
		Status:     status,
	}, true
}

// categoryMatches applies the category filter. Broad filter accepts
// unconditionally; otherwise the normalized labels must be equal, or
// the filter must be a substring of the record's category (providers
// sub-categorize, e.g. "crypto/15M" under a "crypto" record set and
// vice versa).
func categoryMatches(category, filter, broad string) bool {
	nf := tags.NormalizeLabel(filter)
	if nf == "" || nf == tags.NormalizeLabel(broad) {
		return true
	}
	nc := tags.NormalizeLabel(category)
	return nc == nf || strings.Contains(nc, nf)
}

// extractTokenID prefers the direct single-token field and falls back
// to the first element of the outcome-token-id list.
func extractTokenID(raw gamma.RawMarket) string {
	if raw.TokenID != "" {
		return string(raw.TokenID)
	}
	if len(raw.CLOBTokenIDs) > 0 {
		return raw.CLOBTokenIDs[0]
	}
	if len(raw.CLOBTokenIDsSnake) > 0 {
		return raw.CLOBTokenIDsSnake[0]
	}
	return ""
}

// ParseTimestamp parses an ISO 8601 timestamp, returning nil for empty
// or unparsable input. Never fails the surrounding record.
func ParseTimestamp(iso string) *time.Time {
	if iso == "" {
		return nil
	}

	t, err := time.Parse(time.RFC3339Nano, iso)
	if err != nil {
		// Try without timezone
		t, err = time.Parse("2006-01-02T15:04:05", iso)
		if err != nil {
			return nil
		}
	}

	t = t.UTC()
	return &t
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
