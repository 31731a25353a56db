package gamma

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// EventsQuery configures a FetchEventsByTag request.
type EventsQuery struct {
	TagID  string
	Active bool
	Closed *bool
}

// FetchEventsByTag fetches all event records carrying the given tag,
// paginating exhaustively. The active/closed predicates are pushed to
// the provider so the caller receives only matching records.
func (c *Client) FetchEventsByTag(ctx context.Context, q EventsQuery) ([]RawMarket, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultPaginationTimeout)
		defer cancel()
	}

	query := url.Values{}
	query.Set("tag_id", q.TagID)
	if q.Active {
		query.Set("active", "true")
	}
	if q.Closed != nil {
		query.Set("closed", strconv.FormatBool(*q.Closed))
	}

	records, err := c.fetchAll(ctx, "/events", query)
	if err != nil {
		return nil, fmt.Errorf("fetch events by tag %s: %w", q.TagID, err)
	}
	return records, nil
}
