package gamma

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// FetchTags fetches the full tag listing, paginating exhaustively.
// The tag space is small (hundreds), so callers cache aggressively
// rather than filtering server-side.
func (c *Client) FetchTags(ctx context.Context) ([]Tag, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultPaginationTimeout)
		defer cancel()
	}

	var all []Tag

	for offset := 0; ; offset += PageSize {
		query := url.Values{}
		query.Set("limit", strconv.Itoa(PageSize))
		if offset > 0 {
			query.Set("offset", strconv.Itoa(offset))
		}

		var page tagList
		if err := c.get(ctx, "/tags", query, &page); err != nil {
			return nil, fmt.Errorf("fetch tags: %w", err)
		}

		all = append(all, page...)

		if len(page) < PageSize {
			break
		}
	}

	return all, nil
}
