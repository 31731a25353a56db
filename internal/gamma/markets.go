package gamma

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
)

// MarketsQuery configures a FetchMarkets request.
type MarketsQuery struct {
	Category string
	Active   bool // only active markets
	Closed   *bool
}

// FetchMarkets fetches all markets matching the query, paginating
// exhaustively. Uses DefaultPaginationTimeout if the context has no
// deadline.
func (c *Client) FetchMarkets(ctx context.Context, q MarketsQuery) ([]RawMarket, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultPaginationTimeout)
		defer cancel()
	}

	query := url.Values{}
	if q.Category != "" {
		query.Set("category", q.Category)
	}
	if q.Active {
		query.Set("active", "true")
	}
	if q.Closed != nil {
		query.Set("closed", strconv.FormatBool(*q.Closed))
	}

	records, err := c.fetchAll(ctx, "/markets", query)
	if err != nil {
		return nil, fmt.Errorf("fetch markets: %w", err)
	}
	return records, nil
}

// FetchMarketByID fetches a single market. Returns (nil, nil) when the
// provider does not know the id.
func (c *Client) FetchMarketByID(ctx context.Context, id string) (*RawMarket, error) {
	var record RawMarket
	if err := c.get(ctx, "/markets/"+url.PathEscape(id), nil, &record); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == 404 {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch market %s: %w", id, err)
	}
	return &record, nil
}

// fetchAll pages through a listing endpoint until a short page.
func (c *Client) fetchAll(ctx context.Context, path string, query url.Values) ([]RawMarket, error) {
	var all []RawMarket

	for offset := 0; ; offset += PageSize {
		q := url.Values{}
		for k, v := range query {
			q[k] = v
		}
		q.Set("limit", strconv.Itoa(PageSize))
		if offset > 0 {
			q.Set("offset", strconv.Itoa(offset))
		}

		var page recordList
		if err := c.get(ctx, path, q, &page); err != nil {
			return nil, err
		}

		all = append(all, page...)

		if len(page) < PageSize {
			break
		}
	}

	return all, nil
}
