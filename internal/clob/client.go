package clob

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Side of the book to quote.
const (
	SideBuy  = "buy"
	SideSell = "sell"
)

// Client provides access to the CLOB REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a new CLOB API client.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// APIError represents an error response from the CLOB API.
type APIError struct {
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("clob api error %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// priceResponse tolerates the price arriving as a string or a number.
type priceResponse struct {
	Price json.RawMessage `json:"price"`
}

// FetchPrice fetches the current price for an outcome token.
func (c *Client) FetchPrice(ctx context.Context, tokenID, side string) (float64, error) {
	if side == "" {
		side = SideBuy
	}

	query := url.Values{}
	query.Set("token_id", tokenID)
	query.Set("side", side)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/price?"+query.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return 0, &APIError{StatusCode: resp.StatusCode, Body: body}
	}

	var pr priceResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return 0, fmt.Errorf("unmarshal price response: %w", err)
	}

	return parsePrice(pr.Price)
}

// parsePrice decodes a price that may be quoted ("0.52") or bare (0.52).
func parsePrice(raw json.RawMessage) (float64, error) {
	if len(raw) == 0 {
		return 0, fmt.Errorf("price missing from response")
	}

	s := string(raw)
	if raw[0] == '"' {
		var unquoted string
		if err := json.Unmarshal(raw, &unquoted); err != nil {
			return 0, fmt.Errorf("unmarshal price string: %w", err)
		}
		s = unquoted
	}

	price, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse price %q: %w", s, err)
	}
	return price, nil
}
