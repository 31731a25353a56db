package model

import "time"

// Event lifecycle status.
const (
	StatusActive   = "active"
	StatusClosed   = "closed"
	StatusResolved = "resolved"
)

// Event is one tracked market/question with an associated priceable token.
type Event struct {
	EventID    string     `json:"event_id"`             // Primary key (provider event identifier)
	MarketID   string     `json:"market_id"`            // Tradable market identifier (may differ from EventID)
	TokenID    string     `json:"token_id"`             // Outcome token whose price is sampled
	Title      string     `json:"title"`                // Display title (provider question)
	Category   string     `json:"category"`             // Raw category label as returned by the provider
	StartTime  *time.Time `json:"start_time"`           // nil = unknown
	EndTime    *time.Time `json:"end_time"`             // nil = unknown
	Resolution string     `json:"resolution,omitempty"` // Free-text outcome, empty = unresolved
	Status     string     `json:"status"`               // StatusActive, StatusClosed, or StatusResolved
}

// PricePoint is one observed price for a market's token at an instant.
// Points are append-only and never mutated after storage.
type PricePoint struct {
	MarketID  string    `json:"market_id"`
	TokenID   string    `json:"token_id"`
	Timestamp time.Time `json:"timestamp"` // UTC
	Price     float64   `json:"price"`     // Probability, expected in [0,1] but not enforced
}

// EventAnalytics is the derived price summary for one event.
// The three triples are optional as a unit: all nil when no price points
// fell inside the event's window at the last aggregation.
type EventAnalytics struct {
	EventID string `json:"event_id"`

	MinPrice     *float64   `json:"min_price"`
	MinPriceTime *time.Time `json:"min_price_time"`

	MaxPrice     *float64   `json:"max_price"`
	MaxPriceTime *time.Time `json:"max_price_time"`

	LastPrice     *float64   `json:"last_price"`
	LastPriceTime *time.Time `json:"last_price_time"`
}

// HasData reports whether the last aggregation found any in-window prices.
func (a EventAnalytics) HasData() bool {
	return a.LastPrice != nil
}
