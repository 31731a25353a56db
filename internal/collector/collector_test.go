package collector

import (
	"context"
	"errors"
	"testing"

	"github.com/rickgao/polymarket-data/internal/gamma"
	"github.com/rickgao/polymarket-data/internal/store"
)

// mockGateway records queries and returns canned records.
type mockGateway struct {
	markets      []gamma.RawMarket
	tagged       []gamma.RawMarket
	err          error
	marketsCalls []gamma.MarketsQuery
	taggedCalls  []gamma.EventsQuery
}

func (m *mockGateway) FetchMarkets(ctx context.Context, q gamma.MarketsQuery) ([]gamma.RawMarket, error) {
	m.marketsCalls = append(m.marketsCalls, q)
	return m.markets, m.err
}

func (m *mockGateway) FetchEventsByTag(ctx context.Context, q gamma.EventsQuery) ([]gamma.RawMarket, error) {
	m.taggedCalls = append(m.taggedCalls, q)
	return m.tagged, m.err
}

// mockResolver returns a fixed resolution.
type mockResolver struct {
	tagID string
	found bool
	err   error
	calls int
}

func (m *mockResolver) Resolve(ctx context.Context, label string) (string, bool, error) {
	m.calls++
	return m.tagID, m.found, m.err
}

func rawRecord(id, category string) gamma.RawMarket {
	return gamma.RawMarket{
		ID:       gamma.LooseString(id),
		Question: "Will it settle yes?",
		Category: category,
		TokenID:  gamma.LooseString("tok-" + id),
	}
}

func newTestCollector(gw *mockGateway, res *mockResolver) (*Collector, *store.EventStore) {
	events := store.NewEventStore()
	c := New(Config{BroadCategory: "crypto"}, gw, res, events, nil)
	return c, events
}

func TestCollect_TagPath(t *testing.T) {
	gw := &mockGateway{tagged: []gamma.RawMarket{rawRecord("1", "Bitcoin"), rawRecord("2", "Ethereum")}}
	res := &mockResolver{tagID: "21", found: true}
	c, events := newTestCollector(gw, res)

	collected, err := c.Collect(context.Background(), Options{Category: "crypto"})
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if len(collected) != 2 {
		t.Fatalf("len(collected) = %d, want 2", len(collected))
	}
	if len(gw.taggedCalls) != 1 {
		t.Fatalf("tagged calls = %d, want 1", len(gw.taggedCalls))
	}
	q := gw.taggedCalls[0]
	if q.TagID != "21" || !q.Active || q.Closed == nil || *q.Closed {
		t.Errorf("tag query = %+v, want tag 21, active, not closed", q)
	}
	if len(gw.marketsCalls) != 0 {
		t.Errorf("markets calls = %d, want 0", len(gw.marketsCalls))
	}
	if events.Len() != 2 {
		t.Errorf("stored events = %d, want 2", events.Len())
	}
}

func TestCollect_FallbackOnUnresolvedTag(t *testing.T) {
	gw := &mockGateway{markets: []gamma.RawMarket{rawRecord("1", "crypto")}}
	res := &mockResolver{found: false}
	c, _ := newTestCollector(gw, res)

	collected, err := c.Collect(context.Background(), Options{Category: "crypto"})
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if len(collected) != 1 {
		t.Errorf("len(collected) = %d, want 1", len(collected))
	}
	if len(gw.marketsCalls) != 1 || gw.marketsCalls[0].Category != "crypto" {
		t.Errorf("markets calls = %+v, want one crypto query", gw.marketsCalls)
	}
}

func TestCollect_FallbackOnEmptyTagResult(t *testing.T) {
	gw := &mockGateway{tagged: nil, markets: []gamma.RawMarket{rawRecord("1", "crypto")}}
	res := &mockResolver{tagID: "21", found: true}
	c, _ := newTestCollector(gw, res)

	collected, err := c.Collect(context.Background(), Options{Category: "crypto"})
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if len(gw.taggedCalls) != 1 {
		t.Errorf("tagged calls = %d, want 1", len(gw.taggedCalls))
	}
	if len(gw.marketsCalls) != 1 {
		t.Errorf("markets calls = %d, want 1", len(gw.marketsCalls))
	}
	if len(collected) != 1 {
		t.Errorf("len(collected) = %d, want 1", len(collected))
	}
}

func TestCollect_NarrowCategorySkipsResolver(t *testing.T) {
	gw := &mockGateway{markets: []gamma.RawMarket{rawRecord("1", "crypto/15M")}}
	res := &mockResolver{tagID: "21", found: true}
	c, _ := newTestCollector(gw, res)

	if _, err := c.Collect(context.Background(), Options{Category: "crypto/15M"}); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if res.calls != 0 {
		t.Errorf("resolver calls = %d, want 0", res.calls)
	}
	if len(gw.marketsCalls) != 1 {
		t.Errorf("markets calls = %d, want 1", len(gw.marketsCalls))
	}
}

func TestCollect_ExplicitTagSkipsResolver(t *testing.T) {
	gw := &mockGateway{tagged: []gamma.RawMarket{rawRecord("1", "Bitcoin")}}
	res := &mockResolver{found: false}
	c, _ := newTestCollector(gw, res)

	collected, err := c.Collect(context.Background(), Options{Category: "crypto", TagID: "99"})
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if res.calls != 0 {
		t.Errorf("resolver calls = %d, want 0", res.calls)
	}
	if len(gw.taggedCalls) != 1 || gw.taggedCalls[0].TagID != "99" {
		t.Errorf("tagged calls = %+v, want one query for tag 99", gw.taggedCalls)
	}
	if len(collected) != 1 {
		t.Errorf("len(collected) = %d, want 1", len(collected))
	}
}

func TestCollect_DefaultCategoryIsBroad(t *testing.T) {
	gw := &mockGateway{tagged: []gamma.RawMarket{rawRecord("1", "Bitcoin")}}
	res := &mockResolver{tagID: "21", found: true}
	c, _ := newTestCollector(gw, res)

	if _, err := c.Collect(context.Background(), Options{}); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if res.calls != 1 {
		t.Errorf("resolver calls = %d, want 1", res.calls)
	}
}

func TestCollect_EventIDFilter(t *testing.T) {
	gw := &mockGateway{markets: []gamma.RawMarket{
		rawRecord("1", "crypto/15M"),
		rawRecord("2", "crypto/15M"),
	}}
	c, events := newTestCollector(gw, &mockResolver{})

	collected, err := c.Collect(context.Background(), Options{Category: "crypto/15M", EventID: "2"})
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if len(collected) != 1 || collected[0].EventID != "2" {
		t.Errorf("collected = %v, want only event 2", collected)
	}
	if events.Len() != 1 {
		t.Errorf("stored events = %d, want 1", events.Len())
	}
}

func TestCollect_DaysFilter(t *testing.T) {
	recent := rawRecord("recent", "crypto/15M")
	recent.StartDate = "2099-01-01T00:00:00Z"
	old := rawRecord("old", "crypto/15M")
	old.StartDate = "2001-01-01T00:00:00Z"
	old.EndDate = "2001-01-02T00:00:00Z"
	undated := rawRecord("undated", "crypto/15M")

	gw := &mockGateway{markets: []gamma.RawMarket{recent, old, undated}}
	c, _ := newTestCollector(gw, &mockResolver{})

	collected, err := c.Collect(context.Background(), Options{Category: "crypto/15M", Days: 7})
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if len(collected) != 1 || collected[0].EventID != "recent" {
		t.Errorf("collected = %v, want only the recent event", collected)
	}
}

func TestCollect_RejectedRecordsAreDropped(t *testing.T) {
	noToken := gamma.RawMarket{ID: "1", Category: "crypto/15M"}
	gw := &mockGateway{markets: []gamma.RawMarket{noToken, rawRecord("2", "crypto/15M")}}
	c, _ := newTestCollector(gw, &mockResolver{})

	collected, err := c.Collect(context.Background(), Options{Category: "crypto/15M"})
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if len(collected) != 1 || collected[0].EventID != "2" {
		t.Errorf("collected = %v, want only event 2", collected)
	}
}

func TestCollect_UpsertIsIdempotent(t *testing.T) {
	gw := &mockGateway{markets: []gamma.RawMarket{rawRecord("1", "crypto/15M")}}
	c, events := newTestCollector(gw, &mockResolver{})

	for range 3 {
		if _, err := c.Collect(context.Background(), Options{Category: "crypto/15M"}); err != nil {
			t.Fatalf("Collect failed: %v", err)
		}
	}
	if events.Len() != 1 {
		t.Errorf("stored events = %d, want 1", events.Len())
	}
}

func TestCollect_GatewayError(t *testing.T) {
	gw := &mockGateway{err: errors.New("upstream down")}
	c, events := newTestCollector(gw, &mockResolver{})

	if _, err := c.Collect(context.Background(), Options{Category: "crypto/15M"}); err == nil {
		t.Fatal("expected error, got nil")
	}
	if events.Len() != 0 {
		t.Errorf("stored events = %d, want 0", events.Len())
	}
}

func TestCollect_ResolverError(t *testing.T) {
	gw := &mockGateway{}
	res := &mockResolver{err: errors.New("listing failed")}
	c, _ := newTestCollector(gw, res)

	if _, err := c.Collect(context.Background(), Options{Category: "crypto"}); err == nil {
		t.Fatal("expected error, got nil")
	}
	if len(gw.marketsCalls)+len(gw.taggedCalls) != 0 {
		t.Error("gateway was called after resolver failure")
	}
}
