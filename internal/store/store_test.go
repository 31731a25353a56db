package store

import (
	"testing"
	"time"

	"github.com/rickgao/polymarket-data/internal/model"
)

func testEvent(id, category string) model.Event {
	return model.Event{
		EventID:  id,
		MarketID: id,
		TokenID:  "tok-" + id,
		Title:    "event " + id,
		Category: category,
		Status:   model.StatusActive,
	}
}

func pricePoint(marketID string, at time.Time, price float64) model.PricePoint {
	return model.PricePoint{
		MarketID:  marketID,
		TokenID:   "tok-" + marketID,
		Timestamp: at,
		Price:     price,
	}
}

func TestEventStore(t *testing.T) {
	s := NewEventStore()

	t.Run("get missing", func(t *testing.T) {
		if _, ok := s.Get("nope"); ok {
			t.Error("Get returned ok for a missing event")
		}
	})

	t.Run("upsert and get", func(t *testing.T) {
		s.Upsert(testEvent("e1", "crypto/15M"))
		got, ok := s.Get("e1")
		if !ok {
			t.Fatal("Get returned !ok after Upsert")
		}
		if got.Title != "event e1" {
			t.Errorf("Title = %q, want %q", got.Title, "event e1")
		}
	})

	t.Run("upsert replaces wholesale", func(t *testing.T) {
		updated := testEvent("e1", "crypto/15M")
		updated.Status = model.StatusResolved
		updated.Resolution = "Yes"
		s.Upsert(updated)

		got, _ := s.Get("e1")
		if got.Status != model.StatusResolved || got.Resolution != "Yes" {
			t.Errorf("got %+v, want resolved with resolution Yes", got)
		}
		if s.Len() != 1 {
			t.Errorf("Len = %d, want 1", s.Len())
		}
	})

	t.Run("list by category", func(t *testing.T) {
		s.Upsert(testEvent("e2", "crypto/15M"))
		s.Upsert(testEvent("e3", "politics"))

		got := s.ListByCategory("crypto/15M")
		if len(got) != 2 {
			t.Errorf("len = %d, want 2", len(got))
		}
		for _, e := range got {
			if e.Category != "crypto/15M" {
				t.Errorf("category = %q, want crypto/15M", e.Category)
			}
		}

		if got := s.ListByCategory("weather"); got != nil {
			t.Errorf("unknown category = %v, want nil", got)
		}
	})
}

func TestPriceStore(t *testing.T) {
	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	t.Run("append keeps insertion order", func(t *testing.T) {
		s := NewPriceStore()
		s.Add(pricePoint("m1", base, 0.40))
		s.Add(pricePoint("m1", base.Add(30*time.Minute), 0.55))
		s.Add(pricePoint("m1", base.Add(10*time.Minute), 0.50))

		got := s.ListForMarket("m1")
		if len(got) != 3 {
			t.Fatalf("len = %d, want 3", len(got))
		}
		if got[0].Price != 0.40 || got[1].Price != 0.55 || got[2].Price != 0.50 {
			t.Errorf("order = %v, want insertion order", got)
		}
	})

	t.Run("list is a defensive copy", func(t *testing.T) {
		s := NewPriceStore()
		s.Add(pricePoint("m1", base, 0.40))

		got := s.ListForMarket("m1")
		got[0].Price = 99

		again := s.ListForMarket("m1")
		if again[0].Price != 0.40 {
			t.Errorf("stored price = %v, want 0.40 after caller mutation", again[0].Price)
		}
	})

	t.Run("unknown market is empty", func(t *testing.T) {
		s := NewPriceStore()
		if got := s.ListForMarket("nope"); len(got) != 0 {
			t.Errorf("got %v, want empty", got)
		}
	})
}

func TestPriceStore_InWindow(t *testing.T) {
	base := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)

	s := NewPriceStore()
	s.Add(pricePoint("m1", base, 0.40))
	s.Add(pricePoint("m1", base.Add(10*time.Minute), 0.50))
	s.Add(pricePoint("m1", base.Add(30*time.Minute), 0.55))
	s.Add(pricePoint("other", base, 0.99))

	collect := func(start, end *time.Time) []model.PricePoint {
		var out []model.PricePoint
		for p := range s.InWindow("m1", start, end) {
			out = append(out, p)
		}
		return out
	}

	t.Run("bounds are inclusive", func(t *testing.T) {
		start := base
		end := base.Add(30 * time.Minute)
		got := collect(&start, &end)
		if len(got) != 3 {
			t.Errorf("len = %d, want 3", len(got))
		}
	})

	t.Run("interior window", func(t *testing.T) {
		start := base.Add(time.Minute)
		end := base.Add(20 * time.Minute)
		got := collect(&start, &end)
		if len(got) != 1 || got[0].Price != 0.50 {
			t.Errorf("got %v, want only the 0.50 point", got)
		}
	})

	t.Run("nil bounds are unconstrained", func(t *testing.T) {
		if got := collect(nil, nil); len(got) != 3 {
			t.Errorf("len = %d, want 3", len(got))
		}

		start := base.Add(20 * time.Minute)
		if got := collect(&start, nil); len(got) != 1 {
			t.Errorf("len = %d, want 1 with only a start bound", len(got))
		}

		end := base.Add(5 * time.Minute)
		if got := collect(nil, &end); len(got) != 1 {
			t.Errorf("len = %d, want 1 with only an end bound", len(got))
		}
	})

	t.Run("window excludes other markets", func(t *testing.T) {
		for p := range s.InWindow("m1", nil, nil) {
			if p.MarketID != "m1" {
				t.Errorf("got point for market %q", p.MarketID)
			}
		}
	})

	t.Run("early break stops iteration", func(t *testing.T) {
		var count int
		for range s.InWindow("m1", nil, nil) {
			count++
			break
		}
		if count != 1 {
			t.Errorf("count = %d, want 1", count)
		}
	})
}

func TestAnalyticsStore(t *testing.T) {
	s := NewAnalyticsStore()

	if _, ok := s.Get("nope"); ok {
		t.Error("Get returned ok for a missing record")
	}

	price := 0.5
	s.Upsert(model.EventAnalytics{EventID: "e1", LastPrice: &price})
	got, ok := s.Get("e1")
	if !ok {
		t.Fatal("Get returned !ok after Upsert")
	}
	if !got.HasData() || *got.LastPrice != 0.5 {
		t.Errorf("got %+v, want last price 0.5", got)
	}

	// An all-unset record is still present.
	s.Upsert(model.EventAnalytics{EventID: "e2"})
	empty, ok := s.Get("e2")
	if !ok {
		t.Fatal("all-unset record not stored")
	}
	if empty.HasData() {
		t.Error("HasData() = true for an all-unset record")
	}
}

func TestNew(t *testing.T) {
	st := New()
	if st.Events == nil || st.Prices == nil || st.Analytics == nil {
		t.Fatal("New returned a bundle with nil repositories")
	}
}
