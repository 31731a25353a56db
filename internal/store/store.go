package store

// Store bundles the three repositories that make up the storage layer.
// It is constructed once at process start and owned by whoever wires
// the pipeline; components receive it explicitly, never ambiently.
type Store struct {
	Events    *EventStore
	Prices    *PriceStore
	Analytics *AnalyticsStore
}

// New creates an empty store bundle.
func New() *Store {
	return &Store{
		Events:    NewEventStore(),
		Prices:    NewPriceStore(),
		Analytics: NewAnalyticsStore(),
	}
}
