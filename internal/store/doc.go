// Package store implements the in-memory repository layer: events,
// price points, and derived analytics.
//
// All stores are process-lifetime and memory-resident; nothing survives
// a restart. Mutating and reading are safe from multiple goroutines:
// each store guards its map with an RWMutex and hands out value copies,
// so callers never observe later mutations through a previously
// obtained result.
package store
