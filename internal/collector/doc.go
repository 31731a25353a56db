// Package collector implements the ingestion pipeline: fetch raw
// records from the Gamma gateway, normalize them into canonical events,
// filter by recency, and upsert into the event store.
//
// Normalization is pure and total: a malformed record is dropped, never
// an error. Gateway fetch failures abort the whole run and propagate to
// the caller; partial collection runs are not supported.
package collector
