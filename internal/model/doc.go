// Package model defines the canonical domain types shared across the
// pipeline: events, price observations, and derived analytics.
//
// All types are plain value structs. Repositories hand out copies;
// nothing in this package is safe to share mutably across goroutines.
package model
