// Package server exposes the collector, stores, sampler, and analytics
// over HTTP, plus a small embedded dashboard for exploring events and
// sampled prices.
package server
