// Package sampler records price observations for collected events.
//
// One-shot sampling is request-triggered and used by the HTTP facade.
// The periodic loop is optional: it samples an explicitly tracked set
// of events on a fixed interval with bounded concurrency, as a
// server-side replacement for dashboard-driven polling.
package sampler
