// Package clob provides the client for the Polymarket CLOB REST API,
// the pricing side of the provider. Only the single-token price
// endpoint is consumed.
package clob
