// Package gamma provides the client for the Polymarket Gamma REST API,
// the metadata side of the provider: markets, events, and tags.
//
// Endpoints:
//   - Production: https://gamma-api.polymarket.com
//
// Responses are returned as loosely-typed raw records. The Gamma API is
// not consistent about field naming or encoding (camelCase vs snake_case
// keys, double-encoded JSON arrays, numbers as strings), so this package
// only absorbs transport and pagination; interpreting the records is the
// collector's normalization concern.
package gamma
