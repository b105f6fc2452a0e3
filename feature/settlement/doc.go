// Package settlement exposes the loot settlement engine over HTTP.
//
// Routes:
//
//	POST /settle        party log + player session logs -> settlement plan
//	GET  /prices        reference price table
//	GET  /prices/:name  single item lookup (case-insensitive)
//
// The price table is served from a pricing.Cache so every request settles against
// the same immutable table until the cache expires.
package settlement
