// Package pricing provides the reference price table used to value looted items.
//
// A Table maps canonical item names to unit prices and is immutable once built, so it can
// be shared by every settlement without locking. Tables come from one of several sources:
//   - Embedded: the prices.yaml document compiled into the binary (default).
//   - File: a YAML document on local disk.
//   - Database: the item_prices table (see Seed to populate it).
//   - Storage: a YAML object in the configured S3/MinIO bucket (see Publish).
//
// # Cache
//
// Cache wraps a Source with a TTL and singleflight-protected reloads.
//
//	src, _ := pricing.NewSource(cfg.Pricing, db, store, cfg.Storage.Bucket)
//	prices := pricing.NewCache(src, cfg.Pricing.CacheTTL())
//	table, err := prices.Get(ctx)
package pricing
