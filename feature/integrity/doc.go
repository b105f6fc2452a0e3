// Package integrity provides health checks for the price table backends.
//
// # Checks Provided
//
//   - Prices: Loads the configured price table and lists built-in items that are missing or repriced.
//   - Storage: Verifies the price table object exists in the bucket (supports ?fix=true to upload it).
//   - Schema: Validates the item_prices table against its gorm model (supports ?fix=true to create and seed it).
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/prices : Runs the price table check.
//   - GET /integrity/storage : Runs the storage check.
//   - GET /integrity/schema : Runs the schema check.
package integrity
