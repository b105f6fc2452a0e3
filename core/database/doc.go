// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM to configure MySQL (production) or SQLite
// (local runs and tests) connections based on the application's configuration.
// The database is optional: it only backs the "database" price table source.
//
// # Schema Inspection
//
// GetTableColumns retrieves table columns so the integrity feature can verify that the
// item_prices table matches what the pricing package expects.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	columns, err := database.GetTableColumns(db, "item_prices")
package database
