package pricing

import (
	"fmt"
	"time"

	"loot-splitter/core/storage"

	"gorm.io/gorm"
)

// Config holds configuration for the reference price table.
type Config struct {
	// Source selects the backend (embedded, file, database, storage).
	Source string `mapstructure:"source" default:"embedded"`
	// Path is the YAML file read by the file source.
	Path string `mapstructure:"path" default:"prices.yaml"`
	// Object is the object key read by the storage source.
	Object string `mapstructure:"object" default:"pricing/prices.yaml"`
	// CacheTTLSeconds controls how long a loaded table is reused. 0 keeps it forever.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"300"`
}

const (
	SourceEmbedded = "embedded"
	SourceFile     = "file"
	SourceDatabase = "database"
	SourceStorage  = "storage"
)

// IsValidSource checks if the configured source is supported.
func (c Config) IsValidSource() bool {
	switch c.Source {
	case SourceEmbedded, SourceFile, SourceDatabase, SourceStorage:
		return true
	default:
		return false
	}
}

// CacheTTL returns the cache lifetime as a duration.
func (c Config) CacheTTL() time.Duration {
	if c.CacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// NewSource builds the Source selected by cfg. db and client may be nil when the
// selected source does not need them.
func NewSource(cfg Config, db *gorm.DB, client storage.Client, bucket string) (Source, error) {
	switch cfg.Source {
	case SourceEmbedded, "":
		return EmbeddedSource{}, nil
	case SourceFile:
		return FileSource{Path: cfg.Path}, nil
	case SourceDatabase:
		if db == nil {
			return nil, fmt.Errorf("pricing source %q requires a database connection", cfg.Source)
		}
		return NewDBSource(db), nil
	case SourceStorage:
		if client == nil {
			return nil, fmt.Errorf("pricing source %q requires a storage client", cfg.Source)
		}
		return NewStorageSource(client, bucket, cfg.Object), nil
	default:
		return nil, fmt.Errorf("unknown pricing source: %s", cfg.Source)
	}
}
