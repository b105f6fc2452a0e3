package share

import "time"

// Config holds configuration for shareable settlement links.
type Config struct {
	// Store selects where short codes are kept (memory, redis).
	Store string `mapstructure:"store" default:"memory"`
	// Compression selects the codec for new share states (zstd, brotli).
	Compression string `mapstructure:"compression" default:"zstd"`
	// TTLHours is how long a short code stays resolvable.
	TTLHours int `mapstructure:"ttl_hours" default:"720"`
	// RedisAddr is the host:port of the redis server used by the redis store.
	RedisAddr string `mapstructure:"redis_addr" default:"localhost:6379"`
	// RedisPassword authenticates against the redis server.
	RedisPassword string `mapstructure:"redis_password" default:""`
	// RedisDB selects the redis logical database.
	RedisDB int `mapstructure:"redis_db" default:"0"`
}

const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// TTL returns the short code lifetime.
func (c Config) TTL() time.Duration {
	if c.TTLHours <= 0 {
		return 0
	}
	return time.Duration(c.TTLHours) * time.Hour
}
