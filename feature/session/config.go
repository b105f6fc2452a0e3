package session

import "time"

// Config holds configuration for live sessions.
type Config struct {
	// TTLHours is how long a session lives after creation.
	TTLHours int `mapstructure:"ttl_hours" default:"168"`
	// MaxSessions caps the number of stored sessions.
	MaxSessions int `mapstructure:"max_sessions" default:"2000"`
	// CleanupThreshold is the fill ratio of MaxSessions at which expired sessions are purged.
	CleanupThreshold float64 `mapstructure:"cleanup_threshold" default:"0.75"`
	// JWTSecret signs member tokens. Empty generates a per-process secret.
	JWTSecret string `mapstructure:"jwt_secret" default:""`
	// UpdatesPerMinute limits how often one member may change their log.
	UpdatesPerMinute int `mapstructure:"updates_per_minute" default:"30"`
}

// TTL returns the session lifetime.
func (c Config) TTL() time.Duration {
	if c.TTLHours <= 0 {
		return 168 * time.Hour
	}
	return time.Duration(c.TTLHours) * time.Hour
}

// CleanupAt returns the session count that triggers a purge of expired sessions.
func (c Config) CleanupAt() int {
	limit := c.MaxSessions
	if limit <= 0 {
		limit = 2000
	}
	ratio := c.CleanupThreshold
	if ratio <= 0 || ratio > 1 {
		ratio = 0.75
	}
	return int(float64(limit) * ratio)
}
