package server

import "strings"

// Config holds configuration for the HTTP servers.
type Config struct {
	// Port is the port where the REST API will listen.
	Port string `mapstructure:"port" default:"8080"`
	// RealtimePort is the port of the websocket listener. Empty disables it.
	RealtimePort string `mapstructure:"realtime_port" default:"8081"`
	// ApiKey is the secret key required to access the API. Empty disables the check.
	ApiKey string `mapstructure:"api_key" default:""`
	// AllowedOrigins is a comma separated list of origins allowed on the realtime listener.
	AllowedOrigins string `mapstructure:"allowed_origins" default:"*"`
}

// IsRealtimeEnabled reports whether the websocket listener should be started.
func (c Config) IsRealtimeEnabled() bool {
	return strings.TrimSpace(c.RealtimePort) != ""
}

// Origins splits AllowedOrigins into a trimmed list, dropping empty entries.
func (c Config) Origins() []string {
	var out []string
	for _, origin := range strings.Split(c.AllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			out = append(out, origin)
		}
	}
	return out
}
