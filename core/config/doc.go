// Package config loads the loot-splitter configuration.
//
// Values come from environment variables, optionally read from a .env file first.
// Keys are nested by section, so SHARE_STORE maps to share.store. Defaults are taken
// from the `default` struct tags of each section.
//
// # Sections
//
//   - Server: API port, realtime port, API key, allowed origins
//   - Log: level and encoding
//   - Database: driver and connection for the database price source
//   - Storage: MinIO credentials and bucket for the storage price source
//   - Pricing: which price source to use and how long to cache it
//   - Share: short-link store and state compression
//   - Session: live session lifetime, capacity, token secret, update rate
//   - Notify: Discord webhook credentials
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.Server.Port)
package config
