// Package logger builds the zap logger shared by the server and the CLI.
//
// Level "debug" selects zap's development preset, anything else the production one.
// Format is "json" (default) or "console". Request handlers tag their entries with
// WithRayID so every line of one request can be correlated; background components
// such as the realtime listener use Named.
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	logger.WithRayID(log, c).Error("Settlement failed", zap.Error(err))
package logger
