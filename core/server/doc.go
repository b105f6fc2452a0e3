// Package server holds the HTTP server configuration.
//
// While the start command handles server startup, this package defines the settings
// shared by the REST API (Fiber) and the realtime websocket listener.
//
// # Configuration
//
// The Config struct defines the API port, the realtime port, the optional API key,
// and the origins allowed to open realtime connections.
package server
