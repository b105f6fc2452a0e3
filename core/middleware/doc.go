// Package middleware groups the Fiber middleware installed in front of every feature.
//
//   - rayid tags each request with an X-Ray-ID, reusing a valid one sent by the caller.
//   - auth checks the X-API-Key header (or api_key query) when an API key is configured.
//
// Session member tokens are checked by the session feature itself, not here.
package middleware
