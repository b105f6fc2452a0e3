// Package session implements live settlement sessions.
//
// The creator of a session becomes its leader and receives a signed member token
// (HS256 JWT). Other players join with the session id and get their own token. Each
// member edits only their own name and session log; the leader edits the party log and
// triggers the calculation. Every change is pushed to the session's websocket
// subscribers on the realtime listener.
//
// Sessions live in memory for Config.TTLHours. Expired sessions stop resolving at once
// but are purged only when a new session is created while the store is past
// Config.CleanupThreshold of Config.MaxSessions.
//
// Routes (API listener):
//
//	POST /sessions                      create, returns leader token
//	POST /sessions/:id/join             join, returns member token
//	GET  /sessions/:id                  snapshot
//	PUT  /sessions/:id/members/me       update own name/log
//	PUT  /sessions/:id/party-log        leader only
//	POST /sessions/:id/calculate        leader only
//
// Realtime listener:
//
//	GET /ws/sessions/{id}?token=...     websocket of session events
package session
