// Package loader registers features and mounts the enabled ones on the Fiber app.
//
// A feature is any type with a Name, an IsEnabled switch and a Load method that adds its
// routes. cmd/start registers settlement, share, session and integrity; LoadAll skips the
// disabled ones and stops at the first Load error.
package loader
