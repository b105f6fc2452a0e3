// Package notify publishes finished settlements to external channels.
//
// A Discord webhook publisher is selected when webhook credentials are configured;
// otherwise a no-op publisher is used.
package notify
