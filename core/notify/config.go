package notify

// Config holds configuration for result publishing.
type Config struct {
	// DiscordWebhookID is the webhook id. Empty disables Discord publishing.
	DiscordWebhookID string `mapstructure:"discord_webhook_id" default:""`
	// DiscordWebhookToken is the webhook token.
	DiscordWebhookToken string `mapstructure:"discord_webhook_token" default:""`
}

// IsDiscordEnabled reports whether both webhook credentials are set.
func (c Config) IsDiscordEnabled() bool {
	return c.DiscordWebhookID != "" && c.DiscordWebhookToken != ""
}
