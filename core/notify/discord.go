package notify

import (
	"context"
	"fmt"
	"unicode/utf8"

	"loot-splitter/core/settlement"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// maxEmbedDescription is Discord's limit on an embed description, in characters.
const maxEmbedDescription = 4096

const (
	codeOpen  = "```\n"
	codeClose = "\n```"
	ellipsis  = "..."
)

// Discord posts results to a Discord channel webhook.
type Discord struct {
	execute func(params *discordgo.WebhookParams) error
	logger  *zap.Logger
}

// NewDiscord creates a webhook publisher. No bot token is needed for webhooks.
func NewDiscord(webhookID, token string, logger *zap.Logger) (*Discord, error) {
	s, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("failed to create discord session: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Discord{
		execute: func(params *discordgo.WebhookParams) error {
			_, err := s.WebhookExecute(webhookID, token, false, params)
			return err
		},
		logger: logger,
	}, nil
}

func (d *Discord) Publish(ctx context.Context, title string, result *settlement.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	desc := truncateRunes(FormatSummary(result), maxEmbedDescription-len(codeOpen)-len(codeClose))

	params := &discordgo.WebhookParams{
		Username: "Loot Splitter",
		Embeds: []*discordgo.MessageEmbed{{
			Title:       title,
			Description: codeOpen + desc + codeClose,
			Color:       0xE0A526,
		}},
	}

	if err := d.execute(params); err != nil {
		d.logger.Warn("Discord webhook failed", zap.String("title", title), zap.Error(err))
		return fmt.Errorf("failed to execute discord webhook: %w", err)
	}
	return nil
}

// truncateRunes shortens s to at most limit characters, ending it with an ellipsis
// when cut. Cuts fall on rune boundaries.
func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	keep := limit - len(ellipsis)
	n := 0
	for i := range s {
		if n == keep {
			return s[:i] + ellipsis
		}
		n++
	}
	return s
}
