package notify

import (
	"context"
	"fmt"
	"strings"

	"loot-splitter/core/settlement"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// Publisher announces a finished settlement somewhere outside the API.
type Publisher interface {
	Publish(ctx context.Context, title string, result *settlement.Result) error
}

// New returns the publisher selected by cfg, or a no-op publisher when nothing is configured.
func New(cfg Config, logger *zap.Logger) (Publisher, error) {
	if !cfg.IsDiscordEnabled() {
		return Nop{}, nil
	}
	return NewDiscord(cfg.DiscordWebhookID, cfg.DiscordWebhookToken, logger)
}

// Nop discards every result.
type Nop struct{}

func (Nop) Publish(context.Context, string, *settlement.Result) error { return nil }

// FormatSummary renders a result as a short plain-text report.
func FormatSummary(r *settlement.Result) string {
	if r == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Party balance: %s gp\n", humanize.Comma(r.PartyBalance))
	fmt.Fprintf(&b, "Loot value: %s gp\n", humanize.Comma(r.TotalValue))

	if len(r.ItemTransfers) > 0 {
		b.WriteString("\nItems\n")
		for _, g := range r.ItemTransfers {
			parts := make([]string, 0, len(g.Items))
			for _, it := range g.Items {
				parts = append(parts, fmt.Sprintf("%sx %s", humanize.Comma(it.Amount), it.Name))
			}
			fmt.Fprintf(&b, "%s -> %s: %s\n", g.From, g.To, strings.Join(parts, ", "))
		}
	}

	if len(r.GoldTransfers) > 0 {
		b.WriteString("\nGold\n")
		for _, t := range r.GoldTransfers {
			fmt.Fprintf(&b, "%s -> %s: %s gp\n", t.From, t.To, humanize.Comma(t.Amount))
		}
	}

	if len(r.Remainder) > 0 {
		b.WriteString("\nUndivided\n")
		for _, it := range r.Remainder {
			fmt.Fprintf(&b, "%sx %s\n", humanize.Comma(it.Amount), it.Name)
		}
	}

	if len(r.ItemTransfers) == 0 && len(r.GoldTransfers) == 0 {
		b.WriteString("\nNothing to transfer.\n")
	}

	return strings.TrimRight(b.String(), "\n")
}
