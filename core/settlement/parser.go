package settlement

import (
	"regexp"
	"strconv"
	"strings"

	"loot-splitter/core/pricing"
	"loot-splitter/core/utils"
)

var (
	reHeader        = regexp.MustCompile(`^(Session|Loot|Supplies|Balance|Damage|Healing)`)
	reLeaderSuffix  = regexp.MustCompile(`(?i)\s\(Leader\)$`)
	reLootLine      = regexp.MustCompile(`^(\d+)x\s+(.+)$`)
	reArticlePrefix = regexp.MustCompile(`(?i)^(a|an)\s+`)
)

const (
	balancePrefix = "Balance:"
	lootHeader    = "Looted Items:"
)

// NormalizeKey returns the identity key for a player name.
func NormalizeKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ParsePartyLog extracts each player's declared balance from a party hunt summary.
//
// A line that is neither a section header nor starts with a digit names the current
// player; a "Balance:" line records that player's balance. Malformed numbers parse as 0
// and unrecognized lines are ignored, so this never fails.
func ParsePartyLog(text string) *PartyLog {
	party := &PartyLog{Entries: make(map[string]PartyEntry)}
	current := ""

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if !reHeader.MatchString(trimmed) && !startsWithDigit(trimmed) {
			current = strings.TrimSpace(reLeaderSuffix.ReplaceAllString(trimmed, ""))
			continue
		}

		if current == "" || !strings.HasPrefix(trimmed, balancePrefix) {
			continue
		}

		parts := strings.Split(trimmed, ":")
		key := NormalizeKey(current)
		if _, seen := party.Entries[key]; !seen {
			party.Order = append(party.Order, key)
		}
		party.Entries[key] = PartyEntry{
			Key:     key,
			Name:    current,
			Balance: utils.ParseAmount(parts[1]),
		}
	}

	return party
}

// ParseSessionLog extracts the priced items from one player's session log.
//
// Only the "Looted Items:" section is read. Blank lines before the first loot line are
// skipped; the first blank line after it, or any line that is not "<n>x <item>", ends the
// section. Items missing from table are dropped, as are "0x" lines and counts that
// overflow int64; neither ends the section.
func ParseSessionLog(text string, table *pricing.Table) map[string]int64 {
	loot := make(map[string]int64)
	inSection := false
	started := false

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)

		if !inSection {
			inSection = trimmed == lootHeader
			continue
		}

		if trimmed == "" {
			if started {
				break
			}
			continue
		}

		match := reLootLine.FindStringSubmatch(trimmed)
		if match == nil {
			break
		}
		started = true

		amount, err := strconv.ParseInt(match[1], 10, 64)
		if err != nil || amount == 0 {
			continue
		}

		item, ok := table.Lookup(normalizeItemName(match[2]))
		if !ok {
			continue
		}
		loot[item.Name] += amount
	}

	return loot
}

// normalizeItemName strips a leading article and lowercases the name.
func normalizeItemName(raw string) string {
	name := reArticlePrefix.ReplaceAllString(strings.TrimSpace(raw), "")
	return strings.ToLower(strings.TrimSpace(name))
}

func startsWithDigit(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}
