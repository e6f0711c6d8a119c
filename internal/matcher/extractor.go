package matcher

import (
	"regexp"
	"strings"

	"github.com/norchard/slashtalk-go/internal/domain"
	"github.com/norchard/slashtalk-go/internal/lexicon"
	"github.com/norchard/slashtalk-go/internal/util"
)

// Extraction is an ordered list of (pattern, transform) rules per slot,
// evaluated first-match-wins. A rule set that matches nothing yields the
// empty string; missing values are the selector's concern, never an error.

var reasonRules = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(?:for|because|due to|reason:)\s+(.+)$`),
	regexp.MustCompile(`(?i)\b(?:they|user)\s+(?:keep|keeps|is|are|was|were)\s+(.+)$`),
	regexp.MustCompile(`(?i)\b(?:being|getting)\s+(.+)$`),
}

var messageRules = []*regexp.Regexp{
	regexp.MustCompile(`"([^"]+)"`),
	regexp.MustCompile(`'([^']+)'`),
	regexp.MustCompile(`(?i)\b(?:say|tell|announce|note|message)\s+(.+)$`),
}

var (
	amountWithUnitRule = regexp.MustCompile(`(?i)\b(\d+)\s*(?:messages?|msgs?)\b`)
	bareIntegerRule    = regexp.MustCompile(`\b(\d+)\b`)
)

var wordNumbers = map[string]string{
	"one": "1", "two": "2", "three": "3", "four": "4", "five": "5",
	"six": "6", "seven": "7", "eight": "8", "nine": "9", "ten": "10",
	"fifteen": "15", "twenty": "20", "thirty": "30", "fifty": "50",
}

var durationRule = regexp.MustCompile(`(?i)\b(\d+)\s*(s|secs?|seconds?|m|mins?|minutes?|h|hrs?|hours?|d|days?)\b`)

var roleRule = regexp.MustCompile(`(?i)\b(?:give|add|assign)\s+(?:them\s+|him\s+|her\s+)?(?:the\s+)?(.+?)\s+(?:role|admin|permissions)\b`)

var nameRules = []*regexp.Regexp{
	regexp.MustCompile(`"([^"]+)"`),
	regexp.MustCompile(`'([^']+)'`),
	regexp.MustCompile(`(?i)\b(?:named|called)\s+(.+)$`),
}

var (
	leadingMentionRule = regexp.MustCompile(`^<@!?(\d+)>`)
	mentionTokenRule   = regexp.MustCompile(`<[@#][!&]?\d+>`)
)

// Extract derives a value for one slot from the raw text and the structured
// mention lists. It returns the empty string when no rule matches.
func Extract(slot domain.Slot, msg *domain.InboundMessage, text string) string {
	switch slot {
	case domain.SlotUser:
		return extractUser(msg)
	case domain.SlotReason:
		return firstRuleMatch(reasonRules, text)
	case domain.SlotMessage:
		return firstRuleMatch(messageRules, text)
	case domain.SlotAmount:
		return extractAmount(text)
	case domain.SlotDuration:
		return extractDuration(text)
	case domain.SlotRole:
		return extractRole(msg, text)
	case domain.SlotChannel:
		if len(msg.MentionedChannelIDs) > 0 {
			return msg.MentionedChannelIDs[0]
		}
		return ""
	case domain.SlotName:
		return firstRuleMatch(nameRules, text)
	default:
		return ""
	}
}

// ExtractAll resolves every slot the entry's template references.
func ExtractAll(entry *domain.CatalogEntry, msg *domain.InboundMessage, text string) map[domain.Slot]string {
	params := make(map[domain.Slot]string)
	for _, slot := range entry.AllSlotsUsed() {
		params[slot] = Extract(slot, msg, text)
	}
	return params
}

// extractUser picks the first structured user mention that is not the bot
// itself. When several remain, the mention leading the message is skipped:
// that is usually the user addressing the bot.
func extractUser(msg *domain.InboundMessage) string {
	candidates := make([]string, 0, len(msg.MentionedUserIDs))
	for _, id := range msg.MentionedUserIDs {
		if id != "" && id != msg.BotID {
			candidates = append(candidates, id)
		}
	}
	if len(candidates) == 0 {
		return ""
	}
	if len(candidates) == 1 {
		return candidates[0]
	}

	leading := ""
	if m := leadingMentionRule.FindStringSubmatch(strings.TrimSpace(msg.Text)); m != nil {
		leading = m[1]
	}
	for _, id := range candidates {
		if id != leading {
			return id
		}
	}
	return candidates[0]
}

func extractAmount(text string) string {
	if m := amountWithUnitRule.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if m := bareIntegerRule.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	for _, token := range util.Tokenize(text) {
		if value, ok := wordNumbers[token]; ok {
			return value
		}
	}
	return ""
}

// extractDuration keeps the value as "<n><unit-letter>", e.g. "10m".
func extractDuration(text string) string {
	m := durationRule.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	unit := strings.ToLower(m[2])
	return m[1] + unit[:1]
}

func extractRole(msg *domain.InboundMessage, text string) string {
	if len(msg.MentionedRoleIDs) > 0 {
		return msg.MentionedRoleIDs[0]
	}
	if m := roleRule.FindStringSubmatch(text); m != nil {
		return cleanCapture(m[1])
	}
	for _, token := range util.Tokenize(text) {
		if util.Contains(lexicon.CommonRoles(), token) {
			return token
		}
	}
	return ""
}

func firstRuleMatch(rules []*regexp.Regexp, text string) string {
	for _, rule := range rules {
		if m := rule.FindStringSubmatch(text); m != nil {
			if value := cleanCapture(m[1]); value != "" {
				return value
			}
		}
	}
	return ""
}

// cleanCapture strips mention tokens and trailing punctuation from a captured
// free-text value.
func cleanCapture(value string) string {
	value = mentionTokenRule.ReplaceAllString(value, " ")
	value = strings.Join(strings.Fields(value), " ")
	return strings.TrimRight(value, " .,!?;:")
}
