package matcher

import (
	"testing"

	"github.com/norchard/slashtalk-go/internal/domain"
)

func TestExtractReason(t *testing.T) {
	msg := &domain.InboundMessage{}
	tests := []struct {
		text     string
		expected string
	}{
		{"warn user123 for spamming", "spamming"},
		{"ban them because they advertise", "they advertise"},
		{"mute him, they keep posting links", "posting links"},
		{"remove that user, they are being toxic", "being toxic"},
		{"kick user123", ""},
	}

	for _, tt := range tests {
		if got := Extract(domain.SlotReason, msg, tt.text); got != tt.expected {
			t.Errorf("Extract(reason, %q) = %q, want %q", tt.text, got, tt.expected)
		}
	}
}

func TestExtractMessage(t *testing.T) {
	msg := &domain.InboundMessage{}
	tests := []struct {
		text     string
		expected string
	}{
		{`announce "server maintenance tonight"`, "server maintenance tonight"},
		{"say 'hello everyone'", "hello everyone"},
		{"tell everyone the event starts soon", "everyone the event starts soon"},
		{"purge 10", ""},
	}

	for _, tt := range tests {
		if got := Extract(domain.SlotMessage, msg, tt.text); got != tt.expected {
			t.Errorf("Extract(message, %q) = %q, want %q", tt.text, got, tt.expected)
		}
	}
}

func TestExtractAmount(t *testing.T) {
	msg := &domain.InboundMessage{}
	tests := []struct {
		text     string
		expected string
	}{
		{"purge 10 messages", "10"},
		{"delete 25 msgs", "25"},
		{"clear 50", "50"},
		{"remove ten messages", "10"},
		{"purge everything", ""},
	}

	for _, tt := range tests {
		if got := Extract(domain.SlotAmount, msg, tt.text); got != tt.expected {
			t.Errorf("Extract(amount, %q) = %q, want %q", tt.text, got, tt.expected)
		}
	}
}

func TestExtractDuration(t *testing.T) {
	msg := &domain.InboundMessage{}
	tests := []struct {
		text     string
		expected string
	}{
		{"mute them for 10 minutes", "10m"},
		{"timeout for 2 hours", "2h"},
		{"slowmode 30s", "30s"},
		{"ban for 7 days", "7d"},
		{"mute them", ""},
	}

	for _, tt := range tests {
		if got := Extract(domain.SlotDuration, msg, tt.text); got != tt.expected {
			t.Errorf("Extract(duration, %q) = %q, want %q", tt.text, got, tt.expected)
		}
	}
}

func TestExtractUser(t *testing.T) {
	// single mention
	msg := &domain.InboundMessage{
		Text:             "ban <@111> for spamming",
		BotID:            "999",
		MentionedUserIDs: []string{"111"},
	}
	if got := Extract(domain.SlotUser, msg, msg.Text); got != "111" {
		t.Errorf("Extract(user) = %q, want 111", got)
	}

	// bot mention filtered out
	msg = &domain.InboundMessage{
		Text:             "<@999> ban <@111>",
		BotID:            "999",
		MentionedUserIDs: []string{"999", "111"},
	}
	if got := Extract(domain.SlotUser, msg, msg.Text); got != "111" {
		t.Errorf("Extract(user) with bot mention = %q, want 111", got)
	}

	// with several non-bot mentions the leading one is the addressee
	msg = &domain.InboundMessage{
		Text:             "<@222> can you ban <@111>",
		BotID:            "999",
		MentionedUserIDs: []string{"222", "111"},
	}
	if got := Extract(domain.SlotUser, msg, msg.Text); got != "111" {
		t.Errorf("Extract(user) with leading mention = %q, want 111", got)
	}

	if got := Extract(domain.SlotUser, &domain.InboundMessage{}, "ban someone"); got != "" {
		t.Errorf("Extract(user) without mentions = %q, want empty", got)
	}
}

func TestExtractRole(t *testing.T) {
	// structured role mention wins
	msg := &domain.InboundMessage{MentionedRoleIDs: []string{"555"}}
	if got := Extract(domain.SlotRole, msg, "give them the vip role"); got != "555" {
		t.Errorf("Extract(role) = %q, want 555", got)
	}

	// phrasing rule
	msg = &domain.InboundMessage{}
	if got := Extract(domain.SlotRole, msg, "give them the moderator role"); got != "moderator" {
		t.Errorf("Extract(role) = %q, want moderator", got)
	}

	// common role word fallback
	if got := Extract(domain.SlotRole, msg, "make user123 vip please"); got != "vip" {
		t.Errorf("Extract(role) = %q, want vip", got)
	}
}

func TestExtractChannel(t *testing.T) {
	msg := &domain.InboundMessage{MentionedChannelIDs: []string{"777"}}
	if got := Extract(domain.SlotChannel, msg, "lock <#777>"); got != "777" {
		t.Errorf("Extract(channel) = %q, want 777", got)
	}
	if got := Extract(domain.SlotChannel, &domain.InboundMessage{}, "lock the channel"); got != "" {
		t.Errorf("Extract(channel) without mention = %q, want empty", got)
	}
}

func TestExtractCleansCaptures(t *testing.T) {
	msg := &domain.InboundMessage{MentionedUserIDs: []string{"111"}}

	// mention tokens and trailing punctuation are stripped from free text
	if got := Extract(domain.SlotReason, msg, "ban <@111> for spamming links!!"); got != "spamming links" {
		t.Errorf("Extract(reason) = %q, want %q", got, "spamming links")
	}
}

func TestExtractAllCoversTemplateSlots(t *testing.T) {
	entry := banEntry()
	msg := &domain.InboundMessage{
		Text:             "ban <@111> for spamming",
		MentionedUserIDs: []string{"111"},
	}

	params := ExtractAll(entry, msg, msg.Text)
	if params[domain.SlotUser] != "111" {
		t.Errorf("params[user] = %q, want 111", params[domain.SlotUser])
	}
	if params[domain.SlotReason] != "spamming" {
		t.Errorf("params[reason] = %q, want spamming", params[domain.SlotReason])
	}
}
