package domain

import (
	"strings"

	"github.com/norchard/slashtalk-go/internal/util"
)

// Slot is the canonical parameter role every bot-specific option name is
// mapped onto. The set is closed; downstream extraction and rendering only
// ever see these values.
type Slot string

const (
	SlotUser     Slot = "user"
	SlotReason   Slot = "reason"
	SlotMessage  Slot = "message"
	SlotAmount   Slot = "amount"
	SlotDuration Slot = "duration"
	SlotRole     Slot = "role"
	SlotChannel  Slot = "channel"
	SlotName     Slot = "name"
)

func (s Slot) String() string {
	return string(s)
}

// AllSlots lists every canonical slot in stable order.
var AllSlots = []Slot{
	SlotUser, SlotReason, SlotMessage, SlotAmount,
	SlotDuration, SlotRole, SlotChannel, SlotName,
}

// slotNameRules map option-name fragments to slots. Evaluated in order so the
// mapping stays deterministic when a name matches several fragments.
var slotNameRules = []struct {
	keywords []string
	slot     Slot
}{
	{[]string{"reason", "cause", "why"}, SlotReason},
	{[]string{"duration", "length", "time", "timeout"}, SlotDuration},
	{[]string{"amount", "count", "number", "num", "quantity"}, SlotAmount},
	{[]string{"channel", "room"}, SlotChannel},
	{[]string{"role", "rank", "group"}, SlotRole},
	{[]string{"message", "text", "content", "note", "announcement"}, SlotMessage},
	{[]string{"name", "title", "nickname", "label"}, SlotName},
	{[]string{"user", "target", "member", "add", "person", "who"}, SlotUser},
}

// MapOptionToSlot maps one discovered option onto a canonical slot. The
// mapping is total: the name lookup runs first (exact, then substring), then
// the option type decides. Unrecognized string options land on message and
// numeric ones on amount, so no option is ever left unmapped.
func MapOptionToSlot(name string, optType OptionType) Slot {
	norm := util.Normalize(name)

	for _, rule := range slotNameRules {
		for _, kw := range rule.keywords {
			if norm == kw {
				return rule.slot
			}
		}
	}
	for _, rule := range slotNameRules {
		for _, kw := range rule.keywords {
			if len(norm) > 1 && (strings.Contains(norm, kw) || strings.Contains(kw, norm)) {
				return rule.slot
			}
		}
	}

	switch optType {
	case OptionUser, OptionMentionable:
		return SlotUser
	case OptionChannel:
		return SlotChannel
	case OptionRole:
		return SlotRole
	case OptionInteger, OptionNumber:
		return SlotAmount
	default:
		// string, boolean, attachment and anything unforeseen
		return SlotMessage
	}
}

// cleanSlots is the subset of slots considered well-named for the confidence
// bias bonus.
var cleanSlots = map[Slot]bool{
	SlotUser:     true,
	SlotReason:   true,
	SlotChannel:  true,
	SlotRole:     true,
	SlotMessage:  true,
	SlotDuration: true,
}

// IsCleanSlot reports whether a slot belongs to the well-named set used when
// computing an entry's confidence bias.
func IsCleanSlot(s Slot) bool {
	return cleanSlots[s]
}
