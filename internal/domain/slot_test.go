package domain

import "testing"

func TestMapOptionToSlotExactNames(t *testing.T) {
	tests := []struct {
		name     string
		optType  OptionType
		expected Slot
	}{
		{"user", OptionUser, SlotUser},
		{"target", OptionString, SlotUser},
		{"member", OptionUser, SlotUser},
		{"reason", OptionString, SlotReason},
		{"why", OptionString, SlotReason},
		{"duration", OptionString, SlotDuration},
		{"timeout", OptionInteger, SlotDuration},
		{"amount", OptionInteger, SlotAmount},
		{"count", OptionInteger, SlotAmount},
		{"channel", OptionChannel, SlotChannel},
		{"role", OptionRole, SlotRole},
		{"message", OptionString, SlotMessage},
		{"announcement", OptionString, SlotMessage},
		{"nickname", OptionString, SlotName},
	}

	for _, tt := range tests {
		if got := MapOptionToSlot(tt.name, tt.optType); got != tt.expected {
			t.Errorf("MapOptionToSlot(%q, %v) = %v, want %v", tt.name, tt.optType, got, tt.expected)
		}
	}
}

func TestMapOptionToSlotSubstrings(t *testing.T) {
	tests := []struct {
		name     string
		optType  OptionType
		expected Slot
	}{
		{"ban_reason", OptionString, SlotReason},
		{"target_user", OptionUser, SlotUser},
		{"mute_duration", OptionString, SlotDuration},
		{"message_count", OptionInteger, SlotAmount},
	}

	for _, tt := range tests {
		if got := MapOptionToSlot(tt.name, tt.optType); got != tt.expected {
			t.Errorf("MapOptionToSlot(%q, %v) = %v, want %v", tt.name, tt.optType, got, tt.expected)
		}
	}
}

func TestMapOptionToSlotTypeFallback(t *testing.T) {
	tests := []struct {
		name     string
		optType  OptionType
		expected Slot
	}{
		{"victim", OptionUser, SlotUser},
		{"victim", OptionMentionable, SlotUser},
		{"where", OptionChannel, SlotChannel},
		{"privileges", OptionRole, SlotRole},
		{"threshold", OptionInteger, SlotAmount},
		{"payload", OptionString, SlotMessage},
		{"enabled", OptionBoolean, SlotMessage},
	}

	for _, tt := range tests {
		if got := MapOptionToSlot(tt.name, tt.optType); got != tt.expected {
			t.Errorf("MapOptionToSlot(%q, %v) = %v, want %v", tt.name, tt.optType, got, tt.expected)
		}
	}
}

// Every name/type combination must land on some canonical slot; extraction
// and rendering rely on the mapping being total.
func TestMapOptionToSlotIsTotal(t *testing.T) {
	names := []string{"", "x", "zzz_unheard_of", "타겟", "42"}
	types := []OptionType{
		OptionString, OptionInteger, OptionBoolean, OptionUser,
		OptionChannel, OptionRole, OptionMentionable, OptionNumber, OptionAttachment,
	}

	valid := make(map[Slot]bool, len(AllSlots))
	for _, s := range AllSlots {
		valid[s] = true
	}

	for _, name := range names {
		for _, optType := range types {
			if got := MapOptionToSlot(name, optType); !valid[got] {
				t.Errorf("MapOptionToSlot(%q, %v) = %v, not a canonical slot", name, optType, got)
			}
		}
	}
}

func TestAllSlotsUsedDeduplicates(t *testing.T) {
	entry := &CatalogEntry{
		RequiredSlots: []Slot{SlotUser, SlotReason},
		OptionalSlots: []Slot{SlotReason, SlotDuration, SlotDuration},
	}

	got := entry.AllSlotsUsed()
	expected := []Slot{SlotUser, SlotReason, SlotDuration}
	if len(got) != len(expected) {
		t.Fatalf("AllSlotsUsed() = %v, want %v", got, expected)
	}
	for i := range got {
		if got[i] != expected[i] {
			t.Errorf("AllSlotsUsed()[%d] = %v, want %v", i, got[i], expected[i])
		}
	}
}

func TestMatchCandidateExecutable(t *testing.T) {
	entry := &CatalogEntry{
		CommandName:   "ban",
		RequiredSlots: []Slot{SlotUser},
	}

	candidate := &MatchCandidate{
		Entry:          entry,
		AggregateScore: 0.5,
		Params:         map[Slot]string{SlotUser: "123"},
	}
	if !candidate.IsExecutable(0.25) {
		t.Error("candidate with filled slots above threshold should be executable")
	}

	candidate.Params[SlotUser] = ""
	if candidate.IsExecutable(0.25) {
		t.Error("candidate missing a required slot must not be executable")
	}
	if missing := candidate.MissingRequiredSlots(); len(missing) != 1 || missing[0] != SlotUser {
		t.Errorf("MissingRequiredSlots() = %v, want [user]", missing)
	}

	candidate.Params[SlotUser] = "123"
	candidate.AggregateScore = 0.1
	if candidate.IsExecutable(0.25) {
		t.Error("candidate below threshold must not be executable")
	}
}
