package matcher

import (
	"strings"
	"testing"

	"github.com/norchard/slashtalk-go/internal/domain"
)

func TestRenderSubstitutesParams(t *testing.T) {
	got := Render(banEntry(), map[domain.Slot]string{
		domain.SlotUser:   "111",
		domain.SlotReason: "spamming",
	})
	want := "/ban user:111 reason:spamming"
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRenderAppliesDefaults(t *testing.T) {
	got := Render(banEntry(), map[domain.Slot]string{
		domain.SlotUser: "111",
	})
	want := "/ban user:111 reason:No reason provided"
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}

func TestRenderLeavesNoPlaceholders(t *testing.T) {
	entries := []*domain.CatalogEntry{banEntry(), warnEntry(), purgeEntry()}
	for _, entry := range entries {
		got := Render(entry, map[domain.Slot]string{})
		if strings.Contains(got, "{") || strings.Contains(got, "}") {
			t.Errorf("Render(%s) left placeholders: %q", entry.CommandName, got)
		}
	}
}

func TestRenderAmountDefault(t *testing.T) {
	got := Render(purgeEntry(), map[domain.Slot]string{})
	want := "/purge amount:1"
	if got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}
