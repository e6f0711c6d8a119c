package matcher

import (
	"strings"

	"github.com/norchard/slashtalk-go/internal/domain"
)

// slotDefaults fill unresolved optional placeholders at render time.
var slotDefaults = map[domain.Slot]string{
	domain.SlotReason:   "No reason provided",
	domain.SlotMessage:  "No message provided",
	domain.SlotAmount:   "1",
	domain.SlotDuration: "5m",
	domain.SlotUser:     "target user",
}

// Render substitutes every resolved slot value into the entry's output
// template and fills the remaining optional placeholders with their defaults.
// The result is a single command string; no execution happens here.
func Render(entry *domain.CatalogEntry, params map[domain.Slot]string) string {
	out := entry.OutputTemplate
	for _, slot := range entry.AllSlotsUsed() {
		value := params[slot]
		if value == "" {
			value = slotDefaults[slot]
		}
		out = strings.ReplaceAll(out, "{"+slot.String()+"}", value)
	}
	return out
}
