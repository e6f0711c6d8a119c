package domain

import "time"

// PendingCommand is a candidate that cleared the score threshold but is
// missing required parameters. It waits in conversation state for the user's
// follow-up.
type PendingCommand struct {
	CommandName  string
	Entry        *CatalogEntry
	Params       map[Slot]string
	MissingSlots []Slot
}

// ContextEntry is one message in the short per-conversation history ring.
type ContextEntry struct {
	MessageID string
	Content   string
	AuthorID  string
	IsBot     bool
	Timestamp time.Time
}

// ConversationState is the short-lived memory for one (user, channel) pair.
// It holds at most one pending clarification plus a bounded ring of recent
// messages used to resolve reply context.
type ConversationState struct {
	ClarificationQuestion string
	Pending               *PendingCommand
	OriginalMessage       string
	Context               []ContextEntry
	UpdatedAt             time.Time
}

// AppendContext pushes an entry onto the ring, dropping the oldest entry once
// maxDepth is reached.
func (s *ConversationState) AppendContext(entry ContextEntry, maxDepth int) {
	s.Context = append(s.Context, entry)
	if maxDepth > 0 && len(s.Context) > maxDepth {
		s.Context = s.Context[len(s.Context)-maxDepth:]
	}
}

// Expired reports whether the state has outlived the TTL relative to now.
func (s *ConversationState) Expired(ttl time.Duration, now time.Time) bool {
	return now.Sub(s.UpdatedAt) > ttl
}
