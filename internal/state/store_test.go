package state

import (
	"fmt"
	"testing"
	"time"

	"github.com/norchard/slashtalk-go/internal/domain"
	"go.uber.org/zap"
)

func newTestStore(ttl time.Duration, maxEntries int) *Store {
	return NewStore(ttl, maxEntries, 10, zap.NewNop())
}

func TestPutAndGet(t *testing.T) {
	s := newTestStore(time.Hour, 100)

	st := &domain.ConversationState{ClarificationQuestion: "who?"}
	s.Put("u1", "c1", st)

	got := s.Get("u1", "c1")
	if got == nil || got.ClarificationQuestion != "who?" {
		t.Fatalf("Get returned %v, want the stored state", got)
	}

	if s.Get("u1", "other-channel") != nil {
		t.Error("states must be scoped per (user, channel) pair")
	}
	if s.Get("other-user", "c1") != nil {
		t.Error("states must be scoped per (user, channel) pair")
	}
}

func TestResolve(t *testing.T) {
	s := newTestStore(time.Hour, 100)

	s.Put("u1", "c1", &domain.ConversationState{})
	s.Resolve("u1", "c1")

	if s.Get("u1", "c1") != nil {
		t.Error("resolved state must be gone")
	}
}

func TestExpiredStatePurgedOnGet(t *testing.T) {
	s := newTestStore(time.Hour, 100)

	now := time.Now()
	s.now = func() time.Time { return now }
	s.Put("u1", "c1", &domain.ConversationState{})

	// advance past the TTL
	s.now = func() time.Time { return now.Add(2 * time.Hour) }

	if s.Get("u1", "c1") != nil {
		t.Fatal("expired state must not be returned")
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d after lazy purge, want 0", s.Len())
	}
}

func TestCapEvictsOldest(t *testing.T) {
	s := newTestStore(time.Hour, 3)

	base := time.Now()
	for i := 0; i < 3; i++ {
		i := i
		s.now = func() time.Time { return base.Add(time.Duration(i) * time.Minute) }
		s.Put(fmt.Sprintf("u%d", i), "c1", &domain.ConversationState{})
	}

	s.now = func() time.Time { return base.Add(10 * time.Minute) }
	s.Put("u9", "c1", &domain.ConversationState{})

	if s.Len() != 3 {
		t.Fatalf("Len = %d, want the cap of 3", s.Len())
	}
	if s.Get("u0", "c1") != nil {
		t.Error("oldest-touched state should have been evicted")
	}
	if s.Get("u9", "c1") == nil {
		t.Error("newest state must survive eviction")
	}
}

func TestPutSameKeyDoesNotEvict(t *testing.T) {
	s := newTestStore(time.Hour, 1)

	s.Put("u1", "c1", &domain.ConversationState{})
	s.Put("u1", "c1", &domain.ConversationState{ClarificationQuestion: "again?"})

	if s.Len() != 1 {
		t.Fatalf("Len = %d, want 1", s.Len())
	}
	if got := s.Get("u1", "c1"); got == nil || got.ClarificationQuestion != "again?" {
		t.Error("overwriting the same key must keep the latest state")
	}
}

func TestAppendContextRing(t *testing.T) {
	s := newTestStore(time.Hour, 100)

	for i := 0; i < 15; i++ {
		s.AppendContext("u1", "c1", domain.ContextEntry{
			Content: fmt.Sprintf("msg-%d", i),
		})
	}

	st := s.Get("u1", "c1")
	if st == nil {
		t.Fatal("AppendContext must create the state")
	}
	if len(st.Context) != 10 {
		t.Fatalf("context depth = %d, want 10", len(st.Context))
	}
	if st.Context[0].Content != "msg-5" || st.Context[9].Content != "msg-14" {
		t.Errorf("ring kept [%s .. %s], want [msg-5 .. msg-14]",
			st.Context[0].Content, st.Context[9].Content)
	}
}

func TestEvictExpired(t *testing.T) {
	s := newTestStore(time.Hour, 100)

	now := time.Now()
	// keep the opportunistic sweep quiet so this test drives eviction itself
	s.lastCleanup = now.Add(24 * time.Hour)
	s.now = func() time.Time { return now }
	s.Put("old", "c1", &domain.ConversationState{})

	s.now = func() time.Time { return now.Add(90 * time.Minute) }
	s.Put("fresh", "c1", &domain.ConversationState{})

	s.now = func() time.Time { return now.Add(2 * time.Hour) }
	if removed := s.EvictExpired(); removed != 1 {
		t.Errorf("EvictExpired removed %d, want 1", removed)
	}
	if s.Get("fresh", "c1") == nil {
		t.Error("unexpired state must survive the sweep")
	}
}
