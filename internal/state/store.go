// Package state holds the short-lived per-(user, channel) conversation
// memory used by the clarification flow.
package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/norchard/slashtalk-go/internal/domain"
	"go.uber.org/zap"
)

// Store keeps conversation states in memory. Entries expire after a TTL and
// are dropped lazily on the next access; a capacity cap evicts the
// oldest-touched entry so sustained novel traffic cannot grow the map without
// bound. Two concurrent messages for the same key race last-write-wins, an
// accepted simplification.
type Store struct {
	mu           sync.RWMutex
	entries      map[string]*domain.ConversationState
	ttl          time.Duration
	maxEntries   int
	contextDepth int
	lastCleanup  time.Time
	logger       *zap.Logger
	now          func() time.Time
}

func NewStore(ttl time.Duration, maxEntries, contextDepth int, logger *zap.Logger) *Store {
	return &Store{
		entries:      make(map[string]*domain.ConversationState),
		ttl:          ttl,
		maxEntries:   maxEntries,
		contextDepth: contextDepth,
		lastCleanup:  time.Now(),
		logger:       logger,
		now:          time.Now,
	}
}

// Get returns the live state for a (user, channel) pair, purging it first if
// the TTL has lapsed.
func (s *Store) Get(userID, channelID string) *domain.ConversationState {
	key := stateKey(userID, channelID)

	s.mu.RLock()
	st, found := s.entries[key]
	s.mu.RUnlock()

	if !found {
		return nil
	}
	if st.Expired(s.ttl, s.now()) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil
	}
	return st
}

// Put stores a state, evicting the oldest-touched entry when at capacity.
func (s *Store) Put(userID, channelID string, st *domain.ConversationState) {
	if st == nil {
		return
	}
	st.UpdatedAt = s.now()
	key := stateKey(userID, channelID)

	s.mu.Lock()
	if _, exists := s.entries[key]; !exists && s.maxEntries > 0 && len(s.entries) >= s.maxEntries {
		s.evictOldestLocked()
	}
	s.entries[key] = st
	s.mu.Unlock()

	s.maybeCleanup()
}

// Resolve drops the state for a pair; called on confirm, deny, or an
// unrelated new message.
func (s *Store) Resolve(userID, channelID string) {
	s.mu.Lock()
	delete(s.entries, stateKey(userID, channelID))
	s.mu.Unlock()
}

// AppendContext records one handled message in the pair's context ring,
// creating the state if needed.
func (s *Store) AppendContext(userID, channelID string, entry domain.ContextEntry) {
	key := stateKey(userID, channelID)
	now := s.now()

	s.mu.Lock()
	st, found := s.entries[key]
	if found && st.Expired(s.ttl, now) {
		st = nil
	}
	if st == nil {
		if s.maxEntries > 0 && len(s.entries) >= s.maxEntries {
			s.evictOldestLocked()
		}
		st = &domain.ConversationState{}
		s.entries[key] = st
	}
	st.AppendContext(entry, s.contextDepth)
	st.UpdatedAt = now
	s.mu.Unlock()

	s.maybeCleanup()
}

// Len reports the number of live entries, counting expired ones not yet
// purged.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// EvictExpired drops every entry past the TTL. Get already purges lazily;
// this exists for callers that want an explicit sweep.
func (s *Store) EvictExpired() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, st := range s.entries {
		if st == nil || st.Expired(s.ttl, now) {
			delete(s.entries, key)
			removed++
		}
	}
	s.lastCleanup = now
	return removed
}

// maybeCleanup sweeps expired entries at most once per TTL window.
func (s *Store) maybeCleanup() {
	s.mu.Lock()
	if s.now().Sub(s.lastCleanup) < s.ttl {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	removed := s.EvictExpired()
	if removed > 0 {
		s.logger.Debug("Swept expired conversation states", zap.Int("removed", removed))
	}
}

func (s *Store) evictOldestLocked() {
	var oldestKey string
	var oldest time.Time
	for key, st := range s.entries {
		if oldestKey == "" || st.UpdatedAt.Before(oldest) {
			oldestKey = key
			oldest = st.UpdatedAt
		}
	}
	if oldestKey != "" {
		delete(s.entries, oldestKey)
	}
}

func stateKey(userID, channelID string) string {
	return fmt.Sprintf("%s:%s", userID, channelID)
}
