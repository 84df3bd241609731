// Package chat keeps per-student tutor conversations in a bounded, expiring
// store so history never grows without limit and idle sessions get evicted.
package chat

import (
	"sync"
	"time"
)

const (
	// maxMessages is the per-conversation history cap.
	maxMessages = 20
	// defaultTTL evicts conversations idle longer than this.
	defaultTTL = 30 * time.Minute
)

type Message struct {
	Role      string    `json:"role"` // "student" or "tutor"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type conversation struct {
	messages []Message
	lastSeen time.Time
}

// Store is a keyed conversation store, safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	convs map[string]*conversation
}

func NewStore() *Store {
	return &Store{
		ttl:   defaultTTL,
		now:   time.Now,
		convs: make(map[string]*conversation),
	}
}

// NewStoreWithClock is test-only for deterministic expiry.
func NewStoreWithClock(ttl time.Duration, now func() time.Time) *Store {
	return &Store{ttl: ttl, now: now, convs: make(map[string]*conversation)}
}

// Append records one message and trims history to the cap.
func (s *Store) Append(userID, role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictExpiredLocked()

	c, ok := s.convs[userID]
	if !ok {
		c = &conversation{}
		s.convs[userID] = c
	}
	c.messages = append(c.messages, Message{Role: role, Content: content, Timestamp: s.now()})
	if len(c.messages) > maxMessages {
		c.messages = c.messages[len(c.messages)-maxMessages:]
	}
	c.lastSeen = s.now()
}

// History returns a copy of the most recent messages, newest last.
func (s *Store) History(userID string, limit int) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictExpiredLocked()

	c, ok := s.convs[userID]
	if !ok {
		return nil
	}
	msgs := c.messages
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	out := make([]Message, len(msgs))
	copy(out, msgs)
	c.lastSeen = s.now()
	return out
}

// Clear drops a student's conversation.
func (s *Store) Clear(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.convs, userID)
}

// Len reports the number of live conversations.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictExpiredLocked()
	return len(s.convs)
}

func (s *Store) evictExpiredLocked() {
	cutoff := s.now().Add(-s.ttl)
	for id, c := range s.convs {
		if c.lastSeen.Before(cutoff) {
			delete(s.convs, id)
		}
	}
}
