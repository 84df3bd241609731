package chat

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStoreCapsHistory(t *testing.T) {
	s := NewStore()
	for i := 0; i < 30; i++ {
		s.Append("alice@example.com", "student", fmt.Sprintf("message %d", i))
	}

	history := s.History("alice@example.com", 0)
	assert.Len(t, history, maxMessages)
	// Oldest entries were trimmed, newest survive.
	assert.Equal(t, "message 10", history[0].Content)
	assert.Equal(t, "message 29", history[len(history)-1].Content)
}

func TestStoreHistoryLimit(t *testing.T) {
	s := NewStore()
	for i := 0; i < 6; i++ {
		s.Append("bob@example.com", "student", fmt.Sprintf("m%d", i))
	}

	history := s.History("bob@example.com", 4)
	assert.Len(t, history, 4)
	assert.Equal(t, "m2", history[0].Content)
}

func TestStoreHistoryReturnsCopy(t *testing.T) {
	s := NewStore()
	s.Append("carol@example.com", "student", "original")

	history := s.History("carol@example.com", 0)
	history[0].Content = "mutated"

	again := s.History("carol@example.com", 0)
	assert.Equal(t, "original", again[0].Content)
}

func TestStoreEvictsIdleConversations(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	s := NewStoreWithClock(10*time.Minute, clock)

	s.Append("idle@example.com", "student", "hello")
	s.Append("active@example.com", "student", "hello")
	assert.Equal(t, 2, s.Len())

	now = now.Add(6 * time.Minute)
	s.Append("active@example.com", "student", "still here")

	now = now.Add(5 * time.Minute)
	assert.Equal(t, 1, s.Len())
	assert.Nil(t, s.History("idle@example.com", 0))
	assert.Len(t, s.History("active@example.com", 0), 2)
}

func TestStoreClear(t *testing.T) {
	s := NewStore()
	s.Append("dave@example.com", "student", "hi")
	s.Clear("dave@example.com")
	assert.Nil(t, s.History("dave@example.com", 0))
}

func TestBuildUserPrompt(t *testing.T) {
	history := []Message{
		{Role: "student", Content: "What is recursion?"},
		{Role: "tutor", Content: "A function calling itself."},
	}
	prompt := BuildUserPrompt(history, "Can you give an example?")

	assert.Contains(t, prompt, "Student: What is recursion?")
	assert.Contains(t, prompt, "Tutor: A function calling itself.")
	assert.Contains(t, prompt, "Student's current question: Can you give an example?")
}

func TestBuildUserPromptNoHistory(t *testing.T) {
	prompt := BuildUserPrompt(nil, "What is a pointer?")
	assert.Equal(t, "Student's current question: What is a pointer?", prompt)
}
