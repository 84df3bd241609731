package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/PrashantBimalJha/studentlearning-app/internal/access"
	"github.com/PrashantBimalJha/studentlearning-app/internal/chat"
	"github.com/PrashantBimalJha/studentlearning-app/internal/grading"
	"github.com/PrashantBimalJha/studentlearning-app/internal/models"
	"github.com/PrashantBimalJha/studentlearning-app/internal/oracle"
)

const tutorUnavailableMessage = "Sorry, the tutor is unavailable right now. Please try again in a moment."

const tutorHistoryWindow = 10

// TutorService answers study questions through the oracle, keeping a short
// rolling conversation per student in memory.
type TutorService struct {
	oracle grading.Oracle
	store  *chat.Store
}

func NewTutorService(o grading.Oracle, store *chat.Store) *TutorService {
	return &TutorService{oracle: o, store: store}
}

// TutorReply carries the answer and whether it came from the oracle.
type TutorReply struct {
	Answer    string `json:"answer"`
	Available bool   `json:"available"`
}

// Ask sends the question with recent context to the oracle. On failure a
// canned apology is returned and the exchange is not recorded, so a retry
// starts from the same history.
func (s *TutorService) Ask(ctx context.Context, actor access.Actor, question string) (*TutorReply, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: question must not be empty", models.ErrValidation)
	}
	history := s.store.History(actor.Email, tutorHistoryWindow)
	prompt := chat.BuildUserPrompt(history, question)
	temp := 0.7
	answer, err := s.oracle.Generate(ctx, chat.SystemPrompt, prompt, oracle.Options{Temperature: &temp})
	if err != nil || strings.TrimSpace(answer) == "" {
		if err != nil {
			log.Printf("Warning: tutor request failed: %v", err)
		}
		return &TutorReply{Answer: tutorUnavailableMessage, Available: false}, nil
	}
	answer = strings.TrimSpace(answer)
	s.store.Append(actor.Email, "student", question)
	s.store.Append(actor.Email, "tutor", answer)
	return &TutorReply{Answer: answer, Available: true}, nil
}

// Reset clears the actor's conversation history.
func (s *TutorService) Reset(actor access.Actor) {
	s.store.Clear(actor.Email)
}
