package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/PrashantBimalJha/studentlearning-app/internal/access"
	"github.com/PrashantBimalJha/studentlearning-app/internal/adaptive"
	"github.com/PrashantBimalJha/studentlearning-app/internal/grading"
	"github.com/PrashantBimalJha/studentlearning-app/internal/models"
)

// DefaultQuizQuestionCount is the question count requested from the oracle
// when no override is configured.
const DefaultQuizQuestionCount = 10

// QuizService generates adaptive multiple-choice quizzes and grades
// submissions against the stored answer key.
type QuizService struct {
	store         AssignmentStore
	engine        *grading.Engine
	publisher     Publisher
	questionCount int
}

func NewQuizService(store AssignmentStore, engine *grading.Engine, publisher Publisher, questionCount int) *QuizService {
	if questionCount <= 0 {
		questionCount = DefaultQuizQuestionCount
	}
	return &QuizService{
		store:         store,
		engine:        engine,
		publisher:     publisher,
		questionCount: questionCount,
	}
}

// GenerateQuizInput names the course and optional topic for a new quiz.
type GenerateQuizInput struct {
	Course string
	Topic  string
	Title  string
}

// QuizQuestionView is a question with the answer key stripped.
type QuizQuestionView struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// QuizView is the student-facing shape of a pending quiz.
type QuizView struct {
	ID              string             `json:"id"`
	Title           string             `json:"title"`
	Course          string             `json:"course"`
	DifficultyLevel int                `json:"difficulty_level"`
	Points          int                `json:"points"`
	Questions       []QuizQuestionView `json:"questions"`
}

// Generate creates a pending quiz at the actor's current level. The level is
// derived from their completed quiz count in the course, so each finished
// quiz unlocks the next level up to the cap.
func (s *QuizService) Generate(ctx context.Context, actor access.Actor, in GenerateQuizInput) (*QuizView, error) {
	course := strings.TrimSpace(in.Course)
	if course == "" {
		return nil, fmt.Errorf("%w: course is required", models.ErrValidation)
	}
	topic := strings.TrimSpace(in.Topic)
	if topic == "" {
		topic = course
	}

	completed, err := s.store.CountCompleted(ctx, actor.Email, course, models.AssignmentTypeQuiz)
	if err != nil {
		return nil, fmt.Errorf("failed to count completed quizzes: %w", err)
	}
	level := adaptive.QuizLevel(completed)

	questions, err := s.engine.GenerateQuizQuestions(ctx, course, topic, level, s.questionCount)
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = fmt.Sprintf("Level %d quiz: %s", level, topic)
	}
	a := &models.Assignment{
		AssignmentType:  models.AssignmentTypeQuiz,
		Title:           title,
		Course:          course,
		Points:          len(questions),
		Status:          models.StatusPending,
		DifficultyLevel: level,
		QuestionSet:     questions,
		CreatedAt:       time.Now().UTC(),
	}
	id, err := s.store.Insert(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("failed to store quiz: %w", err)
	}
	a.ID = id
	return quizView(a), nil
}

// QuizSubmission is the graded outcome of a quiz attempt.
type QuizSubmission struct {
	AssignmentID string                  `json:"assignment_id"`
	Score        int                     `json:"score"`
	Total        int                     `json:"total"`
	Rating       float64                 `json:"rating"`
	Results      []models.QuestionResult `json:"results"`
}

// Submit grades answers against the stored key and completes the quiz. The
// quiz binds to the first submitting student; later attempts fail with the
// matching conflict error.
func (s *QuizService) Submit(ctx context.Context, actor access.Actor, id string, answers map[int]*int) (*QuizSubmission, error) {
	a, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !a.IsQuiz() {
		return nil, fmt.Errorf("%w: assignment is not a quiz", models.ErrValidation)
	}
	if a.Status == models.StatusCompleted {
		return nil, models.ErrAlreadyCompleted
	}
	if !access.Allows(actor, access.SubmitAssignment, a) {
		return nil, models.ErrUnauthorized
	}

	grade := s.engine.GradeQuiz(ctx, a.QuestionSet, answers)
	score := float64(grade.Score)
	now := time.Now().UTC()
	// Quiz levels come from completed-count history, so no suggested next
	// difficulty is stored; that field belongs to free-text grading.
	completion := models.Completion{
		Score:       score,
		Rating:      grade.Rating,
		CompletedAt: now,
		Results:     grade.Results,
	}
	if err := s.store.Complete(ctx, id, actor.Email, completion); err != nil {
		return nil, err
	}

	s.publish("assessment.completed", map[string]interface{}{
		"assignment_id":   id,
		"assignment_type": models.AssignmentTypeQuiz,
		"course":          a.Course,
		"student_email":   actor.Email,
		"score":           grade.Score,
		"total":           len(a.QuestionSet),
		"rating":          grade.Rating,
		"completed_at":    now,
	})
	return &QuizSubmission{
		AssignmentID: id,
		Score:        grade.Score,
		Total:        len(a.QuestionSet),
		Rating:       grade.Rating,
		Results:      grade.Results,
	}, nil
}

func (s *QuizService) publish(eventType string, payload interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(eventType, payload); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", eventType, err)
	}
}

func quizView(a *models.Assignment) *QuizView {
	view := &QuizView{
		ID:              a.ID,
		Title:           a.Title,
		Course:          a.Course,
		DifficultyLevel: a.DifficultyLevel,
		Points:          a.Points,
		Questions:       make([]QuizQuestionView, 0, len(a.QuestionSet)),
	}
	for _, q := range a.QuestionSet {
		view.Questions = append(view.Questions, QuizQuestionView{
			Question: q.Question,
			Options:  q.Options,
		})
	}
	return view
}
