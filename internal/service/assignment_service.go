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

// AssignmentService owns the assignment catalog and free-text submissions.
type AssignmentService struct {
	store     AssignmentStore
	courses   CourseStore
	engine    *grading.Engine
	publisher Publisher
}

func NewAssignmentService(store AssignmentStore, courses CourseStore, engine *grading.Engine, publisher Publisher) *AssignmentService {
	return &AssignmentService{
		store:     store,
		courses:   courses,
		engine:    engine,
		publisher: publisher,
	}
}

// CreateAssignmentInput carries instructor-supplied fields for a new
// free-text assignment.
type CreateAssignmentInput struct {
	Title           string
	Course          string
	Question        string
	ExpectedAnswer  string
	StudentEmail    string
	Points          int
	DifficultyLevel int
	DueDate         *time.Time
}

// Create inserts a pending free-text assignment authored by the actor.
func (s *AssignmentService) Create(ctx context.Context, actor access.Actor, in CreateAssignmentInput) (*models.Assignment, error) {
	title := strings.TrimSpace(in.Title)
	course := strings.TrimSpace(in.Course)
	question := strings.TrimSpace(in.Question)
	if title == "" || course == "" || question == "" {
		return nil, fmt.Errorf("%w: title, course and question are required", models.ErrValidation)
	}
	points := in.Points
	if points <= 0 {
		points = 100
	}
	level := in.DifficultyLevel
	if level == 0 {
		level = adaptive.MinLevel
	}
	a := &models.Assignment{
		AssignmentType:  models.AssignmentTypeText,
		Title:           title,
		Course:          course,
		InstructorEmail: actor.Email,
		StudentEmail:    strings.TrimSpace(in.StudentEmail),
		DueDate:         in.DueDate,
		Points:          points,
		Status:          models.StatusPending,
		DifficultyLevel: adaptive.ClampLevel(level),
		Question:        question,
		ExpectedAnswer:  strings.TrimSpace(in.ExpectedAnswer),
		CreatedAt:       time.Now().UTC(),
	}
	id, err := s.store.Insert(ctx, a)
	if err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}
	a.ID = id
	return a, nil
}

// List returns assignments matching the filter. Non-privileged actors only
// see assignments bound to them or not yet claimed.
func (s *AssignmentService) List(ctx context.Context, actor access.Actor, f AssignmentFilter) ([]models.Assignment, error) {
	if !actor.Privileged && f.Student == "" {
		f.Student = actor.Email
	}
	items, err := s.store.Find(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	return items, nil
}

// Get fetches one assignment the actor is allowed to view.
func (s *AssignmentService) Get(ctx context.Context, actor access.Actor, id string) (*models.Assignment, error) {
	a, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !access.Allows(actor, access.ViewAssignment, a) {
		return nil, models.ErrUnauthorized
	}
	return a, nil
}

// Delete removes an assignment; only its instructor or a privileged actor may.
func (s *AssignmentService) Delete(ctx context.Context, actor access.Actor, id string) error {
	a, err := s.store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !access.Allows(actor, access.ManageAssignment, a) {
		return models.ErrUnauthorized
	}
	return s.store.Delete(ctx, id)
}

// SubmitText grades a free-text answer and completes the assignment in one
// conditional update. The grade is always produced; when the oracle is down
// the deterministic fallback applies and the response is flagged provisional.
func (s *AssignmentService) SubmitText(ctx context.Context, actor access.Actor, id, answer string) (*grading.FreeTextGrade, *models.Assignment, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return nil, nil, fmt.Errorf("%w: answer must not be empty", models.ErrValidation)
	}
	a, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if a.IsQuiz() {
		return nil, nil, fmt.Errorf("%w: assignment is a quiz, use the quiz submission endpoint", models.ErrValidation)
	}
	if a.Status == models.StatusCompleted {
		return nil, nil, models.ErrAlreadyCompleted
	}
	if !access.Allows(actor, access.SubmitAssignment, a) {
		return nil, nil, models.ErrUnauthorized
	}

	grade := s.engine.GradeFreeText(ctx, grading.FreeTextInput{
		Question:       a.Question,
		ExpectedAnswer: a.ExpectedAnswer,
		StudentAnswer:  answer,
		MaxPoints:      a.Points,
		Level:          a.DifficultyLevel,
	})

	now := time.Now().UTC()
	completion := models.Completion{
		Score:          grade.Score,
		Rating:         grade.Rating,
		Feedback:       grade.Feedback,
		CompletedAt:    now,
		StudentAnswer:  answer,
		NextDifficulty: grade.NextDifficulty,
	}
	if err := s.store.Complete(ctx, id, actor.Email, completion); err != nil {
		return nil, nil, err
	}

	a.Status = models.StatusCompleted
	a.StudentEmail = actor.Email
	a.StudentAnswer = answer
	a.Score = &grade.Score
	a.Rating = &grade.Rating
	a.Feedback = grade.Feedback
	a.NextDifficulty = grade.NextDifficulty
	a.CompletedAt = &now

	s.recomputeCourseRating(ctx, a.Course)
	s.publish("assessment.completed", map[string]interface{}{
		"assignment_id":   a.ID,
		"assignment_type": a.AssignmentType,
		"course":          a.Course,
		"student_email":   actor.Email,
		"score":           grade.Score,
		"rating":          grade.Rating,
		"fallback_used":   grade.FallbackUsed,
		"completed_at":    now,
	})
	return &grade, a, nil
}

// recomputeCourseRating refreshes the derived course rating after a
// submission. Failures are logged and never block the grading flow.
func (s *AssignmentService) recomputeCourseRating(ctx context.Context, course string) {
	avg, n, err := s.store.AverageRating(ctx, course)
	if err != nil {
		log.Printf("Warning: failed to compute rating for course %s: %v", course, err)
		return
	}
	if n == 0 {
		return
	}
	if err := s.courses.SetRating(ctx, course, avg); err != nil {
		log.Printf("Warning: failed to update rating for course %s: %v", course, err)
	}
}

func (s *AssignmentService) publish(eventType string, payload interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(eventType, payload); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", eventType, err)
	}
}
