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

const creditGrantExplanation = "Credit granted after instructor review."

// ReportService handles dispute reports against graded assignments.
type ReportService struct {
	store       ReportStore
	assignments AssignmentStore
	publisher   Publisher
}

func NewReportService(store ReportStore, assignments AssignmentStore, publisher Publisher) *ReportService {
	return &ReportService{
		store:       store,
		assignments: assignments,
		publisher:   publisher,
	}
}

// CreateReportInput raises a dispute, optionally scoped to one quiz question.
type CreateReportInput struct {
	AssignmentID  string
	QuestionIndex *int
	Reason        string
}

// Create files an open report with a snapshot of the disputed material, so
// the dispute stays reviewable even if the assignment changes later.
func (s *ReportService) Create(ctx context.Context, actor access.Actor, in CreateReportInput) (*models.Report, error) {
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return nil, fmt.Errorf("%w: reason is required", models.ErrValidation)
	}
	a, err := s.assignments.FindByID(ctx, in.AssignmentID)
	if err != nil {
		return nil, err
	}

	var snapshot *models.ReportSnapshot
	if in.QuestionIndex != nil {
		idx := *in.QuestionIndex
		if !a.IsQuiz() {
			return nil, fmt.Errorf("%w: question index only applies to quizzes", models.ErrValidation)
		}
		if idx < 0 || idx >= len(a.Results) {
			return nil, fmt.Errorf("%w: question index %d out of range", models.ErrValidation, idx)
		}
		r := a.Results[idx]
		snapshot = &models.ReportSnapshot{
			Question:     r.Question,
			Options:      r.Options,
			UserAnswer:   r.UserAnswer,
			CorrectIndex: r.CorrectIndex,
			WasCorrect:   r.IsCorrect,
		}
	} else {
		// Assignment-level dispute: freeze the grade under dispute,
		// plus the prompt and answer for text assignments.
		snapshot = &models.ReportSnapshot{
			Score:  a.Score,
			Rating: a.Rating,
		}
		if !a.IsQuiz() {
			snapshot.Question = a.Question
			snapshot.StudentText = a.StudentAnswer
		}
	}

	report := &models.Report{
		AssignmentID:  in.AssignmentID,
		QuestionIndex: in.QuestionIndex,
		ReporterEmail: actor.Email,
		Reason:        reason,
		Status:        models.ReportStatusOpen,
		Snapshot:      snapshot,
		CreatedAt:     time.Now().UTC(),
	}
	id, err := s.store.Insert(ctx, report)
	if err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	report.ID = id
	return report, nil
}

// List returns reports, optionally filtered by status.
func (s *ReportService) List(ctx context.Context, actor access.Actor, status string) ([]models.Report, error) {
	if !actor.Privileged {
		return nil, models.ErrUnauthorized
	}
	return s.store.Find(ctx, status)
}

// ResolveInput carries the resolver's optional manual override. When both
// fields are nil and the report is question-scoped, the disputed question is
// marked correct and the quiz score recomputed instead.
type ResolveInput struct {
	Score  *float64
	Rating *float64
}

// Resolve closes an open report. The assignment adjustment is attempted
// first; if it fails the report is still resolved and the inconsistency is
// logged and published for offline reconciliation.
func (s *ReportService) Resolve(ctx context.Context, actor access.Actor, id string, in ResolveInput) (*models.Report, error) {
	report, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if report.Status == models.ReportStatusResolved {
		return nil, models.ErrReportResolved
	}
	a, err := s.assignments.FindByID(ctx, report.AssignmentID)
	if err != nil {
		return nil, err
	}
	if !access.Allows(actor, access.ResolveReport, a) {
		return nil, models.ErrUnauthorized
	}

	if adjustErr := s.adjust(ctx, report, a, in); adjustErr != nil {
		log.Printf("Warning: report %s resolved but assignment %s adjustment failed: %v", id, a.ID, adjustErr)
		s.publish("assessment.inconsistency", map[string]interface{}{
			"report_id":     id,
			"assignment_id": a.ID,
			"error":         adjustErr.Error(),
		})
	}

	now := time.Now().UTC()
	if err := s.store.Resolve(ctx, id, now); err != nil {
		return nil, err
	}
	report.Status = models.ReportStatusResolved
	report.ResolvedAt = &now
	return report, nil
}

func (s *ReportService) adjust(ctx context.Context, report *models.Report, a *models.Assignment, in ResolveInput) error {
	if in.Score != nil || in.Rating != nil {
		score := in.Score
		if score != nil {
			clamped := adaptive.ClampScore(*score, a.Points)
			score = &clamped
		}
		rating := in.Rating
		if rating != nil {
			clamped := adaptive.ClampRating(*rating)
			rating = &clamped
		}
		return s.assignments.ApplyOverride(ctx, a.ID, score, rating)
	}
	if report.QuestionIndex == nil {
		return nil
	}
	idx := *report.QuestionIndex
	if !a.IsQuiz() || idx < 0 || idx >= len(a.Results) {
		return fmt.Errorf("%w: question index %d no longer valid", models.ErrValidation, idx)
	}
	if a.Results[idx].IsCorrect {
		return nil
	}
	results := make([]models.QuestionResult, len(a.Results))
	copy(results, a.Results)
	results[idx].IsCorrect = true
	results[idx].Explanation = creditGrantExplanation
	score, rating := grading.RecomputeQuiz(results)
	return s.assignments.ReplaceQuizResults(ctx, a.ID, results, float64(score), rating)
}

func (s *ReportService) publish(eventType string, payload interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(eventType, payload); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", eventType, err)
	}
}
