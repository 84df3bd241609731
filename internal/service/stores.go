package service

import (
	"context"
	"time"

	"github.com/PrashantBimalJha/studentlearning-app/internal/models"
)

// AssignmentFilter narrows assignment queries. Empty fields match anything.
type AssignmentFilter struct {
	Course  string
	Status  string
	Student string
	Type    string
}

// AssignmentStore is the persistence contract for assignment documents. All
// state transitions are single conditional updates guarded by the current
// status, so concurrent submissions race safely without external locking.
type AssignmentStore interface {
	Insert(ctx context.Context, a *models.Assignment) (string, error)
	FindByID(ctx context.Context, id string) (*models.Assignment, error)
	Find(ctx context.Context, f AssignmentFilter) ([]models.Assignment, error)
	Delete(ctx context.Context, id string) error
	CountCompleted(ctx context.Context, student, course, assignmentType string) (int64, error)
	// Complete performs the one-shot pending -> completed transition, binding
	// the student on first submission. It returns models.ErrAlreadyCompleted
	// when the assignment has already been graded, models.ErrUnauthorized when
	// it is bound to a different student, and models.ErrNotFound otherwise.
	Complete(ctx context.Context, id, student string, c models.Completion) error
	// ApplyOverride writes resolver-supplied score/rating; nil fields are
	// left untouched.
	ApplyOverride(ctx context.Context, id string, score, rating *float64) error
	// ReplaceQuizResults swaps the full results list together with the
	// recomputed score and rating in one update.
	ReplaceQuizResults(ctx context.Context, id string, results []models.QuestionResult, score, rating float64) error
	// AverageRating returns the mean rating over completed assignments of a
	// course (null ratings excluded) and the number of rated assignments.
	AverageRating(ctx context.Context, course string) (float64, int64, error)
}

// CourseStore updates the derived rolling rating on a course document.
type CourseStore interface {
	SetRating(ctx context.Context, course string, rating float64) error
}

// UserStore resolves display names for the leaderboard.
type UserStore interface {
	DisplayName(ctx context.Context, email string) (string, error)
}

// ReportStore is the persistence contract for dispute reports.
type ReportStore interface {
	Insert(ctx context.Context, r *models.Report) (string, error)
	FindByID(ctx context.Context, id string) (*models.Report, error)
	Find(ctx context.Context, status string) ([]models.Report, error)
	// Resolve performs the one-shot open -> resolved transition and returns
	// models.ErrReportResolved if the report was already resolved.
	Resolve(ctx context.Context, id string, at time.Time) error
}

// GameScoreStore appends round events and aggregates leaderboard totals.
type GameScoreStore interface {
	Insert(ctx context.Context, ev *models.GameScoreEvent) error
	// TopTotals groups events of one game by student, sums scores, and
	// returns the top n rows sorted by total descending with earlier
	// players winning ties.
	TopTotals(ctx context.Context, gameType string, n int) ([]models.LeaderboardRow, error)
}

// Publisher sends best-effort events; failures are logged, never propagated.
type Publisher interface {
	Publish(eventType string, payload interface{}) error
}
