package models

import "time"

const (
	ReportStatusOpen     = "open"
	ReportStatusResolved = "resolved"
)

// ReportSnapshot freezes the disputed material at report time so the dispute
// stays auditable even after the assignment is later corrected. Question-scoped
// reports capture the single question; assignment-level reports capture the
// grade under dispute.
type ReportSnapshot struct {
	Question     string   `bson:"question,omitempty" json:"question,omitempty"`
	Options      []string `bson:"options,omitempty" json:"options,omitempty"`
	UserAnswer   *int     `bson:"user_answer,omitempty" json:"user_answer,omitempty"`
	CorrectIndex int      `bson:"correct_index" json:"correct_index"`
	WasCorrect   bool     `bson:"was_correct" json:"was_correct"`
	StudentText  string   `bson:"student_text,omitempty" json:"student_text,omitempty"`
	Score        *float64 `bson:"score,omitempty" json:"score,omitempty"`
	Rating       *float64 `bson:"rating,omitempty" json:"rating,omitempty"`
}

// Report is a student dispute against a graded assignment, or against a single
// question of a quiz when QuestionIndex is set.
type Report struct {
	ID            string          `bson:"_id,omitempty" json:"id"`
	AssignmentID  string          `bson:"assignment_id" json:"assignment_id"`
	QuestionIndex *int            `bson:"question_index,omitempty" json:"question_index,omitempty"`
	ReporterEmail string          `bson:"reporter_email" json:"reporter_email"`
	Reason        string          `bson:"reason" json:"reason"`
	Status        string          `bson:"status" json:"status"`
	Snapshot      *ReportSnapshot `bson:"snapshot,omitempty" json:"snapshot,omitempty"`
	CreatedAt     time.Time       `bson:"created_at" json:"created_at"`
	ResolvedAt    *time.Time      `bson:"resolved_at" json:"resolved_at"`
}
