package models

import "time"

const (
	AssignmentTypeText = "text"
	AssignmentTypeQuiz = "quiz_mcq"

	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// QuizQuestion is one generated multiple-choice item. CorrectIndex is never
// exposed to students before submission; handlers redact it.
type QuizQuestion struct {
	Question     string   `bson:"question" json:"question"`
	Options      []string `bson:"options" json:"options"`
	CorrectIndex int      `bson:"correct_index" json:"correct_index"`
}

// QuestionResult records the outcome of one quiz question after submission.
// UserAnswer is nil when the question was left unanswered.
type QuestionResult struct {
	Question     string   `bson:"question" json:"question"`
	Options      []string `bson:"options" json:"options"`
	CorrectIndex int      `bson:"correct_index" json:"correct_index"`
	UserAnswer   *int     `bson:"user_answer" json:"user_answer"`
	IsCorrect    bool     `bson:"is_correct" json:"is_correct"`
	Explanation  string   `bson:"explanation" json:"explanation"`
}

type Assignment struct {
	ID              string     `bson:"_id,omitempty" json:"id"`
	AssignmentType  string     `bson:"assignment_type" json:"assignment_type"`
	Title           string     `bson:"title" json:"title"`
	Course          string     `bson:"course" json:"course"`
	InstructorEmail string     `bson:"instructor_email" json:"instructor_email"`
	StudentEmail    string     `bson:"student_email" json:"student_email"`
	DueDate         *time.Time `bson:"due_date,omitempty" json:"due_date,omitempty"`
	Points          int        `bson:"points" json:"points"`
	Status          string     `bson:"status" json:"status"`
	DifficultyLevel int        `bson:"difficulty_level" json:"difficulty_level"`
	Score           *float64   `bson:"score" json:"score"`
	Rating          *float64   `bson:"rating" json:"rating"`
	Feedback        string     `bson:"feedback" json:"feedback"`
	CreatedAt       time.Time  `bson:"created_at" json:"created_at"`
	CompletedAt     *time.Time `bson:"completed_at" json:"completed_at"`

	// Text assignments
	Question       string `bson:"question,omitempty" json:"question,omitempty"`
	ExpectedAnswer string `bson:"expected_answer,omitempty" json:"expected_answer,omitempty"`
	StudentAnswer  string `bson:"student_answer,omitempty" json:"student_answer,omitempty"`
	// Difficulty suggested by grading for the student's next text assignment.
	NextDifficulty int `bson:"next_difficulty_level,omitempty" json:"next_difficulty_level,omitempty"`

	// Quiz assignments
	QuestionSet []QuizQuestion   `bson:"question_set,omitempty" json:"question_set,omitempty"`
	Results     []QuestionResult `bson:"results,omitempty" json:"results,omitempty"`
}

// IsQuiz reports whether the assignment is a multiple-choice quiz.
func (a *Assignment) IsQuiz() bool { return a.AssignmentType == AssignmentTypeQuiz }

// Completion carries every derived field written in the single atomic
// pending -> completed transition. Score, rating, feedback and the completion
// timestamp are only ever set together through this struct.
type Completion struct {
	Score          float64
	Rating         float64
	Feedback       string
	CompletedAt    time.Time
	StudentAnswer  string           // text assignments
	NextDifficulty int              // text assignments, 0 = unchanged
	Results        []QuestionResult // quiz assignments
}
