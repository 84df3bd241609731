package handlers

import (
	"encoding/json"
	"testing"

	"github.com/PrashantBimalJha/studentlearning-app/internal/access"
	"github.com/PrashantBimalJha/studentlearning-app/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func toJSONMap(t *testing.T, v interface{}) map[string]interface{} {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &m))
	return m
}

func TestSanitizeAssignmentHidesQuizKeyWhilePending(t *testing.T) {
	a := &models.Assignment{
		AssignmentType: models.AssignmentTypeQuiz,
		Status:         models.StatusPending,
		StudentEmail:   "student@example.com",
		QuestionSet: []models.QuizQuestion{
			{Question: "Q?", Options: []string{"a", "b"}, CorrectIndex: 1},
		},
	}
	student := access.Actor{Email: "student@example.com"}

	m := toJSONMap(t, sanitizeAssignment(student, a))
	questions := m["question_set"].([]interface{})
	q := questions[0].(map[string]interface{})
	assert.NotContains(t, q, "correct_index")
	assert.Equal(t, "Q?", q["question"])
}

func TestSanitizeAssignmentHidesExpectedAnswerWhilePending(t *testing.T) {
	a := &models.Assignment{
		AssignmentType:  models.AssignmentTypeText,
		Status:          models.StatusPending,
		InstructorEmail: "instructor@example.com",
		StudentEmail:    "student@example.com",
		Question:        "Explain photosynthesis.",
		ExpectedAnswer:  "Light energy becomes chemical energy.",
	}
	student := access.Actor{Email: "student@example.com"}

	m := toJSONMap(t, sanitizeAssignment(student, a))
	assert.NotContains(t, m, "expected_answer")
	assert.Equal(t, "Explain photosynthesis.", m["question"])
	// The shared struct is left untouched.
	assert.Equal(t, "Light energy becomes chemical energy.", a.ExpectedAnswer)
}

func TestSanitizeAssignmentKeepsExpectedAnswerForManagers(t *testing.T) {
	a := &models.Assignment{
		AssignmentType:  models.AssignmentTypeText,
		Status:          models.StatusPending,
		InstructorEmail: "instructor@example.com",
		ExpectedAnswer:  "The key.",
	}

	instructor := toJSONMap(t, sanitizeAssignment(access.Actor{Email: "instructor@example.com"}, a))
	assert.Equal(t, "The key.", instructor["expected_answer"])

	admin := toJSONMap(t, sanitizeAssignment(access.Actor{Privileged: true}, a))
	assert.Equal(t, "The key.", admin["expected_answer"])
}

func TestSanitizeAssignmentCompletedReturnedAsIs(t *testing.T) {
	score := 2.0
	a := &models.Assignment{
		AssignmentType: models.AssignmentTypeQuiz,
		Status:         models.StatusCompleted,
		Score:          &score,
		QuestionSet: []models.QuizQuestion{
			{Question: "Q?", Options: []string{"a", "b"}, CorrectIndex: 1},
		},
	}

	m := toJSONMap(t, sanitizeAssignment(access.Actor{Email: "anyone@example.com"}, a))
	questions := m["question_set"].([]interface{})
	q := questions[0].(map[string]interface{})
	assert.Equal(t, float64(1), q["correct_index"])
}
