package grading

import (
	"context"
	"errors"
	"testing"

	"github.com/PrashantBimalJha/studentlearning-app/internal/models"
	"github.com/PrashantBimalJha/studentlearning-app/internal/oracle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateQuizQuestionsValidJSON(t *testing.T) {
	engine := NewEngine(&fakeOracle{
		resp: `[
			{"question": "Q1?", "options": ["a", "b", "c"], "correct_index": 2},
			{"question": "Q2?", "options": ["a", "b"], "correct_index": 0}
		]`,
	})

	questions, err := engine.GenerateQuizQuestions(context.Background(), "Biology", "cells", 1, 2)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, 2, questions[0].CorrectIndex)
}

func TestGenerateQuizQuestionsValidation(t *testing.T) {
	engine := NewEngine(&fakeOracle{
		resp: `[
			{"question": "", "options": ["a", "b"], "correct_index": 0},
			{"question": "one option", "options": ["a"], "correct_index": 0},
			{"question": "too many", "options": ["a", "b", "c", "d", "e", "f"], "correct_index": 1},
			{"question": "bad index", "options": ["a", "b"], "correct_index": 5}
		]`,
	})

	questions, err := engine.GenerateQuizQuestions(context.Background(), "Math", "algebra", 2, 4)
	require.NoError(t, err)
	require.Len(t, questions, 2)

	assert.Equal(t, "too many", questions[0].Question)
	assert.Len(t, questions[0].Options, 4)
	assert.Equal(t, 1, questions[0].CorrectIndex)

	assert.Equal(t, "bad index", questions[1].Question)
	assert.Equal(t, 0, questions[1].CorrectIndex)
}

func TestGenerateQuizQuestionsStripsFences(t *testing.T) {
	engine := NewEngine(&fakeOracle{
		resp: "Here you go:\n```json\n[{\"question\": \"Q?\", \"options\": [\"a\", \"b\"], \"correct_index\": 1}]\n```",
	})

	questions, err := engine.GenerateQuizQuestions(context.Background(), "History", "rome", 1, 1)
	require.NoError(t, err)
	assert.Len(t, questions, 1)
}

func TestGenerateQuizQuestionsInvalidJSON(t *testing.T) {
	engine := NewEngine(&fakeOracle{resp: "I cannot generate questions today."})

	_, err := engine.GenerateQuizQuestions(context.Background(), "Math", "algebra", 1, 10)
	assert.ErrorIs(t, err, models.ErrGenerationFailed)
}

func TestGenerateQuizQuestionsNoValidQuestions(t *testing.T) {
	engine := NewEngine(&fakeOracle{resp: `[{"question": "", "options": [], "correct_index": 0}]`})

	_, err := engine.GenerateQuizQuestions(context.Background(), "Math", "algebra", 1, 10)
	assert.ErrorIs(t, err, models.ErrGenerationFailed)
}

func TestGenerateQuizQuestionsOracleErrorSurfaces(t *testing.T) {
	engine := NewEngine(&fakeOracle{err: errors.New("boom")})

	_, err := engine.GenerateQuizQuestions(context.Background(), "Math", "algebra", 1, 10)
	require.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrGenerationFailed)
}

// Oracle errors keep their classification so handlers can map them.
func TestGenerateQuizQuestionsKeepsOracleClassification(t *testing.T) {
	engine := NewEngine(&fakeOracle{err: oracle.ErrUnavailable})

	_, err := engine.GenerateQuizQuestions(context.Background(), "Math", "algebra", 1, 10)
	assert.ErrorIs(t, err, oracle.ErrUnavailable)
}
