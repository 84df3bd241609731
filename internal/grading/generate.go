package grading

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/PrashantBimalJha/studentlearning-app/internal/models"
	"github.com/PrashantBimalJha/studentlearning-app/internal/oracle"
)

const quizGenSystemPrompt = `You are a quiz generator for a student learning platform. You must respond with ONLY a valid JSON array (no markdown, no code fences, no explanations) in the following format:

[
  {"question": "Question text?", "options": ["Option A", "Option B", "Option C", "Option D"], "correct_index": 0}
]

Rules:
- Generate exactly the requested number of questions
- Each question must have 2 to 4 options
- correct_index is the zero-based index of the correct option
- Make questions factually accurate and appropriate for the requested difficulty
- Return ONLY the JSON array, nothing else`

type generatedQuestion struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
}

// GenerateQuizQuestions asks the oracle for count structured questions and
// validates each one: fewer than two options drops the question, more than
// four truncates, an out-of-range correct index defaults to option zero.
// Oracle failures surface directly (there is no deterministic fallback for
// content generation); zero surviving questions is ErrGenerationFailed.
func (e *Engine) GenerateQuizQuestions(ctx context.Context, course, topic string, level, count int) ([]models.QuizQuestion, error) {
	userPrompt := fmt.Sprintf(
		"Generate %d multiple-choice questions about %q for the course %q at difficulty level %d (1 = beginner, 5 = expert).",
		count, topic, course, level,
	)

	temp := 0.7
	raw, err := e.oracle.Generate(ctx, quizGenSystemPrompt, userPrompt, oracle.Options{Temperature: &temp})
	if err != nil {
		return nil, err
	}

	var generated []generatedQuestion
	if err := json.Unmarshal([]byte(extractJSONArray(raw)), &generated); err != nil {
		return nil, fmt.Errorf("%w: oracle returned invalid JSON: %v", models.ErrGenerationFailed, err)
	}

	questions := validateGenerated(generated)
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: no valid questions in oracle output", models.ErrGenerationFailed)
	}
	return questions, nil
}

func validateGenerated(generated []generatedQuestion) []models.QuizQuestion {
	var questions []models.QuizQuestion
	for _, g := range generated {
		if g.Question == "" || len(g.Options) < 2 {
			continue
		}
		opts := g.Options
		if len(opts) > 4 {
			opts = opts[:4]
		}
		idx := g.CorrectIndex
		if idx < 0 || idx >= len(opts) {
			idx = 0
		}
		questions = append(questions, models.QuizQuestion{
			Question:     g.Question,
			Options:      opts,
			CorrectIndex: idx,
		})
	}
	return questions
}
