package grading

import (
	"context"
	"fmt"
	"log"

	"github.com/PrashantBimalJha/studentlearning-app/internal/adaptive"
	"github.com/PrashantBimalJha/studentlearning-app/internal/models"
	"github.com/PrashantBimalJha/studentlearning-app/internal/oracle"
)

const (
	correctExplanation   = "Correct! Well done."
	incorrectExplanation = "This answer is incorrect; review this concept."
)

const explanationSystemPrompt = `You are a helpful tutor. In two sentences or less, explain why the ` +
	`given answer to the multiple-choice question is wrong and why the correct option is right. ` +
	`Respond with plain text only.`

// QuizGrade is the outcome of scoring a multiple-choice submission.
type QuizGrade struct {
	Score   int
	Rating  float64
	Results []models.QuestionResult
}

// GradeQuiz scores a submission against the question set. Scoring is pure
// arithmetic and never depends on the oracle: unanswered or out-of-range
// choices count as incorrect, never as an error. Explanations for wrong
// answers are fetched from the oracle best-effort, one question at a time; a
// failure degrades that question to a generic explanation.
func (e *Engine) GradeQuiz(ctx context.Context, questions []models.QuizQuestion, answers map[int]*int) QuizGrade {
	results := make([]models.QuestionResult, len(questions))
	score := 0

	for i, q := range questions {
		choice := answers[i]
		correct := choice != nil && *choice == q.CorrectIndex &&
			*choice >= 0 && *choice < len(q.Options)
		if correct {
			score++
		}

		results[i] = models.QuestionResult{
			Question:     q.Question,
			Options:      q.Options,
			CorrectIndex: q.CorrectIndex,
			UserAnswer:   choice,
			IsCorrect:    correct,
			Explanation:  e.explain(ctx, q, choice, correct),
		}
	}

	return QuizGrade{
		Score:   score,
		Rating:  QuizRating(score, len(questions)),
		Results: results,
	}
}

// QuizRating maps a raw quiz score to the 0-5 rating scale.
func QuizRating(score, numQuestions int) float64 {
	if numQuestions == 0 {
		return 0
	}
	return adaptive.ClampRating(5.0 * float64(score) / float64(numQuestions))
}

// RecomputeQuiz re-derives score and rating from a full results list. Dispute
// resolution uses this instead of patching incrementally so the stored totals
// can never drift from the per-question records.
func RecomputeQuiz(results []models.QuestionResult) (int, float64) {
	score := 0
	for _, r := range results {
		if r.IsCorrect {
			score++
		}
	}
	return score, QuizRating(score, len(results))
}

func (e *Engine) explain(ctx context.Context, q models.QuizQuestion, choice *int, correct bool) string {
	if correct {
		return correctExplanation
	}
	chosen := "no answer"
	if choice != nil && *choice >= 0 && *choice < len(q.Options) {
		chosen = q.Options[*choice]
	}
	userPrompt := fmt.Sprintf(
		"Question: %s\nOptions: %v\nCorrect option: %s\nStudent chose: %s",
		q.Question, q.Options, q.Options[q.CorrectIndex], chosen,
	)
	text, err := e.oracle.Generate(ctx, explanationSystemPrompt, userPrompt, oracle.Options{})
	if err != nil {
		log.Printf("quiz explanation: oracle failed, using generic text: %v", err)
		return incorrectExplanation
	}
	if text == "" {
		return incorrectExplanation
	}
	return text
}
