package grading

import (
	"context"
	"fmt"
	"log"

	"github.com/PrashantBimalJha/studentlearning-app/internal/adaptive"
	"github.com/PrashantBimalJha/studentlearning-app/internal/oracle"
)

const freeTextSystemPrompt = `You are a strict but fair grader for a student learning platform. ` +
	`Grade the student's answer against the question and, when given, the expected answer. ` +
	`Respond with ONLY a valid JSON object (no markdown, no code fences, no explanations) in this exact format:

{"score": <number between 0 and the maximum points>, "rating": <number between 0 and 5>, "feedback": "<short constructive feedback>", "next_difficulty_level": <integer between 1 and 5>}

Pick next_difficulty_level relative to the current difficulty: raise it for a strong answer, lower it for a weak one.`

// FreeTextInput is everything the free-text strategy needs.
type FreeTextInput struct {
	Question       string
	ExpectedAnswer string
	StudentAnswer  string
	MaxPoints      int
	Level          int
}

// FreeTextGrade is the result of grading a free-text answer. FallbackUsed is
// true when the oracle's output could not be parsed (or the oracle failed)
// and the deterministic rule was applied instead.
type FreeTextGrade struct {
	Score          float64
	Rating         float64
	Feedback       string
	NextDifficulty int
	FallbackUsed   bool
}

// GradeFreeText grades through the oracle and falls back deterministically on
// any failure. It never returns an error: a grade is always produced, and all
// numeric outputs are clamped into their valid ranges regardless of source.
func (e *Engine) GradeFreeText(ctx context.Context, in FreeTextInput) FreeTextGrade {
	userPrompt := fmt.Sprintf(
		"Question: %s\nExpected answer: %s\nStudent answer: %s\nMaximum points: %d\nCurrent difficulty level: %d",
		in.Question, in.ExpectedAnswer, in.StudentAnswer, in.MaxPoints, in.Level,
	)

	temp := 0.2
	raw, err := e.oracle.Generate(ctx, freeTextSystemPrompt, userPrompt, oracle.Options{Temperature: &temp})
	if err != nil {
		log.Printf("free-text grading: oracle failed, using fallback: %v", err)
		return fallbackGrade(in)
	}

	payload, ok := parseGradePayload(raw)
	if !ok {
		log.Printf("free-text grading: unparseable oracle output, using fallback")
		return fallbackGrade(in)
	}

	return FreeTextGrade{
		Score:          adaptive.ClampScore(*payload.Score, in.MaxPoints),
		Rating:         adaptive.ClampRating(*payload.Rating),
		Feedback:       *payload.Feedback,
		NextDifficulty: adaptive.ClampLevel(*payload.NextDifficulty),
	}
}

// fallbackGrade is the deterministic rule applied when the oracle is down or
// returned garbage: long answers get full credit, short ones half credit.
func fallbackGrade(in FreeTextInput) FreeTextGrade {
	score := float64(in.MaxPoints) / 2
	rating := 3.0
	if len(in.StudentAnswer) > 20 {
		score = float64(in.MaxPoints)
		rating = 5.0
	}
	return FreeTextGrade{
		Score:          adaptive.ClampScore(score, in.MaxPoints),
		Rating:         adaptive.ClampRating(rating),
		Feedback:       "Automatic grading was unavailable; a provisional grade was assigned based on answer length.",
		NextDifficulty: adaptive.ClampLevel(in.Level),
		FallbackUsed:   true,
	}
}
