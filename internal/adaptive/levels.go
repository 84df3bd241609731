// Package adaptive derives and bounds assignment difficulty levels.
package adaptive

const (
	// MinLevel is the easiest difficulty.
	MinLevel = 1
	// MaxLevel is the hardest difficulty the grader may suggest.
	MaxLevel = 5
)

// ClampLevel bounds a suggested difficulty into [MinLevel, MaxLevel].
func ClampLevel(level int) int {
	if level < MinLevel {
		return MinLevel
	}
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}

// QuizLevel derives the difficulty for a newly generated quiz from the number
// of quizzes the student has already completed in the course. The level is
// recoverable from persisted history alone, so it is strictly monotonic per
// (student, course) pair without a separate counter.
func QuizLevel(completedQuizzes int64) int {
	return 1 + int(completedQuizzes)
}

// ClampScore bounds a raw point score into [0, maxPoints].
func ClampScore(score float64, maxPoints int) float64 {
	if score < 0 {
		return 0
	}
	if max := float64(maxPoints); score > max {
		return max
	}
	return score
}

// ClampRating bounds a quality rating into [0, 5].
func ClampRating(rating float64) float64 {
	if rating < 0 {
		return 0
	}
	if rating > 5 {
		return 5
	}
	return rating
}
