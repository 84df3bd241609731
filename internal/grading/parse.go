package grading

import (
	"encoding/json"
	"strings"
)

// gradePayload is the JSON object the oracle is instructed to return for a
// free-text grade. Pointer fields distinguish "missing" from zero values.
type gradePayload struct {
	Score          *float64 `json:"score"`
	Rating         *float64 `json:"rating"`
	Feedback       *string  `json:"feedback"`
	NextDifficulty *int     `json:"next_difficulty_level"`
}

// parseGradePayload is a strict decode-with-fallback step: it either returns
// a fully populated payload or ok=false. Partial objects are never returned.
func parseGradePayload(raw string) (gradePayload, bool) {
	var p gradePayload
	if err := json.Unmarshal([]byte(extractJSONObject(raw)), &p); err != nil {
		return gradePayload{}, false
	}
	if p.Score == nil || p.Rating == nil || p.Feedback == nil || p.NextDifficulty == nil {
		return gradePayload{}, false
	}
	return p, true
}

// extractJSONObject strips markdown fences and surrounding prose so that a
// JSON object wrapped in explanation still decodes. The oracle's output is
// untrusted; anything that still fails to decode falls back deterministically.
func extractJSONObject(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
	}
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
	}
	if strings.HasSuffix(content, "```") {
		content = strings.TrimSuffix(content, "```")
	}
	content = strings.TrimSpace(content)

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		return content[start : end+1]
	}
	return content
}

// extractJSONArray is the array-shaped counterpart used for quiz generation.
func extractJSONArray(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
	}
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
	}
	if strings.HasSuffix(content, "```") {
		content = strings.TrimSuffix(content, "```")
	}
	content = strings.TrimSpace(content)

	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start >= 0 && end > start {
		return content[start : end+1]
	}
	return content
}
