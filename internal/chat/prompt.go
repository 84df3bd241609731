package chat

import (
	"fmt"
	"strings"
)

// SystemPrompt defines the tutor persona. Kept in one place so behavior can
// be tuned without touching the service.
const SystemPrompt = `You are a friendly and experienced tutor for a student learning platform. ` +
	`Help students with course material, study techniques, assignment guidance and exam preparation. ` +
	`Be encouraging and patient, break complex topics into simple steps, and use examples. ` +
	`Never invent specific grades, deadlines or course schedules; direct students to their dashboard ` +
	`for current data. Keep responses concise and use markdown formatting for readability.`

// BuildUserPrompt folds recent conversation history into the prompt so the
// tutor keeps context across turns.
func BuildUserPrompt(history []Message, question string) string {
	var b strings.Builder
	if len(history) > 0 {
		b.WriteString("Previous conversation:\n")
		for _, m := range history {
			switch m.Role {
			case "student":
				fmt.Fprintf(&b, "Student: %s\n", m.Content)
			default:
				fmt.Fprintf(&b, "Tutor: %s\n", m.Content)
			}
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "Student's current question: %s", question)
	return b.String()
}
