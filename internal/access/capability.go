// Package access holds the single capability check consulted by every
// mutating operation. Handlers extract the actor at the boundary; the core
// performs no authentication of its own.
package access

import "github.com/PrashantBimalJha/studentlearning-app/internal/models"

// Actor is the opaque identity handed in by the caller.
type Actor struct {
	Email      string
	Name       string
	Privileged bool
}

// Capability names an operation class on an assignment.
type Capability int

const (
	// ViewAssignment covers reading assignment details.
	ViewAssignment Capability = iota
	// SubmitAssignment covers answering a pending assignment.
	SubmitAssignment
	// ManageAssignment covers creating, editing and deleting.
	ManageAssignment
	// ResolveReport covers dispute resolution on the target assignment.
	ResolveReport
)

// Allows is the uniform permission check. A privileged operator can do
// anything; the owning instructor manages and resolves; the bound student
// views and submits. An unbound assignment may be submitted by anyone (the
// first submission binds it).
func Allows(actor Actor, cap Capability, a *models.Assignment) bool {
	if actor.Privileged {
		return true
	}
	if a == nil {
		return false
	}
	isInstructor := a.InstructorEmail != "" && actor.Email == a.InstructorEmail
	isStudent := a.StudentEmail != "" && actor.Email == a.StudentEmail

	switch cap {
	case ViewAssignment:
		return isInstructor || isStudent || a.StudentEmail == ""
	case SubmitAssignment:
		return isStudent || a.StudentEmail == ""
	case ManageAssignment, ResolveReport:
		return isInstructor
	}
	return false
}
