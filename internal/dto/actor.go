package dto

import "tutor-center/backend/internal/model"

// Actor the authenticated caller, injected into every domain call.
type Actor struct {
	ID   string
	Role string
}

// IsAdmin reports whether the actor may act on any roster member.
func (a Actor) IsAdmin() bool { return a.Role == model.RoleAdmin }

// CanAccessStudent admins reach every student, students only themselves.
func (a Actor) CanAccessStudent(studentID string) bool {
	return a.IsAdmin() || (a.Role == model.RoleStudent && a.ID == studentID)
}
