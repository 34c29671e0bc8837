package authz

import "github.com/mzhdanov/bugtrack/internal/models"

// Actor is the authenticated caller as resolved from a session token.
type Actor struct {
	ID   uint
	Role string
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// CanSeeInternal gates internal report comments.
func CanSeeInternal(a Actor) bool {
	return a.IsAdmin()
}

// CanAccessReport allows the owner and admins through.
func CanAccessReport(a Actor, report *models.Report) bool {
	return a.IsAdmin() || report.UserID == a.ID
}

// CanModifyComment: author or admin, per the comment lifecycle rules.
func CanModifyComment(a Actor, comment *models.ReportComment) bool {
	return a.IsAdmin() || comment.UserID == a.ID
}

// ScopeToOwner pins a non-admin actor's listing to their own reports no
// matter what user_id filter they supplied.
func ScopeToOwner(a Actor, userID uint) uint {
	if a.IsAdmin() {
		return userID
	}
	return a.ID
}
