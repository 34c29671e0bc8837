package service

import "errors"

// Sentinel errors surfaced to the transport layer. Authentication failures
// deliberately collapse "unknown username" and "wrong password" into one
// value so responses cannot be used for username enumeration.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountInactive    = errors.New("account is inactive")
	ErrTokenInvalidated   = errors.New("token has been invalidated")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("username or email already taken")

	ErrReportNotFound     = errors.New("report not found")
	ErrReportClosed       = errors.New("report is closed")
	ErrInvalidMenu        = errors.New("invalid menu")
	ErrInvalidSubMenu     = errors.New("invalid sub-menu")
	ErrCategoryMismatch   = errors.New("sub-menu does not belong to menu")
	ErrInvalidAssignee    = errors.New("invalid assignee")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrInvalidPriority    = errors.New("invalid priority")
	ErrTooManyScreenshots = errors.New("too many screenshots")

	ErrMenuNotFound     = errors.New("menu not found")
	ErrSubMenuNotFound  = errors.New("sub-menu not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrDependencyExists = errors.New("category is still referenced by reports")

	ErrForbidden = errors.New("not allowed")
)
