package domain

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUserExists          = errors.New("user already exists")
	ErrProjectNotFound     = errors.New("project not found")
	ErrContributorNotFound = errors.New("contributor not found")
	ErrIssueNotFound       = errors.New("issue not found")
	ErrCommentNotFound     = errors.New("comment not found")

	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")

	ErrValidation             = errors.New("validation failed")
	ErrDuplicateContributor   = errors.New("user is already a contributor")
	ErrAuthorNotRemovable     = errors.New("the project author cannot be removed from contributors")
	ErrAssigneeNotContributor = errors.New("assignee must be a contributor of the project")
	ErrUserTooYoung           = errors.New("user must be at least 15 years old")
)
