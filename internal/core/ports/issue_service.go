package ports

import (
	"context"

	"github.com/openboard/tracker/internal/core/domain"
)

// CreateIssueInput carries the caller-supplied fields of a new issue.
// The author is always the caller; AssigneeID, when set, must reference a
// contributor of the project.
type CreateIssueInput struct {
	Title       string
	Description string
	Status      domain.IssueStatus
	Priority    domain.IssuePriority
	Tag         domain.IssueTag
	AssigneeID  *int64
}

// UpdateIssueInput carries an issue mutation; nil fields are left untouched.
// ClearAssignee distinguishes "unassign" from "leave as is".
type UpdateIssueInput struct {
	Title         *string
	Description   *string
	Status        *domain.IssueStatus
	Priority      *domain.IssuePriority
	Tag           *domain.IssueTag
	AssigneeID    *int64
	ClearAssignee bool
}

// IssueService implements issue CRUD within a project.
type IssueService interface {
	List(ctx context.Context, callerID, projectID int64, page Page) ([]domain.Issue, int64, error)
	Create(ctx context.Context, callerID, projectID int64, input CreateIssueInput) (*domain.Issue, error)
	Get(ctx context.Context, callerID, projectID, issueID int64) (*domain.Issue, error)
	Update(ctx context.Context, callerID, projectID, issueID int64, input UpdateIssueInput) (*domain.Issue, error)
	Delete(ctx context.Context, callerID, projectID, issueID int64) error
}
