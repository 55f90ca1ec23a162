package ports

import (
	"context"

	"github.com/openboard/tracker/internal/core/domain"
)

// CreateProjectInput carries the caller-supplied fields of a new project.
type CreateProjectInput struct {
	Name        string
	Description string
	Type        domain.ProjectType
}

// UpdateProjectInput carries a project mutation; nil fields are left
// untouched. The author is immutable and therefore absent.
type UpdateProjectInput struct {
	Name        *string
	Description *string
	Type        *domain.ProjectType
}

// ProjectService implements project CRUD gated by the authorization engine.
type ProjectService interface {
	Create(ctx context.Context, callerID int64, input CreateProjectInput) (*domain.Project, error)
	Get(ctx context.Context, callerID, projectID int64) (*domain.Project, error)
	List(ctx context.Context, callerID int64, page Page) ([]domain.Project, int64, error)
	Update(ctx context.Context, callerID, projectID int64, input UpdateProjectInput) (*domain.Project, error)
	Delete(ctx context.Context, callerID, projectID int64) error
}

// ContributorService manages project membership.
type ContributorService interface {
	List(ctx context.Context, callerID, projectID int64, page Page) ([]domain.Contributor, int64, error)
	Add(ctx context.Context, callerID, projectID, userID int64) (*domain.Contributor, error)
	Remove(ctx context.Context, callerID, projectID, contributorID int64) error
}
