package ports

import (
	"context"

	"github.com/openboard/tracker/internal/core/domain"
)

// ProjectRepository defines persistence for projects.
type ProjectRepository interface {
	// Create inserts the project and its author's contributor record in a
	// single transaction, so a project can never exist without its author
	// being a member.
	Create(ctx context.Context, project *domain.Project) (*domain.Project, error)
	FindByID(ctx context.Context, id int64) (*domain.Project, error)
	// ListForUser returns the projects the given user contributes to,
	// newest first, plus the total count before pagination.
	ListForUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Project, int64, error)
	Update(ctx context.Context, project *domain.Project) error
	// Delete removes the project; contributors, issues and comments go
	// with it via cascade.
	Delete(ctx context.Context, id int64) error
}

// ContributorRepository defines persistence for project membership.
type ContributorRepository interface {
	Add(ctx context.Context, contributor *domain.Contributor) (*domain.Contributor, error)
	// FindByID returns the contributor only when it belongs to the given
	// project; a contributor of another project is reported as not found.
	FindByID(ctx context.Context, projectID, contributorID int64) (*domain.Contributor, error)
	ListByProject(ctx context.Context, projectID int64, limit, offset int) ([]domain.Contributor, int64, error)
	IsMember(ctx context.Context, projectID, userID int64) (bool, error)
	Remove(ctx context.Context, projectID, contributorID int64) error
}
