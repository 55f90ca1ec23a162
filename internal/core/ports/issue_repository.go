package ports

import (
	"context"

	"github.com/openboard/tracker/internal/core/domain"
)

// IssueRepository defines persistence for issues.
type IssueRepository interface {
	Create(ctx context.Context, issue *domain.Issue) (*domain.Issue, error)
	// FindByID returns the issue only when it belongs to the given project.
	FindByID(ctx context.Context, projectID, issueID int64) (*domain.Issue, error)
	ListByProject(ctx context.Context, projectID int64, limit, offset int) ([]domain.Issue, int64, error)
	Update(ctx context.Context, issue *domain.Issue) error
	// Delete removes the issue and cascades to its comments.
	Delete(ctx context.Context, id int64) error
}
