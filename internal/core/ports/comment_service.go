package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/openboard/tracker/internal/core/domain"
)

// CommentService implements comment CRUD within an issue.
type CommentService interface {
	List(ctx context.Context, callerID, projectID, issueID int64, page Page) ([]domain.Comment, int64, error)
	Create(ctx context.Context, callerID, projectID, issueID int64, description string) (*domain.Comment, error)
	Get(ctx context.Context, callerID, projectID, issueID int64, commentID uuid.UUID) (*domain.Comment, error)
	Update(ctx context.Context, callerID, projectID, issueID int64, commentID uuid.UUID, description string) (*domain.Comment, error)
	Delete(ctx context.Context, callerID, projectID, issueID int64, commentID uuid.UUID) error
}
