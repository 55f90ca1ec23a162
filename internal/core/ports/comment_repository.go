package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/openboard/tracker/internal/core/domain"
)

// CommentRepository defines persistence for issue comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error)
	// FindByID returns the comment only when it belongs to the given issue.
	FindByID(ctx context.Context, issueID int64, commentID uuid.UUID) (*domain.Comment, error)
	ListByIssue(ctx context.Context, issueID int64, limit, offset int) ([]domain.Comment, int64, error)
	Update(ctx context.Context, comment *domain.Comment) error
	Delete(ctx context.Context, id uuid.UUID) error
}
