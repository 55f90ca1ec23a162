package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/openboard/tracker/internal/core/domain"
)

// CommentRepository persists issue comments.
type CommentRepository struct {
	db DB
}

func NewCommentRepository(db DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	_, err := r.db.Exec(ctx,
		`INSERT INTO comments (id, issue_id, author_id, description, created_time) VALUES ($1, $2, $3, $4, $5)`,
		comment.ID, comment.IssueID, comment.AuthorID, comment.Description, comment.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

// FindByID scopes the lookup to the issue so that a comment id belonging to
// another issue reads as not found.
func (r *CommentRepository) FindByID(ctx context.Context, issueID int64, commentID uuid.UUID) (*domain.Comment, error) {
	var c domain.Comment
	err := r.db.QueryRow(ctx,
		`SELECT id, issue_id, author_id, description, created_time FROM comments WHERE id = $1 AND issue_id = $2`,
		commentID, issueID,
	).Scan(&c.ID, &c.IssueID, &c.AuthorID, &c.Description, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCommentNotFound
		}
		return nil, fmt.Errorf("find comment: %w", err)
	}
	return &c, nil
}

func (r *CommentRepository) ListByIssue(ctx context.Context, issueID int64, limit, offset int) ([]domain.Comment, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM comments WHERE issue_id = $1`, issueID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count comments: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, issue_id, author_id, description, created_time FROM comments
		 WHERE issue_id = $1 ORDER BY created_time ASC, id ASC LIMIT $2 OFFSET $3`,
		issueID, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	comments := []domain.Comment{}
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.IssueID, &c.AuthorID, &c.Description, &c.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate comments: %w", err)
	}
	return comments, total, nil
}

func (r *CommentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	tag, err := r.db.Exec(ctx, `UPDATE comments SET description = $1 WHERE id = $2`, comment.Description, comment.ID)
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}

func (r *CommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}
