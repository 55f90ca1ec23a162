package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/openboard/tracker/internal/core/domain"
)

// ContributorRepository persists project membership.
type ContributorRepository struct {
	db DB
}

func NewContributorRepository(db DB) *ContributorRepository {
	return &ContributorRepository{db: db}
}

func (r *ContributorRepository) Add(ctx context.Context, contributor *domain.Contributor) (*domain.Contributor, error) {
	err := r.db.QueryRow(ctx,
		`INSERT INTO contributors (project_id, user_id, created_time) VALUES ($1, $2, $3) RETURNING id`,
		contributor.ProjectID, contributor.UserID, contributor.CreatedAt,
	).Scan(&contributor.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateContributor
		}
		return nil, fmt.Errorf("add contributor: %w", err)
	}
	return contributor, nil
}

// FindByID scopes the lookup to the project so that a contributor id
// belonging to another project reads as not found.
func (r *ContributorRepository) FindByID(ctx context.Context, projectID, contributorID int64) (*domain.Contributor, error) {
	var c domain.Contributor
	err := r.db.QueryRow(ctx,
		`SELECT id, project_id, user_id, created_time FROM contributors WHERE id = $1 AND project_id = $2`,
		contributorID, projectID,
	).Scan(&c.ID, &c.ProjectID, &c.UserID, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrContributorNotFound
		}
		return nil, fmt.Errorf("find contributor: %w", err)
	}
	return &c, nil
}

func (r *ContributorRepository) ListByProject(ctx context.Context, projectID int64, limit, offset int) ([]domain.Contributor, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM contributors WHERE project_id = $1`, projectID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count contributors: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, project_id, user_id, created_time FROM contributors
		 WHERE project_id = $1 ORDER BY created_time ASC, id ASC LIMIT $2 OFFSET $3`,
		projectID, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list contributors: %w", err)
	}
	defer rows.Close()

	contributors := []domain.Contributor{}
	for rows.Next() {
		var c domain.Contributor
		if err := rows.Scan(&c.ID, &c.ProjectID, &c.UserID, &c.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan contributor: %w", err)
		}
		contributors = append(contributors, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate contributors: %w", err)
	}
	return contributors, total, nil
}

func (r *ContributorRepository) IsMember(ctx context.Context, projectID, userID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM contributors WHERE project_id = $1 AND user_id = $2)`,
		projectID, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("membership check: %w", err)
	}
	return exists, nil
}

func (r *ContributorRepository) Remove(ctx context.Context, projectID, contributorID int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM contributors WHERE id = $1 AND project_id = $2`, contributorID, projectID)
	if err != nil {
		return fmt.Errorf("remove contributor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrContributorNotFound
	}
	return nil
}
