package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/openboard/tracker/internal/core/domain"
)

// IssueRepository persists issues.
type IssueRepository struct {
	db DB
}

func NewIssueRepository(db DB) *IssueRepository {
	return &IssueRepository{db: db}
}

const issueColumns = `id, project_id, author_id, assignee_id, title, description, status, priority, tag, created_time`

func scanIssue(row pgx.Row) (*domain.Issue, error) {
	var i domain.Issue
	err := row.Scan(
		&i.ID, &i.ProjectID, &i.AuthorID, &i.AssigneeID,
		&i.Title, &i.Description, &i.Status, &i.Priority, &i.Tag, &i.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *IssueRepository) Create(ctx context.Context, issue *domain.Issue) (*domain.Issue, error) {
	const sql = `INSERT INTO issues (project_id, author_id, assignee_id, title, description, status, priority, tag, created_time)
	             VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	err := r.db.QueryRow(ctx, sql,
		issue.ProjectID, issue.AuthorID, issue.AssigneeID,
		issue.Title, issue.Description, issue.Status, issue.Priority, issue.Tag, issue.CreatedAt,
	).Scan(&issue.ID)
	if err != nil {
		return nil, fmt.Errorf("create issue: %w", err)
	}
	return issue, nil
}

// FindByID scopes the lookup to the project so that an issue id belonging
// to another project reads as not found.
func (r *IssueRepository) FindByID(ctx context.Context, projectID, issueID int64) (*domain.Issue, error) {
	i, err := scanIssue(r.db.QueryRow(ctx,
		`SELECT `+issueColumns+` FROM issues WHERE id = $1 AND project_id = $2`,
		issueID, projectID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrIssueNotFound
		}
		return nil, fmt.Errorf("find issue: %w", err)
	}
	return i, nil
}

func (r *IssueRepository) ListByProject(ctx context.Context, projectID int64, limit, offset int) ([]domain.Issue, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM issues WHERE project_id = $1`, projectID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count issues: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+issueColumns+` FROM issues WHERE project_id = $1
		 ORDER BY created_time DESC, id DESC LIMIT $2 OFFSET $3`,
		projectID, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list issues: %w", err)
	}
	defer rows.Close()

	issues := []domain.Issue{}
	for rows.Next() {
		i, err := scanIssue(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan issue: %w", err)
		}
		issues = append(issues, *i)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate issues: %w", err)
	}
	return issues, total, nil
}

func (r *IssueRepository) Update(ctx context.Context, issue *domain.Issue) error {
	const sql = `UPDATE issues SET title = $1, description = $2, status = $3, priority = $4, tag = $5, assignee_id = $6 WHERE id = $7`
	tag, err := r.db.Exec(ctx, sql,
		issue.Title, issue.Description, issue.Status, issue.Priority, issue.Tag, issue.AssigneeID, issue.ID,
	)
	if err != nil {
		return fmt.Errorf("update issue: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrIssueNotFound
	}
	return nil
}

func (r *IssueRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM issues WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete issue: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrIssueNotFound
	}
	return nil
}
