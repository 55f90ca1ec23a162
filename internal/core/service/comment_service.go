package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/openboard/tracker/internal/api/metrics"
	"github.com/openboard/tracker/internal/core/authz"
	"github.com/openboard/tracker/internal/core/domain"
	"github.com/openboard/tracker/internal/core/ports"
)

// CommentService implements comment CRUD within an issue. Reading and
// commenting require membership in the grandparent project; changing or
// deleting a comment requires being its author.
type CommentService struct {
	resolver resolver
	comments ports.CommentRepository
	logger   zerolog.Logger
}

func NewCommentService(projects ports.ProjectRepository, contributors ports.ContributorRepository, issues ports.IssueRepository, comments ports.CommentRepository, logger zerolog.Logger) *CommentService {
	return &CommentService{
		resolver: resolver{projects: projects, contributors: contributors, issues: issues, comments: comments},
		comments: comments,
		logger:   logger,
	}
}

func (s *CommentService) List(ctx context.Context, callerID, projectID, issueID int64, page ports.Page) ([]domain.Comment, int64, error) {
	chain, err := s.resolver.issueChain(ctx, callerID, projectID, issueID)
	if err != nil {
		return nil, 0, err
	}
	if err := authorize(callerID, authz.ActionRead, authz.ResourceComment, chain); err != nil {
		return nil, 0, err
	}

	page = page.Normalize()
	return s.comments.ListByIssue(ctx, issueID, page.Limit(), page.Offset())
}

func (s *CommentService) Create(ctx context.Context, callerID, projectID, issueID int64, description string) (*domain.Comment, error) {
	chain, err := s.resolver.issueChain(ctx, callerID, projectID, issueID)
	if err != nil {
		return nil, err
	}
	if err := authorize(callerID, authz.ActionCreate, authz.ResourceComment, chain); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		ID:          uuid.New(), // random id, enumeration-resistant
		IssueID:     issueID,
		AuthorID:    callerID,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.comments.Create(ctx, comment)
	if err != nil {
		s.logger.Error().Err(err).Int64("issue_id", issueID).Msg("failed to create comment")
		return nil, err
	}

	metrics.EntitiesCreatedTotal.WithLabelValues("comment").Inc()
	s.logger.Info().Str("comment_id", created.ID.String()).Int64("issue_id", issueID).Msg("comment created")
	return created, nil
}

func (s *CommentService) Get(ctx context.Context, callerID, projectID, issueID int64, commentID uuid.UUID) (*domain.Comment, error) {
	chain, err := s.resolver.commentChain(ctx, callerID, projectID, issueID, commentID)
	if err != nil {
		return nil, err
	}
	if err := authorize(callerID, authz.ActionRead, authz.ResourceComment, chain); err != nil {
		return nil, err
	}
	return chain.Comment, nil
}

func (s *CommentService) Update(ctx context.Context, callerID, projectID, issueID int64, commentID uuid.UUID, description string) (*domain.Comment, error) {
	chain, err := s.resolver.commentChain(ctx, callerID, projectID, issueID, commentID)
	if err != nil {
		return nil, err
	}
	if err := authorize(callerID, authz.ActionUpdate, authz.ResourceComment, chain); err != nil {
		return nil, err
	}

	comment := chain.Comment
	comment.Description = description

	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, callerID, projectID, issueID int64, commentID uuid.UUID) error {
	chain, err := s.resolver.commentChain(ctx, callerID, projectID, issueID, commentID)
	if err != nil {
		return err
	}
	if err := authorize(callerID, authz.ActionDelete, authz.ResourceComment, chain); err != nil {
		return err
	}

	if err := s.comments.Delete(ctx, commentID); err != nil {
		return err
	}
	s.logger.Info().Str("comment_id", commentID.String()).Int64("issue_id", issueID).Msg("comment deleted")
	return nil
}
