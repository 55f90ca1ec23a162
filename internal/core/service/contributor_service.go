package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/openboard/tracker/internal/api/metrics"
	"github.com/openboard/tracker/internal/core/authz"
	"github.com/openboard/tracker/internal/core/domain"
	"github.com/openboard/tracker/internal/core/ports"
)

// ContributorService manages project membership. Listing requires
// membership; adding and removing require project authorship.
type ContributorService struct {
	resolver     resolver
	contributors ports.ContributorRepository
	users        ports.UserRepository
	logger       zerolog.Logger
}

func NewContributorService(projects ports.ProjectRepository, contributors ports.ContributorRepository, users ports.UserRepository, logger zerolog.Logger) *ContributorService {
	return &ContributorService{
		resolver:     resolver{projects: projects, contributors: contributors},
		contributors: contributors,
		users:        users,
		logger:       logger,
	}
}

func (s *ContributorService) List(ctx context.Context, callerID, projectID int64, page ports.Page) ([]domain.Contributor, int64, error) {
	chain, err := s.resolver.projectChain(ctx, callerID, projectID)
	if err != nil {
		return nil, 0, err
	}
	if err := authorize(callerID, authz.ActionRead, authz.ResourceContributor, chain); err != nil {
		return nil, 0, err
	}

	page = page.Normalize()
	return s.contributors.ListByProject(ctx, projectID, page.Limit(), page.Offset())
}

func (s *ContributorService) Add(ctx context.Context, callerID, projectID, userID int64) (*domain.Contributor, error) {
	chain, err := s.resolver.projectChain(ctx, callerID, projectID)
	if err != nil {
		return nil, err
	}
	if err := authorize(callerID, authz.ActionCreate, authz.ResourceContributor, chain); err != nil {
		return nil, err
	}

	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}

	member, err := s.contributors.IsMember(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	if member {
		return nil, domain.ErrDuplicateContributor
	}

	created, err := s.contributors.Add(ctx, &domain.Contributor{
		ProjectID: projectID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	metrics.EntitiesCreatedTotal.WithLabelValues("contributor").Inc()
	s.logger.Info().Int64("project_id", projectID).Int64("user_id", userID).Msg("contributor added")
	return created, nil
}

func (s *ContributorService) Remove(ctx context.Context, callerID, projectID, contributorID int64) error {
	chain, err := s.resolver.projectChain(ctx, callerID, projectID)
	if err != nil {
		return err
	}
	if err := authorize(callerID, authz.ActionDelete, authz.ResourceContributor, chain); err != nil {
		return err
	}

	contributor, err := s.contributors.FindByID(ctx, projectID, contributorID)
	if err != nil {
		return err
	}

	// The author's membership is structural and cannot be revoked, not
	// even by the author themself.
	if contributor.UserID == chain.Project.AuthorID {
		return domain.ErrAuthorNotRemovable
	}

	if err := s.contributors.Remove(ctx, projectID, contributorID); err != nil {
		return err
	}
	s.logger.Info().Int64("project_id", projectID).Int64("contributor_id", contributorID).Msg("contributor removed")
	return nil
}
