package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/openboard/tracker/internal/api/metrics"
	"github.com/openboard/tracker/internal/core/authz"
	"github.com/openboard/tracker/internal/core/domain"
	"github.com/openboard/tracker/internal/core/ports"
)

// ProjectService implements project CRUD. Reads are gated on membership,
// mutations on project authorship.
type ProjectService struct {
	resolver resolver
	projects ports.ProjectRepository
	logger   zerolog.Logger
}

func NewProjectService(projects ports.ProjectRepository, contributors ports.ContributorRepository, logger zerolog.Logger) *ProjectService {
	return &ProjectService{
		resolver: resolver{projects: projects, contributors: contributors},
		projects: projects,
		logger:   logger,
	}
}

func (s *ProjectService) Create(ctx context.Context, callerID int64, input ports.CreateProjectInput) (*domain.Project, error) {
	if err := authorize(callerID, authz.ActionCreate, authz.ResourceProject, authz.Chain{}); err != nil {
		return nil, err
	}
	if !input.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown project type %q", domain.ErrValidation, input.Type)
	}

	project := &domain.Project{
		AuthorID:    callerID,
		Name:        input.Name,
		Description: input.Description,
		Type:        input.Type,
		CreatedAt:   time.Now().UTC(),
	}

	// The repository inserts the author's contributor record in the same
	// transaction.
	created, err := s.projects.Create(ctx, project)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create project")
		return nil, err
	}

	metrics.EntitiesCreatedTotal.WithLabelValues("project").Inc()
	s.logger.Info().Int64("project_id", created.ID).Int64("author_id", callerID).Msg("project created")
	return created, nil
}

func (s *ProjectService) Get(ctx context.Context, callerID, projectID int64) (*domain.Project, error) {
	chain, err := s.resolver.projectChain(ctx, callerID, projectID)
	if err != nil {
		return nil, err
	}
	if err := authorize(callerID, authz.ActionRead, authz.ResourceProject, chain); err != nil {
		return nil, err
	}
	return chain.Project, nil
}

// List returns only the projects the caller contributes to, so no per-item
// authorization is needed.
func (s *ProjectService) List(ctx context.Context, callerID int64, page ports.Page) ([]domain.Project, int64, error) {
	page = page.Normalize()
	return s.projects.ListForUser(ctx, callerID, page.Limit(), page.Offset())
}

func (s *ProjectService) Update(ctx context.Context, callerID, projectID int64, input ports.UpdateProjectInput) (*domain.Project, error) {
	chain, err := s.resolver.projectChain(ctx, callerID, projectID)
	if err != nil {
		return nil, err
	}
	if err := authorize(callerID, authz.ActionUpdate, authz.ResourceProject, chain); err != nil {
		return nil, err
	}

	project := chain.Project
	if input.Name != nil {
		project.Name = *input.Name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.Type != nil {
		if !input.Type.Valid() {
			return nil, fmt.Errorf("%w: unknown project type %q", domain.ErrValidation, *input.Type)
		}
		project.Type = *input.Type
	}

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) Delete(ctx context.Context, callerID, projectID int64) error {
	chain, err := s.resolver.projectChain(ctx, callerID, projectID)
	if err != nil {
		return err
	}
	if err := authorize(callerID, authz.ActionDelete, authz.ResourceProject, chain); err != nil {
		return err
	}

	if err := s.projects.Delete(ctx, projectID); err != nil {
		return err
	}
	s.logger.Info().Int64("project_id", projectID).Msg("project deleted")
	return nil
}
