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

// IssueService implements issue CRUD within a project. Any contributor may
// read and file issues; only the issue's author may change or delete it.
type IssueService struct {
	resolver     resolver
	issues       ports.IssueRepository
	contributors ports.ContributorRepository
	logger       zerolog.Logger
}

func NewIssueService(projects ports.ProjectRepository, contributors ports.ContributorRepository, issues ports.IssueRepository, logger zerolog.Logger) *IssueService {
	return &IssueService{
		resolver:     resolver{projects: projects, contributors: contributors, issues: issues},
		issues:       issues,
		contributors: contributors,
		logger:       logger,
	}
}

func (s *IssueService) List(ctx context.Context, callerID, projectID int64, page ports.Page) ([]domain.Issue, int64, error) {
	chain, err := s.resolver.projectChain(ctx, callerID, projectID)
	if err != nil {
		return nil, 0, err
	}
	if err := authorize(callerID, authz.ActionRead, authz.ResourceIssue, chain); err != nil {
		return nil, 0, err
	}

	page = page.Normalize()
	return s.issues.ListByProject(ctx, projectID, page.Limit(), page.Offset())
}

func (s *IssueService) Create(ctx context.Context, callerID, projectID int64, input ports.CreateIssueInput) (*domain.Issue, error) {
	chain, err := s.resolver.projectChain(ctx, callerID, projectID)
	if err != nil {
		return nil, err
	}
	if err := authorize(callerID, authz.ActionCreate, authz.ResourceIssue, chain); err != nil {
		return nil, err
	}

	if err := s.validateEnums(input.Status, input.Priority, input.Tag); err != nil {
		return nil, err
	}
	if err := s.validateAssignee(ctx, projectID, input.AssigneeID); err != nil {
		return nil, err
	}

	issue := &domain.Issue{
		ProjectID:   projectID,
		AuthorID:    callerID,
		AssigneeID:  input.AssigneeID,
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		Priority:    input.Priority,
		Tag:         input.Tag,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.issues.Create(ctx, issue)
	if err != nil {
		s.logger.Error().Err(err).Int64("project_id", projectID).Msg("failed to create issue")
		return nil, err
	}

	metrics.EntitiesCreatedTotal.WithLabelValues("issue").Inc()
	s.logger.Info().Int64("issue_id", created.ID).Int64("project_id", projectID).Msg("issue created")
	return created, nil
}

func (s *IssueService) Get(ctx context.Context, callerID, projectID, issueID int64) (*domain.Issue, error) {
	chain, err := s.resolver.issueChain(ctx, callerID, projectID, issueID)
	if err != nil {
		return nil, err
	}
	if err := authorize(callerID, authz.ActionRead, authz.ResourceIssue, chain); err != nil {
		return nil, err
	}
	return chain.Issue, nil
}

func (s *IssueService) Update(ctx context.Context, callerID, projectID, issueID int64, input ports.UpdateIssueInput) (*domain.Issue, error) {
	chain, err := s.resolver.issueChain(ctx, callerID, projectID, issueID)
	if err != nil {
		return nil, err
	}
	if err := authorize(callerID, authz.ActionUpdate, authz.ResourceIssue, chain); err != nil {
		return nil, err
	}

	issue := chain.Issue
	if input.Title != nil {
		issue.Title = *input.Title
	}
	if input.Description != nil {
		issue.Description = *input.Description
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, *input.Status)
		}
		issue.Status = *input.Status
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, fmt.Errorf("%w: unknown priority %q", domain.ErrValidation, *input.Priority)
		}
		issue.Priority = *input.Priority
	}
	if input.Tag != nil {
		if !input.Tag.Valid() {
			return nil, fmt.Errorf("%w: unknown tag %q", domain.ErrValidation, *input.Tag)
		}
		issue.Tag = *input.Tag
	}
	switch {
	case input.ClearAssignee:
		issue.AssigneeID = nil
	case input.AssigneeID != nil:
		if err := s.validateAssignee(ctx, projectID, input.AssigneeID); err != nil {
			return nil, err
		}
		issue.AssigneeID = input.AssigneeID
	}

	if err := s.issues.Update(ctx, issue); err != nil {
		return nil, err
	}
	return issue, nil
}

func (s *IssueService) Delete(ctx context.Context, callerID, projectID, issueID int64) error {
	chain, err := s.resolver.issueChain(ctx, callerID, projectID, issueID)
	if err != nil {
		return err
	}
	if err := authorize(callerID, authz.ActionDelete, authz.ResourceIssue, chain); err != nil {
		return err
	}

	if err := s.issues.Delete(ctx, issueID); err != nil {
		return err
	}
	s.logger.Info().Int64("issue_id", issueID).Int64("project_id", projectID).Msg("issue deleted")
	return nil
}

func (s *IssueService) validateEnums(status domain.IssueStatus, priority domain.IssuePriority, tag domain.IssueTag) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", domain.ErrValidation, status)
	}
	if !priority.Valid() {
		return fmt.Errorf("%w: unknown priority %q", domain.ErrValidation, priority)
	}
	if !tag.Valid() {
		return fmt.Errorf("%w: unknown tag %q", domain.ErrValidation, tag)
	}
	return nil
}

// validateAssignee enforces the invariant that an issue's assignee is a
// contributor of the issue's project.
func (s *IssueService) validateAssignee(ctx context.Context, projectID int64, assigneeID *int64) error {
	if assigneeID == nil {
		return nil
	}
	member, err := s.contributors.IsMember(ctx, projectID, *assigneeID)
	if err != nil {
		return err
	}
	if !member {
		return domain.ErrAssigneeNotContributor
	}
	return nil
}
