package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/openboard/tracker/internal/api/metrics"
	"github.com/openboard/tracker/internal/core/authz"
	"github.com/openboard/tracker/internal/core/domain"
	"github.com/openboard/tracker/internal/core/ports"
)

// resolver walks nested resource paths top-down and produces the validated
// ancestor chain the authorization engine rules over. Each link is checked
// against its stated parent by the repository lookups, so a mismatched path
// surfaces as not-found before any permission is evaluated. Existence is
// therefore never leaked to callers who merely guessed an id.
type resolver struct {
	projects     ports.ProjectRepository
	contributors ports.ContributorRepository
	issues       ports.IssueRepository
	comments     ports.CommentRepository
}

func (r resolver) projectChain(ctx context.Context, callerID, projectID int64) (authz.Chain, error) {
	project, err := r.projects.FindByID(ctx, projectID)
	if err != nil {
		return authz.Chain{}, err
	}
	member, err := r.contributors.IsMember(ctx, projectID, callerID)
	if err != nil {
		return authz.Chain{}, err
	}
	return authz.Chain{Project: project, Member: member}, nil
}

func (r resolver) issueChain(ctx context.Context, callerID, projectID, issueID int64) (authz.Chain, error) {
	chain, err := r.projectChain(ctx, callerID, projectID)
	if err != nil {
		return authz.Chain{}, err
	}
	issue, err := r.issues.FindByID(ctx, projectID, issueID)
	if err != nil {
		return authz.Chain{}, err
	}
	chain.Issue = issue
	return chain, nil
}

func (r resolver) commentChain(ctx context.Context, callerID, projectID, issueID int64, commentID uuid.UUID) (authz.Chain, error) {
	chain, err := r.issueChain(ctx, callerID, projectID, issueID)
	if err != nil {
		return authz.Chain{}, err
	}
	comment, err := r.comments.FindByID(ctx, issueID, commentID)
	if err != nil {
		return authz.Chain{}, err
	}
	chain.Comment = comment
	return chain, nil
}

// authorize runs the decision function, records the outcome, and converts a
// denial into the forbidden sentinel.
func authorize(userID int64, action authz.Action, resource authz.Resource, chain authz.Chain) error {
	if authz.Can(userID, action, resource, chain) {
		metrics.AuthzDecisionsTotal.WithLabelValues(string(resource), string(action), "allow").Inc()
		return nil
	}
	metrics.AuthzDecisionsTotal.WithLabelValues(string(resource), string(action), "deny").Inc()
	return domain.ErrForbidden
}
