// Package authz decides whether a user may perform an action on a resource.
//
// Every decision is a pure function of the caller's identity, the action and
// the resolved ancestor chain of the target resource. The rules form one
// table (see Can) instead of being scattered across handlers:
//
//   - reading anything under a project requires membership in that project,
//   - mutating a project or its contributor list requires project authorship,
//   - mutating an issue or a comment requires authorship of that entity.
//
// Authorship rights on issues and comments deliberately do not depend on the
// caller's current contributor status: losing membership does not strip a
// user of the right to edit or delete what they authored.
package authz

import "github.com/openboard/tracker/internal/core/domain"

// Action is a CRUD verb checked against a resource.
type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Resource names the kinds of entities the engine rules over.
type Resource string

const (
	ResourceProject     Resource = "project"
	ResourceContributor Resource = "contributor"
	ResourceIssue       Resource = "issue"
	ResourceComment     Resource = "comment"
)

// Chain is the resolved ancestor chain of a request target. The request
// pipeline fills it top-down after verifying each link's parentage, so by
// the time the engine sees it, Issue (when set) belongs to Project and
// Comment (when set) belongs to Issue.
type Chain struct {
	Project *domain.Project
	Issue   *domain.Issue
	Comment *domain.Comment

	// Member reports whether the caller is a contributor of Project.
	// The project author always counts as a member.
	Member bool
}

// Can reports whether the given authenticated user may perform action on a
// resource of the given kind, in the context of the resolved chain.
//
// Anonymous callers (userID == 0) are always denied; the transport layer
// rejects them with 401 before resolution, so a zero id reaching the engine
// is a programming error handled defensively here.
func Can(userID int64, action Action, resource Resource, chain Chain) bool {
	if userID == 0 {
		return false
	}

	switch resource {
	case ResourceProject:
		switch action {
		case ActionCreate:
			return true // any authenticated user may start a project
		case ActionRead:
			return chain.Member
		case ActionUpdate, ActionDelete:
			return chain.Project != nil && chain.Project.AuthorID == userID
		}

	case ResourceContributor:
		switch action {
		case ActionRead:
			return chain.Member
		case ActionCreate, ActionDelete:
			return chain.Project != nil && chain.Project.AuthorID == userID
		}

	case ResourceIssue:
		switch action {
		case ActionRead, ActionCreate:
			return chain.Member
		case ActionUpdate, ActionDelete:
			return chain.Issue != nil && chain.Issue.AuthorID == userID
		}

	case ResourceComment:
		switch action {
		case ActionRead, ActionCreate:
			return chain.Member
		case ActionUpdate, ActionDelete:
			return chain.Comment != nil && chain.Comment.AuthorID == userID
		}
	}

	return false
}
