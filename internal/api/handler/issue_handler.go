package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/openboard/tracker/internal/core/domain"
	"github.com/openboard/tracker/internal/core/ports"
)

// IssueHandler serves issue CRUD inside a project.
type IssueHandler struct {
	issueService ports.IssueService
}

func NewIssueHandler(issueService ports.IssueService) *IssueHandler {
	return &IssueHandler{issueService: issueService}
}

type createIssueRequest struct {
	Title       string `json:"title"       validate:"required,max=255"`
	Description string `json:"description"`
	Status      string `json:"status"      validate:"omitempty,oneof=to_do in_progress finished"`
	Priority    string `json:"priority"    validate:"required,oneof=low medium high"`
	Tag         string `json:"tag"         validate:"required,oneof=bug task feature"`
	AssigneeID  *int64 `json:"assignee"    validate:"omitempty,min=1"`
}

type updateIssueRequest struct {
	Title       *string `json:"title"       validate:"omitempty,max=255"`
	Description *string `json:"description"`
	Status      *string `json:"status"      validate:"omitempty,oneof=to_do in_progress finished"`
	Priority    *string `json:"priority"    validate:"omitempty,oneof=low medium high"`
	Tag         *string `json:"tag"         validate:"omitempty,oneof=bug task feature"`
	Assignee    *int64  `json:"assignee"`

	// assigneeSet distinguishes an explicit null assignee from an absent
	// field, which plain pointer binding cannot.
	assigneeSet bool
}

// UnmarshalJSON records whether the assignee key was present at all, so a
// PATCH can unassign with an explicit null.
func (r *updateIssueRequest) UnmarshalJSON(data []byte) error {
	type alias updateIssueRequest
	var a alias
	if err := jsonUnmarshal(data, &a); err != nil {
		return err
	}
	*r = updateIssueRequest(a)
	r.assigneeSet = jsonHasKey(data, "assignee")
	return nil
}

type issueResponse struct {
	ID          int64  `json:"id"`
	ProjectID   int64  `json:"project"`
	AuthorID    int64  `json:"author"`
	AssigneeID  *int64 `json:"assignee"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
	Tag         string `json:"tag"`
	CreatedAt   string `json:"created_time"`
}

func newIssueResponse(issue *domain.Issue) issueResponse {
	return issueResponse{
		ID:          issue.ID,
		ProjectID:   issue.ProjectID,
		AuthorID:    issue.AuthorID,
		AssigneeID:  issue.AssigneeID,
		Title:       issue.Title,
		Description: issue.Description,
		Status:      string(issue.Status),
		Priority:    string(issue.Priority),
		Tag:         string(issue.Tag),
		CreatedAt:   issue.CreatedAt.Format(time.RFC3339),
	}
}

// List returns a project's issues.
//
// @Summary      List issues
// @Tags         issues
// @Produce      json
// @Security     BearerAuth
// @Param        project_id  path      int  true   "Project id"
// @Param        page        query     int  false  "Page number"
// @Param        page_size   query     int  false  "Page size"
// @Success      200  {object}  listResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/projects/{project_id}/issues/ [get]
func (h *IssueHandler) List(c echo.Context) error {
	callerID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	projectID, err := pathID(c, "project_id")
	if err != nil {
		return err
	}

	page := pageFromRequest(c)
	issues, total, err := h.issueService.List(c.Request().Context(), callerID, projectID, page)
	if err != nil {
		return err
	}

	results := make([]issueResponse, 0, len(issues))
	for i := range issues {
		results = append(results, newIssueResponse(&issues[i]))
	}
	return c.JSON(http.StatusOK, newListResponse(c, page, total, results))
}

// Create records a new issue authored by the caller.
//
// @Summary      Create an issue
// @Tags         issues
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        project_id  path      int                 true  "Project id"
// @Param        body        body      createIssueRequest  true  "Issue details"
// @Success      201  {object}  issueResponse
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/projects/{project_id}/issues/ [post]
func (h *IssueHandler) Create(c echo.Context) error {
	callerID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	projectID, err := pathID(c, "project_id")
	if err != nil {
		return err
	}

	var req createIssueRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	status := domain.IssueStatus(req.Status)
	if req.Status == "" {
		status = domain.StatusToDo
	}

	issue, err := h.issueService.Create(c.Request().Context(), callerID, projectID, ports.CreateIssueInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      status,
		Priority:    domain.IssuePriority(req.Priority),
		Tag:         domain.IssueTag(req.Tag),
		AssigneeID:  req.AssigneeID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newIssueResponse(issue))
}

// Get returns one issue.
//
// @Summary      Get an issue
// @Tags         issues
// @Produce      json
// @Security     BearerAuth
// @Param        project_id  path  int  true  "Project id"
// @Param        issue_id    path  int  true  "Issue id"
// @Success      200  {object}  issueResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/projects/{project_id}/issues/{issue_id}/ [get]
func (h *IssueHandler) Get(c echo.Context) error {
	callerID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	projectID, err := pathID(c, "project_id")
	if err != nil {
		return err
	}
	issueID, err := pathID(c, "issue_id")
	if err != nil {
		return err
	}

	issue, err := h.issueService.Get(c.Request().Context(), callerID, projectID, issueID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newIssueResponse(issue))
}

// Update modifies an issue. Only its author may do this.
//
// @Summary      Update an issue
// @Tags         issues
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        project_id  path      int                 true  "Project id"
// @Param        issue_id    path      int                 true  "Issue id"
// @Param        body        body      updateIssueRequest  true  "Fields to update"
// @Success      200  {object}  issueResponse
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/projects/{project_id}/issues/{issue_id}/ [patch]
func (h *IssueHandler) Update(c echo.Context) error {
	callerID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	projectID, err := pathID(c, "project_id")
	if err != nil {
		return err
	}
	issueID, err := pathID(c, "issue_id")
	if err != nil {
		return err
	}

	var req updateIssueRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if c.Request().Method == http.MethodPut && (req.Title == nil || req.Priority == nil || req.Tag == nil) {
		return echo.NewHTTPError(http.StatusBadRequest, "title, priority and tag are required")
	}

	input := ports.UpdateIssueInput{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		status := domain.IssueStatus(*req.Status)
		input.Status = &status
	}
	if req.Priority != nil {
		priority := domain.IssuePriority(*req.Priority)
		input.Priority = &priority
	}
	if req.Tag != nil {
		tag := domain.IssueTag(*req.Tag)
		input.Tag = &tag
	}
	if req.assigneeSet {
		if req.Assignee == nil {
			input.ClearAssignee = true
		} else {
			input.AssigneeID = req.Assignee
		}
	}

	issue, err := h.issueService.Update(c.Request().Context(), callerID, projectID, issueID, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newIssueResponse(issue))
}

// Delete removes an issue and its comments. Only its author may do this.
//
// @Summary      Delete an issue
// @Tags         issues
// @Security     BearerAuth
// @Param        project_id  path  int  true  "Project id"
// @Param        issue_id    path  int  true  "Issue id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/projects/{project_id}/issues/{issue_id}/ [delete]
func (h *IssueHandler) Delete(c echo.Context) error {
	callerID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	projectID, err := pathID(c, "project_id")
	if err != nil {
		return err
	}
	issueID, err := pathID(c, "issue_id")
	if err != nil {
		return err
	}

	if err := h.issueService.Delete(c.Request().Context(), callerID, projectID, issueID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
