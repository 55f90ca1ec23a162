package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/openboard/tracker/internal/core/domain"
	"github.com/openboard/tracker/internal/core/ports"
)

// ContributorHandler serves project membership management.
type ContributorHandler struct {
	contributorService ports.ContributorService
}

func NewContributorHandler(contributorService ports.ContributorService) *ContributorHandler {
	return &ContributorHandler{contributorService: contributorService}
}

type addContributorRequest struct {
	UserID int64 `json:"user" validate:"required,min=1"`
}

type contributorResponse struct {
	ID        int64  `json:"id"`
	ProjectID int64  `json:"project"`
	UserID    int64  `json:"user"`
	CreatedAt string `json:"created_time"`
}

func newContributorResponse(contrib *domain.Contributor) contributorResponse {
	return contributorResponse{
		ID:        contrib.ID,
		ProjectID: contrib.ProjectID,
		UserID:    contrib.UserID,
		CreatedAt: contrib.CreatedAt.Format(time.RFC3339),
	}
}

// List returns a project's contributors.
//
// @Summary      List contributors
// @Tags         contributors
// @Produce      json
// @Security     BearerAuth
// @Param        project_id  path      int  true   "Project id"
// @Param        page        query     int  false  "Page number"
// @Param        page_size   query     int  false  "Page size"
// @Success      200  {object}  listResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/projects/{project_id}/contributors/ [get]
func (h *ContributorHandler) List(c echo.Context) error {
	callerID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	projectID, err := pathID(c, "project_id")
	if err != nil {
		return err
	}

	page := pageFromRequest(c)
	contributors, total, err := h.contributorService.List(c.Request().Context(), callerID, projectID, page)
	if err != nil {
		return err
	}

	results := make([]contributorResponse, 0, len(contributors))
	for i := range contributors {
		results = append(results, newContributorResponse(&contributors[i]))
	}
	return c.JSON(http.StatusOK, newListResponse(c, page, total, results))
}

// Add registers an existing user as contributor. Only the project author
// may do this.
//
// @Summary      Add a contributor
// @Tags         contributors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        project_id  path      int                    true  "Project id"
// @Param        body        body      addContributorRequest  true  "User to add"
// @Success      201  {object}  contributorResponse
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /api/projects/{project_id}/contributors/ [post]
func (h *ContributorHandler) Add(c echo.Context) error {
	callerID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	projectID, err := pathID(c, "project_id")
	if err != nil {
		return err
	}

	var req addContributorRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	contributor, err := h.contributorService.Add(c.Request().Context(), callerID, projectID, req.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newContributorResponse(contributor))
}

// Remove drops a contributor from the project. Only the project author may
// do this, and the author's own membership cannot be removed.
//
// @Summary      Remove a contributor
// @Tags         contributors
// @Security     BearerAuth
// @Param        project_id      path  int  true  "Project id"
// @Param        contributor_id  path  int  true  "Contributor id"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/projects/{project_id}/contributors/{contributor_id}/ [delete]
func (h *ContributorHandler) Remove(c echo.Context) error {
	callerID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	projectID, err := pathID(c, "project_id")
	if err != nil {
		return err
	}
	contributorID, err := pathID(c, "contributor_id")
	if err != nil {
		return err
	}

	if err := h.contributorService.Remove(c.Request().Context(), callerID, projectID, contributorID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
