package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openboard/tracker/internal/core/domain"
)

// ChoicesHandler serves the read-only enumeration endpoints clients use to
// populate dropdowns. The payloads are static.
type ChoicesHandler struct{}

func NewChoicesHandler() *ChoicesHandler {
	return &ChoicesHandler{}
}

type issueChoicesResponse struct {
	Statuses   []domain.Choice `json:"statuses"`
	Priorities []domain.Choice `json:"priorities"`
	Tags       []domain.Choice `json:"tags"`
}

type projectChoicesResponse struct {
	Types []domain.Choice `json:"types"`
}

// IssueChoices lists the valid issue status, priority and tag values.
//
// @Summary      Issue field choices
// @Tags         choices
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  issueChoicesResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/choices/issues/ [get]
func (h *ChoicesHandler) IssueChoices(c echo.Context) error {
	return c.JSON(http.StatusOK, issueChoicesResponse{
		Statuses:   domain.IssueStatuses,
		Priorities: domain.IssuePriorities,
		Tags:       domain.IssueTags,
	})
}

// ProjectChoices lists the valid project type values.
//
// @Summary      Project field choices
// @Tags         choices
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  projectChoicesResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/choices/projects/ [get]
func (h *ChoicesHandler) ProjectChoices(c echo.Context) error {
	return c.JSON(http.StatusOK, projectChoicesResponse{Types: domain.ProjectTypes})
}

// MethodNotAllowed rejects writes against the read-only choice endpoints.
func MethodNotAllowed(c echo.Context) error {
	return echo.NewHTTPError(http.StatusMethodNotAllowed, "method not allowed")
}
