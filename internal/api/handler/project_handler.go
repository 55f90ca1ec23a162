package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/openboard/tracker/internal/core/domain"
	"github.com/openboard/tracker/internal/core/ports"
)

// ProjectHandler serves project CRUD. Every route requires authentication;
// visibility is limited to projects the caller contributes to.
type ProjectHandler struct {
	projectService ports.ProjectService
}

func NewProjectHandler(projectService ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

type createProjectRequest struct {
	Name        string `json:"name"         validate:"required,max=255"`
	Description string `json:"description"`
	Type        string `json:"project_type" validate:"required,oneof=back-end front-end ios android"`
}

type updateProjectRequest struct {
	Name        *string `json:"name"         validate:"omitempty,max=255"`
	Description *string `json:"description"`
	Type        *string `json:"project_type" validate:"omitempty,oneof=back-end front-end ios android"`
}

type projectResponse struct {
	ID          int64  `json:"id"`
	AuthorID    int64  `json:"author"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"project_type"`
	CreatedAt   string `json:"created_time"`
}

func newProjectResponse(p *domain.Project) projectResponse {
	return projectResponse{
		ID:          p.ID,
		AuthorID:    p.AuthorID,
		Name:        p.Name,
		Description: p.Description,
		Type:        string(p.Type),
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
}

// List returns the projects the caller contributes to.
//
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        page       query     int  false  "Page number"
// @Param        page_size  query     int  false  "Page size"
// @Success      200  {object}  listResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/projects/ [get]
func (h *ProjectHandler) List(c echo.Context) error {
	callerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	page := pageFromRequest(c)
	projects, total, err := h.projectService.List(c.Request().Context(), callerID, page)
	if err != nil {
		return err
	}

	results := make([]projectResponse, 0, len(projects))
	for i := range projects {
		results = append(results, newProjectResponse(&projects[i]))
	}
	return c.JSON(http.StatusOK, newListResponse(c, page, total, results))
}

// Create records a new project with the caller as author and first
// contributor.
//
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProjectRequest  true  "Project details"
// @Success      201   {object}  projectResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/projects/ [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	callerID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	project, err := h.projectService.Create(c.Request().Context(), callerID, ports.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Type:        domain.ProjectType(req.Type),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newProjectResponse(project))
}

// Get returns one project the caller contributes to.
//
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        project_id  path  int  true  "Project id"
// @Success      200  {object}  projectResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/projects/{project_id}/ [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	callerID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	projectID, err := pathID(c, "project_id")
	if err != nil {
		return err
	}

	project, err := h.projectService.Get(c.Request().Context(), callerID, projectID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newProjectResponse(project))
}

// Update modifies a project. Only the author may do this.
//
// @Summary      Update a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        project_id  path      int                   true  "Project id"
// @Param        body        body      updateProjectRequest  true  "Fields to update"
// @Success      200  {object}  projectResponse
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/projects/{project_id}/ [patch]
func (h *ProjectHandler) Update(c echo.Context) error {
	callerID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	projectID, err := pathID(c, "project_id")
	if err != nil {
		return err
	}

	var req updateProjectRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if c.Request().Method == http.MethodPut && (req.Name == nil || req.Type == nil) {
		return echo.NewHTTPError(http.StatusBadRequest, "name and project_type are required")
	}

	input := ports.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
	}
	if req.Type != nil {
		projectType := domain.ProjectType(*req.Type)
		input.Type = &projectType
	}

	project, err := h.projectService.Update(c.Request().Context(), callerID, projectID, input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newProjectResponse(project))
}

// Delete removes a project and everything beneath it. Only the author may
// do this.
//
// @Summary      Delete a project
// @Tags         projects
// @Security     BearerAuth
// @Param        project_id  path  int  true  "Project id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/projects/{project_id}/ [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	callerID, err := ctxUserID(c)
	if err != nil {
		return err
	}
	projectID, err := pathID(c, "project_id")
	if err != nil {
		return err
	}

	if err := h.projectService.Delete(c.Request().Context(), callerID, projectID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
