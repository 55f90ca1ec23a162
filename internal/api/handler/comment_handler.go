package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/openboard/tracker/internal/core/domain"
	"github.com/openboard/tracker/internal/core/ports"
)

// CommentHandler serves comment CRUD inside an issue. Comments are
// addressed by opaque UUIDs rather than sequential ids.
type CommentHandler struct {
	commentService ports.CommentService
}

func NewCommentHandler(commentService ports.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

type commentRequest struct {
	Description string `json:"description" validate:"required"`
}

type commentResponse struct {
	ID          string `json:"uuid"`
	IssueID     int64  `json:"issue"`
	AuthorID    int64  `json:"author"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_time"`
}

func newCommentResponse(comment *domain.Comment) commentResponse {
	return commentResponse{
		ID:          comment.ID.String(),
		IssueID:     comment.IssueID,
		AuthorID:    comment.AuthorID,
		Description: comment.Description,
		CreatedAt:   comment.CreatedAt.Format(time.RFC3339),
	}
}

// commentID parses the comment_id path parameter. A malformed UUID cannot
// address any comment, so it reads as not found.
func commentID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("comment_id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusNotFound, "comment not found")
	}
	return id, nil
}

// List returns an issue's comments.
//
// @Summary      List comments
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        project_id  path      int  true   "Project id"
// @Param        issue_id    path      int  true   "Issue id"
// @Param        page        query     int  false  "Page number"
// @Param        page_size   query     int  false  "Page size"
// @Success      200  {object}  listResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/projects/{project_id}/issues/{issue_id}/comments/ [get]
func (h *CommentHandler) List(c echo.Context) error {
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

	page := pageFromRequest(c)
	comments, total, err := h.commentService.List(c.Request().Context(), callerID, projectID, issueID, page)
	if err != nil {
		return err
	}

	results := make([]commentResponse, 0, len(comments))
	for i := range comments {
		results = append(results, newCommentResponse(&comments[i]))
	}
	return c.JSON(http.StatusOK, newListResponse(c, page, total, results))
}

// Create records a new comment authored by the caller.
//
// @Summary      Create a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        project_id  path      int             true  "Project id"
// @Param        issue_id    path      int             true  "Issue id"
// @Param        body        body      commentRequest  true  "Comment body"
// @Success      201  {object}  commentResponse
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/projects/{project_id}/issues/{issue_id}/comments/ [post]
func (h *CommentHandler) Create(c echo.Context) error {
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

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.commentService.Create(c.Request().Context(), callerID, projectID, issueID, req.Description)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, newCommentResponse(comment))
}

// Get returns one comment.
//
// @Summary      Get a comment
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        project_id  path  int     true  "Project id"
// @Param        issue_id    path  int     true  "Issue id"
// @Param        comment_id  path  string  true  "Comment UUID"
// @Success      200  {object}  commentResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/projects/{project_id}/issues/{issue_id}/comments/{comment_id}/ [get]
func (h *CommentHandler) Get(c echo.Context) error {
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
	id, err := commentID(c)
	if err != nil {
		return err
	}

	comment, err := h.commentService.Get(c.Request().Context(), callerID, projectID, issueID, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newCommentResponse(comment))
}

// Update replaces a comment's body. Only its author may do this.
//
// @Summary      Update a comment
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        project_id  path      int             true  "Project id"
// @Param        issue_id    path      int             true  "Issue id"
// @Param        comment_id  path      string          true  "Comment UUID"
// @Param        body        body      commentRequest  true  "Comment body"
// @Success      200  {object}  commentResponse
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/projects/{project_id}/issues/{issue_id}/comments/{comment_id}/ [patch]
func (h *CommentHandler) Update(c echo.Context) error {
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
	id, err := commentID(c)
	if err != nil {
		return err
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	comment, err := h.commentService.Update(c.Request().Context(), callerID, projectID, issueID, id, req.Description)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newCommentResponse(comment))
}

// Delete removes a comment. Only its author may do this.
//
// @Summary      Delete a comment
// @Tags         comments
// @Security     BearerAuth
// @Param        project_id  path  int     true  "Project id"
// @Param        issue_id    path  int     true  "Issue id"
// @Param        comment_id  path  string  true  "Comment UUID"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/projects/{project_id}/issues/{issue_id}/comments/{comment_id}/ [delete]
func (h *CommentHandler) Delete(c echo.Context) error {
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
	id, err := commentID(c)
	if err != nil {
		return err
	}

	if err := h.commentService.Delete(c.Request().Context(), callerID, projectID, issueID, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
