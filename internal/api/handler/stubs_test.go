package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/openboard/tracker/internal/api/middleware"
	"github.com/openboard/tracker/internal/core/domain"
	"github.com/openboard/tracker/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Function-field stub services
// ---------------------------------------------------------------------------

type stubUserService struct {
	signupFn func(ctx context.Context, input ports.SignupInput) (*domain.User, error)
	getFn    func(ctx context.Context, userID int64) (*domain.User, error)
	listFn   func(ctx context.Context, page ports.Page) ([]domain.User, int64, error)
	updateFn func(ctx context.Context, callerID, userID int64, input ports.UpdateUserInput) (*domain.User, error)
	deleteFn func(ctx context.Context, callerID, userID int64) error
}

func (s *stubUserService) Signup(ctx context.Context, input ports.SignupInput) (*domain.User, error) {
	return s.signupFn(ctx, input)
}

func (s *stubUserService) Get(ctx context.Context, userID int64) (*domain.User, error) {
	return s.getFn(ctx, userID)
}

func (s *stubUserService) List(ctx context.Context, page ports.Page) ([]domain.User, int64, error) {
	return s.listFn(ctx, page)
}

func (s *stubUserService) Update(ctx context.Context, callerID, userID int64, input ports.UpdateUserInput) (*domain.User, error) {
	return s.updateFn(ctx, callerID, userID, input)
}

func (s *stubUserService) Delete(ctx context.Context, callerID, userID int64) error {
	return s.deleteFn(ctx, callerID, userID)
}

type stubProjectService struct {
	createFn func(ctx context.Context, callerID int64, input ports.CreateProjectInput) (*domain.Project, error)
	getFn    func(ctx context.Context, callerID, projectID int64) (*domain.Project, error)
	listFn   func(ctx context.Context, callerID int64, page ports.Page) ([]domain.Project, int64, error)
	updateFn func(ctx context.Context, callerID, projectID int64, input ports.UpdateProjectInput) (*domain.Project, error)
	deleteFn func(ctx context.Context, callerID, projectID int64) error
}

func (s *stubProjectService) Create(ctx context.Context, callerID int64, input ports.CreateProjectInput) (*domain.Project, error) {
	return s.createFn(ctx, callerID, input)
}

func (s *stubProjectService) Get(ctx context.Context, callerID, projectID int64) (*domain.Project, error) {
	return s.getFn(ctx, callerID, projectID)
}

func (s *stubProjectService) List(ctx context.Context, callerID int64, page ports.Page) ([]domain.Project, int64, error) {
	return s.listFn(ctx, callerID, page)
}

func (s *stubProjectService) Update(ctx context.Context, callerID, projectID int64, input ports.UpdateProjectInput) (*domain.Project, error) {
	return s.updateFn(ctx, callerID, projectID, input)
}

func (s *stubProjectService) Delete(ctx context.Context, callerID, projectID int64) error {
	return s.deleteFn(ctx, callerID, projectID)
}

type stubIssueService struct {
	listFn   func(ctx context.Context, callerID, projectID int64, page ports.Page) ([]domain.Issue, int64, error)
	createFn func(ctx context.Context, callerID, projectID int64, input ports.CreateIssueInput) (*domain.Issue, error)
	getFn    func(ctx context.Context, callerID, projectID, issueID int64) (*domain.Issue, error)
	updateFn func(ctx context.Context, callerID, projectID, issueID int64, input ports.UpdateIssueInput) (*domain.Issue, error)
	deleteFn func(ctx context.Context, callerID, projectID, issueID int64) error
}

func (s *stubIssueService) List(ctx context.Context, callerID, projectID int64, page ports.Page) ([]domain.Issue, int64, error) {
	return s.listFn(ctx, callerID, projectID, page)
}

func (s *stubIssueService) Create(ctx context.Context, callerID, projectID int64, input ports.CreateIssueInput) (*domain.Issue, error) {
	return s.createFn(ctx, callerID, projectID, input)
}

func (s *stubIssueService) Get(ctx context.Context, callerID, projectID, issueID int64) (*domain.Issue, error) {
	return s.getFn(ctx, callerID, projectID, issueID)
}

func (s *stubIssueService) Update(ctx context.Context, callerID, projectID, issueID int64, input ports.UpdateIssueInput) (*domain.Issue, error) {
	return s.updateFn(ctx, callerID, projectID, issueID, input)
}

func (s *stubIssueService) Delete(ctx context.Context, callerID, projectID, issueID int64) error {
	return s.deleteFn(ctx, callerID, projectID, issueID)
}

type stubCommentService struct {
	listFn   func(ctx context.Context, callerID, projectID, issueID int64, page ports.Page) ([]domain.Comment, int64, error)
	createFn func(ctx context.Context, callerID, projectID, issueID int64, description string) (*domain.Comment, error)
	getFn    func(ctx context.Context, callerID, projectID, issueID int64, commentID uuid.UUID) (*domain.Comment, error)
	updateFn func(ctx context.Context, callerID, projectID, issueID int64, commentID uuid.UUID, description string) (*domain.Comment, error)
	deleteFn func(ctx context.Context, callerID, projectID, issueID int64, commentID uuid.UUID) error
}

func (s *stubCommentService) List(ctx context.Context, callerID, projectID, issueID int64, page ports.Page) ([]domain.Comment, int64, error) {
	return s.listFn(ctx, callerID, projectID, issueID, page)
}

func (s *stubCommentService) Create(ctx context.Context, callerID, projectID, issueID int64, description string) (*domain.Comment, error) {
	return s.createFn(ctx, callerID, projectID, issueID, description)
}

func (s *stubCommentService) Get(ctx context.Context, callerID, projectID, issueID int64, commentID uuid.UUID) (*domain.Comment, error) {
	return s.getFn(ctx, callerID, projectID, issueID, commentID)
}

func (s *stubCommentService) Update(ctx context.Context, callerID, projectID, issueID int64, commentID uuid.UUID, description string) (*domain.Comment, error) {
	return s.updateFn(ctx, callerID, projectID, issueID, commentID, description)
}

func (s *stubCommentService) Delete(ctx context.Context, callerID, projectID, issueID int64, commentID uuid.UUID) error {
	return s.deleteFn(ctx, callerID, projectID, issueID, commentID)
}

// ---------------------------------------------------------------------------
// Request helpers
// ---------------------------------------------------------------------------

// newTestContext builds an echo context with the validator installed, a JSON
// body, and optionally the authenticated user id the Auth middleware would
// have injected.
func newTestContext(method, target, body string, callerID int64) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if callerID != 0 {
		c.Set(middleware.UserIDKey, callerID)
	}
	return c, rec
}

func setPathParams(c echo.Context, params map[string]string) {
	names := make([]string, 0, len(params))
	values := make([]string, 0, len(params))
	for name, value := range params {
		names = append(names, name)
		values = append(values, value)
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
}

// wantHTTPStatus asserts that err is an *echo.HTTPError with the given code.
func wantHTTPStatus(t *testing.T, err error, code int) {
	t.Helper()
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	if he.Code != code {
		t.Fatalf("expected status %d, got %d (%v)", code, he.Code, he.Message)
	}
}
