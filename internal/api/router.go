package api

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"

	_ "github.com/openboard/tracker/docs"
	"github.com/openboard/tracker/internal/api/handler"
	"github.com/openboard/tracker/internal/api/middleware"
	"github.com/openboard/tracker/internal/core/service"
	"github.com/openboard/tracker/internal/infrastructure/config"
	"github.com/openboard/tracker/internal/infrastructure/db/postgres"
	redisstore "github.com/openboard/tracker/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, pool *pgxpool.Pool, rdb *redis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("tracker"))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(pool)
	projectRepo := postgres.NewProjectRepository(pool)
	contributorRepo := postgres.NewContributorRepository(pool)
	issueRepo := postgres.NewIssueRepository(pool)
	commentRepo := postgres.NewCommentRepository(pool)
	tokenStore := redisstore.NewTokenStore(rdb)

	authService := service.NewAuthService(userRepo, tokenStore, cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, log)
	userService := service.NewUserService(userRepo, log)
	projectService := service.NewProjectService(projectRepo, contributorRepo, log)
	contributorService := service.NewContributorService(projectRepo, contributorRepo, userRepo, log)
	issueService := service.NewIssueService(projectRepo, contributorRepo, issueRepo, log)
	commentService := service.NewCommentService(projectRepo, contributorRepo, issueRepo, commentRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	projectHandler := handler.NewProjectHandler(projectService)
	contributorHandler := handler.NewContributorHandler(contributorService)
	issueHandler := handler.NewIssueHandler(issueService)
	commentHandler := handler.NewCommentHandler(commentService)
	choicesHandler := handler.NewChoicesHandler()

	// --- Health probes and operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(pool, rdb)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Public API routes ---
	public := e.Group("/api")
	public.POST("/users/", userHandler.Signup)
	public.POST("/token/", authHandler.Token)
	public.POST("/token/refresh/", authHandler.Refresh)

	// --- Authenticated API routes ---
	authed := e.Group("/api", middleware.Auth(cfg.JWTSecret))

	authed.GET("/users/", userHandler.List)
	authed.GET("/users/:user_id/", userHandler.Get)
	authed.PUT("/users/:user_id/", userHandler.Update)
	authed.PATCH("/users/:user_id/", userHandler.Update)
	authed.DELETE("/users/:user_id/", userHandler.Delete)

	authed.GET("/projects/", projectHandler.List)
	authed.POST("/projects/", projectHandler.Create)
	authed.GET("/projects/:project_id/", projectHandler.Get)
	authed.PUT("/projects/:project_id/", projectHandler.Update)
	authed.PATCH("/projects/:project_id/", projectHandler.Update)
	authed.DELETE("/projects/:project_id/", projectHandler.Delete)

	authed.GET("/projects/:project_id/contributors/", contributorHandler.List)
	authed.POST("/projects/:project_id/contributors/", contributorHandler.Add)
	authed.DELETE("/projects/:project_id/contributors/:contributor_id/", contributorHandler.Remove)

	authed.GET("/projects/:project_id/issues/", issueHandler.List)
	authed.POST("/projects/:project_id/issues/", issueHandler.Create)
	authed.GET("/projects/:project_id/issues/:issue_id/", issueHandler.Get)
	authed.PUT("/projects/:project_id/issues/:issue_id/", issueHandler.Update)
	authed.PATCH("/projects/:project_id/issues/:issue_id/", issueHandler.Update)
	authed.DELETE("/projects/:project_id/issues/:issue_id/", issueHandler.Delete)

	authed.GET("/projects/:project_id/issues/:issue_id/comments/", commentHandler.List)
	authed.POST("/projects/:project_id/issues/:issue_id/comments/", commentHandler.Create)
	authed.GET("/projects/:project_id/issues/:issue_id/comments/:comment_id/", commentHandler.Get)
	authed.PUT("/projects/:project_id/issues/:issue_id/comments/:comment_id/", commentHandler.Update)
	authed.PATCH("/projects/:project_id/issues/:issue_id/comments/:comment_id/", commentHandler.Update)
	authed.DELETE("/projects/:project_id/issues/:issue_id/comments/:comment_id/", commentHandler.Delete)

	// The choices endpoints are strictly read-only; writes get an explicit
	// 405 instead of echo's default 404 for unregistered method/path pairs.
	authed.GET("/choices/issues/", choicesHandler.IssueChoices)
	authed.GET("/choices/projects/", choicesHandler.ProjectChoices)
	for _, register := range []func(string, echo.HandlerFunc, ...echo.MiddlewareFunc) *echo.Route{
		authed.POST, authed.PUT, authed.PATCH, authed.DELETE,
	} {
		register("/choices/issues/", handler.MethodNotAllowed)
		register("/choices/projects/", handler.MethodNotAllowed)
	}

	return e
}
