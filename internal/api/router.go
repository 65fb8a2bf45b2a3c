package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/jobtracker/tracker-web/internal/api/handler"
	"github.com/jobtracker/tracker-web/internal/api/metrics"
	"github.com/jobtracker/tracker-web/internal/api/middleware"
	"github.com/jobtracker/tracker-web/internal/core/domain"
	"github.com/jobtracker/tracker-web/internal/core/ports"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Service      ports.TrackerService
	Renderer     echo.Renderer
	UpdateStatus domain.JobStatus
	Checkers     []handler.Checker
	Log          zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = d.Renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(metrics.Middleware())

	ui := handler.NewUIHandler(d.Service, d.UpdateStatus, d.Log)
	e.GET("/", ui.Page)

	// --- Page actions: each runs one operation and redirects to / ---
	actions := e.Group("/actions", middleware.SameOrigin())
	actions.POST("/ping", ui.Ping)
	actions.POST("/register", ui.Register)
	actions.POST("/login", ui.Login)
	actions.POST("/logout", ui.Logout)
	actions.POST("/profile", ui.Profile)
	actions.POST("/jobs", ui.AddJob)
	actions.POST("/jobs/list", ui.GetJobs)
	actions.POST("/jobs/search", ui.SearchJobs)
	actions.POST("/jobs/:id/status", ui.UpdateJob)
	actions.POST("/jobs/:id/delete", ui.DeleteJob)

	// --- Probes and metrics ---
	health := handler.NewHealthHandler(d.Checkers...)
	e.GET("/health", health.Liveness)
	e.GET("/health/ready", health.Readiness)
	e.GET("/metrics", metrics.Handler())

	return e
}
