// Package fakeapi is an in-memory stand-in for the Job Tracker REST API.
//
// It answers the same routes with the same body shapes as the real backend
// (including the 401 {"msg": ...} envelope of its JWT layer) so the client can
// be exercised over real HTTP in tests. It is not meant to be deployed.
package fakeapi

import (
	"bytes"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/jobtracker/tracker-web/internal/api/handler"
)

// RootBody is the text served on GET /.
const RootBody = "Job Tracker API running!"

// RecordedRequest is a request as the fake received it.
type RecordedRequest struct {
	Method        string
	Path          string
	Query         string
	Authorization string
	ContentType   string
	Body          []byte
}

// Server is the fake backend.
type Server struct {
	e        *echo.Echo
	users    *userStore
	jobs     *jobStore
	secret   string
	tokenTTL time.Duration

	mu       sync.Mutex
	requests []RecordedRequest
}

// New builds a fake backend signing tokens with secret.
func New(secret string) *Server {
	s := &Server{
		e:        echo.New(),
		users:    newUserStore(),
		jobs:     newJobStore(),
		secret:   secret,
		tokenTTL: 15 * time.Minute,
	}
	s.e.HideBanner = true
	s.e.Validator = handler.NewValidator()
	s.e.Use(echomiddleware.Recover())
	s.e.Use(s.record)
	s.routes()
	return s
}

func (s *Server) routes() {
	s.e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, RootBody)
	})
	s.e.POST("/register", s.register)
	s.e.POST("/login", s.login)

	auth := s.e.Group("", jwtRequired(s.secret))
	auth.GET("/profile", s.profile)
	auth.POST("/jobs", s.addJob)
	auth.GET("/jobs", s.listJobs)
	auth.GET("/jobs/search", s.searchJobs)
	auth.PUT("/jobs/:id", s.updateJob)
	auth.DELETE("/jobs/:id", s.deleteJob)
}

// ServeHTTP makes the fake usable with httptest.NewServer.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.e.ServeHTTP(w, r)
}

// Requests returns every request received so far, oldest first.
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest returns the most recent request, or the zero value.
func (s *Server) LastRequest() RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return RecordedRequest{}
	}
	return s.requests[len(s.requests)-1]
}

func (s *Server) record(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()
		var body []byte
		if req.Body != nil {
			body, _ = io.ReadAll(req.Body)
			req.Body = io.NopCloser(bytes.NewReader(body))
		}

		s.mu.Lock()
		s.requests = append(s.requests, RecordedRequest{
			Method:        req.Method,
			Path:          req.URL.Path,
			Query:         req.URL.RawQuery,
			Authorization: req.Header.Get(echo.HeaderAuthorization),
			ContentType:   req.Header.Get(echo.HeaderContentType),
			Body:          body,
		})
		s.mu.Unlock()

		return next(c)
	}
}
