package fakeapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/jobtracker/tracker-web/internal/core/domain"
)

type credentialsRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type jobRequest struct {
	Company string `json:"company" validate:"required"`
	Role    string `json:"role" validate:"required"`
	Status  string `json:"status" validate:"required"`
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

type profileResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

type jobsResponse struct {
	Jobs []domain.Job `json:"jobs"`
}

// bindValid binds and validates the JSON body. A bad payload answers 400.
func bindValid(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	return true, nil
}

func (s *Server) register(c echo.Context) error {
	var req credentialsRequest
	if ok, err := bindValid(c, &req); !ok {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	if err != nil {
		return err
	}
	if _, err := s.users.create(req.Email, hash); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "User registered successfully"})
}

func (s *Server) login(c echo.Context) error {
	var req credentialsRequest
	if ok, err := bindValid(c, &req); !ok {
		return err
	}

	u, found := s.users.findByEmail(req.Email)
	if !found || bcrypt.CompareHashAndPassword(u.passwordHash, []byte(req.Password)) != nil {
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: errInvalidCredentials.Error()})
	}

	token, err := s.signToken(strconv.FormatInt(u.id, 10))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loginResponse{AccessToken: token})
}

// signToken issues an HS256 token whose subject is the user id.
func (s *Server) signToken(subject string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  subject,
		"type": "access",
		"iat":  now.Unix(),
		"exp":  now.Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.secret))
}

func (s *Server) profile(c echo.Context) error {
	id := userID(c)
	return c.JSON(http.StatusOK, profileResponse{
		Message: "Welcome user " + id + "!",
		UserID:  id,
	})
}

func (s *Server) addJob(c echo.Context) error {
	var req jobRequest
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	s.jobs.add(userID(c), domain.NewJob{
		Company: req.Company,
		Role:    req.Role,
		Status:  domain.JobStatus(req.Status),
	})
	return c.JSON(http.StatusOK, messageResponse{Message: "Job added successfully"})
}

func (s *Server) listJobs(c echo.Context) error {
	return c.JSON(http.StatusOK, jobsResponse{Jobs: s.jobs.list(userID(c), nil)})
}

func (s *Server) searchJobs(c echo.Context) error {
	status := domain.JobStatus(c.QueryParam("status"))
	return c.JSON(http.StatusOK, s.jobs.list(userID(c), &status))
}

func (s *Server) updateJob(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "not found"})
	}
	var req statusRequest
	if ok, err := bindValid(c, &req); !ok {
		return err
	}
	s.jobs.setStatus(userID(c), id, domain.JobStatus(req.Status))
	return c.JSON(http.StatusOK, messageResponse{Message: "Job updated successfully"})
}

func (s *Server) deleteJob(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusNotFound, errorResponse{Error: "not found"})
	}
	s.jobs.remove(userID(c), id)
	return c.JSON(http.StatusOK, messageResponse{Message: "Job deleted successfully"})
}
