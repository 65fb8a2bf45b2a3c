package ports

import (
	"context"

	"github.com/jobtracker/tracker-web/internal/core/domain"
)

// MessageResponse is the body shape of /register, POST /jobs and /profile.
// Message is empty when the server did not send one.
type MessageResponse struct {
	Message string `json:"message"`
}

// LoginResponse is the body shape of /login.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

// ProfileResponse is the body shape of /profile.
type ProfileResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

// TrackerAPI is the remote Job Tracker REST API.
//
// Implementations report transport and JSON decode failures as errors and
// never turn an HTTP status code into an error, except for the unchecked
// UpdateJobStatus and DeleteJob calls, whose body is ignored.
// An empty token means the request is sent without an Authorization header.
type TrackerAPI interface {
	Ping(ctx context.Context) (string, error)
	Register(ctx context.Context, creds domain.Credentials) (MessageResponse, error)
	Login(ctx context.Context, creds domain.Credentials) (LoginResponse, error)
	Profile(ctx context.Context, token string) (ProfileResponse, error)
	CreateJob(ctx context.Context, token string, job domain.NewJob) (MessageResponse, error)
	ListJobs(ctx context.Context, token string) ([]domain.Job, error)
	SearchJobs(ctx context.Context, token string, status domain.JobStatus) ([]domain.Job, error)
	UpdateJobStatus(ctx context.Context, token string, id int64, status domain.JobStatus) error
	DeleteJob(ctx context.Context, token string, id int64) error
}
