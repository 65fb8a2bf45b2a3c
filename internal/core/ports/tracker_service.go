package ports

import (
	"context"

	"github.com/jobtracker/tracker-web/internal/core/domain"
)

// FormInput carries the page inputs submitted with an action. Nil fields were
// not part of the submitted form and leave the current value alone.
type FormInput struct {
	Email        *string
	Password     *string
	Company      *string
	Role         *string
	StatusFilter *string
}

// ViewState is a copy of everything the page renders.
type ViewState struct {
	Credentials  domain.Credentials
	Draft        domain.JobDraft
	StatusFilter string
	Jobs         []domain.Job
	Message      string
	Error        string
	Session      *domain.Session
}

// TrackerService is the page's state container and its user-triggered operations.
type TrackerService interface {
	UpdateForm(in FormInput)
	Snapshot(ctx context.Context) ViewState

	// Ping and the unchecked job mutations return the request error instead
	// of showing it on the page.
	Ping(ctx context.Context) error
	Register(ctx context.Context)
	Login(ctx context.Context)
	Logout(ctx context.Context)
	Profile(ctx context.Context)
	AddJob(ctx context.Context)
	GetJobs(ctx context.Context)
	SearchJobs(ctx context.Context)
	UpdateJob(ctx context.Context, id int64, status domain.JobStatus) error
	DeleteJob(ctx context.Context, id int64) error
}
