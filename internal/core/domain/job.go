package domain

import "errors"

// JobStatus is the application stage of a job. The set of values is owned by
// the backend; only the two below are ever produced by this client.
type JobStatus string

const (
	StatusApplied   JobStatus = "Applied"
	StatusInterview JobStatus = "Interview"
)

var (
	ErrNoToken           = errors.New("no bearer token stored")
	ErrInvalidJobID      = errors.New("invalid job id")
	ErrUnexpectedPayload = errors.New("unexpected response payload")
)

// Job is a server-owned job record as listed by GET /jobs.
type Job struct {
	ID      int64     `json:"id"`
	Company string    `json:"company"`
	Role    string    `json:"role"`
	Status  JobStatus `json:"status"`
}

// JobDraft holds the company/role inputs used by Add-Job.
type JobDraft struct {
	Company string
	Role    string
}

// NewJob is the payload of a job creation request.
type NewJob struct {
	Company string    `json:"company"`
	Role    string    `json:"role"`
	Status  JobStatus `json:"status"`
}

// NewJobFromDraft builds the creation payload. New jobs always start as Applied.
func NewJobFromDraft(d JobDraft) NewJob {
	return NewJob{
		Company: d.Company,
		Role:    d.Role,
		Status:  StatusApplied,
	}
}
