package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/jobtracker/tracker-web/internal/core/domain"
	"github.com/jobtracker/tracker-web/internal/core/ports"
)

// OutcomeRecorder receives one observation per finished operation.
type OutcomeRecorder interface {
	Observe(operation, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) Observe(string, string) {}

// Operation outcomes reported to the OutcomeRecorder.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeGuarded = "guarded"
)

// TrackerService is the view-scoped state container behind the page.
//
// The mutex only protects the fields; it is never held across a call to the
// API, so overlapping operations both run to completion and the last one to
// finish wins.
type TrackerService struct {
	api           ports.TrackerAPI
	tokens        ports.TokenStore
	defaultStatus domain.JobStatus
	recorder      OutcomeRecorder
	log           zerolog.Logger

	mu           sync.Mutex
	creds        domain.Credentials
	draft        domain.JobDraft
	statusFilter string
	jobs         []domain.Job
	message      string
	errMsg       string
}

// Option customises a TrackerService.
type Option func(*TrackerService)

// WithDefaultStatus sets the status UpdateJob applies when none is given.
func WithDefaultStatus(status domain.JobStatus) Option {
	return func(s *TrackerService) {
		if status != "" {
			s.defaultStatus = status
		}
	}
}

// WithRecorder reports operation outcomes, typically to Prometheus.
func WithRecorder(r OutcomeRecorder) Option {
	return func(s *TrackerService) {
		if r != nil {
			s.recorder = r
		}
	}
}

func NewTrackerService(api ports.TrackerAPI, tokens ports.TokenStore, log zerolog.Logger, opts ...Option) *TrackerService {
	s := &TrackerService{
		api:           api,
		tokens:        tokens,
		defaultStatus: domain.StatusInterview,
		recorder:      nopRecorder{},
		log:           log,
		jobs:          []domain.Job{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// UpdateForm copies the submitted inputs into the state.
func (s *TrackerService) UpdateForm(in ports.FormInput) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if in.Email != nil {
		s.creds.Email = *in.Email
	}
	if in.Password != nil {
		s.creds.Password = *in.Password
	}
	if in.Company != nil {
		s.draft.Company = *in.Company
	}
	if in.Role != nil {
		s.draft.Role = *in.Role
	}
	if in.StatusFilter != nil {
		s.statusFilter = *in.StatusFilter
	}
}

// Snapshot returns a copy of the current state for rendering.
func (s *TrackerService) Snapshot(ctx context.Context) ports.ViewState {
	var session *domain.Session
	if token := s.token(ctx); token != "" {
		session = DecodeSession(token)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	jobs := make([]domain.Job, len(s.jobs))
	copy(jobs, s.jobs)

	return ports.ViewState{
		Credentials:  s.creds,
		Draft:        s.draft,
		StatusFilter: s.statusFilter,
		Jobs:         jobs,
		Message:      s.message,
		Error:        s.errMsg,
		Session:      session,
	}
}

// Ping shows the raw body of the service root. A failed request is returned
// to the caller and leaves the page untouched.
func (s *TrackerService) Ping(ctx context.Context) error {
	body, err := s.api.Ping(ctx)
	if err != nil {
		s.recorder.Observe("ping", OutcomeFailure)
		return fmt.Errorf("ping: %w", err)
	}
	s.showMessage(body)
	s.recorder.Observe("ping", OutcomeSuccess)
	return nil
}

func (s *TrackerService) Register(ctx context.Context) {
	resp, err := s.api.Register(ctx, s.credentials())
	if err != nil {
		s.log.Warn().Err(err).Msg("register failed")
		s.showError(domain.ErrMsgRegister)
		s.recorder.Observe("register", OutcomeFailure)
		return
	}
	s.showMessage(orDefault(resp.Message, domain.MsgRegistered))
	s.recorder.Observe("register", OutcomeSuccess)
}

// Login stores the token only when the response carries one, whatever the
// HTTP status was.
func (s *TrackerService) Login(ctx context.Context) {
	resp, err := s.api.Login(ctx, s.credentials())
	if err != nil {
		s.log.Warn().Err(err).Msg("login request failed")
		s.showError(domain.ErrMsgLoginError)
		s.recorder.Observe("login", OutcomeFailure)
		return
	}
	if resp.AccessToken == "" {
		s.showError(domain.ErrMsgLogin)
		s.recorder.Observe("login", OutcomeFailure)
		return
	}
	if err := s.tokens.Set(ctx, resp.AccessToken); err != nil {
		s.log.Error().Err(err).Msg("storing token failed")
		s.showError(domain.ErrMsgLoginError)
		s.recorder.Observe("login", OutcomeFailure)
		return
	}
	s.showMessage(domain.MsgLoggedIn)
	s.recorder.Observe("login", OutcomeSuccess)
}

// Logout never fails from the page's point of view.
func (s *TrackerService) Logout(ctx context.Context) {
	if err := s.tokens.Delete(ctx); err != nil {
		s.log.Warn().Err(err).Msg("deleting token failed")
	}
	s.showMessage(domain.MsgLoggedOut)
	s.recorder.Observe("logout", OutcomeSuccess)
}

func (s *TrackerService) Profile(ctx context.Context) {
	token, ok := s.requireToken(ctx, "profile")
	if !ok {
		return
	}
	resp, err := s.api.Profile(ctx, token)
	if err != nil {
		s.log.Warn().Err(err).Msg("load profile failed")
		s.showError(domain.ErrMsgLoadProfile)
		s.recorder.Observe("profile", OutcomeFailure)
		return
	}
	s.showMessage(orDefault(resp.Message, domain.MsgProfileLoaded))
	s.recorder.Observe("profile", OutcomeSuccess)
}

// AddJob creates a job from the current draft. The draft is kept afterwards.
func (s *TrackerService) AddJob(ctx context.Context) {
	token, ok := s.requireToken(ctx, "add_job")
	if !ok {
		return
	}

	s.mu.Lock()
	draft := s.draft
	s.mu.Unlock()

	resp, err := s.api.CreateJob(ctx, token, domain.NewJobFromDraft(draft))
	if err != nil {
		s.log.Warn().Err(err).Msg("add job failed")
		s.showError(domain.ErrMsgAddJob)
		s.recorder.Observe("add_job", OutcomeFailure)
		return
	}
	s.showMessage(orDefault(resp.Message, domain.MsgJobAdded))
	s.recorder.Observe("add_job", OutcomeSuccess)
}

// GetJobs replaces the whole list on success. On failure the previous list
// stays on the page.
func (s *TrackerService) GetJobs(ctx context.Context) {
	token, ok := s.requireToken(ctx, "get_jobs")
	if !ok {
		return
	}
	jobs, err := s.api.ListJobs(ctx, token)
	if err != nil {
		s.log.Warn().Err(err).Msg("load jobs failed")
		s.showError(domain.ErrMsgLoadJobs)
		s.recorder.Observe("get_jobs", OutcomeFailure)
		return
	}
	s.replaceJobs(jobs)
	s.recorder.Observe("get_jobs", OutcomeSuccess)
}

// SearchJobs replaces the list with the jobs matching the status filter.
func (s *TrackerService) SearchJobs(ctx context.Context) {
	token, ok := s.requireToken(ctx, "search_jobs")
	if !ok {
		return
	}

	s.mu.Lock()
	status := domain.JobStatus(s.statusFilter)
	s.mu.Unlock()

	jobs, err := s.api.SearchJobs(ctx, token, status)
	if err != nil {
		s.log.Warn().Err(err).Str("status", string(status)).Msg("search jobs failed")
		s.showError(domain.ErrMsgSearchJobs)
		s.recorder.Observe("search_jobs", OutcomeFailure)
		return
	}
	s.replaceJobs(jobs)
	s.recorder.Observe("search_jobs", OutcomeSuccess)
}

// UpdateJob moves a job to status (the default target when empty) and then
// reloads the list, whether or not the update succeeded. No token check is
// made before sending.
func (s *TrackerService) UpdateJob(ctx context.Context, id int64, status domain.JobStatus) error {
	if status == "" {
		status = s.defaultStatus
	}
	err := s.api.UpdateJobStatus(ctx, s.token(ctx), id, status)
	s.observeUnchecked("update_job", err)
	s.GetJobs(ctx)
	if err != nil {
		return fmt.Errorf("update job %d: %w", id, err)
	}
	return nil
}

// DeleteJob deletes a job and then reloads the list, whether or not the
// delete succeeded. No token check is made before sending.
func (s *TrackerService) DeleteJob(ctx context.Context, id int64) error {
	err := s.api.DeleteJob(ctx, s.token(ctx), id)
	s.observeUnchecked("delete_job", err)
	s.GetJobs(ctx)
	if err != nil {
		return fmt.Errorf("delete job %d: %w", id, err)
	}
	return nil
}

// requireToken shows the login hint and reports false when no token is stored.
func (s *TrackerService) requireToken(ctx context.Context, operation string) (string, bool) {
	token := s.token(ctx)
	if token == "" {
		s.log.Debug().Err(domain.ErrNoToken).Str("operation", operation).Msg("operation skipped")
		s.showError(domain.ErrMsgLoginFirst)
		s.recorder.Observe(operation, OutcomeGuarded)
		return "", false
	}
	return token, true
}

// token reads the stored token. A store failure counts as no token.
func (s *TrackerService) token(ctx context.Context) string {
	token, err := s.tokens.Get(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("reading token failed")
		return ""
	}
	return token
}

func (s *TrackerService) credentials() domain.Credentials {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.creds
}

func (s *TrackerService) replaceJobs(jobs []domain.Job) {
	if jobs == nil {
		jobs = []domain.Job{}
	}
	s.mu.Lock()
	s.jobs = jobs
	s.mu.Unlock()
}

func (s *TrackerService) showMessage(text string) {
	s.mu.Lock()
	s.message = text
	s.errMsg = ""
	s.mu.Unlock()
}

func (s *TrackerService) showError(text string) {
	s.mu.Lock()
	s.errMsg = text
	s.message = ""
	s.mu.Unlock()
}

func (s *TrackerService) observeUnchecked(operation string, err error) {
	if err != nil {
		s.recorder.Observe(operation, OutcomeFailure)
		return
	}
	s.recorder.Observe(operation, OutcomeSuccess)
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
