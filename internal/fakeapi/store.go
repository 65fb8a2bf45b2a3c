package fakeapi

import (
	"errors"
	"sort"
	"sync"

	"github.com/jobtracker/tracker-web/internal/core/domain"
)

var (
	errUserExists         = errors.New("User already exists")
	errInvalidCredentials = errors.New("Invalid credentials")
)

type user struct {
	id           int64
	email        string
	passwordHash []byte
}

type userStore struct {
	mu      sync.Mutex
	nextID  int64
	byEmail map[string]*user
}

func newUserStore() *userStore {
	return &userStore{nextID: 1, byEmail: make(map[string]*user)}
}

func (s *userStore) create(email string, hash []byte) (*user, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byEmail[email]; ok {
		return nil, errUserExists
	}
	u := &user{id: s.nextID, email: email, passwordHash: hash}
	s.nextID++
	s.byEmail[email] = u
	return u, nil
}

func (s *userStore) findByEmail(email string) (*user, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byEmail[email]
	return u, ok
}

type storedJob struct {
	job   domain.Job
	owner string
}

// jobStore keeps jobs per owner. Updates and deletes of jobs owned by
// somebody else are silent no-ops, like the backend's SQL WHERE clauses.
type jobStore struct {
	mu     sync.Mutex
	nextID int64
	jobs   map[int64]*storedJob
}

func newJobStore() *jobStore {
	return &jobStore{nextID: 1, jobs: make(map[int64]*storedJob)}
}

func (s *jobStore) add(owner string, j domain.NewJob) domain.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	job := domain.Job{ID: s.nextID, Company: j.Company, Role: j.Role, Status: j.Status}
	s.nextID++
	s.jobs[job.ID] = &storedJob{job: job, owner: owner}
	return job
}

func (s *jobStore) list(owner string, status *domain.JobStatus) []domain.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []domain.Job{}
	for _, sj := range s.jobs {
		if sj.owner != owner {
			continue
		}
		if status != nil && sj.job.Status != *status {
			continue
		}
		out = append(out, sj.job)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *jobStore) setStatus(owner string, id int64, status domain.JobStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sj, ok := s.jobs[id]; ok && sj.owner == owner {
		sj.job.Status = status
	}
}

func (s *jobStore) remove(owner string, id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sj, ok := s.jobs[id]; ok && sj.owner == owner {
		delete(s.jobs, id)
	}
}
