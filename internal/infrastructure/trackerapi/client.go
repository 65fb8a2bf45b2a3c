// Package trackerapi is the HTTP client of the Job Tracker REST API.
package trackerapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jobtracker/tracker-web/internal/core/domain"
	"github.com/jobtracker/tracker-web/internal/core/ports"
)

// DefaultBaseURL is where the backend listens when nothing is configured.
const DefaultBaseURL = "http://127.0.0.1:5000"

// Config captures the settings of the REST client.
type Config struct {
	BaseURL string
	// Timeout bounds every request. Zero means no timeout.
	Timeout time.Duration
	// Transport is the round tripper used for requests. Defaults to
	// http.DefaultTransport.
	Transport http.RoundTripper
}

// Client implements ports.TrackerAPI over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
}

var _ ports.TrackerAPI = (*Client)(nil)

// New returns a Client for cfg.BaseURL.
func New(cfg Config) (*Client, error) {
	base := cfg.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("trackerapi: parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("trackerapi: base url %q must be absolute", base)
	}

	transport := cfg.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	return &Client{
		baseURL: strings.TrimRight(base, "/"),
		http:    &http.Client{Timeout: cfg.Timeout, Transport: transport},
	}, nil
}

// Ping fetches the service root and returns its body as text, whatever the status.
func (c *Client) Ping(ctx context.Context) (string, error) {
	resp, err := c.do(ctx, http.MethodGet, "/", "", nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	return string(b), nil
}

func (c *Client) Register(ctx context.Context, creds domain.Credentials) (ports.MessageResponse, error) {
	v, err := c.doJSON(ctx, http.MethodPost, "/register", "", creds)
	if err != nil {
		return ports.MessageResponse{}, err
	}
	return ports.MessageResponse{Message: optString(field(v, "message"))}, nil
}

// Login returns an empty AccessToken when the body carries no truthy
// access_token. A non-string token is stringified.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (ports.LoginResponse, error) {
	v, err := c.doJSON(ctx, http.MethodPost, "/login", "", creds)
	if err != nil {
		return ports.LoginResponse{}, err
	}
	return ports.LoginResponse{AccessToken: optString(field(v, "access_token"))}, nil
}

func (c *Client) Profile(ctx context.Context, token string) (ports.ProfileResponse, error) {
	v, err := c.doJSON(ctx, http.MethodGet, "/profile", token, nil)
	if err != nil {
		return ports.ProfileResponse{}, err
	}
	return ports.ProfileResponse{
		Message: optString(field(v, "message")),
		UserID:  optString(field(v, "user_id")),
	}, nil
}

func (c *Client) CreateJob(ctx context.Context, token string, job domain.NewJob) (ports.MessageResponse, error) {
	v, err := c.doJSON(ctx, http.MethodPost, "/jobs", token, job)
	if err != nil {
		return ports.MessageResponse{}, err
	}
	return ports.MessageResponse{Message: optString(field(v, "message"))}, nil
}

// ListJobs returns the "jobs" array of GET /jobs. A missing or falsy value,
// or a body that is not an object, yields an empty slice.
func (c *Client) ListJobs(ctx context.Context, token string) ([]domain.Job, error) {
	v, err := c.doJSON(ctx, http.MethodGet, "/jobs", token, nil)
	if err != nil {
		return nil, err
	}
	return jobList(field(v, "jobs"))
}

// SearchJobs calls GET /jobs/search, which answers with a bare array.
func (c *Client) SearchJobs(ctx context.Context, token string, status domain.JobStatus) ([]domain.Job, error) {
	path := "/jobs/search?" + url.Values{"status": {string(status)}}.Encode()

	v, err := c.doJSON(ctx, http.MethodGet, path, token, nil)
	if err != nil {
		return nil, err
	}
	return jobList(v)
}

type statusUpdate struct {
	Status domain.JobStatus `json:"status"`
}

// UpdateJobStatus sends PUT /jobs/{id}. The response is drained and ignored.
func (c *Client) UpdateJobStatus(ctx context.Context, token string, id int64, status domain.JobStatus) error {
	body, err := json.Marshal(statusUpdate{Status: status})
	if err != nil {
		return fmt.Errorf("encode status: %w", err)
	}
	return c.doIgnore(ctx, http.MethodPut, jobPath(id), token, body)
}

// DeleteJob sends DELETE /jobs/{id}. The response is drained and ignored.
func (c *Client) DeleteJob(ctx context.Context, token string, id int64) error {
	return c.doIgnore(ctx, http.MethodDelete, jobPath(id), token, nil)
}

// Check reports whether the backend answers at all. Used by readiness probes.
func (c *Client) Check(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "/", "", nil)
	if err != nil {
		return err
	}
	drain(resp)
	return nil
}

// Name identifies the backend in readiness reports.
func (c *Client) Name() string { return "tracker_api" }

func jobPath(id int64) string {
	return "/jobs/" + strconv.FormatInt(id, 10)
}

// doJSON sends in (when non-nil) as JSON and parses the response into
// generic JSON values, numbers kept as json.Number. Only a body that is not
// JSON, or a literal null, is an error. The HTTP status is deliberately not
// checked.
func (c *Client) doJSON(ctx context.Context, method, path, token string, in any) (any, error) {
	var body []byte
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = b
	}

	resp, err := c.do(ctx, method, path, token, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%s %s: decode response (status %d): %w", method, path, resp.StatusCode, err)
	}
	// A literal null has no fields to read from.
	if v == nil {
		return nil, fmt.Errorf("%s %s: %w: null body", method, path, domain.ErrUnexpectedPayload)
	}
	return v, nil
}

func (c *Client) doIgnore(ctx context.Context, method, path, token string, body []byte) error {
	resp, err := c.do(ctx, method, path, token, body)
	if err != nil {
		return err
	}
	drain(resp)
	return nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body []byte) (*http.Response, error) {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	return resp, nil
}

func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}
