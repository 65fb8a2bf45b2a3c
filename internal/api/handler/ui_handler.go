package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/jobtracker/tracker-web/internal/api/metrics"
	"github.com/jobtracker/tracker-web/internal/api/view"
	"github.com/jobtracker/tracker-web/internal/core/domain"
	"github.com/jobtracker/tracker-web/internal/core/ports"
)

// UIHandler serves the tracker page and the form actions posted from it.
// Every action applies the submitted fields, runs one operation and
// redirects back to the page.
type UIHandler struct {
	svc          ports.TrackerService
	updateStatus domain.JobStatus
	log          zerolog.Logger
}

func NewUIHandler(svc ports.TrackerService, updateStatus domain.JobStatus, log zerolog.Logger) *UIHandler {
	if updateStatus == "" {
		updateStatus = domain.StatusInterview
	}
	return &UIHandler{svc: svc, updateStatus: updateStatus, log: log}
}

// jobActionRequest is bound from the :id path segment and the optional
// status button value.
type jobActionRequest struct {
	ID     int64  `param:"id" validate:"required,gt=0"`
	Status string `form:"status" validate:"max=64"`
}

func (h *UIHandler) Page(c echo.Context) error {
	return c.Render(http.StatusOK, view.PageTemplate, view.Page{
		State:        h.svc.Snapshot(c.Request().Context()),
		UpdateStatus: string(h.updateStatus),
	})
}

// Ping failures are logged only; the page shows nothing new.
func (h *UIHandler) Ping(c echo.Context) error {
	return h.act(c, "ping", h.svc.Ping)
}

func (h *UIHandler) Register(c echo.Context) error {
	return h.act(c, "register", quiet(h.svc.Register))
}

func (h *UIHandler) Login(c echo.Context) error {
	return h.act(c, "login", quiet(h.svc.Login))
}

func (h *UIHandler) Logout(c echo.Context) error {
	return h.act(c, "logout", quiet(h.svc.Logout))
}

func (h *UIHandler) Profile(c echo.Context) error {
	return h.act(c, "profile", quiet(h.svc.Profile))
}

func (h *UIHandler) AddJob(c echo.Context) error {
	return h.act(c, "add_job", quiet(h.svc.AddJob))
}

func (h *UIHandler) GetJobs(c echo.Context) error {
	return h.act(c, "get_jobs", quiet(h.svc.GetJobs))
}

func (h *UIHandler) SearchJobs(c echo.Context) error {
	return h.act(c, "search_jobs", quiet(h.svc.SearchJobs))
}

func (h *UIHandler) UpdateJob(c echo.Context) error {
	req, err := h.bindJobAction(c)
	if err != nil {
		return err
	}
	return h.act(c, "update_job", func(ctx context.Context) error {
		return h.svc.UpdateJob(ctx, req.ID, domain.JobStatus(req.Status))
	})
}

func (h *UIHandler) DeleteJob(c echo.Context) error {
	req, err := h.bindJobAction(c)
	if err != nil {
		return err
	}
	return h.act(c, "delete_job", func(ctx context.Context) error {
		return h.svc.DeleteJob(ctx, req.ID)
	})
}

func (h *UIHandler) bindJobAction(c echo.Context) (jobActionRequest, error) {
	var req jobActionRequest
	if err := c.Bind(&req); err != nil {
		return req, fmt.Errorf("%w: %q", domain.ErrInvalidJobID, c.Param("id"))
	}
	if err := c.Validate(&req); err != nil {
		return req, fmt.Errorf("%w: %v", domain.ErrInvalidJobID, err)
	}
	return req, nil
}

func (h *UIHandler) act(c echo.Context, action string, op func(context.Context) error) error {
	metrics.UIActionsTotal.WithLabelValues(action).Inc()

	form, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}
	h.svc.UpdateForm(formInput(form))

	if err := op(c.Request().Context()); err != nil {
		h.log.Error().Err(err).Str("action", action).Msg("action failed")
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

// formInput keeps only the fields present in the submitted form.
func formInput(form url.Values) ports.FormInput {
	field := func(key string) *string {
		if v, ok := form[key]; ok && len(v) > 0 {
			s := v[0]
			return &s
		}
		return nil
	}
	return ports.FormInput{
		Email:        field("email"),
		Password:     field("password"),
		Company:      field("company"),
		Role:         field("role"),
		StatusFilter: field("status_filter"),
	}
}

func quiet(op func(context.Context)) func(context.Context) error {
	return func(ctx context.Context) error {
		op(ctx)
		return nil
	}
}
