package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorder_Observe(t *testing.T) {
	c := OperationsTotal.WithLabelValues("get_jobs", "guarded")
	before := testutil.ToFloat64(c)

	Recorder{}.Observe("get_jobs", "guarded")

	if got := testutil.ToFloat64(c); got != before+1 {
		t.Fatalf("expected %v, got %v", before+1, got)
	}
}

func TestInstrumentTransport_CountsRoundTrips(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer srv.Close()

	c := BackendRequestsTotal.WithLabelValues("418", "get")
	before := testutil.ToFloat64(c)

	client := &http.Client{Transport: InstrumentTransport(nil)}
	resp, err := client.Get(srv.URL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()

	if got := testutil.ToFloat64(c); got != before+1 {
		t.Fatalf("expected %v, got %v", before+1, got)
	}
}

func TestMiddleware_LabelsByRoute(t *testing.T) {
	e := echo.New()
	e.Use(Middleware())
	e.POST("/actions/jobs/:id/delete", func(c echo.Context) error {
		return c.Redirect(http.StatusSeeOther, "/")
	})

	c := PageRequestsTotal.WithLabelValues(http.MethodPost, "/actions/jobs/:id/delete", "303")
	before := testutil.ToFloat64(c)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/actions/jobs/9/delete", nil))

	if got := testutil.ToFloat64(c); got != before+1 {
		t.Fatalf("expected %v, got %v", before+1, got)
	}
}

func TestHandler_ServesRegistry(t *testing.T) {
	e := echo.New()
	e.GET("/metrics", Handler())
	Recorder{}.Observe("ping", "success")

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "jobtracker_operations_total") {
		t.Fatalf("operations counter not exposed")
	}
}
