// Package view renders the single tracker page with html/template.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/jobtracker/tracker-web/internal/core/ports"
)

// PageTemplate is the template name of the tracker page.
const PageTemplate = "page.html"

//go:embed templates/*.html
var templatesFS embed.FS

// Page is the data handed to the page template.
type Page struct {
	State ports.ViewState
	// UpdateStatus labels the per-job status button and is sent with it.
	UpdateStatus string
}

// Renderer implements echo.Renderer on top of the embedded templates.
type Renderer struct {
	tmpl *template.Template
}

var _ echo.Renderer = (*Renderer)(nil)

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("").
		Funcs(template.FuncMap{"formatTime": formatTime}).
		ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("view: parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.tmpl.ExecuteTemplate(w, name, data)
}

func formatTime(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04")
}
