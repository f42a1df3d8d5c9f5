// Package views renders the HTML pages of the web UI.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"starborg-web/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names.
const (
	PageIndex      = "index"
	PageDashboard  = "dashboard"
	PageCreateChar = "create_char"
	PageSheet      = "sheet"
)

// Page is the data passed to every template.
type Page struct {
	Title      string
	User       *models.User
	Flashes    []string
	Characters []*models.Character
	Character  *models.Character
}

var funcs = template.FuncMap{
	"ago": func(t time.Time) string {
		return humanize.Time(t)
	},
	"signed": func(v int) string {
		return fmt.Sprintf("%+d", v)
	},
}

type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page together with the shared layout.
func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, name := range []string{PageIndex, PageDashboard, PageCreateChar, PageSheet} {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// Render writes page name with the given status.
// The page is rendered to a buffer first so a template error never produces a partial page.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data Page) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
