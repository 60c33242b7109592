// Package page renders view states as HTML pages.
package page

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/google/uuid"
	"github.com/ijalalfrz/flight-booking-client/internal/pkg/utils"
)

const (
	Search    = "search"
	Booking   = "booking"
	QuickBook = "quickbook"
	Lookup    = "mybookings"
)

//go:embed templates/*.html
var templateFS embed.FS

// submission mints the token of one rendered form. A repeated submit of the
// same form shares it, a different form or client never does.
var funcs = template.FuncMap{
	"fare":       utils.FormatFare,
	"submission": uuid.NewString,
}

type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page together with the shared layout.
func NewRenderer() (*Renderer, error) {
	pages := make(map[string]*template.Template)

	for _, name := range []string{Search, Booking, QuickBook, Lookup} {
		tmpl, err := template.New("layout.html").Funcs(funcs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s page: %w", name, err)
		}

		pages[name] = tmpl
	}

	return &Renderer{pages: pages}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}

	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		return fmt.Errorf("execute %s page: %w", name, err)
	}

	return nil
}
