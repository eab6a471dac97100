package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"lakeshore_hotel/internal/app"
	"lakeshore_hotel/internal/domain"
)

//go:embed templates/*.html
var files embed.FS

// Pages lists every page template; each is parsed together with the layout.
var Pages = []string{"home", "rooms", "amenities", "dining", "attractions", "offers", "policies", "ratings"}

type Renderer struct {
	pages map[string]*template.Template
}

// New parses the embedded templates. mediaBase resolves store image references.
func New(mediaBase string) (*Renderer, error) {
	funcs := funcMap(mediaBase)
	r := &Renderer{pages: make(map[string]*template.Template, len(Pages))}
	for _, p := range Pages {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(files, "templates/layout.html", "templates/"+p+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", p, err)
		}
		r.pages[p] = t
	}
	return r, nil
}

// Render executes the page into a buffer and only then writes it to w, so a
// failing template never leaves a half-written response.
func (r *Renderer) Render(w io.Writer, page string, data any) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("render: unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func funcMap(mediaBase string) template.FuncMap {
	return template.FuncMap{
		"text": func(p *string) string {
			if p == nil {
				return ""
			}
			return *p
		},
		"intval": func(p *int) int {
			if p == nil {
				return 0
			}
			return *p
		},
		"yes": func(p *bool) bool { return p != nil && *p },
		"no":  func(p *bool) bool { return p != nil && !*p },
		"img": func(ref *domain.ImageRef) string {
			if ref == nil {
				return ""
			}
			return ref.URL(mediaBase)
		},
		"date":     app.FormatDate,
		"time":     app.FormatTime,
		"truncate": app.Truncate,
		"plural":   app.Pluralize,
		"stars": func(n int) string {
			if n < 0 {
				n = 0
			}
			if n > 5 {
				n = 5
			}
			return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
		},
		"rating": func(p *float64) int {
			if p == nil {
				return 0
			}
			return app.SummarizeRatings([]domain.Review{{Rating: p}}).Stars()
		},
		"pct": func(f float64) string { return fmt.Sprintf("%.0f", f) },
	}
}
