// Package html renders snapshots as standalone HTML pages styled with
// Tailwind CSS v4 (CDN) and syntax highlighting via goldmark + chroma.
package html

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sonnes/chaukidar/core"
	"github.com/sonnes/chaukidar/render"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
)

// Renderer renders a snapshot to a standalone HTML page.
type Renderer struct {
	md   goldmark.Markdown
	tmpl *template.Template

	// Refresh, when positive, adds a meta refresh so a browser re-requests
	// the page on the poll cadence.
	Refresh time.Duration
}

// New creates an HTML Renderer with goldmark configured for GFM and syntax highlighting.
// Raw HTML in answers is not passed through.
func New() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("dracula"),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(false), // inline styles for standalone pages
				),
			),
		),
	)

	tmpl := template.Must(
		template.New("page.html").
			Funcs(funcMap()).
			ParseFS(content, "templates/*.html"),
	)

	return &Renderer{md: md, tmpl: tmpl}
}

// pageData is the top-level template data passed to page.html.
type pageData struct {
	Title          string
	Placeholder    string
	RefreshSeconds int
	Exchanges      []exchangeData
	Status         core.Status
	Count          string
	Updated        string
}

// exchangeData is the per-card template data passed to exchange.html.
type exchangeData struct {
	ID        string
	Timestamp string
	Relative  string
	Prompt    string
	Answer    template.HTML
}

// Render writes the snapshot as a complete HTML page to w, cards in
// snapshot order. An empty snapshot renders the placeholder.
func (r *Renderer) Render(w io.Writer, s core.Snapshot, st core.Status) error {
	data := pageData{
		Title:       render.Title,
		Placeholder: render.Placeholder,
		Status:      st,
		Count:       humanize.Comma(int64(len(s))),
	}
	if r.Refresh > 0 {
		data.RefreshSeconds = max(int(r.Refresh.Round(time.Second)/time.Second), 1)
	}
	if !st.UpdatedAt.IsZero() {
		data.Updated = core.RelativeTime(st.UpdatedAt)
	}

	for i, ex := range s {
		answer, err := renderAnswer(r.md, ex.Answer)
		if err != nil {
			return fmt.Errorf("render exchange %d: %w", i, err)
		}
		ed := exchangeData{
			ID:        fmt.Sprintf("ex-%d", i),
			Timestamp: ex.Timestamp,
			Prompt:    core.CleanPromptText(ex.Prompt),
			Answer:    answer,
		}
		if t, ok := ex.Time(); ok {
			ed.Relative = core.RelativeTime(t)
		}
		data.Exchanges = append(data.Exchanges, ed)
	}

	return r.tmpl.ExecuteTemplate(w, "page.html", data)
}
