package view

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/url"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageRequest carries what a page render needs from the HTTP request.
type PageRequest struct {
	Layout         Layout
	Path           string
	Query          url.Values
	AcceptLanguage string
}

type pageData struct {
	Lang   string
	M      Messages
	Layout Layout
	Phase  string
	Error  string
	Empty  bool
	Cards  []cardView
}

type Renderer struct {
	tmpl            *template.Template
	defaultLanguage string
}

func NewRenderer(defaultLanguage string) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl, defaultLanguage: defaultLanguage}, nil
}

// Stream writes the page in two parts: the head with the loading block,
// flushed before fetching, then the settled block which hides it.
func (r *Renderer) Stream(ctx context.Context, w io.Writer, flush func(), req PageRequest, fetcher Fetcher) (*Shell, error) {
	tag, messages := MatchLanguage(req.AcceptLanguage, r.defaultLanguage)
	shell := NewShell()

	data := pageData{
		Lang:   tag.String(),
		M:      messages,
		Layout: req.Layout,
		Phase:  shell.Phase().String(),
	}

	if err := r.tmpl.ExecuteTemplate(w, "head", data); err != nil {
		return shell, fmt.Errorf("failed to render page head: %w", err)
	}
	if flush != nil {
		flush()
	}

	items, err := fetcher.Fetch(ctx)
	if err != nil {
		slog.Error("Feed fetch failed", "layout", string(req.Layout), "error", err)
	}
	shell.Settle(items, err)

	data.Phase = shell.Phase().String()
	data.Error = shell.Error()
	data.Empty = shell.Empty()
	if shell.Phase() == PhaseContent {
		data.Cards = buildCards(shell.Items(), req.Layout, req.Path, req.Query, messages)
	}

	if err := r.tmpl.ExecuteTemplate(w, "settled", data); err != nil {
		return shell, fmt.Errorf("failed to render page body: %w", err)
	}

	return shell, nil
}
