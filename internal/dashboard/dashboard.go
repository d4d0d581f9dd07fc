package dashboard

import (
	"context"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/opsdash/internal/apiclient"
	"github.com/ziadkadry99/opsdash/internal/config"
	"github.com/ziadkadry99/opsdash/internal/highlight"
	"github.com/ziadkadry99/opsdash/internal/markdown"
)

// Backend is the part of the API server the dashboard reads from.
// *apiclient.Client implements it.
type Backend interface {
	BaseURL() string
	Routes(ctx context.Context) (*apiclient.RouteMap, error)
	Source(ctx context.Context) (*apiclient.SourceFile, error)
	BISTResults(ctx context.Context) (*apiclient.BISTResults, error)
	RunBIST(ctx context.Context) (*apiclient.BISTResults, error)
	DocumentationFolders(ctx context.Context) ([]apiclient.Folder, error)
	Document(ctx context.Context, folder, format string) (*apiclient.Document, error)
	Events(ctx context.Context) ([]apiclient.Event, error)
}

// Dashboard serves the operator pages and answers their actions with
// rendered panel fragments.
type Dashboard struct {
	backend  Backend
	cfg      *config.Config
	renderer markdown.Renderer
	source   *highlight.Highlighter
}

// New creates a Dashboard reading from backend.
func New(cfg *config.Config, backend Backend) *Dashboard {
	return &Dashboard{
		backend:  backend,
		cfg:      cfg,
		renderer: markdown.New(string(cfg.Docs.Renderer), cfg.Source.Style),
		source:   highlight.New(cfg.Source.Language, cfg.Source.Style),
	}
}

// RegisterRoutes mounts all dashboard routes onto the given router.
func (d *Dashboard) RegisterRoutes(r chi.Router) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/ui/", http.StatusFound)
	})

	static, _ := fs.Sub(staticFS, "static")

	r.Route("/ui", func(r chi.Router) {
		r.Get("/", d.servePage(pageMain))
		r.Get("/api-docs", d.servePage(pageAPIDocs))
		r.Get("/bist", d.servePage(pageBIST))
		r.Get("/docs", d.servePage(pageDocs))
		r.Get("/events", d.servePage(pageEvents))

		r.Get("/fragments/{action}", d.handleFragment)
		r.Post("/fragments/{action}", d.handleFragment)
		r.Get("/docs/download", d.handleDownload)
		r.Get("/ws", d.handleWebSocket)

		r.Handle("/static/*", http.StripPrefix("/ui/static/", http.FileServer(http.FS(static))))
	})
}
