package dashboard

import (
	"bytes"
	"embed"
	"html/template"
	"log"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

type page struct {
	name  string
	title string
}

var (
	pageMain    = page{"main", "Dashboard"}
	pageAPIDocs = page{"api-docs", "API Documentation"}
	pageBIST    = page{"bist", "BIST Tests"}
	pageDocs    = page{"docs", "Documentation"}
	pageEvents  = page{"events", "Recent Server Events"}
)

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type pageData struct {
	Title      string
	Active     string
	BackendURL string
}

func (d *Dashboard) servePage(p page) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		data := pageData{Title: p.title, Active: p.name, BackendURL: d.backend.BaseURL()}
		if err := pages.ExecuteTemplate(&buf, p.name, data); err != nil {
			log.Printf("dashboard: rendering page %s: %v", p.name, err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(buf.Bytes())
	}
}
