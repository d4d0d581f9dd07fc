// Package panels renders backend payloads into HTML fragments. Every
// function is pure: it maps decoded data to markup and nothing else.
// Server-supplied text is always escaped by html/template.
package panels

import (
	"embed"
	"fmt"
	"html/template"
	"log"
	"strings"
	"time"

	"github.com/ziadkadry99/opsdash/internal/apiclient"
)

//go:embed templates/*.html
var templateFS embed.FS

var tmpl = template.Must(template.New("panels").Funcs(template.FuncMap{
	"lower":       strings.ToLower,
	"statusClass": statusClass,
	"pageClass":   pageClass,
	"eventTime":   formatEventTime,
}).ParseFS(templateFS, "templates/*.html"))

func render(name string, data any) template.HTML {
	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, name, data); err != nil {
		log.Printf("panels: rendering %s: %v", name, err)
		return template.HTML(`<div class="error-message"><strong>Error:</strong> rendering failed</div>`)
	}
	return template.HTML(b.String())
}

// Loading is the placeholder shown while a fetch is in flight.
func Loading(msg string) template.HTML {
	if msg == "" {
		msg = "Loading..."
	}
	return render("loading", msg)
}

// Error is the generic inline error panel.
func Error(msg string) template.HTML { return render("error", msg) }

// ErrorWithHint is an error panel with a title and an optional hint line.
func ErrorWithHint(title, msg, hint string) template.HTML {
	return render("error-hint", struct{ Title, Message, Hint string }{title, msg, hint})
}

// Empty is the empty-state panel.
func Empty(msg string) template.HTML {
	if msg == "" {
		msg = "No data available"
	}
	return render("empty", msg)
}

// Placeholder is the single-line placeholder used by the BIST containers.
func Placeholder(msg string) template.HTML { return render("placeholder", msg) }

// Routes renders one card per documented route, in backend order.
func Routes(routes *apiclient.RouteMap) template.HTML {
	var list []apiclient.RouteDoc
	if routes != nil {
		for pair := routes.Oldest(); pair != nil; pair = pair.Next() {
			list = append(list, pair.Value)
		}
	}
	return render("routes", list)
}

// Events renders the event log. An empty log renders emptyMessage and no
// list markup.
func Events(events []apiclient.Event, emptyMessage string) template.HTML {
	if len(events) == 0 {
		return Empty(emptyMessage)
	}
	return render("events", events)
}

func statusClass(success bool) string {
	if success {
		return "success"
	}
	return "failed"
}

func pageClass(p apiclient.PageResult) string {
	switch {
	case p.Success:
		return "success"
	case len(p.MissingElements) > 0:
		return "warning"
	default:
		return "failed"
	}
}

func formatEventTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

// FormatSize renders a byte count as kilobytes with one decimal.
func FormatSize(size int64) string {
	return fmt.Sprintf("%.1f KB", float64(size)/1024)
}
