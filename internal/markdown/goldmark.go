package markdown

import (
	"bytes"
	"log"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// Goldmark renders full CommonMark + GFM. Raw HTML in the source is
// omitted, so the output is as safe as Lite's.
type Goldmark struct {
	md goldmark.Markdown
}

// NewGoldmark creates a Goldmark renderer whose fenced code is colored with
// the named chroma style.
func NewGoldmark(style string) *Goldmark {
	if style == "" {
		style = "github"
	}
	return &Goldmark{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				highlighting.NewHighlighting(
					highlighting.WithStyle(style),
				),
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
			goldmark.WithRendererOptions(
				html.WithXHTML(),
			),
		),
	}
}

// Render implements Renderer. On a conversion error it falls back to the
// escaped source in a paragraph.
func (g *Goldmark) Render(src string) string {
	var buf bytes.Buffer
	if err := g.md.Convert([]byte(src), &buf); err != nil {
		log.Printf("markdown: goldmark convert: %v", err)
		return "<p>" + EscapeHTML(src) + "</p>"
	}
	return buf.String()
}

// New returns the renderer registered under name ("lite" or "goldmark").
// Unknown names get Lite.
func New(name, style string) Renderer {
	if name == "goldmark" {
		return NewGoldmark(style)
	}
	return Lite{}
}
