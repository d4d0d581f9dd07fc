// Package highlight colors source code for the API docs page.
package highlight

import (
	"html/template"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/ziadkadry99/opsdash/internal/markdown"
)

// Highlighter renders source code as inline-styled HTML.
type Highlighter struct {
	language string
	style    *chroma.Style
}

// New creates a Highlighter. language is the default lexer name, used when
// the file name does not identify one; style is a chroma style name.
func New(language, style string) *Highlighter {
	s := styles.Get(style)
	if s == nil {
		s = styles.Fallback
	}
	return &Highlighter{language: language, style: s}
}

// Source renders src, choosing a lexer from filename, then the configured
// language, then content analysis. It never fails: on any chroma error the
// escaped source is returned in a plain <pre><code> block.
func (h *Highlighter) Source(filename, src string) template.HTML {
	lexer := h.lexerFor(filename, src)

	it, err := lexer.Tokenise(nil, src)
	if err != nil {
		return plain(h.language, src)
	}

	formatter := chromahtml.New(
		chromahtml.WithClasses(false),
		chromahtml.WithLineNumbers(true),
		chromahtml.TabWidth(4),
	)

	var b strings.Builder
	if err := formatter.Format(&b, h.style, it); err != nil {
		return plain(h.language, src)
	}
	return template.HTML(b.String())
}

func (h *Highlighter) lexerFor(filename, src string) chroma.Lexer {
	var lexer chroma.Lexer
	if filename != "" {
		lexer = lexers.Match(filename)
	}
	if lexer == nil && h.language != "" {
		lexer = lexers.Get(h.language)
	}
	if lexer == nil {
		lexer = lexers.Analyse(src)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}

func plain(language, src string) template.HTML {
	return template.HTML(`<pre><code class="language-` + markdown.EscapeHTML(language) + `">` +
		markdown.EscapeHTML(src) + `</code></pre>`)
}
