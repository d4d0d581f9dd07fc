// Package markdown turns documentation Markdown into HTML that is safe to
// drop into a page.
//
// Lite is a fixed pipeline of text substitutions over a small Markdown
// subset with no parser and no nesting. Goldmark is a full CommonMark
// renderer for operators who want it.
package markdown

import (
	"regexp"
	"strconv"
	"strings"
)

// Renderer converts Markdown source to HTML.
type Renderer interface {
	Render(src string) string
}

// Lite is the built-in subset renderer.
type Lite struct{}

// Render implements Renderer.
func (Lite) Render(src string) string { return Render(src) }

var (
	fenceRe      = regexp.MustCompile("```([\\s\\S]*?)```")
	h3Re         = regexp.MustCompile(`(?m)^### (.*?)$`)
	h2Re         = regexp.MustCompile(`(?m)^## (.*?)$`)
	h1Re         = regexp.MustCompile(`(?m)^# (.*?)$`)
	boldStarRe   = regexp.MustCompile(`\*\*(.*?)\*\*`)
	boldUnderRe  = regexp.MustCompile(`__(.*?)__`)
	italStarRe   = regexp.MustCompile(`\*(.*?)\*`)
	italUnderRe  = regexp.MustCompile(`_(.*?)_`)
	inlineCodeRe = regexp.MustCompile("`(.*?)`")
	linkRe       = regexp.MustCompile(`\[(.*?)\]\((.*?)\)`)
	starItemRe   = regexp.MustCompile(`(?m)^\* (.*?)$`)
	dashItemRe   = regexp.MustCompile(`(?m)^- (.*?)$`)
	numItemRe    = regexp.MustCompile(`(?m)^(\d+)\. (.*?)$`)
	listRunRe    = regexp.MustCompile(`(?m)^<li>.*</li>$(?:\n<li>.*</li>$)*`)
	quoteRe      = regexp.MustCompile(`(?m)^&gt; (.*?)$`)
	paraBreakRe  = regexp.MustCompile(`\n\n+`)
	emptyParaRe  = regexp.MustCompile(`<p>\s*</p>`)
	schemeRe     = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9+.\-]*):`)
)

// Render converts src with the Lite pipeline. Each stage runs once over the
// whole document in a fixed order; malformed input degrades to escaped
// text with stray markup characters left in place.
func Render(src string) string {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	html, blocks := extractCodeBlocks(src)
	html = EscapeHTML(html)
	html = restoreCodeBlocks(html, blocks)

	// Longest prefix first so "###" is not also taken by "#".
	html = h3Re.ReplaceAllString(html, "<h3>${1}</h3>")
	html = h2Re.ReplaceAllString(html, "<h2>${1}</h2>")
	html = h1Re.ReplaceAllString(html, "<h1>${1}</h1>")

	// Nested or unbalanced emphasis is undefined; no escapes are honoured.
	html = boldStarRe.ReplaceAllString(html, "<strong>${1}</strong>")
	html = boldUnderRe.ReplaceAllString(html, "<strong>${1}</strong>")
	html = italStarRe.ReplaceAllString(html, "<em>${1}</em>")
	html = italUnderRe.ReplaceAllString(html, "<em>${1}</em>")

	html = inlineCodeRe.ReplaceAllString(html, "<code>${1}</code>")
	html = linkRe.ReplaceAllStringFunc(html, renderLink)

	html = starItemRe.ReplaceAllString(html, "<li>${1}</li>")
	html = dashItemRe.ReplaceAllString(html, "<li>${1}</li>")
	html = numItemRe.ReplaceAllString(html, "<li>${2}</li>")
	html = wrapFirstList(html)

	html = quoteRe.ReplaceAllString(html, "<blockquote>${1}</blockquote>")

	html = paraBreakRe.ReplaceAllString(html, "</p><p>")
	html = "<p>" + html + "</p>"
	html = emptyParaRe.ReplaceAllString(html, "")

	return html
}

// codeBlocks holds the fenced blocks pulled out of one render pass.
type codeBlocks struct {
	marker string
	bodies []string
}

func (b *codeBlocks) token(i int) string {
	return b.marker + strconv.Itoa(i) + b.marker
}

// extractCodeBlocks replaces every fenced block with a placeholder token and
// returns the escaped, trimmed bodies in order of occurrence. The marker is
// grown until it does not occur in src, so tokens never collide with text.
func extractCodeBlocks(src string) (string, *codeBlocks) {
	b := &codeBlocks{marker: "\x00cb"}
	for strings.Contains(src, b.marker) {
		b.marker += "\x00"
	}

	out := fenceRe.ReplaceAllStringFunc(src, func(m string) string {
		body := fenceRe.FindStringSubmatch(m)[1]
		b.bodies = append(b.bodies, EscapeHTML(strings.TrimSpace(body)))
		return b.token(len(b.bodies) - 1)
	})
	return out, b
}

// restoreCodeBlocks swaps each placeholder for its <pre><code> block.
func restoreCodeBlocks(html string, b *codeBlocks) string {
	for i, body := range b.bodies {
		html = strings.Replace(html, b.token(i), "<pre><code>"+body+"</code></pre>", 1)
	}
	return html
}

func renderLink(m string) string {
	parts := linkRe.FindStringSubmatch(m)
	label, href := parts[1], safeHref(parts[2])
	return `<a href="` + href + `" target="_blank" rel="noopener noreferrer">` + label + `</a>`
}

// allowedSchemes are the only URL schemes a rendered link may carry.
// Scheme-less hrefs (relative paths, fragments) are always allowed.
var allowedSchemes = map[string]bool{"http": true, "https": true, "mailto": true}

// safeHref normalizes href the way browsers do before resolving it
// (tab and newline removed, leading controls and spaces trimmed) and
// replaces it with "#" unless its scheme is allowed.
func safeHref(href string) string {
	href = strings.Map(func(r rune) rune {
		if r == '\t' || r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, href)
	href = strings.TrimLeftFunc(href, func(r rune) bool { return r <= 0x20 })

	if m := schemeRe.FindStringSubmatch(href); m != nil {
		if !allowedSchemes[strings.ToLower(m[1])] {
			return "#"
		}
		return href
	}
	if i := strings.IndexAny(href, ":/?#"); i >= 0 && href[i] == ':' {
		// A colon before any path separator that is not a valid scheme.
		return "#"
	}
	return href
}

// wrapFirstList wraps the first contiguous run of <li> lines in a <ul>.
// Later runs are left bare.
func wrapFirstList(html string) string {
	loc := listRunRe.FindStringIndex(html)
	if loc == nil {
		return html
	}
	return html[:loc[0]] + "<ul>" + html[loc[0]:loc[1]] + "</ul>" + html[loc[1]:]
}
