package dashboard

import (
	"html/template"

	"github.com/ziadkadry99/opsdash/internal/markdown"
)

// Container ids on the pages. Each panel is owned by exactly one action.
const (
	targetRoutes       = "docsContainer"
	targetRoutesStatus = "docsStatus"
	targetSource       = "sourceContainer"

	targetEndpoints    = "endpoints-container"
	targetPages        = "pages-container"
	targetDependencies = "dependencies-container"
	targetSummary      = "summary-container"
	targetRunStatus    = "runStatus"

	targetFolderDropdown = "docs-folder-dropdown"
	targetDocsDisplay    = "docs-display"
	targetDocsStats      = "docs-stats"
	targetDocsMeta       = "docs-meta-container"

	targetEvents = "events-container"
)

// Fragment replaces the whole content of one container.
type Fragment struct {
	Target string        `json:"target"`
	HTML   template.HTML `json:"html"`
}

// Update is everything one action changes on the page.
type Update struct {
	Fragments []Fragment `json:"fragments"`
	ActiveTab string     `json:"active_tab,omitempty"`
}

func (u *Update) add(target string, html template.HTML) {
	u.Fragments = append(u.Fragments, Fragment{Target: target, HTML: html})
}

// text adds a plain-text fragment.
func (u *Update) text(target, s string) {
	u.add(target, template.HTML(markdown.EscapeHTML(s)))
}

func (u *Update) merge(other Update) {
	u.Fragments = append(u.Fragments, other.Fragments...)
	if other.ActiveTab != "" {
		u.ActiveTab = other.ActiveTab
	}
}

// Fragment returns the HTML sent to target, if any.
func (u Update) Fragment(target string) (template.HTML, bool) {
	for i := len(u.Fragments) - 1; i >= 0; i-- {
		if u.Fragments[i].Target == target {
			return u.Fragments[i].HTML, true
		}
	}
	return "", false
}
