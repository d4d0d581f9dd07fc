package panels

import (
	"html/template"

	"github.com/ziadkadry99/opsdash/internal/apiclient"
)

// FolderOptions renders the <option> list of the folder dropdown.
func FolderOptions(folders []apiclient.Folder, selected string) template.HTML {
	return render("docs-options", struct {
		Folders  []apiclient.Folder
		Selected string
	}{folders, selected})
}

// DocsStats renders the folder/file counters and the current document size.
func DocsStats(folders []apiclient.Folder, currentSize int64) template.HTML {
	files := 0
	for _, f := range folders {
		files += f.FileCount
	}
	size := "-"
	if currentSize > 0 {
		size = FormatSize(currentSize)
	}
	return render("docs-stats", struct {
		Folders, Files int
		CurrentSize    string
	}{len(folders), files, size})
}

// DocsMeta renders the metadata bar of the displayed document.
func DocsMeta(folder, filename string, size int64) template.HTML {
	return render("docs-meta", struct{ Folder, Filename, Size string }{folder, filename, FormatSize(size)})
}

// DocsContent wraps already-sanitized document HTML.
func DocsContent(html string) template.HTML {
	return render("docs-content", template.HTML(html))
}

// DocsLoading, DocsError and DocsEmpty are the states of the docs display.
func DocsLoading() template.HTML { return render("docs-loading", "Loading documentation...") }
func DocsError(msg string) template.HTML { return render("docs-error", msg) }
func DocsEmpty(msg string) template.HTML { return render("docs-empty", msg) }
