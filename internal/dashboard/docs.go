package dashboard

import (
	"context"
	"fmt"

	"github.com/ziadkadry99/opsdash/internal/apiclient"
	"github.com/ziadkadry99/opsdash/internal/panels"
)

// DocsView is the documentation page state of one page session.
type DocsView struct {
	Folders        []apiclient.Folder
	CurrentFolder  string
	CurrentContent string
	Filename       string
	Size           int64
}

// Download returns the current document as an attachment name and body.
// ok is false when nothing has been loaded.
func (v DocsView) Download() (filename string, body []byte, ok bool) {
	if v.CurrentFolder == "" || v.CurrentContent == "" {
		return "", nil, false
	}
	return v.CurrentFolder + "_documentation.md", []byte(v.CurrentContent), true
}

// LoadFolders fetches the folder list, keeps the ones the configuration
// allows and selects the first.
func (d *Dashboard) LoadFolders(ctx context.Context, view DocsView) (DocsView, Update) {
	var u Update
	folders, err := d.backend.DocumentationFolders(ctx)
	if err != nil {
		if apiclient.IsApplication(err) {
			u.add(targetDocsDisplay, panels.DocsError("Failed to load documentation folders"))
		} else {
			u.add(targetDocsDisplay, panels.DocsError("Error loading folders: "+err.Error()))
		}
		return view, u
	}

	allowed := make([]apiclient.Folder, 0, len(folders))
	for _, f := range folders {
		if d.cfg.FolderAllowed(f.Name) {
			allowed = append(allowed, f)
		}
	}
	view.Folders = allowed

	if len(allowed) == 0 {
		u.add(targetFolderDropdown, panels.FolderOptions(nil, ""))
		u.add(targetDocsStats, panels.DocsStats(nil, 0))
		return view, u
	}

	first := allowed[0].Name
	u.add(targetFolderDropdown, panels.FolderOptions(allowed, first))
	u.add(targetDocsStats, panels.DocsStats(allowed, view.Size))

	view, sel := d.SelectFolder(ctx, view, first)
	u.merge(sel)
	return view, u
}

// SelectFolder loads the document of folder, preferring the summary
// and falling back to the full document. Folders hidden by the
// configuration are reported as missing.
func (d *Dashboard) SelectFolder(ctx context.Context, view DocsView, folder string) (DocsView, Update) {
	var u Update
	if folder == "" {
		view.CurrentFolder = ""
		view.clearDocument()
		u.add(targetDocsDisplay, panels.DocsEmpty("Please select a documentation folder"))
		return view, u
	}
	view.CurrentFolder = folder

	doc, err := d.fetchDocument(ctx, folder)
	if err != nil {
		view.clearDocument()
		if apiclient.IsTransport(err) && apiclient.StatusCode(err) == 0 {
			u.add(targetDocsDisplay, panels.DocsError("Error loading documentation: "+err.Error()))
		} else {
			u.add(targetDocsDisplay, panels.DocsError(notFoundMessage(folder)))
		}
		return view, u
	}

	view.CurrentContent = doc.Content
	view.Filename = doc.Filename
	view.Size = doc.Size

	u.add(targetDocsDisplay, panels.DocsContent(d.renderer.Render(doc.Content)))
	u.add(targetDocsMeta, panels.DocsMeta(folder, doc.Filename, doc.Size))
	if len(view.Folders) > 0 {
		u.add(targetDocsStats, panels.DocsStats(view.Folders, doc.Size))
	}
	return view, u
}

func (v *DocsView) clearDocument() {
	v.CurrentContent = ""
	v.Filename = ""
	v.Size = 0
}

// errFolderHidden is returned for folders the configuration excludes.
var errFolderHidden = &apiclient.AppError{Message: "folder is not shown"}

// fetchDocument returns the summary of folder, or its full document when
// no summary can be fetched.
func (d *Dashboard) fetchDocument(ctx context.Context, folder string) (*apiclient.Document, error) {
	if !d.cfg.FolderAllowed(folder) {
		return nil, errFolderHidden
	}
	doc, err := d.backend.Document(ctx, folder, apiclient.FormatSummaryMarkdown)
	if err != nil {
		doc, err = d.backend.Document(ctx, folder, apiclient.FormatFullMarkdown)
	}
	return doc, err
}

func notFoundMessage(folder string) string {
	return fmt.Sprintf("No documentation found for %q", folder)
}
