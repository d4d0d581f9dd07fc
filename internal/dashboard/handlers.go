package dashboard

import (
	"encoding/json"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/opsdash/internal/apiclient"
)

// handleFragment runs one action outside a WebSocket session. Each
// request gets a fresh session, so docs state does not carry over.
func (d *Dashboard) handleFragment(w http.ResponseWriter, r *http.Request) {
	cmd := Command{
		Action:   chi.URLParam(r, "action"),
		Folder:   r.URL.Query().Get("folder"),
		TestType: r.URL.Query().Get("testType"),
	}
	if cmd.Action == ActionRunBIST && r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "run_bist requires POST"})
		return
	}

	u, err := d.Dispatch(r.Context(), NewSession(), cmd)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, u)
}

// handleDownload serves the document of a folder as a Markdown file.
func (d *Dashboard) handleDownload(w http.ResponseWriter, r *http.Request) {
	folder := r.URL.Query().Get("folder")
	if folder == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "folder is required"})
		return
	}

	doc, err := d.fetchDocument(r.Context(), folder)
	if err != nil {
		status := http.StatusNotFound
		if apiclient.IsTransport(err) && apiclient.StatusCode(err) == 0 {
			status = http.StatusBadGateway
		}
		writeJSON(w, status, map[string]string{"error": notFoundMessage(folder)})
		return
	}

	view := DocsView{CurrentFolder: folder, CurrentContent: doc.Content, Filename: doc.Filename, Size: doc.Size}
	name, body, ok := view.Download()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": notFoundMessage(folder)})
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": name})
	if disposition == "" {
		disposition = "attachment"
	}
	w.Header().Set("Content-Disposition", disposition)
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
