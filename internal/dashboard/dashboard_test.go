package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/ziadkadry99/opsdash/internal/apiclient"
	"github.com/ziadkadry99/opsdash/internal/config"
)

// fakeBackend serves canned payloads and errors.
type fakeBackend struct {
	routes    *apiclient.RouteMap
	routesErr error
	source    *apiclient.SourceFile
	sourceErr error
	bist      *apiclient.BISTResults
	bistErr   error
	run       *apiclient.BISTResults
	runErr    error
	runs      int
	folders   []apiclient.Folder
	foldErr   error
	docs      map[string]map[string]*apiclient.Document // folder -> format -> doc
	docErr    error
	events    []apiclient.Event
	eventsErr error
}

func (f *fakeBackend) BaseURL() string { return "http://backend.test:8001" }

func (f *fakeBackend) Routes(context.Context) (*apiclient.RouteMap, error) {
	return f.routes, f.routesErr
}

func (f *fakeBackend) Source(context.Context) (*apiclient.SourceFile, error) {
	return f.source, f.sourceErr
}

func (f *fakeBackend) BISTResults(context.Context) (*apiclient.BISTResults, error) {
	return f.bist, f.bistErr
}

func (f *fakeBackend) RunBIST(context.Context) (*apiclient.BISTResults, error) {
	f.runs++
	return f.run, f.runErr
}

func (f *fakeBackend) DocumentationFolders(context.Context) ([]apiclient.Folder, error) {
	return f.folders, f.foldErr
}

func (f *fakeBackend) Document(_ context.Context, folder, format string) (*apiclient.Document, error) {
	if f.docErr != nil {
		return nil, f.docErr
	}
	if doc, ok := f.docs[folder][format]; ok {
		return doc, nil
	}
	return nil, &apiclient.AppError{Message: "Document not found"}
}

func (f *fakeBackend) Events(context.Context) ([]apiclient.Event, error) {
	return f.events, f.eventsErr
}

var errRefused = &apiclient.HTTPError{URL: "http://backend.test:8001", Err: errors.New("connection refused")}

func setupTest(t *testing.T, backend *fakeBackend) *Dashboard {
	t.Helper()
	return New(config.DefaultConfig(), backend)
}

func setupRouter(d *Dashboard) chi.Router {
	r := chi.NewRouter()
	d.RegisterRoutes(r)
	return r
}

func sampleRoutes() *apiclient.RouteMap {
	m := apiclient.NewRouteMap()
	m.Set("health", apiclient.RouteDoc{Method: "GET", Route: "/health", Function: "health"})
	m.Set("create_item", apiclient.RouteDoc{Method: "POST", Route: "/items", Function: "create_item"})
	return m
}

func sampleResults() *apiclient.BISTResults {
	return &apiclient.BISTResults{
		Endpoints: []apiclient.EndpointResult{
			{Route: "/health", Method: "GET", Status: 200, Success: true},
			{Route: "/items", Method: "POST", Status: 500, Success: false, Error: "boom"},
		},
		DashboardPages: []apiclient.PageResult{
			{Page: "main", URL: "/ui/", Status: 200, Success: true, HTMLValid: true},
		},
	}
}

func mustFragment(t *testing.T, u Update, target string) string {
	t.Helper()
	html, ok := u.Fragment(target)
	if !ok {
		t.Fatalf("no fragment for %s in %+v", target, u.Fragments)
	}
	return string(html)
}

func TestLoadRoutes(t *testing.T) {
	d := setupTest(t, &fakeBackend{routes: sampleRoutes()})
	u := d.LoadRoutes(testContext(t))

	if got := mustFragment(t, u, targetRoutesStatus); got != "✓ Loaded 2 routes" {
		t.Errorf("status = %q", got)
	}
	html := mustFragment(t, u, targetRoutes)
	if strings.Index(html, "/health") > strings.Index(html, "/items") {
		t.Error("expected routes in backend order")
	}
}

func TestLoadRoutesError(t *testing.T) {
	d := setupTest(t, &fakeBackend{routesErr: errRefused})
	u := d.LoadRoutes(testContext(t))

	if got := mustFragment(t, u, targetRoutesStatus); got != "✗ Failed to load" {
		t.Errorf("status = %q", got)
	}
	html := mustFragment(t, u, targetRoutes)
	for _, want := range []string{"Error loading documentation:", "connection refused", "http://backend.test:8001"} {
		if !strings.Contains(html, want) {
			t.Errorf("expected %q in %s", want, html)
		}
	}
}

func TestLoadSource(t *testing.T) {
	d := setupTest(t, &fakeBackend{source: &apiclient.SourceFile{File: "main.py", Source: "def main():\n    return 1\n"}})
	html := mustFragment(t, d.LoadSource(testContext(t)), targetSource)
	if !strings.Contains(html, "main") {
		t.Errorf("expected source in %s", html)
	}

	d = setupTest(t, &fakeBackend{sourceErr: errRefused})
	html = mustFragment(t, d.LoadSource(testContext(t)), targetSource)
	if !strings.Contains(html, "Error loading source") {
		t.Errorf("expected error panel, got %s", html)
	}
}

func TestLoadBIST(t *testing.T) {
	d := setupTest(t, &fakeBackend{bist: sampleResults()})
	u := d.LoadBIST(testContext(t))

	if !strings.Contains(mustFragment(t, u, targetEndpoints), "/items") {
		t.Error("expected endpoint results")
	}
	if !strings.Contains(mustFragment(t, u, targetDependencies), "No dependencies configured") {
		t.Error("expected dependencies placeholder")
	}
	summary := mustFragment(t, u, targetSummary)
	if !strings.Contains(summary, "67%") {
		t.Errorf("expected 67%% pass rate in %s", summary)
	}
}

func TestLoadBISTNoResults(t *testing.T) {
	for name, err := range map[string]error{
		"application": &apiclient.AppError{Message: "No BIST results found"},
		"not found":   &apiclient.HTTPError{StatusCode: http.StatusNotFound},
	} {
		t.Run(name, func(t *testing.T) {
			d := setupTest(t, &fakeBackend{bistErr: err})
			u := d.LoadBIST(testContext(t))
			for _, target := range []string{targetEndpoints, targetPages, targetDependencies, targetSummary} {
				if !strings.Contains(mustFragment(t, u, target), "No test results available.") {
					t.Errorf("%s: expected no-results placeholder", target)
				}
			}
		})
	}
}

func TestLoadBISTTransportError(t *testing.T) {
	d := setupTest(t, &fakeBackend{bistErr: errRefused})
	u := d.LoadBIST(testContext(t))
	if !strings.Contains(mustFragment(t, u, targetSummary), "Error loading test results") {
		t.Error("expected transport error placeholder")
	}
}

func TestRunBIST(t *testing.T) {
	backend := &fakeBackend{run: sampleResults()}
	d := setupTest(t, backend)

	u := d.RunBIST(testContext(t), TestTypeAll)
	if got := mustFragment(t, u, targetRunStatus); got != "✓ Tests completed" {
		t.Errorf("status = %q", got)
	}
	if u.ActiveTab != "" {
		t.Errorf("full run should not switch tab, got %q", u.ActiveTab)
	}

	u = d.RunBIST(testContext(t), TestTypePages)
	if u.ActiveTab != TestTypePages {
		t.Errorf("active tab = %q, want pages", u.ActiveTab)
	}
	if backend.runs != 2 {
		t.Errorf("expected 2 runs, got %d", backend.runs)
	}
}

func TestRunBISTError(t *testing.T) {
	d := setupTest(t, &fakeBackend{runErr: errRefused})
	u := d.RunBIST(testContext(t), TestTypeAll)

	if got := mustFragment(t, u, targetRunStatus); got != "✗ Error running tests" {
		t.Errorf("status = %q", got)
	}
	if _, ok := u.Fragment(targetEndpoints); ok {
		t.Error("failed run must leave result containers untouched")
	}
}

func docsBackend() *fakeBackend {
	return &fakeBackend{
		folders: []apiclient.Folder{
			{Name: "api", DisplayName: "API", FileCount: 3},
			{Name: "guides", DisplayName: "Guides", FileCount: 2},
		},
		docs: map[string]map[string]*apiclient.Document{
			"api": {
				apiclient.FormatSummaryMarkdown: {Content: "# API\nsummary", Filename: "summary.md", Size: 2048},
			},
			"guides": {
				apiclient.FormatFullMarkdown: {Content: "# Guides\nfull", Filename: "full.md", Size: 512},
			},
		},
	}
}

func TestLoadFoldersSelectsFirst(t *testing.T) {
	d := setupTest(t, docsBackend())
	view, u := d.LoadFolders(testContext(t), DocsView{})

	if len(view.Folders) != 2 {
		t.Fatalf("expected 2 folders, got %d", len(view.Folders))
	}
	if view.CurrentFolder != "api" || view.Filename != "summary.md" {
		t.Errorf("unexpected view %+v", view)
	}
	if !strings.Contains(mustFragment(t, u, targetFolderDropdown), `value="api" selected`) {
		t.Error("expected first folder selected")
	}
	if !strings.Contains(mustFragment(t, u, targetDocsDisplay), "<h1>API</h1>") {
		t.Error("expected rendered summary")
	}
	stats := mustFragment(t, u, targetDocsStats)
	if !strings.Contains(stats, ">5<") || !strings.Contains(stats, "2.0 KB") {
		t.Errorf("unexpected stats %s", stats)
	}
}

func TestLoadFoldersFiltered(t *testing.T) {
	backend := docsBackend()
	d := setupTest(t, backend)
	d.cfg.Docs.Exclude = []string{"api"}

	view, _ := d.LoadFolders(testContext(t), DocsView{})
	if len(view.Folders) != 1 || view.CurrentFolder != "guides" {
		t.Errorf("unexpected view %+v", view)
	}
}

func TestSelectFolderHidden(t *testing.T) {
	backend := docsBackend()
	backend.docs["secret"] = map[string]*apiclient.Document{
		apiclient.FormatSummaryMarkdown: {Content: "TOP SECRET", Filename: "summary.md", Size: 10},
	}
	d := setupTest(t, backend)
	d.cfg.Docs.Exclude = []string{"secret"}

	u, err := d.Dispatch(testContext(t), NewSession(), Command{Action: ActionSelectFolder, Folder: "secret"})
	if err != nil {
		t.Fatal(err)
	}
	html := mustFragment(t, u, targetDocsDisplay)
	if strings.Contains(html, "TOP SECRET") || !strings.Contains(html, "No documentation found for") {
		t.Errorf("hidden folder rendered: %s", html)
	}

	r := setupRouter(d)
	req := httptest.NewRequest(http.MethodGet, "/ui/docs/download?folder=secret", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "TOP SECRET") {
		t.Errorf("hidden folder served: %s", w.Body.String())
	}
}

func TestSelectFolderFailureClearsDocument(t *testing.T) {
	d := setupTest(t, docsBackend())

	view, _ := d.SelectFolder(testContext(t), DocsView{}, "api")
	if view.CurrentContent == "" {
		t.Fatal("expected api document to load")
	}

	view, _ = d.SelectFolder(testContext(t), view, "nowhere")
	if view.CurrentFolder != "nowhere" || view.CurrentContent != "" || view.Filename != "" || view.Size != 0 {
		t.Errorf("stale document kept: %+v", view)
	}
	if _, _, ok := view.Download(); ok {
		t.Error("failed selection should not be downloadable")
	}
}

func TestLoadFoldersErrors(t *testing.T) {
	d := setupTest(t, &fakeBackend{foldErr: &apiclient.AppError{Message: "nope"}})
	_, u := d.LoadFolders(testContext(t), DocsView{})
	if !strings.Contains(mustFragment(t, u, targetDocsDisplay), "Failed to load documentation folders") {
		t.Error("expected application failure message")
	}

	d = setupTest(t, &fakeBackend{foldErr: errRefused})
	_, u = d.LoadFolders(testContext(t), DocsView{})
	if !strings.Contains(mustFragment(t, u, targetDocsDisplay), "Error loading folders:") {
		t.Error("expected transport failure message")
	}
}

func TestSelectFolderFallsBackToFull(t *testing.T) {
	d := setupTest(t, docsBackend())
	view, u := d.SelectFolder(testContext(t), DocsView{}, "guides")

	if view.Filename != "full.md" || view.Size != 512 {
		t.Errorf("unexpected view %+v", view)
	}
	if !strings.Contains(mustFragment(t, u, targetDocsMeta), "0.5 KB") {
		t.Error("expected size in meta")
	}
}

func TestSelectFolderEmptyAndMissing(t *testing.T) {
	d := setupTest(t, docsBackend())

	_, u := d.SelectFolder(testContext(t), DocsView{}, "")
	if !strings.Contains(mustFragment(t, u, targetDocsDisplay), "Please select a documentation folder") {
		t.Error("expected empty state")
	}

	view, u := d.SelectFolder(testContext(t), DocsView{}, "nowhere")
	if view.CurrentFolder != "nowhere" {
		t.Errorf("current folder = %q", view.CurrentFolder)
	}
	if !strings.Contains(mustFragment(t, u, targetDocsDisplay), "No documentation found for") {
		t.Error("expected not-found message")
	}
}

func TestDocsViewDownload(t *testing.T) {
	if _, _, ok := (DocsView{}).Download(); ok {
		t.Error("empty view should not be downloadable")
	}
	name, body, ok := DocsView{CurrentFolder: "api", CurrentContent: "# API"}.Download()
	if !ok || name != "api_documentation.md" || string(body) != "# API" {
		t.Errorf("got %q %q %v", name, body, ok)
	}
}

func TestLoadEvents(t *testing.T) {
	d := setupTest(t, &fakeBackend{events: []apiclient.Event{}})
	html := mustFragment(t, d.LoadEvents(testContext(t)), targetEvents)
	if !strings.Contains(html, "No events recorded yet") || strings.Contains(html, "event-item") {
		t.Errorf("unexpected empty events panel %s", html)
	}

	d = setupTest(t, &fakeBackend{events: []apiclient.Event{{Method: "GET", Route: "/health", Status: "success", StatusCode: 200}}})
	html = mustFragment(t, d.LoadEvents(testContext(t)), targetEvents)
	if !strings.Contains(html, "/health") {
		t.Errorf("expected event route in %s", html)
	}

	d = setupTest(t, &fakeBackend{eventsErr: errRefused})
	html = mustFragment(t, d.LoadEvents(testContext(t)), targetEvents)
	if !strings.Contains(html, "Error loading events") {
		t.Errorf("expected error panel, got %s", html)
	}
}

func TestDispatchUnknown(t *testing.T) {
	d := setupTest(t, &fakeBackend{})
	if _, err := d.Dispatch(testContext(t), NewSession(), Command{Action: "explode"}); err == nil {
		t.Error("expected error for unknown action")
	}
	if _, err := d.Dispatch(testContext(t), NewSession(), Command{Action: ActionRunBIST, TestType: "bogus"}); err == nil {
		t.Error("expected error for unknown test type")
	}
}

func TestDispatchKeepsDocsView(t *testing.T) {
	d := setupTest(t, docsBackend())
	sess := NewSession()

	if _, err := d.Dispatch(testContext(t), sess, Command{Action: ActionLoadFolders}); err != nil {
		t.Fatal(err)
	}
	if _, err := d.Dispatch(testContext(t), sess, Command{Action: ActionSelectFolder, Folder: "guides"}); err != nil {
		t.Fatal(err)
	}
	view := sess.Docs()
	if len(view.Folders) != 2 || view.CurrentFolder != "guides" {
		t.Errorf("unexpected session view %+v", view)
	}
}

func TestFragmentEndpoint(t *testing.T) {
	d := setupTest(t, &fakeBackend{routes: sampleRoutes()})
	r := setupRouter(d)

	req := httptest.NewRequest(http.MethodGet, "/ui/fragments/load_routes", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var u Update
	if err := json.NewDecoder(w.Body).Decode(&u); err != nil {
		t.Fatalf("decoding update: %v", err)
	}
	if len(u.Fragments) != 2 {
		t.Errorf("expected 2 fragments, got %d", len(u.Fragments))
	}
}

func TestFragmentEndpointRunRequiresPost(t *testing.T) {
	backend := &fakeBackend{run: sampleResults()}
	r := setupRouter(setupTest(t, backend))

	req := httptest.NewRequest(http.MethodGet, "/ui/fragments/run_bist", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/ui/fragments/run_bist?testType=dependencies", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var u Update
	if err := json.NewDecoder(w.Body).Decode(&u); err != nil {
		t.Fatalf("decoding update: %v", err)
	}
	if u.ActiveTab != TestTypeDependencies {
		t.Errorf("active tab = %q", u.ActiveTab)
	}
	if backend.runs != 1 {
		t.Errorf("expected 1 run, got %d", backend.runs)
	}
}

func TestFragmentEndpointUnknown(t *testing.T) {
	r := setupRouter(setupTest(t, &fakeBackend{}))

	req := httptest.NewRequest(http.MethodGet, "/ui/fragments/nope", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestDownloadEndpoint(t *testing.T) {
	r := setupRouter(setupTest(t, docsBackend()))

	req := httptest.NewRequest(http.MethodGet, "/ui/docs/download?folder=api", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/markdown") {
		t.Errorf("content type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != "attachment; filename=api_documentation.md" {
		t.Errorf("content disposition = %q", cd)
	}
	if w.Body.String() != "# API\nsummary" {
		t.Errorf("body = %q", w.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/ui/docs/download?folder=missing", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestDownloadEndpointQuotedFilename(t *testing.T) {
	backend := docsBackend()
	backend.docs["my docs"] = map[string]*apiclient.Document{
		apiclient.FormatFullMarkdown: {Content: "# Mine", Filename: "full.md", Size: 6},
	}
	r := setupRouter(setupTest(t, backend))

	req := httptest.NewRequest(http.MethodGet, "/ui/docs/download?folder=my+docs", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != `attachment; filename="my docs_documentation.md"` {
		t.Errorf("content disposition = %q", cd)
	}
}

func TestPageTemplates(t *testing.T) {
	r := setupRouter(setupTest(t, &fakeBackend{}))

	cases := map[string][]string{
		"/ui/":         {"stat-card"},
		"/ui/api-docs": {`id="docsContainer"`, `id="sourceContainer"`},
		"/ui/bist":     {`id="runAllBtn"`, `class="bist-tabs"`},
		"/ui/docs":     {`id="docs-folder-dropdown"`, `id="docs-display"`},
		"/ui/events":   {`id="events-container"`},
	}
	for path, wants := range cases {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, w.Code)
		}
		if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
			t.Errorf("%s: content type = %q", path, ct)
		}
		for _, want := range wants {
			if !strings.Contains(w.Body.String(), want) {
				t.Errorf("%s: expected %s", path, want)
			}
		}
	}
}

func TestRootRedirect(t *testing.T) {
	r := setupRouter(setupTest(t, &fakeBackend{}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound || w.Header().Get("Location") != "/ui/" {
		t.Errorf("expected redirect to /ui/, got %d %q", w.Code, w.Header().Get("Location"))
	}
}

func TestStaticAssets(t *testing.T) {
	r := setupRouter(setupTest(t, &fakeBackend{}))

	for _, path := range []string{"/ui/static/dashboard.js", "/ui/static/style.css"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Errorf("%s: expected 200, got %d", path, w.Code)
		}
	}
}

func dialWS(t *testing.T, r chi.Router) *websocket.Conn {
	t.Helper()
	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ui/ws"
	conn, resp, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	if resp.StatusCode != http.StatusSwitchingProtocols {
		t.Fatalf("expected 101, got %d", resp.StatusCode)
	}

	var hello wsResponse
	if err := conn.ReadJSON(&hello); err != nil {
		t.Fatalf("read: %v", err)
	}
	if hello.Type != "session" || hello.SessionID == "" {
		t.Fatalf("expected session greeting, got %+v", hello)
	}
	return conn
}

func TestWebSocketCommand(t *testing.T) {
	conn := dialWS(t, setupRouter(setupTest(t, &fakeBackend{routes: sampleRoutes()})))

	if err := conn.WriteJSON(Command{ID: "1", Action: ActionLoadRoutes}); err != nil {
		t.Fatalf("write: %v", err)
	}
	var resp wsResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read: %v", err)
	}
	if resp.Type != "update" || resp.ID != "1" || resp.Update == nil {
		t.Fatalf("unexpected response %+v", resp)
	}
	if html, _ := resp.Update.Fragment(targetRoutesStatus); html != "✓ Loaded 2 routes" {
		t.Errorf("status = %q", html)
	}
}

func TestWebSocketUnknownAction(t *testing.T) {
	conn := dialWS(t, setupRouter(setupTest(t, &fakeBackend{})))

	if err := conn.WriteJSON(Command{ID: "7", Action: "explode"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	var resp wsResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read: %v", err)
	}
	if resp.Type != "error" || !strings.Contains(resp.Error, "unknown action") {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestWebSocketInvalidMessage(t *testing.T) {
	conn := dialWS(t, setupRouter(setupTest(t, &fakeBackend{})))

	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatalf("write: %v", err)
	}
	var resp wsResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read: %v", err)
	}
	if resp.Type != "error" || resp.Error != "invalid message format" {
		t.Errorf("unexpected response %+v", resp)
	}
}

// testContext mirrors testing.T.Context (Go 1.24+): a context canceled when
// the test finishes.
func testContext(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	return ctx
}
