package dashboard

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Actions understood by Dispatch.
const (
	ActionLoadRoutes   = "load_routes"
	ActionLoadSource   = "load_source"
	ActionLoadBIST     = "load_bist"
	ActionRunBIST      = "run_bist"
	ActionLoadFolders  = "load_folders"
	ActionSelectFolder = "select_folder"
	ActionLoadEvents   = "load_events"
)

// Command is one user action. It carries every parameter the action
// needs.
type Command struct {
	ID       string `json:"id,omitempty"`
	Action   string `json:"action"`
	Folder   string `json:"folder,omitempty"`
	TestType string `json:"test_type,omitempty"`
}

// Session is the state of one open page. It lives as long as the
// WebSocket connection and is discarded on reload.
type Session struct {
	ID string

	mu   sync.Mutex
	docs DocsView
}

// NewSession creates an empty page session.
func NewSession() *Session {
	return &Session{ID: uuid.New().String()}
}

// Docs returns a snapshot of the session's documentation view.
func (s *Session) Docs() DocsView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.docs
}

func (s *Session) setDocs(v DocsView) {
	s.mu.Lock()
	s.docs = v
	s.mu.Unlock()
}

type handlerFunc func(d *Dashboard, ctx context.Context, s *Session, cmd Command) Update

var commands = map[string]handlerFunc{
	ActionLoadRoutes: func(d *Dashboard, ctx context.Context, _ *Session, _ Command) Update {
		return d.LoadRoutes(ctx)
	},
	ActionLoadSource: func(d *Dashboard, ctx context.Context, _ *Session, _ Command) Update {
		return d.LoadSource(ctx)
	},
	ActionLoadBIST: func(d *Dashboard, ctx context.Context, _ *Session, _ Command) Update {
		return d.LoadBIST(ctx)
	},
	ActionRunBIST: func(d *Dashboard, ctx context.Context, _ *Session, cmd Command) Update {
		return d.RunBIST(ctx, cmd.TestType)
	},
	ActionLoadFolders: func(d *Dashboard, ctx context.Context, s *Session, _ Command) Update {
		view, u := d.LoadFolders(ctx, s.Docs())
		s.setDocs(view)
		return u
	},
	ActionSelectFolder: func(d *Dashboard, ctx context.Context, s *Session, cmd Command) Update {
		view, u := d.SelectFolder(ctx, s.Docs(), cmd.Folder)
		s.setDocs(view)
		return u
	},
	ActionLoadEvents: func(d *Dashboard, ctx context.Context, _ *Session, _ Command) Update {
		return d.LoadEvents(ctx)
	},
}

// Dispatch runs cmd against the session. Commands on one session may run
// concurrently; the last one to finish owns the docs view.
func (d *Dashboard) Dispatch(ctx context.Context, s *Session, cmd Command) (Update, error) {
	h, ok := commands[cmd.Action]
	if !ok {
		return Update{}, fmt.Errorf("unknown action %q", cmd.Action)
	}
	if cmd.Action == ActionRunBIST && cmd.TestType != "" && !ValidTestType(cmd.TestType) {
		return Update{}, fmt.Errorf("unknown test type %q", cmd.TestType)
	}
	return h(d, ctx, s, cmd), nil
}
