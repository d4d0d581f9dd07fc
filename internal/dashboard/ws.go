package dashboard

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsResponse is the outgoing WebSocket message format.
type wsResponse struct {
	Type      string  `json:"type"` // "session", "update" or "error"
	SessionID string  `json:"session_id"`
	ID        string  `json:"id,omitempty"`
	Action    string  `json:"action,omitempty"`
	Update    *Update `json:"update,omitempty"`
	Error     string  `json:"error,omitempty"`
}

// wsConn serializes writes; gorilla allows one concurrent writer.
type wsConn struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsConn) send(resp wsResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.WriteJSON(resp); err != nil {
		log.Printf("dashboard: websocket write: %v", err)
	}
}

func (d *Dashboard) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("dashboard: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(context.Background())
	var wg sync.WaitGroup
	defer func() {
		cancel()
		wg.Wait()
	}()

	sess := NewSession()
	c := &wsConn{conn: conn}
	c.send(wsResponse{Type: "session", SessionID: sess.ID})

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("dashboard: websocket read: %v", err)
			}
			return
		}

		var cmd Command
		if err := json.Unmarshal(msg, &cmd); err != nil {
			c.send(wsResponse{Type: "error", SessionID: sess.ID, Error: "invalid message format"})
			continue
		}

		// Commands run concurrently; a slow fetch must not hold up other panels.
		wg.Add(1)
		go func(cmd Command) {
			defer wg.Done()
			u, err := d.Dispatch(ctx, sess, cmd)
			if err != nil {
				c.send(wsResponse{Type: "error", SessionID: sess.ID, ID: cmd.ID, Action: cmd.Action, Error: err.Error()})
				return
			}
			c.send(wsResponse{Type: "update", SessionID: sess.ID, ID: cmd.ID, Action: cmd.Action, Update: &u})
		}(cmd)
	}
}
