package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/tmarek/nutrilog/backend/internal/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // CORS is enforced upstream
}

const (
	streamPingInterval = 25 * time.Second
	streamWriteTimeout = 10 * time.Second
)

// Stream upgrades to a websocket subscription: the current snapshot is
// pushed immediately, then once per mutation, until the client disconnects.
func (h *EntryHandler) Stream(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	// Snapshots are handed off through a one-slot mailbox so the socket write
	// never runs on the mutating goroutine. A client that stops reading only
	// stalls its own writer; intermediate snapshots it missed are superseded
	// by the latest one anyway.
	snapshots := make(chan []models.LogEntry, 1)
	push := func(entries []models.LogEntry) {
		for {
			select {
			case snapshots <- entries:
				return
			default:
				select {
				case <-snapshots:
				default:
				}
			}
		}
	}

	sub, err := h.entries.Subscribe(c.Request.Context(), userID, push)
	if err != nil {
		_ = conn.Close()
		return
	}
	defer sub.Unsubscribe()

	done := make(chan struct{})
	defer close(done)
	go func() {
		// pings keep connections alive through proxies
		t := time.NewTicker(streamPingInterval)
		defer t.Stop()
		for {
			select {
			case <-done:
				return
			case entries := <-snapshots:
				_ = conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
				if err := conn.WriteJSON(gin.H{"kind": "entries.snapshot", "entries": entries}); err != nil {
					_ = conn.Close()
					return
				}
			case <-t.C:
				if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(5*time.Second)); err != nil {
					return
				}
			}
		}
	}()

	// read loop ends on client close/error
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			_ = conn.Close()
			return
		}
	}
}
