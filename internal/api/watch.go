package api

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/terra-clan/career-assessment/internal/models"
)

const watchWriteTimeout = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WatchMessage is one frame of the student session feed
type WatchMessage struct {
	Type    string                 `json:"type"`
	Session *models.StudentSession `json:"session,omitempty"`
	Data    string                 `json:"data,omitempty"`
}

// handleWatchStudentSession streams a snapshot on every state transition
// until the client disconnects or the session is closed.
func (s *Server) handleWatchStudentSession(w http.ResponseWriter, r *http.Request) {
	session := StudentFromContext(r.Context())

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("failed to upgrade to websocket", "error", err)
		return
	}
	defer conn.Close()

	updates, unsubscribe := session.Subscribe()
	defer unsubscribe()

	slog.Info("watch websocket connected", "session_id", session.ID())

	done := make(chan struct{})
	var once sync.Once
	stop := func() { once.Do(func() { close(done) }) }

	// Drain client frames so close and ping control messages are handled
	go func() {
		defer stop()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					slog.Debug("websocket read error", "error", err)
				}
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			slog.Info("watch websocket disconnected", "session_id", session.ID())
			return
		case snap, ok := <-updates:
			if !ok {
				s.sendWatchMessage(conn, WatchMessage{Type: "closed", Data: "session closed"})
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session closed"),
					time.Now().Add(watchWriteTimeout))
				return
			}
			if err := s.sendWatchMessage(conn, WatchMessage{Type: "state", Session: &snap}); err != nil {
				return
			}
		}
	}
}

func (s *Server) sendWatchMessage(conn *websocket.Conn, msg WatchMessage) error {
	_ = conn.SetWriteDeadline(time.Now().Add(watchWriteTimeout))
	if err := conn.WriteJSON(msg); err != nil {
		slog.Debug("failed to send watch message", "error", err)
		return err
	}
	return nil
}
