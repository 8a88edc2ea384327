package handlers

import (
	"net/http"
	"time"

	"github.com/Nitingarg01/Major-project-sub001/internal/models"
	"github.com/Nitingarg01/Major-project-sub001/internal/sessions"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	streamWriteWait  = 10 * time.Second
	streamPongWait   = 60 * time.Second
	streamPingPeriod = streamPongWait * 9 / 10
)

// StreamHandler pushes session events to websocket clients.
type StreamHandler struct {
	manager  *sessions.Manager
	upgrader websocket.Upgrader
	logger   *zap.Logger

	// afterSubscribe runs between subscribing and taking the snapshot.
	afterSubscribe func()
}

func NewStreamHandler(manager *sessions.Manager, logger *zap.Logger) *StreamHandler {
	return &StreamHandler{
		manager:  manager,
		upgrader: websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }},
		logger:   logger,
	}
}

// Stream handles GET /api/v1/sessions/{id}/stream. The first frame is a
// snapshot of the session; later frames are events as they happen.
func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	// resolve before upgrading so unknown sessions get a plain 404. The
	// subscription must exist before the snapshot is taken or an event
	// published in between is lost.
	events, cancel, err := h.manager.Subscribe(r.Context(), id)
	if err != nil {
		writeSessionError(w, h.logger, err)
		return
	}
	defer cancel()

	if h.afterSubscribe != nil {
		h.afterSubscribe()
	}
	s, err := h.manager.Get(r.Context(), id)
	if err != nil {
		writeSessionError(w, h.logger, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.String("session_id", id), zap.Error(err))
		return
	}
	defer conn.Close()

	// reader: only control frames are expected; a read error means the
	// client went away
	closed := make(chan struct{})
	conn.SetReadDeadline(time.Now().Add(streamPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(streamPongWait))
	})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := h.write(conn, sessions.Event{Type: sessions.EventSnapshot, Session: s}); err != nil {
		return
	}
	if s.State == models.SessionFinished {
		h.flushFinished(conn, events)
		return
	}

	ticker := time.NewTicker(streamPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if err := h.write(conn, ev); err != nil {
				return
			}
			if ev.Type == sessions.EventSessionFinished {
				closeFinished(conn)
				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(streamWriteWait)); err != nil {
				return
			}
		}
	}
}

// flushFinished forwards whatever is already buffered for a session that
// finished before the snapshot was taken, then closes the stream.
func (h *StreamHandler) flushFinished(conn *websocket.Conn, events <-chan sessions.Event) {
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				closeFinished(conn)
				return
			}
			if err := h.write(conn, ev); err != nil {
				return
			}
		default:
			closeFinished(conn)
			return
		}
	}
}

func closeFinished(conn *websocket.Conn) {
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session finished"),
		time.Now().Add(streamWriteWait))
}

func (h *StreamHandler) write(conn *websocket.Conn, ev sessions.Event) error {
	conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
	if err := conn.WriteJSON(ev); err != nil {
		h.logger.Debug("stream write failed", zap.String("session_id", ev.Session.ID), zap.Error(err))
		return err
	}
	return nil
}
