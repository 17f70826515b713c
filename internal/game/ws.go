package game

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO: restrict origins once the web client's domain is fixed
		return true
	},
}

// WSHandler streams session snapshots over a WebSocket so the UI can follow
// clock ticks and state changes without polling.
type WSHandler struct {
	manager *Manager
	logger  zerolog.Logger
}

func NewWSHandler(manager *Manager, logger zerolog.Logger) *WSHandler {
	return &WSHandler{
		manager: manager,
		logger:  logger.With().Str("component", "game_ws").Logger(),
	}
}

// HandleStream handles GET /ws/games/{id}.
func (h *WSHandler) HandleStream(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid game id", http.StatusBadRequest)
		return
	}
	session, ok := h.manager.Get(id)
	if !ok {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}

	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	snapshots, cancel := session.Subscribe()
	defer cancel()

	// Send the current state immediately so the client doesn't wait a tick.
	if err := conn.WriteJSON(session.Snapshot()); err != nil {
		return
	}

	// Drain reads so close frames are processed.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	for snap := range snapshots {
		if err := conn.WriteJSON(snap); err != nil {
			return
		}
		if snap.State == StateSummary || snap.State == StateError {
			return
		}
	}
}
