package game

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sjrf7/crypto-trivia/internal/question"
	httperr "github.com/sjrf7/crypto-trivia/pkg/http/errors"
)

// HTTPHandlers provides REST endpoints for session operations.
type HTTPHandlers struct {
	manager *Manager
	logger  zerolog.Logger
}

func NewHTTPHandlers(manager *Manager, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		manager: manager,
		logger:  logger.With().Str("component", "game_http").Logger(),
	}
}

// CreateGameRequest is the POST /v1/games payload.
type CreateGameRequest struct {
	Mode       string `json:"mode"`
	Topic      string `json:"topic,omitempty"`
	PlayerName string `json:"player_name"`
}

// CreateGame handles POST /v1/games.
func (h *HTTPHandlers) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperr.RespondBadRequest(w, httperr.CodeInvalidRequest, "invalid JSON payload")
		return
	}
	if req.Mode != ModeClassic && req.Mode != ModeAI {
		httperr.RespondBadRequest(w, httperr.CodeInvalidRequest, "mode must be classic or ai")
		return
	}
	if req.Mode == ModeAI && req.Topic == "" {
		httperr.RespondBadRequest(w, httperr.CodeInvalidRequest, "topic is required for ai games")
		return
	}

	session, err := h.manager.CreateSession(r.Context(), req.Mode, req.Topic, req.PlayerName)
	if err != nil {
		var genErr *question.GenerationError
		if errors.As(err, &genErr) {
			h.logger.Warn().Err(err).Str("topic", req.Topic).Msg("question acquisition failed")
			httperr.RespondError(w, http.StatusBadGateway, httperr.CodeGenerationFailed, "could not generate questions")
			return
		}
		h.logger.Error().Err(err).Msg("failed to create session")
		httperr.RespondInternalError(w, "could not start game")
		return
	}

	httperr.RespondJSON(w, http.StatusCreated, session.Snapshot())
}

// GetGame handles GET /v1/games/{id}.
func (h *HTTPHandlers) GetGame(w http.ResponseWriter, r *http.Request) {
	session, ok := h.lookup(w, r)
	if !ok {
		return
	}
	httperr.RespondJSON(w, http.StatusOK, session.Snapshot())
}

// AnswerRequest is the POST /v1/games/{id}/answers payload.
type AnswerRequest struct {
	Option string `json:"option"`
}

// SubmitAnswer handles POST /v1/games/{id}/answers.
func (h *HTTPHandlers) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	session, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperr.RespondBadRequest(w, httperr.CodeInvalidRequest, "invalid JSON payload")
		return
	}

	outcome := session.SubmitAnswer(req.Option)
	httperr.RespondJSON(w, http.StatusOK, outcome)
}

// PowerUpRequest is the POST /v1/games/{id}/powerups payload.
type PowerUpRequest struct {
	Kind PowerUpKind `json:"kind"`
}

// UsePowerUp handles POST /v1/games/{id}/powerups.
func (h *HTTPHandlers) UsePowerUp(w http.ResponseWriter, r *http.Request) {
	session, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req PowerUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperr.RespondBadRequest(w, httperr.CodeInvalidRequest, "invalid JSON payload")
		return
	}

	applied := session.UsePowerUp(req.Kind)
	httperr.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"applied": applied,
		"state":   session.Snapshot(),
	})
}

// RestartGame handles POST /v1/games/{id}/restart.
func (h *HTTPHandlers) RestartGame(w http.ResponseWriter, r *http.Request) {
	session, ok := h.lookup(w, r)
	if !ok {
		return
	}

	if err := session.Restart(r.Context()); err != nil {
		var genErr *question.GenerationError
		if errors.As(err, &genErr) {
			httperr.RespondError(w, http.StatusBadGateway, httperr.CodeGenerationFailed, "could not generate questions")
			return
		}
		httperr.RespondInternalError(w, "could not restart game")
		return
	}
	httperr.RespondJSON(w, http.StatusOK, session.Snapshot())
}

// DeleteGame handles DELETE /v1/games/{id}: explicit unmount.
func (h *HTTPHandlers) DeleteGame(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httperr.RespondBadRequest(w, httperr.CodeInvalidRequest, "invalid game id")
		return
	}
	h.manager.Remove(id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *HTTPHandlers) lookup(w http.ResponseWriter, r *http.Request) (*Session, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httperr.RespondBadRequest(w, httperr.CodeInvalidRequest, "invalid game id")
		return nil, false
	}
	session, ok := h.manager.Get(id)
	if !ok {
		httperr.RespondNotFound(w, httperr.CodeNotFound, "game not found")
		return nil, false
	}
	return session, true
}
