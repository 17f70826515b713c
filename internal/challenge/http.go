package challenge

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sjrf7/crypto-trivia/internal/game"
	httperr "github.com/sjrf7/crypto-trivia/pkg/http/errors"
)

// HTTPHandlers exposes challenge sharing and redemption endpoints.
type HTTPHandlers struct {
	codec   *Codec
	manager *game.Manager
	logger  zerolog.Logger
}

func NewHTTPHandlers(codec *Codec, manager *game.Manager, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		codec:   codec,
		manager: manager,
		logger:  logger.With().Str("component", "challenge_http").Logger(),
	}
}

// ShareRequest is the POST /v1/challenges payload.
type ShareRequest struct {
	GameID         string  `json:"game_id"`
	ChallengerName string  `json:"challenger_name"`
	Wager          float64 `json:"wager"`
	Message        string  `json:"message,omitempty"`
}

// Share handles POST /v1/challenges: issue a token for a session.
func (h *HTTPHandlers) Share(w http.ResponseWriter, r *http.Request) {
	var req ShareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperr.RespondBadRequest(w, httperr.CodeInvalidRequest, "invalid JSON payload")
		return
	}
	if req.ChallengerName == "" {
		httperr.RespondBadRequest(w, httperr.CodeInvalidRequest, "challenger_name is required")
		return
	}
	if req.Wager < 0 {
		httperr.RespondBadRequest(w, httperr.CodeInvalidRequest, "wager cannot be negative")
		return
	}

	id, err := uuid.Parse(req.GameID)
	if err != nil {
		httperr.RespondBadRequest(w, httperr.CodeInvalidRequest, "invalid game id")
		return
	}
	session, ok := h.manager.Get(id)
	if !ok {
		httperr.RespondNotFound(w, httperr.CodeNotFound, "game not found")
		return
	}

	seed := session.ChallengeSeed()
	invite := Invite{
		ChallengerName: req.ChallengerName,
		Wager:          req.Wager,
		Message:        req.Message,
	}

	var token string
	switch seed.Mode {
	case game.ModeAI:
		token, err = h.codec.EncodeAI(r.Context(), Payload{Topic: seed.Topic, Questions: seed.Questions}, seed.Score, invite)
	default:
		token, err = h.codec.EncodeClassic(seed.Refs, seed.Score, invite)
	}
	if err != nil {
		if errors.Is(err, ErrStoreUnavailable) {
			httperr.RespondError(w, http.StatusServiceUnavailable, httperr.CodeStoreUnavailable, "challenge storage unavailable")
			return
		}
		h.logger.Error().Err(err).Msg("challenge encode failed")
		httperr.RespondInternalError(w, "could not create challenge")
		return
	}

	challengesEncoded.WithLabelValues(seed.Mode).Inc()
	httperr.RespondJSON(w, http.StatusCreated, map[string]string{"token": token})
}

// preview is the decoded challenge without answer material.
type preview struct {
	Kind           Kind    `json:"kind"`
	Topic          string  `json:"topic,omitempty"`
	QuestionCount  int     `json:"question_count"`
	ScoreToBeat    int     `json:"score_to_beat"`
	Wager          float64 `json:"wager"`
	ChallengerName string  `json:"challenger_name"`
	Message        string  `json:"message,omitempty"`
}

// Preview handles GET /v1/challenges/{token}: validate and describe a token.
func (h *HTTPHandlers) Preview(w http.ResponseWriter, r *http.Request) {
	ch, ok := h.decode(w, r)
	if !ok {
		return
	}
	httperr.RespondJSON(w, http.StatusOK, preview{
		Kind:           ch.Kind,
		Topic:          ch.Topic,
		QuestionCount:  len(ch.Questions),
		ScoreToBeat:    ch.ScoreToBeat,
		Wager:          ch.Wager,
		ChallengerName: ch.ChallengerName,
		Message:        ch.Message,
	})
}

// AcceptRequest is the POST /v1/challenges/{token}/accept payload.
type AcceptRequest struct {
	PlayerName string `json:"player_name"`
}

// Accept handles POST /v1/challenges/{token}/accept: start the duel replay.
func (h *HTTPHandlers) Accept(w http.ResponseWriter, r *http.Request) {
	ch, ok := h.decode(w, r)
	if !ok {
		return
	}

	var req AcceptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperr.RespondBadRequest(w, httperr.CodeInvalidRequest, "invalid JSON payload")
		return
	}

	mode := game.ModeClassic
	if ch.Kind == KindAI {
		mode = game.ModeAI
	}
	session, err := h.manager.CreateReplaySession(r.Context(), mode, ch.Topic, ch.Questions, req.PlayerName)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to start replay session")
		httperr.RespondInternalError(w, "could not start duel")
		return
	}

	httperr.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"score_to_beat": ch.ScoreToBeat,
		"wager":         ch.Wager,
		"challenger":    ch.ChallengerName,
		"state":         session.Snapshot(),
	})
}

func (h *HTTPHandlers) decode(w http.ResponseWriter, r *http.Request) (*Challenge, bool) {
	token := r.PathValue("token")
	ch, err := h.codec.Decode(r.Context(), token)
	if err != nil {
		decodeFailures.Inc()
		// Malformed tokens and missing payloads both read as "content not
		// found" to the visiting player.
		if errors.Is(err, ErrChallengeNotFound) || errors.Is(err, ErrMalformedToken) {
			httperr.RespondNotFound(w, httperr.CodeChallengeNotFound, "challenge not found")
			return nil, false
		}
		h.logger.Error().Err(err).Msg("challenge decode failed")
		httperr.RespondInternalError(w, "could not decode challenge")
		return nil, false
	}
	challengesDecoded.WithLabelValues(string(ch.Kind)).Inc()
	return ch, true
}
