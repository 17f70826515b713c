package leaderboard

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog"

	httperr "github.com/sjrf7/crypto-trivia/pkg/http/errors"
)

// HTTPHandler serves ranked standings.
type HTTPHandler struct {
	svc    *Service
	repo   *SnapshotRepo
	logger zerolog.Logger
}

func NewHTTPHandler(svc *Service, repo *SnapshotRepo, logger zerolog.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:    svc,
		repo:   repo,
		logger: logger.With().Str("component", "leaderboard_http").Logger(),
	}
}

// HandleGet serves GET /v1/leaderboards/{window}?limit=N.
func (h *HTTPHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	window := r.PathValue("window")
	if !h.knownWindow(window) {
		httperr.RespondBadRequest(w, httperr.CodeInvalidRequest, "unknown leaderboard window")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			httperr.RespondBadRequest(w, httperr.CodeInvalidRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	standings, err := h.svc.Top(r.Context(), window, limit)
	if err != nil {
		h.logger.Warn().Err(err).Str("window", window).Msg("live leaderboard unavailable, trying snapshot")
		if h.repo != nil {
			if snapshot, snapErr := h.repo.Latest(r.Context(), window); snapErr == nil && snapshot != nil {
				httperr.RespondJSON(w, http.StatusOK, map[string]interface{}{
					"window":   window,
					"entries":  snapshot,
					"snapshot": true,
				})
				return
			}
		}
		httperr.RespondInternalError(w, "leaderboard unavailable")
		return
	}

	httperr.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"window":  window,
		"entries": standings,
	})
}

func (h *HTTPHandler) knownWindow(window string) bool {
	for _, w := range h.svc.Windows() {
		if w == window {
			return true
		}
	}
	return false
}
