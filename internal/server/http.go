package server

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/sjrf7/crypto-trivia/internal/challenge"
	"github.com/sjrf7/crypto-trivia/internal/config"
	"github.com/sjrf7/crypto-trivia/internal/game"
	"github.com/sjrf7/crypto-trivia/internal/leaderboard"
)

// Handlers groups the route handlers wired into the API server.
type Handlers struct {
	Game        *game.HTTPHandlers
	GameWS      *game.WSHandler
	Challenge   *challenge.HTTPHandlers
	Leaderboard *leaderboard.HTTPHandler
}

// NewHTTPServer wires all routes for the API service.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, pool *pgxpool.Pool, redisClient *redis.Client, h Handlers) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /v1/ping", func(w http.ResponseWriter, r *http.Request) {
		if err := pingDependencies(r.Context(), pool, redisClient); err != nil {
			logger.Error().Err(err).Msg("dependency ping failed")
			http.Error(w, "upstream error", http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pong":true}`))
	})

	// Game sessions
	mux.HandleFunc("POST /v1/games", h.Game.CreateGame)
	mux.HandleFunc("GET /v1/games/{id}", h.Game.GetGame)
	mux.HandleFunc("POST /v1/games/{id}/answers", h.Game.SubmitAnswer)
	mux.HandleFunc("POST /v1/games/{id}/powerups", h.Game.UsePowerUp)
	mux.HandleFunc("POST /v1/games/{id}/restart", h.Game.RestartGame)
	mux.HandleFunc("DELETE /v1/games/{id}", h.Game.DeleteGame)
	mux.HandleFunc("GET /ws/games/{id}", h.GameWS.HandleStream)

	// Challenges (duels)
	mux.HandleFunc("POST /v1/challenges", h.Challenge.Share)
	mux.HandleFunc("GET /v1/challenges/{token}", h.Challenge.Preview)
	mux.HandleFunc("POST /v1/challenges/{token}/accept", h.Challenge.Accept)

	// Leaderboards
	mux.HandleFunc("GET /v1/leaderboards/{window}", h.Leaderboard.HandleGet)

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: mux,
	}
}

func pingDependencies(ctx context.Context, pool *pgxpool.Pool, redisClient *redis.Client) error {
	if err := pool.Ping(ctx); err != nil {
		return err
	}
	return redisClient.Ping(ctx).Err()
}
