package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/sjrf7/crypto-trivia/internal/challenge"
	"github.com/sjrf7/crypto-trivia/internal/config"
	"github.com/sjrf7/crypto-trivia/internal/game"
	"github.com/sjrf7/crypto-trivia/internal/leaderboard"
	"github.com/sjrf7/crypto-trivia/internal/logging"
	"github.com/sjrf7/crypto-trivia/internal/question"
	"github.com/sjrf7/crypto-trivia/internal/question/ai"
	"github.com/sjrf7/crypto-trivia/internal/server"
)

// Application aggregates shared infrastructure (DB, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool  *pgxpool.Pool
	redis *redis.Client
	http  *http.Server

	snapshotWorker *leaderboard.SnapshotWorker
	bgCancels      []context.CancelFunc
}

// New bootstraps config, logger, Postgres, Redis and the HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Msg("starting application bootstrap")

	connString := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s pool_max_conns=10",
		cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Database, cfg.Postgres.SSLMode)

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})

	// Leaderboard
	leaderboardSvc := leaderboard.NewService(redisClient, logger, leaderboard.ServiceOptions{
		TopN: cfg.Leaderboard.SnapshotTopN,
	})
	snapshotRepo := leaderboard.NewSnapshotRepo(pool)
	var snapshotWorker *leaderboard.SnapshotWorker
	if interval := cfg.Leaderboard.SnapshotInterval; interval > 0 {
		snapshotWorker = leaderboard.NewSnapshotWorker(leaderboardSvc, snapshotRepo, interval, cfg.Leaderboard.SnapshotTopN, logger)
	}

	// Question sources
	bank := question.ClassicBank()
	var source question.Source
	if cfg.AI.GeneratorURL != "" {
		source = ai.NewGenerator(ai.Config{
			GeneratorURL: cfg.AI.GeneratorURL,
			GeneratorKey: cfg.AI.GeneratorKey,
			Timeout:      cfg.AI.HTTPTimeout,
		}, logger)
	} else {
		logger.Warn().Msg("AI generator not configured; ai games disabled")
	}

	// Sessions
	gameCfg := game.Config{
		QuestionCount: cfg.Game.QuestionCount,
		TimerSeconds:  cfg.Game.TimerSeconds,
		Reward:        cfg.Game.Reward,
		BoostSeconds:  cfg.Game.BoostSeconds,
		TickInterval:  time.Second,
	}
	recordResult := func(result game.Result) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := leaderboardSvc.RecordResult(ctx, leaderboard.RecordRequest{
			PlayerName:    result.PlayerName,
			Score:         result.Score,
			CorrectCount:  result.CorrectCount,
			QuestionCount: result.QuestionCount,
		})
		if err != nil {
			logger.Warn().Err(err).Str("player", result.PlayerName).Msg("failed to record leaderboard result")
		}
	}
	manager := game.NewManager(gameCfg, source, bank, recordResult, logger)

	// Challenges
	store := challenge.NewRedisStore(redisClient, cfg.Challenge.StoreTTL, logger)
	codec := challenge.NewCodec(bank, store, logger)

	handlers := server.Handlers{
		Game:        game.NewHTTPHandlers(manager, logger),
		GameWS:      game.NewWSHandler(manager, logger),
		Challenge:   challenge.NewHTTPHandlers(codec, manager, logger),
		Leaderboard: leaderboard.NewHTTPHandler(leaderboardSvc, snapshotRepo, logger),
	}
	apiServer := server.NewHTTPServer(cfg, logger, pool, redisClient, handlers)

	return &Application{
		cfg:            cfg,
		logger:         logger,
		pool:           pool,
		redis:          redisClient,
		http:           apiServer,
		snapshotWorker: snapshotWorker,
		bgCancels:      make([]context.CancelFunc, 0, 1),
	}, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	a.startBackgroundWorkers(ctx)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	for _, cancel := range a.bgCancels {
		cancel()
	}

	a.pool.Close()
	if err := a.redis.Close(); err != nil {
		a.logger.Error().Err(err).Msg("redis shutdown error")
	}

	a.logger.Info().Msg("shutdown complete")
	return nil
}

func (a *Application) startBackgroundWorkers(ctx context.Context) {
	if a.snapshotWorker != nil {
		bgCtx, cancel := context.WithCancel(ctx)
		a.bgCancels = append(a.bgCancels, cancel)
		go func() {
			if err := a.snapshotWorker.Run(bgCtx); err != nil && err != context.Canceled {
				a.logger.Warn().Err(err).Msg("leaderboard snapshot worker stopped")
			}
		}()
	}
}
