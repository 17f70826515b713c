package leaderboard

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// SnapshotWorker periodically persists Redis leaderboards into Postgres.
type SnapshotWorker struct {
	svc      *Service
	repo     *SnapshotRepo
	logger   zerolog.Logger
	interval time.Duration
	topN     int
}

func NewSnapshotWorker(svc *Service, repo *SnapshotRepo, interval time.Duration, topN int, logger zerolog.Logger) *SnapshotWorker {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	if topN <= 0 {
		topN = 50
	}
	return &SnapshotWorker{
		svc:      svc,
		repo:     repo,
		logger:   logger.With().Str("component", "leaderboard_snapshot_worker").Logger(),
		interval: interval,
		topN:     topN,
	}
}

// Run blocks until context cancellation.
func (w *SnapshotWorker) Run(ctx context.Context) error {
	if w.svc == nil || w.repo == nil {
		return nil
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// run immediately
	w.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *SnapshotWorker) tick(ctx context.Context) {
	for _, window := range w.svc.Windows() {
		if err := w.snapshotWindow(ctx, window); err != nil {
			w.logger.Warn().Err(err).Str("window", window).Msg("snapshot failed")
		}
	}
}

func (w *SnapshotWorker) snapshotWindow(ctx context.Context, window string) error {
	standings, err := w.svc.Top(ctx, window, w.topN)
	if err != nil {
		return err
	}
	if len(standings) == 0 {
		return nil
	}

	now := time.Now().UTC()
	if err := w.repo.Insert(ctx, window, now, standings); err != nil {
		return err
	}

	w.logger.Info().
		Str("window", window).
		Int("entries", len(standings)).
		Time("generated_at", now).
		Msg("leaderboard snapshot persisted")

	return nil
}
