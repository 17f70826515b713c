package leaderboard

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SnapshotRepo persists periodic leaderboard snapshots to Postgres so
// standings survive Redis restarts and window expiry.
type SnapshotRepo struct {
	pool *pgxpool.Pool
}

func NewSnapshotRepo(pool *pgxpool.Pool) *SnapshotRepo {
	return &SnapshotRepo{pool: pool}
}

// Insert stores one window snapshot as a JSON document.
func (r *SnapshotRepo) Insert(ctx context.Context, window string, generatedAt time.Time, standings []Standing) error {
	entries, err := json.Marshal(standings)
	if err != nil {
		return err
	}

	query := `INSERT INTO leaderboard_snapshots (time_window, generated_at, entries)
		VALUES ($1, $2, $3)`

	_, err = r.pool.Exec(ctx, query, window, generatedAt, entries)
	return err
}

// Latest returns the most recent snapshot for a window, or nil if none.
func (r *SnapshotRepo) Latest(ctx context.Context, window string) ([]Standing, error) {
	query := `SELECT entries FROM leaderboard_snapshots
		WHERE time_window = $1 ORDER BY generated_at DESC LIMIT 1`

	var entries []byte
	if err := r.pool.QueryRow(ctx, query, window).Scan(&entries); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	var standings []Standing
	if err := json.Unmarshal(entries, &standings); err != nil {
		return nil, err
	}
	return standings, nil
}
