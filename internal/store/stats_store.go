package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PlayerStats is a per-display-name win/loss tally. Player identity is
// ephemeral (a fresh id per connection), so the display name is the only
// stable key available.
type PlayerStats struct {
	Name      string
	Wins      int
	Losses    int
	UpdatedAt time.Time
}

type StatsStore struct {
	db *pgxpool.Pool
}

func NewStatsStore(db *pgxpool.Pool) *StatsStore {
	return &StatsStore{db: db}
}

func (s *StatsStore) RecordWin(ctx context.Context, name string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO player_stats (name, wins, losses)
		VALUES ($1, 1, 0)
		ON CONFLICT (name) DO UPDATE
		SET wins = player_stats.wins + 1, updated_at = now()
	`, name)
	return err
}

func (s *StatsStore) RecordLoss(ctx context.Context, name string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO player_stats (name, wins, losses)
		VALUES ($1, 0, 1)
		ON CONFLICT (name) DO UPDATE
		SET losses = player_stats.losses + 1, updated_at = now()
	`, name)
	return err
}

func (s *StatsStore) Get(ctx context.Context, name string) (PlayerStats, error) {
	var st PlayerStats
	err := s.db.QueryRow(ctx, `
		SELECT name, wins, losses, updated_at
		FROM player_stats
		WHERE name = $1
	`, name).Scan(&st.Name, &st.Wins, &st.Losses, &st.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		// never played: zeroes, not an error
		return PlayerStats{Name: name}, nil
	}
	if err != nil {
		return PlayerStats{}, err
	}
	return st, nil
}
