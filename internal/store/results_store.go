package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// MatchRow is one finished match as persisted. The store keeps its own row
// type so the schema can evolve without touching the engine.
type MatchRow struct {
	MatchID        string
	RoomCode       string
	WinnerName     string
	LoserName      string
	WinnerAttempts int
	FinishedAt     time.Time
}

type ResultsStore struct {
	db *pgxpool.Pool
}

func NewResultsStore(db *pgxpool.Pool) *ResultsStore {
	return &ResultsStore{db: db}
}

func (s *ResultsStore) Insert(ctx context.Context, row MatchRow) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO match_results (match_id, room_code, winner_name, loser_name, winner_attempts, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, row.MatchID, row.RoomCode, row.WinnerName, row.LoserName, row.WinnerAttempts, row.FinishedAt)
	return err
}

// RecentByName lists a player's latest finished matches, newest first.
func (s *ResultsStore) RecentByName(ctx context.Context, name string, limit int) ([]MatchRow, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(ctx, `
		SELECT match_id, room_code, winner_name, loser_name, winner_attempts, finished_at
		FROM match_results
		WHERE winner_name = $1 OR loser_name = $1
		ORDER BY finished_at DESC
		LIMIT $2
	`, name, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MatchRow
	for rows.Next() {
		var row MatchRow
		if err := rows.Scan(&row.MatchID, &row.RoomCode, &row.WinnerName, &row.LoserName, &row.WinnerAttempts, &row.FinishedAt); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
