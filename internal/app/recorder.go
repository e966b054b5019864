package app

import (
	"context"
	"log/slog"
	"time"

	"example.com/codeduel/internal/game"
	"example.com/codeduel/internal/store"
)

// resultRecorder fans a finished match out to the Redis archive and the
// Postgres stats/results tables. It runs off the match's lock in its own
// goroutine: recording is bookkeeping, never part of the turn path, and a
// storage hiccup must not fail a game. Errors are logged and dropped.
type resultRecorder struct {
	log     *slog.Logger
	stats   *store.StatsStore
	results *store.ResultsStore
	archive game.MatchArchive
	timeout time.Duration
}

func (r *resultRecorder) record(res game.MatchResult) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		if err := r.archive.SaveResult(ctx, res); err != nil {
			r.log.Warn("archive match result", "match", res.MatchID, "err", err)
		}
		if err := r.stats.RecordWin(ctx, res.WinnerName); err != nil {
			r.log.Warn("record win", "match", res.MatchID, "err", err)
		}
		if err := r.stats.RecordLoss(ctx, res.LoserName); err != nil {
			r.log.Warn("record loss", "match", res.MatchID, "err", err)
		}
		if err := r.results.Insert(ctx, store.MatchRow{
			MatchID:        res.MatchID,
			RoomCode:       res.RoomCode,
			WinnerName:     res.WinnerName,
			LoserName:      res.LoserName,
			WinnerAttempts: res.WinnerAttempts,
			FinishedAt:     res.FinishedAt,
		}); err != nil {
			r.log.Warn("insert match result", "match", res.MatchID, "err", err)
		}
	}()
}
