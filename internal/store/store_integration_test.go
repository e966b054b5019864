//go:build integration

package store

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, url)
	require.NoError(t, err)
	require.NoError(t, pool.Ping(ctx), "postgres is not reachable")
	t.Cleanup(pool.Close)
	return pool
}

func TestStatsStore_WinLossTally(t *testing.T) {
	ctx := context.Background()
	stats := NewStatsStore(newTestPool(t))

	// random name keeps runs independent on a shared database
	name := "it-" + uuid.NewString()

	st, err := stats.Get(ctx, name)
	require.NoError(t, err)
	assert.Equal(t, PlayerStats{Name: name}, st, "unknown player reads as zeroes")

	require.NoError(t, stats.RecordWin(ctx, name))
	require.NoError(t, stats.RecordWin(ctx, name))
	require.NoError(t, stats.RecordLoss(ctx, name))

	st, err = stats.Get(ctx, name)
	require.NoError(t, err)
	assert.Equal(t, 2, st.Wins)
	assert.Equal(t, 1, st.Losses)
	assert.False(t, st.UpdatedAt.IsZero())
}

func TestResultsStore_InsertAndRecent(t *testing.T) {
	ctx := context.Background()
	results := NewResultsStore(newTestPool(t))

	winner := "it-" + uuid.NewString()
	loser := "it-" + uuid.NewString()

	base := time.Now().UTC().Truncate(time.Microsecond)
	for i := 0; i < 3; i++ {
		require.NoError(t, results.Insert(ctx, MatchRow{
			MatchID:        uuid.NewString(),
			RoomCode:       fmt.Sprintf("room%d", i),
			WinnerName:     winner,
			LoserName:      loser,
			WinnerAttempts: i + 1,
			FinishedAt:     base.Add(time.Duration(i) * time.Minute),
		}))
	}

	got, err := results.RecentByName(ctx, winner, 10)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "room2", got[0].RoomCode, "newest first")
	assert.Equal(t, "room0", got[2].RoomCode)

	// the loser sees the same matches
	got, err = results.RecentByName(ctx, loser, 10)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, err = results.RecentByName(ctx, winner, 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = results.RecentByName(ctx, "it-"+uuid.NewString(), 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}
