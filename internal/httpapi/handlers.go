package httpapi

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"example.com/codeduel/internal/game"
	"example.com/codeduel/internal/store"
)

// MatchHistory looks up a player's persisted matches by display name.
type MatchHistory interface {
	RecentByName(ctx context.Context, name string, limit int) ([]store.MatchRow, error)
}

// ResultsHandler serves finished matches: the capped recent archive by
// default, or one player's history when the request names them.
type ResultsHandler struct {
	Archive game.MatchArchive
	History MatchHistory
}

type resultItem struct {
	MatchID        string    `json:"matchId"`
	RoomCode       string    `json:"roomCode"`
	WinnerName     string    `json:"winnerName"`
	LoserName      string    `json:"loserName"`
	WinnerAttempts int       `json:"winnerAttempts"`
	FinishedAt     time.Time `json:"finishedAt"`
}

func (h *ResultsHandler) Recent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "use GET")
		return
	}

	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "bad_request", "limit must be a positive integer")
			return
		}
		limit = n
	}

	if name := strings.TrimSpace(r.URL.Query().Get("name")); name != "" {
		rows, err := h.History.RecentByName(r.Context(), name, limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal", "failed to load results")
			return
		}

		items := make([]resultItem, 0, len(rows))
		for _, row := range rows {
			items = append(items, resultItem{
				MatchID:        row.MatchID,
				RoomCode:       row.RoomCode,
				WinnerName:     row.WinnerName,
				LoserName:      row.LoserName,
				WinnerAttempts: row.WinnerAttempts,
				FinishedAt:     row.FinishedAt,
			})
		}
		writeJSON(w, http.StatusOK, map[string]any{"results": items})
		return
	}

	results, err := h.Archive.Recent(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", "failed to load results")
		return
	}

	items := make([]resultItem, 0, len(results))
	for _, res := range results {
		items = append(items, resultItem{
			MatchID:        res.MatchID,
			RoomCode:       res.RoomCode,
			WinnerName:     res.WinnerName,
			LoserName:      res.LoserName,
			WinnerAttempts: res.WinnerAttempts,
			FinishedAt:     res.FinishedAt,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"results": items})
}

// StatsHandler serves per-name win/loss tallies. Names are the only key:
// identity is ephemeral per connection, so the tally is best-effort and
// anyone reusing a name shares its line.
type StatsHandler struct {
	Stats *store.StatsStore
}

func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "use GET")
		return
	}

	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		writeError(w, http.StatusBadRequest, "bad_request", "name is required")
		return
	}

	st, err := h.Stats.Get(r.Context(), name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal", "failed to load stats")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"name":   st.Name,
		"wins":   st.Wins,
		"losses": st.Losses,
	})
}
