package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example.com/codeduel/internal/game"
	"example.com/codeduel/internal/store"
)

type stubArchive struct {
	results []game.MatchResult
	err     error
	gotLim  int
}

func (a *stubArchive) SaveResult(ctx context.Context, res game.MatchResult) error { return nil }

func (a *stubArchive) Recent(ctx context.Context, limit int) ([]game.MatchResult, error) {
	a.gotLim = limit
	return a.results, a.err
}

type stubHistory struct {
	rows    []store.MatchRow
	err     error
	gotName string
	gotLim  int
}

func (h *stubHistory) RecentByName(ctx context.Context, name string, limit int) ([]store.MatchRow, error) {
	h.gotName = name
	h.gotLim = limit
	return h.rows, h.err
}

func TestResultsHandler_Recent(t *testing.T) {
	archive := &stubArchive{
		results: []game.MatchResult{{
			MatchID:        "m1",
			RoomCode:       "abc123",
			WinnerName:     "Alice",
			LoserName:      "Bob",
			WinnerAttempts: 3,
			FinishedAt:     time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		}},
	}
	h := &ResultsHandler{Archive: archive}

	rec := httptest.NewRecorder()
	h.Recent(rec, httptest.NewRequest(http.MethodGet, "/api/results?limit=5", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, archive.gotLim)

	var body struct {
		Results []resultItem `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Results, 1)
	assert.Equal(t, "Alice", body.Results[0].WinnerName)
	assert.Equal(t, 3, body.Results[0].WinnerAttempts)
}

func TestResultsHandler_NameFilterUsesHistory(t *testing.T) {
	archive := &stubArchive{}
	history := &stubHistory{
		rows: []store.MatchRow{{
			MatchID:        "m7",
			RoomCode:       "xyz789",
			WinnerName:     "Alice",
			LoserName:      "Bob",
			WinnerAttempts: 2,
			FinishedAt:     time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC),
		}},
	}
	h := &ResultsHandler{Archive: archive, History: history}

	rec := httptest.NewRecorder()
	h.Recent(rec, httptest.NewRequest(http.MethodGet, "/api/results?name=Alice&limit=3", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Alice", history.gotName)
	assert.Equal(t, 3, history.gotLim)
	assert.Zero(t, archive.gotLim, "archive untouched when a name is given")

	var body struct {
		Results []resultItem `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Results, 1)
	assert.Equal(t, "m7", body.Results[0].MatchID)
	assert.Equal(t, "Bob", body.Results[0].LoserName)
}

func TestResultsHandler_HistoryError(t *testing.T) {
	h := &ResultsHandler{
		Archive: &stubArchive{},
		History: &stubHistory{err: errors.New("pg down")},
	}

	rec := httptest.NewRecorder()
	h.Recent(rec, httptest.NewRequest(http.MethodGet, "/api/results?name=Alice", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestResultsHandler_BadLimit(t *testing.T) {
	h := &ResultsHandler{Archive: &stubArchive{}}

	for _, limit := range []string{"0", "-1", "x"} {
		rec := httptest.NewRecorder()
		h.Recent(rec, httptest.NewRequest(http.MethodGet, "/api/results?limit="+limit, nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "limit=%s", limit)
	}
}

func TestResultsHandler_MethodNotAllowed(t *testing.T) {
	h := &ResultsHandler{Archive: &stubArchive{}}

	rec := httptest.NewRecorder()
	h.Recent(rec, httptest.NewRequest(http.MethodPost, "/api/results", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestResultsHandler_ArchiveError(t *testing.T) {
	h := &ResultsHandler{Archive: &stubArchive{err: errors.New("redis down")}}

	rec := httptest.NewRecorder()
	h.Recent(rec, httptest.NewRequest(http.MethodGet, "/api/results", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
