package game

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Config holds the engine's tunables.
type Config struct {
	TurnDuration time.Duration // 0 => turn timer disabled
}

// Server owns the room registry and exposes the websocket endpoint.
type Server struct {
	cfg      Config
	log      *slog.Logger
	registry *RoomRegistry
}

// NewServer wires the registry. onResult, if non-nil, receives every
// finished match; it must not block (see app's recorder).
func NewServer(cfg Config, log *slog.Logger, onResult func(MatchResult)) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		cfg:      cfg,
		log:      log,
		registry: NewRoomRegistry(cfg.TurnDuration, onResult),
	}
}

func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/game", s.handleWS)
}

// Registry exposes the room table for the ops API and tests.
func (s *Server) Registry() *RoomRegistry { return s.registry }

func cleanName(name string) string {
	name = strings.TrimSpace(name)
	// Cap in runes, not bytes: cutting inside a multi-byte character would
	// mangle non-ASCII names.
	const maxNameLen = 32
	if rs := []rune(name); len(rs) > maxNameLen {
		name = string(rs[:maxNameLen])
	}
	return name
}
