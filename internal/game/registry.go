package game

import (
	"crypto/rand"
	"sync"
	"time"
)

const (
	roomCodeAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	roomCodeLength   = 6
)

// RoomRegistry is the process-wide table of live rooms keyed by room code.
// Code allocation is the only cross-room mutual-exclusion point; every
// other piece of state is owned by an individual room and mutated only
// through that room's serialized entry points.
type RoomRegistry struct {
	mu    sync.Mutex
	rooms map[string]*Room

	turnDur  time.Duration
	onResult func(MatchResult)
}

func NewRoomRegistry(turnDur time.Duration, onResult func(MatchResult)) *RoomRegistry {
	return &RoomRegistry{
		rooms:    make(map[string]*Room),
		turnDur:  turnDur,
		onResult: onResult,
	}
}

// CreateRoom allocates a code not currently in the table and inserts a new
// empty room. Collisions just redraw; the table is small, so this
// terminates immediately in practice.
func (r *RoomRegistry) CreateRoom() *Room {
	r.mu.Lock()
	defer r.mu.Unlock()

	for {
		code := randCode(roomCodeLength)
		if _, taken := r.rooms[code]; taken {
			continue
		}
		room := newRoom(code, r.turnDur, r.onResult)
		r.rooms[code] = room
		return room
	}
}

func (r *RoomRegistry) Get(code string) (*Room, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[code]
	return room, ok
}

// Remove deletes the room from the table; idempotent.
func (r *RoomRegistry) Remove(code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rooms, code)
}

// Count reports the number of live rooms.
func (r *RoomRegistry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rooms)
}

func randCode(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	for i := range b {
		b[i] = roomCodeAlphabet[int(b[i])%len(roomCodeAlphabet)]
	}
	return string(b)
}
