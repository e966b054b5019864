package game

import (
	"sync"
	"time"
)

// MaxRoomPlayers is the roster cap per room.
const MaxRoomPlayers = 4

// Player is one connected participant. A player belongs to exactly one
// room; the id is ephemeral and dies with the connection.
type Player struct {
	ID   string
	Name string
	Conn *ClientConn
}

// Room groups up to four connected players under one shareable code. It
// owns the challenge broker and at most one match at a time.
//
// A single mutex serializes every mutation of room state: joins, leaves,
// challenge traffic and the guess path all pass through it one at a time,
// so two connections can never mutate the same room concurrently. The turn
// timer never touches the room; it re-enters through the match's own lock
// (order Room -> Match, see Match).
type Room struct {
	code string

	mu      sync.Mutex
	players []*Player
	broker  *ChallengeBroker
	match   *Match
	closed  bool

	turnDur  time.Duration
	onResult func(MatchResult)
}

func newRoom(code string, turnDur time.Duration, onResult func(MatchResult)) *Room {
	return &Room{
		code:     code,
		players:  make([]*Player, 0, MaxRoomPlayers),
		broker:   NewChallengeBroker(),
		turnDur:  turnDur,
		onResult: onResult,
	}
}

func (r *Room) Code() string { return r.code }

// Join appends a player and broadcasts the updated roster to every member,
// the newcomer included. The returned roster backs the room_joined reply.
func (r *Room) Join(p *Player) ([]PlayerInfo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// A room empties and gets removed from the registry as two separate
	// steps; the closed flag makes joins racing that window lose cleanly
	// instead of landing in a room the registry is about to forget.
	if r.closed {
		return nil, ErrRoomNotFound
	}
	if len(r.players) >= MaxRoomPlayers {
		return nil, ErrRoomFull
	}
	r.players = append(r.players, p)

	roster := r.rosterLocked()
	r.broadcastLocked(PlayersUpdatedMessage{Type: MsgPlayersUpdated, Players: roster})
	return roster, nil
}

// Leave removes a player and cascades: any challenge involving them is
// cancelled, a match they were part of is aborted (the survivor is told
// the opponent disconnected), and the remaining members get a fresh
// roster. Returns true when the room is now empty and should be removed
// from the registry; an emptied room is closed for good and rejects any
// further joins.
func (r *Room) Leave(playerID string) (empty bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i, p := range r.players {
		if p.ID == playerID {
			idx = i
			break
		}
	}
	if idx >= 0 {
		r.players = append(r.players[:idx], r.players[idx+1:]...)
	}

	r.broker.CancelFor(playerID)

	if r.match != nil && r.match.HasPlayer(playerID) {
		r.match.Abort(playerID)
		r.match = nil
	}

	r.broadcastLocked(PlayersUpdatedMessage{Type: MsgPlayersUpdated, Players: r.rosterLocked()})

	if len(r.players) == 0 {
		r.closed = true
	}
	return r.closed
}

// Challenge proposes a match from fromID to toID and notifies the
// challenged player.
func (r *Room) Challenge(fromID, toID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	to := r.findLocked(toID)
	if to == nil {
		return ErrUnknownOpponent
	}

	c, err := r.broker.Challenge(fromID, toID)
	if err != nil {
		return err
	}

	sendTo(to.Conn, ChallengeReceivedMessage{Type: MsgChallengeReceived, FromPlayerID: c.ChallengerID})
	return nil
}

// Accept resolves the challenge from fromID to byID and promotes it into
// the room's match, with both players in the code-setting phase. Both
// sides are notified.
func (r *Room) Accept(byID, fromID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.activeMatchLocked() != nil {
		return ErrMatchInProgress
	}

	c, err := r.broker.Accept(byID, fromID)
	if err != nil {
		return err
	}

	// Members are guaranteed here: leaving a room cancels its challenges.
	challenger := r.findLocked(c.ChallengerID)
	challenged := r.findLocked(c.ChallengedID)

	r.match = newMatch(r.code, challenger, challenged, r.turnDur, r.onResult)

	sendTo(challenger.Conn, ChallengeAcceptedMessage{Type: MsgChallengeAccepted, OpponentID: challenged.ID})
	sendTo(challenged.Conn, ChallengeAcceptedMessage{Type: MsgChallengeAccepted, OpponentID: challenger.ID})
	return nil
}

// SetSecretCode forwards to the active match.
func (r *Room) SetSecretCode(playerID, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.match == nil {
		return ErrNoActiveMatch
	}
	return r.match.SetSecretCode(playerID, code)
}

// SubmitGuess forwards to the active match.
func (r *Room) SubmitGuess(playerID, guess string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.match == nil {
		return ErrNoActiveMatch
	}
	return r.match.SubmitGuess(playerID, guess)
}

// ActiveMatch returns the current match, clearing it first if it already
// reached a terminal state. A finished match is therefore observably
// removed from the room the moment anyone looks.
func (r *Room) ActiveMatch() *Match {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.activeMatchLocked()
}

func (r *Room) activeMatchLocked() *Match {
	if r.match != nil && r.match.Ended() {
		r.match = nil
	}
	return r.match
}

func (r *Room) findLocked(playerID string) *Player {
	for _, p := range r.players {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}

func (r *Room) rosterLocked() []PlayerInfo {
	roster := make([]PlayerInfo, 0, len(r.players))
	for _, p := range r.players {
		roster = append(roster, PlayerInfo{ID: p.ID, Name: p.Name})
	}
	return roster
}

func (r *Room) broadcastLocked(v any) {
	for _, p := range r.players {
		sendTo(p.Conn, v)
	}
}
