package game

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Match phases.
const (
	PhaseSettingCodes = "setting_codes"
	PhaseInProgress   = "in_progress"
	PhaseFinished     = "finished"
	PhaseAborted      = "aborted"
)

// Attempt is one recorded guess with its computed feedback. Immutable once
// appended; only the match appends, and only for the player holding the
// turn.
type Attempt struct {
	Guess                string
	CorrectCount         int
	CorrectPositionCount int
}

type matchPlayer struct {
	id   string
	name string
	conn *ClientConn

	secret    string
	secretSet bool
	attempts  []Attempt
}

// MatchResult is handed to the finish hook when a match ends with a winner.
// Aborted matches (disconnects) produce no result: no winner is declared.
type MatchResult struct {
	MatchID        string    `json:"matchId"`
	RoomCode       string    `json:"roomCode"`
	WinnerID       string    `json:"winnerId"`
	WinnerName     string    `json:"winnerName"`
	LoserID        string    `json:"loserId"`
	LoserName      string    `json:"loserName"`
	WinnerAttempts int       `json:"winnerAttempts"`
	FinishedAt     time.Time `json:"finishedAt"`
}

// Match is the state machine for one active two-player game. All state is
// guarded by mu. The turn timer re-enters through onTurnTimeout, which
// takes the same lock, so a guess and an expiry for the same turn are
// applied in some serial order and the loser of the race is rejected (the
// guess) or suppressed (the stale expiry, via its generation token).
//
// Lock order is always Room -> Match -> TurnTimer; no path takes them the
// other way around.
type Match struct {
	id       string
	roomCode string

	mu         sync.Mutex
	phase      string
	challenger *matchPlayer
	challenged *matchPlayer
	turn       string // player id holding the turn, "" until in_progress
	winnerID   string

	timer    *TurnTimer
	onResult func(MatchResult)
}

func newMatch(roomCode string, challenger, challenged *Player, turnDur time.Duration, onResult func(MatchResult)) *Match {
	m := &Match{
		id:         uuid.NewString(),
		roomCode:   roomCode,
		phase:      PhaseSettingCodes,
		challenger: &matchPlayer{id: challenger.ID, name: challenger.Name, conn: challenger.Conn},
		challenged: &matchPlayer{id: challenged.ID, name: challenged.Name, conn: challenged.Conn},
		onResult:   onResult,
	}
	m.timer = NewTurnTimer(turnDur, m.onTurnTimeout)
	return m
}

func (m *Match) ID() string { return m.id }

func (m *Match) HasPlayer(playerID string) bool {
	return m.challenger.id == playerID || m.challenged.id == playerID
}

// Ended reports whether the match reached a terminal state (won/lost or
// aborted). The owning room uses it to clear its activeMatch slot lazily.
func (m *Match) Ended() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase == PhaseFinished || m.phase == PhaseAborted
}

// SetSecretCode records a player's secret exactly once. When both secrets
// are present the match enters in_progress, the challenger takes the first
// turn and the turn timer starts.
func (m *Match) SetSecretCode(playerID, code string) error {
	if !valid4Digits(code) {
		return ErrInvalidCode
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.phase {
	case PhaseFinished, PhaseAborted:
		return ErrMatchFinished
	case PhaseInProgress:
		return ErrCodeAlreadySet
	}

	p, _ := m.pairLocked(playerID)
	if p == nil {
		return ErrNotInMatch
	}
	if p.secretSet {
		return ErrCodeAlreadySet
	}

	p.secret = code
	p.secretSet = true

	if m.challenger.secretSet && m.challenged.secretSet {
		m.phase = PhaseInProgress
		m.turn = m.challenger.id
		m.timer.Start()
		m.broadcastLocked(GameStartedMessage{Type: MsgGameStarted, FirstPlayerID: m.turn})
	}
	return nil
}

// SubmitGuess applies one guess from the player holding the turn. A valid
// guess is scored against the opponent's secret, recorded as an Attempt and
// broadcast to both sides. Four correct positions end the match; anything
// else passes the turn and resets the timer.
func (m *Match) SubmitGuess(playerID, guess string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.phase {
	case PhaseSettingCodes:
		return ErrMatchNotStarted
	case PhaseFinished, PhaseAborted:
		return ErrMatchFinished
	}

	p, opp := m.pairLocked(playerID)
	if p == nil {
		return ErrNotInMatch
	}
	if m.turn != playerID {
		return ErrNotYourTurn
	}
	if !valid4Digits(guess) {
		return ErrInvalidGuess
	}

	score := Evaluate(opp.secret, guess)
	p.attempts = append(p.attempts, Attempt{
		Guess:                guess,
		CorrectCount:         score.CorrectCount,
		CorrectPositionCount: score.CorrectPosition,
	})

	won := score.CorrectPosition == 4
	if won {
		m.phase = PhaseFinished
		m.winnerID = p.id
		m.turn = ""
		m.timer.Cancel()
	} else {
		m.turn = opp.id
		m.timer.Reset()
	}

	m.broadcastLocked(GuessResultMessage{
		Type:                 MsgGuessResult,
		PlayerID:             p.id,
		Guess:                codeToDigits(guess),
		CorrectCount:         score.CorrectCount,
		CorrectPositionCount: score.CorrectPosition,
		Won:                  won,
		NextTurn:             m.turn,
	})

	if won && m.onResult != nil {
		m.onResult(MatchResult{
			MatchID:        m.id,
			RoomCode:       m.roomCode,
			WinnerID:       p.id,
			WinnerName:     p.name,
			LoserID:        opp.id,
			LoserName:      opp.name,
			WinnerAttempts: len(p.attempts),
			FinishedAt:     time.Now(),
		})
	}
	return nil
}

// Abort terminates the match because leaverID disconnected or left the
// room. The other participant, if still connected, is notified. No winner
// is declared and no result is recorded.
func (m *Match) Abort(leaverID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase == PhaseFinished || m.phase == PhaseAborted {
		return
	}
	m.phase = PhaseAborted
	m.turn = ""
	m.timer.Cancel()

	_, other := m.pairLocked(leaverID)
	if other != nil {
		sendTo(other.conn, OpponentDisconnectedMessage{Type: MsgOpponentDisconnected})
	}
}

// onTurnTimeout is the timer expiry path. The generation token rules out a
// countdown that was superseded by a guess arriving first; the phase check
// rules out an expiry racing match teardown.
func (m *Match) onTurnTimeout(gen uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.phase != PhaseInProgress {
		return
	}
	if !m.timer.Current(gen) {
		return
	}

	// Forced switch: no attempt is recorded for a timed-out turn.
	if m.turn == m.challenger.id {
		m.turn = m.challenged.id
	} else {
		m.turn = m.challenger.id
	}
	m.timer.Start()

	m.broadcastLocked(TurnTimeoutMessage{Type: MsgTurnTimeout, CurrentTurn: m.turn})
}

// pairLocked resolves playerID to (me, opponent); me is nil for strangers.
func (m *Match) pairLocked(playerID string) (*matchPlayer, *matchPlayer) {
	switch playerID {
	case m.challenger.id:
		return m.challenger, m.challenged
	case m.challenged.id:
		return m.challenged, m.challenger
	}
	return nil, nil
}

func (m *Match) broadcastLocked(v any) {
	sendTo(m.challenger.conn, v)
	sendTo(m.challenged.conn, v)
}
