package game

import "errors"

// Rejections are always local to the offending connection: none of them
// mutate room or match state, and none of them consume a turn.
var (
	ErrBadPayload  = errors.New("invalid payload")
	ErrUnknownType = errors.New("unknown message type")

	ErrAlreadyInRoom = errors.New("already in a room")
	ErrNotInRoom     = errors.New("join a room first")
	ErrRoomNotFound  = errors.New("room not found")
	ErrRoomFull      = errors.New("room is full")

	ErrSelfChallenge    = errors.New("cannot challenge yourself")
	ErrChallengePending = errors.New("a challenge is already pending")
	ErrUnknownOpponent  = errors.New("opponent is not in this room")
	ErrNoSuchChallenge  = errors.New("no such challenge")
	ErrMatchInProgress  = errors.New("room already has an active match")

	ErrNoActiveMatch   = errors.New("no active match")
	ErrNotInMatch      = errors.New("player is not in the active match")
	ErrInvalidCode     = errors.New("secret code must be exactly 4 digits (0-9)")
	ErrCodeAlreadySet  = errors.New("secret code already set")
	ErrInvalidGuess    = errors.New("guess must be exactly 4 digits (0-9)")
	ErrNotYourTurn     = errors.New("not your turn")
	ErrMatchNotStarted = errors.New("match is not in progress yet")
	ErrMatchFinished   = errors.New("match has ended")
)

// errorCode maps a rejection to the short code the client switches on.
func errorCode(err error) string {
	switch {
	case errors.Is(err, ErrBadPayload):
		return "bad_payload"
	case errors.Is(err, ErrUnknownType):
		return "unknown_type"
	case errors.Is(err, ErrAlreadyInRoom):
		return "already_in_room"
	case errors.Is(err, ErrNotInRoom):
		return "not_in_room"
	case errors.Is(err, ErrRoomNotFound):
		return "room_not_found"
	case errors.Is(err, ErrRoomFull):
		return "room_full"
	case errors.Is(err, ErrSelfChallenge):
		return "self_challenge"
	case errors.Is(err, ErrChallengePending):
		return "challenge_pending"
	case errors.Is(err, ErrUnknownOpponent):
		return "unknown_opponent"
	case errors.Is(err, ErrNoSuchChallenge):
		return "no_such_challenge"
	case errors.Is(err, ErrMatchInProgress):
		return "match_in_progress"
	case errors.Is(err, ErrNoActiveMatch):
		return "no_active_match"
	case errors.Is(err, ErrNotInMatch):
		return "not_in_match"
	case errors.Is(err, ErrInvalidCode):
		return "invalid_code"
	case errors.Is(err, ErrCodeAlreadySet):
		return "code_already_set"
	case errors.Is(err, ErrInvalidGuess):
		return "invalid_guess"
	case errors.Is(err, ErrNotYourTurn):
		return "not_your_turn"
	case errors.Is(err, ErrMatchNotStarted):
		return "match_not_started"
	case errors.Is(err, ErrMatchFinished):
		return "match_finished"
	default:
		return "internal"
	}
}
