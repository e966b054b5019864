package game

// Wire messages are flat JSON objects discriminated by a "type" field,
// matching what the browser client sends. Inbound frames are decoded in two
// steps: the discriminator first, then the concrete struct for that type,
// so the dispatch switch stays exhaustive over a closed set.

// Client -> server message types.
const (
	MsgCreateRoom      = "create_room"
	MsgJoinRoom        = "join_room"
	MsgChallengePlayer = "challenge_player"
	MsgAcceptChallenge = "accept_challenge"
	MsgSetSecretCode   = "set_secret_code"
	MsgSubmitGuess     = "submit_guess"
)

// Server -> client message types.
const (
	MsgRoomCreated          = "room_created"
	MsgRoomJoined           = "room_joined"
	MsgPlayersUpdated       = "players_updated"
	MsgChallengeReceived    = "challenge_received"
	MsgChallengeAccepted    = "challenge_accepted"
	MsgGameStarted          = "game_started"
	MsgGuessResult          = "guess_result"
	MsgTurnTimeout          = "turn_timeout"
	MsgOpponentDisconnected = "opponent_disconnected"
	MsgError                = "error"
)

type clientMessage struct {
	Type string `json:"type"`
}

type CreateRoomMessage struct {
	PlayerName string `json:"playerName"`
}

type JoinRoomMessage struct {
	RoomID     string `json:"roomId"`
	PlayerName string `json:"playerName"`
}

type ChallengePlayerMessage struct {
	OpponentID string `json:"opponentId"`
}

type AcceptChallengeMessage struct {
	OpponentID string `json:"opponentId"`
}

type SetSecretCodeMessage struct {
	Code []int `json:"code"`
}

// SubmitGuessMessage carries the opponent id for the client's convenience;
// the server always scores against the actual match opponent.
type SubmitGuessMessage struct {
	OpponentID string `json:"opponentId"`
	Guess      []int  `json:"guess"`
}

// PlayerInfo is a roster entry.
type PlayerInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type RoomCreatedMessage struct {
	Type     string `json:"type"`
	RoomID   string `json:"roomId"`
	PlayerID string `json:"playerId"`
}

type RoomJoinedMessage struct {
	Type     string       `json:"type"`
	RoomID   string       `json:"roomId"`
	PlayerID string       `json:"playerId"`
	Players  []PlayerInfo `json:"players"`
}

type PlayersUpdatedMessage struct {
	Type    string       `json:"type"`
	Players []PlayerInfo `json:"players"`
}

type ChallengeReceivedMessage struct {
	Type         string `json:"type"`
	FromPlayerID string `json:"fromPlayerId"`
}

type ChallengeAcceptedMessage struct {
	Type       string `json:"type"`
	OpponentID string `json:"opponentId"`
}

type GameStartedMessage struct {
	Type          string `json:"type"`
	FirstPlayerID string `json:"firstPlayerId"`
}

type GuessResultMessage struct {
	Type                 string `json:"type"`
	PlayerID             string `json:"playerId"`
	Guess                []int  `json:"guess"`
	CorrectCount         int    `json:"correctCount"`
	CorrectPositionCount int    `json:"correctPositionCount"`
	Won                  bool   `json:"won"`
	NextTurn             string `json:"nextTurn"`
}

type TurnTimeoutMessage struct {
	Type        string `json:"type"`
	CurrentTurn string `json:"currentTurn"`
}

type OpponentDisconnectedMessage struct {
	Type string `json:"type"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// digitsToCode converts a wire digit array into the internal 4-byte form.
func digitsToCode(ds []int) (string, bool) {
	if len(ds) != 4 {
		return "", false
	}
	b := make([]byte, 4)
	for i, d := range ds {
		if d < 0 || d > 9 {
			return "", false
		}
		b[i] = byte('0' + d)
	}
	return string(b), true
}

func codeToDigits(code string) []int {
	ds := make([]int, len(code))
	for i := 0; i < len(code); i++ {
		ds[i] = int(code[i] - '0')
	}
	return ds
}
