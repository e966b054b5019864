package game

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ClientConn wraps one websocket with a buffered outbound queue so game
// logic never blocks on a slow reader.
type ClientConn struct {
	ws   *websocket.Conn
	send chan []byte

	closeOnce sync.Once
}

func (c *ClientConn) Close() {
	c.closeOnce.Do(func() {
		close(c.send)
		if c.ws != nil {
			_ = c.ws.Close()
		}
	})
}

// sendTo marshals v onto a connection's outbound queue. Frames to a reader
// that cannot keep up are dropped rather than stalling the room.
func sendTo(conn *ClientConn, v any) {
	if conn == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	select {
	case conn.send <- b:
	default:
	}
}

func sendError(conn *ClientConn, code, message string) {
	sendTo(conn, ErrorMessage{Type: MsgError, Code: code, Message: message})
}

// session is the per-connection routing state: which player this socket
// speaks for and which room its messages go to.
type session struct {
	playerID string
	room     *Room
}

// handleWS is the websocket entry point at /game. One goroutine pumps the
// outbound queue (with keepalive pings); the read loop below decodes and
// dispatches inbound messages until the peer goes away, then runs the
// disconnect cascade.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	cc := &ClientConn{
		ws:   ws,
		send: make(chan []byte, 64),
	}

	go func() {
		ticker := time.NewTicker(25 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case msg, ok := <-cc.send:
				if !ok {
					return
				}
				_ = ws.WriteMessage(websocket.TextMessage, msg)
			case <-ticker.C:
				_ = ws.WriteMessage(websocket.PingMessage, []byte{})
			}
		}
	}()

	sess := &session{}

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			break
		}

		var head clientMessage
		if err := json.Unmarshal(data, &head); err != nil {
			sendError(cc, "bad_json", "invalid json")
			continue
		}

		if err := s.dispatch(cc, sess, head.Type, data); err != nil {
			sendError(cc, errorCode(err), err.Error())
		}
	}

	// disconnect cascade
	if sess.room != nil {
		if empty := sess.room.Leave(sess.playerID); empty {
			s.registry.Remove(sess.room.Code())
			s.log.Info("room removed", "room", sess.room.Code())
		}
		s.log.Info("player disconnected", "room", sess.room.Code(), "player", sess.playerID)
	}
	cc.Close()
}

func (s *Server) dispatch(cc *ClientConn, sess *session, typ string, data []byte) error {
	switch typ {
	case MsgCreateRoom:
		var msg CreateRoomMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return ErrBadPayload
		}
		return s.createRoom(cc, sess, msg.PlayerName)

	case MsgJoinRoom:
		var msg JoinRoomMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return ErrBadPayload
		}
		return s.joinRoom(cc, sess, msg.RoomID, msg.PlayerName)

	case MsgChallengePlayer:
		var msg ChallengePlayerMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return ErrBadPayload
		}
		if sess.room == nil {
			return ErrNotInRoom
		}
		return sess.room.Challenge(sess.playerID, msg.OpponentID)

	case MsgAcceptChallenge:
		var msg AcceptChallengeMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return ErrBadPayload
		}
		if sess.room == nil {
			return ErrNotInRoom
		}
		return sess.room.Accept(sess.playerID, msg.OpponentID)

	case MsgSetSecretCode:
		var msg SetSecretCodeMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return ErrBadPayload
		}
		if sess.room == nil {
			return ErrNotInRoom
		}
		code, ok := digitsToCode(msg.Code)
		if !ok {
			return ErrInvalidCode
		}
		return sess.room.SetSecretCode(sess.playerID, code)

	case MsgSubmitGuess:
		var msg SubmitGuessMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return ErrBadPayload
		}
		if sess.room == nil {
			return ErrNotInRoom
		}
		guess, ok := digitsToCode(msg.Guess)
		if !ok {
			return ErrInvalidGuess
		}
		return sess.room.SubmitGuess(sess.playerID, guess)

	default:
		return ErrUnknownType
	}
}

func (s *Server) createRoom(cc *ClientConn, sess *session, name string) error {
	if sess.room != nil {
		return ErrAlreadyInRoom
	}
	name = cleanName(name)
	if name == "" {
		return ErrBadPayload
	}

	room := s.registry.CreateRoom()
	p := &Player{ID: uuid.NewString(), Name: name, Conn: cc}
	if _, err := room.Join(p); err != nil {
		s.registry.Remove(room.Code())
		return err
	}

	sess.playerID = p.ID
	sess.room = room

	sendTo(cc, RoomCreatedMessage{Type: MsgRoomCreated, RoomID: room.Code(), PlayerID: p.ID})
	s.log.Info("room created", "room", room.Code(), "player", p.ID, "name", name)
	return nil
}

func (s *Server) joinRoom(cc *ClientConn, sess *session, roomID, name string) error {
	if sess.room != nil {
		return ErrAlreadyInRoom
	}
	name = cleanName(name)
	if name == "" {
		return ErrBadPayload
	}

	room, ok := s.registry.Get(roomID)
	if !ok {
		return ErrRoomNotFound
	}

	p := &Player{ID: uuid.NewString(), Name: name, Conn: cc}
	roster, err := room.Join(p)
	if err != nil {
		return err
	}

	sess.playerID = p.ID
	sess.room = room

	sendTo(cc, RoomJoinedMessage{Type: MsgRoomJoined, RoomID: room.Code(), PlayerID: p.ID, Players: roster})
	s.log.Info("player joined room", "room", room.Code(), "player", p.ID, "name", name)
	return nil
}
