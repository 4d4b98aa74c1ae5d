package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nullromo/cribbage/internal/game"
	"github.com/nullromo/cribbage/internal/models"
)

// clientMessage is the inbound wire format. Type selects the action;
// the other fields apply per type.
type clientMessage struct {
	Type     string `json:"type"`
	Code     string `json:"code,omitempty"`
	Username string `json:"username,omitempty"`
	// PlayerID names a previously seated player when rejoining.
	PlayerID string `json:"playerId,omitempty"`
	// Thrown holds hand indices for a crib throw.
	Thrown []int `json:"thrown,omitempty"`
	// Played holds the hand index for a play; absent means pass.
	Played *int `json:"played,omitempty"`
}

// Server accepts websocket connections and routes their messages into
// rooms.
type Server struct {
	log            *logrus.Logger
	rooms          *Registry
	allowedOrigins []string
}

// New builds a Server. allowedOrigins feeds the websocket origin
// check; empty means same-origin only.
func New(log *logrus.Logger, allowedOrigins []string) *Server {
	return &Server{
		log:            log,
		rooms:          NewRegistry(log),
		allowedOrigins: allowedOrigins,
	}
}

// Rooms exposes the registry, mainly to tests and admin handlers.
func (s *Server) Rooms() *Registry { return s.rooms }

// Handler returns the HTTP surface: the websocket endpoint and a
// health probe.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.allowedOrigins,
	})
	if err != nil {
		s.log.WithError(err).Warn("websocket accept failed")
		return
	}
	playerID := uuid.New()
	s.log.WithField("player_id", playerID).Info("connection opened")
	s.readLoop(r.Context(), conn, playerID)
}

// session is one connection's place in the world: at most one room.
type session struct {
	playerID uuid.UUID
	username string
	room     *Room
}

func (s *Server) readLoop(ctx context.Context, conn *websocket.Conn, playerID uuid.UUID) {
	sess := &session{playerID: playerID}
	defer s.teardown(sess, conn)

	for {
		var msg clientMessage
		if err := wsjson.Read(ctx, conn, &msg); err != nil {
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway || errors.Is(err, context.Canceled) {
				return
			}
			s.log.WithError(err).WithField("player_id", playerID).Debug("read failed")
			return
		}
		s.dispatch(conn, sess, msg)
	}
}

func (s *Server) dispatch(conn *websocket.Conn, sess *session, msg clientMessage) {
	switch msg.Type {
	case "create_game":
		s.handleCreate(conn, sess, msg)
	case "join_game":
		s.handleJoin(conn, sess, msg)
	case "rejoin_game":
		s.handleRejoin(conn, sess, msg)
	case "throw_to_crib":
		if sess.room == nil {
			s.sendError(conn, sess, "no_room", "join a game first")
			return
		}
		sess.room.Game.HandleThrowToCrib(sess.playerID, msg.Thrown)
	case "play":
		if sess.room == nil {
			s.sendError(conn, sess, "no_room", "join a game first")
			return
		}
		sess.room.Game.HandlePlay(sess.playerID, msg.Played)
	default:
		s.sendError(conn, sess, "unknown_type", "unknown message type "+msg.Type)
	}
}

func (s *Server) handleCreate(conn *websocket.Conn, sess *session, msg clientMessage) {
	if sess.room != nil {
		s.sendError(conn, sess, "already_in_room", "leave the current game first")
		return
	}
	room := s.rooms.Create()
	sess.username = msg.Username
	player := &models.Player{
		ID:   sess.playerID,
		User: &models.User{ID: sess.playerID, Username: msg.Username},
		Conn: conn,
	}
	room.attach(sess.playerID, conn)
	if err := room.Game.AddPlayer(player); err != nil {
		room.detach(sess.playerID)
		s.rooms.Remove(room.Code)
		s.sendError(conn, sess, "join_failed", err.Error())
		return
	}
	sess.room = room
	room.send(sess.playerID, game.GameEvent{
		Type:     game.EventGameCreated,
		GameID:   room.Game.ID,
		Code:     room.Code,
		PlayerID: sess.playerID.String(),
	})
}

func (s *Server) handleJoin(conn *websocket.Conn, sess *session, msg clientMessage) {
	if sess.room != nil {
		s.sendError(conn, sess, "already_in_room", "leave the current game first")
		return
	}
	room, err := s.rooms.Lookup(msg.Code)
	if err != nil {
		s.sendError(conn, sess, "room_not_found", err.Error())
		return
	}
	sess.username = msg.Username
	player := &models.Player{
		ID:   sess.playerID,
		User: &models.User{ID: sess.playerID, Username: msg.Username},
		Conn: conn,
	}
	// Attach before seating so the start-of-game broadcast reaches us.
	room.attach(sess.playerID, conn)
	if _, err := s.rooms.Join(msg.Code, player); err != nil {
		room.detach(sess.playerID)
		kind := "join_failed"
		if errors.Is(err, ErrRoomFull) {
			kind = "room_full"
		}
		s.sendError(conn, sess, kind, err.Error())
		return
	}
	sess.room = room
	room.send(sess.playerID, game.GameEvent{
		Type:     game.EventPlayerJoined,
		GameID:   room.Game.ID,
		Code:     room.Code,
		PlayerID: sess.playerID.String(),
	})
}

// handleRejoin reattaches a dropped connection to its old seat. The
// client proves identity with the player id it was handed when it
// first joined.
func (s *Server) handleRejoin(conn *websocket.Conn, sess *session, msg clientMessage) {
	if sess.room != nil {
		s.sendError(conn, sess, "already_in_room", "leave the current game first")
		return
	}
	room, err := s.rooms.Lookup(msg.Code)
	if err != nil {
		s.sendError(conn, sess, "room_not_found", err.Error())
		return
	}
	pid, err := uuid.Parse(msg.PlayerID)
	if err != nil {
		s.sendError(conn, sess, "rejoin_failed", "malformed player id")
		return
	}
	// Attach first so the replayed state reaches this connection.
	room.attach(pid, conn)
	if err := room.Game.HandleReconnect(&models.Player{ID: pid, Conn: conn}); err != nil {
		room.detach(pid)
		s.sendError(conn, sess, "rejoin_failed", err.Error())
		return
	}
	sess.playerID = pid
	sess.room = room
	s.log.WithFields(logrus.Fields{
		"player_id": pid,
		"room":      room.Code,
	}).Info("player rejoined")
}

func (s *Server) sendError(conn *websocket.Conn, sess *session, code, message string) {
	ev := game.GameEvent{Type: game.EventError, Code: code, Message: message}
	if sess.room != nil {
		sess.room.send(sess.playerID, ev)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := wsjson.Write(ctx, conn, ev); err != nil {
		s.log.WithError(err).Debug("dropped error event")
	}
}

func (s *Server) teardown(sess *session, conn *websocket.Conn) {
	if sess.room != nil {
		sess.room.Game.HandleDisconnect(sess.playerID)
		sess.room.detach(sess.playerID)
		if sess.room.empty() {
			s.rooms.Remove(sess.room.Code)
		}
	}
	_ = conn.Close(websocket.StatusNormalClosure, "bye")
	s.log.WithFields(logrus.Fields{
		"player_id": sess.playerID,
		"username":  sess.username,
	}).Info("connection closed")
}
