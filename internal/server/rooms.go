// Package server exposes the game over websockets. Players create or
// join rooms by short code; each room owns one game and the
// connections of its two seats.
package server

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nullromo/cribbage/engine"
	"github.com/nullromo/cribbage/internal/game"
	"github.com/nullromo/cribbage/internal/models"
)

// Room code alphabet skips the easily confused 0/O and 1/I.
const codeAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

// CodeLength is the length of a room join code.
const CodeLength = 8

var (
	ErrRoomNotFound = errors.New("room not found")
	ErrRoomFull     = errors.New("room is full")
)

// Room is one hosted game plus the connections of its players.
type Room struct {
	Code string
	Game *game.CribbageGame

	mu    sync.Mutex
	conns map[uuid.UUID]*websocket.Conn
}

func (r *Room) attach(playerID uuid.UUID, conn *websocket.Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[playerID] = conn
}

func (r *Room) detach(playerID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conns, playerID)
}

func (r *Room) empty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.conns) == 0
}

// writeTimeout bounds one outbound message; a stalled peer must not
// hold the game lock chain hostage.
const writeTimeout = 5 * time.Second

func (r *Room) send(playerID uuid.UUID, ev game.GameEvent) {
	r.mu.Lock()
	conn := r.conns[playerID]
	r.mu.Unlock()
	if conn == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := wsjson.Write(ctx, conn, ev); err != nil {
		logrus.WithError(err).WithField("player_id", playerID).Debug("dropped event")
	}
}

// Registry tracks live rooms by code.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]*Room
	rng   *rand.Rand
	log   *logrus.Logger
}

// NewRegistry builds an empty registry.
func NewRegistry(log *logrus.Logger) *Registry {
	return &Registry{
		rooms: map[string]*Room{},
		rng:   rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), uint64(time.Now().UnixNano())>>1)),
		log:   log,
	}
}

// Create opens a room around a fresh game and returns it.
func (reg *Registry) Create() *Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	code := reg.newCodeLocked()
	room := &Room{
		Code:  code,
		Game:  game.NewCribbageGame(),
		conns: map[uuid.UUID]*websocket.Conn{},
	}
	room.Game.BroadcastToPlayerFn = room.send
	room.Game.OnGameEnd = func(g *game.CribbageGame, winnerID uuid.UUID) {
		reg.log.WithFields(logrus.Fields{
			"room":      code,
			"winner_id": winnerID,
		}).Info("game finished")
	}
	reg.rooms[code] = room
	reg.log.WithField("room", code).Info("room created")
	return room
}

// Lookup finds a room by code.
func (reg *Registry) Lookup(code string) (*Room, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	room, ok := reg.rooms[code]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrRoomNotFound, code)
	}
	return room, nil
}

// Join seats a new player in the coded room.
func (reg *Registry) Join(code string, p *models.Player) (*Room, error) {
	room, err := reg.Lookup(code)
	if err != nil {
		return nil, err
	}
	if len(room.Game.Players()) >= engine.NumPlayers {
		return nil, fmt.Errorf("%w: %q", ErrRoomFull, code)
	}
	if err := room.Game.AddPlayer(p); err != nil {
		return nil, err
	}
	return room, nil
}

// Remove drops a room, typically once both connections are gone.
func (reg *Registry) Remove(code string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	if _, ok := reg.rooms[code]; ok {
		delete(reg.rooms, code)
		reg.log.WithField("room", code).Info("room removed")
	}
}

// Len reports how many rooms are live.
func (reg *Registry) Len() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.rooms)
}

func (reg *Registry) newCodeLocked() string {
	for {
		buf := make([]byte, CodeLength)
		for i := range buf {
			buf[i] = codeAlphabet[reg.rng.IntN(len(codeAlphabet))]
		}
		code := string(buf)
		if _, taken := reg.rooms[code]; !taken {
			return code
		}
	}
}
