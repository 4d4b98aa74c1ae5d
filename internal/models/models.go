// Package models holds the shared data types passed between the
// websocket layer and the game service.
package models

import (
	"github.com/coder/websocket"
	"github.com/google/uuid"
)

// User identifies a human across connections within one server run.
type User struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// Player binds a user to a seat in one game along with its live
// connection, if any.
type Player struct {
	ID        uuid.UUID       `json:"id"`
	User      *User           `json:"user"`
	Seat      uint8           `json:"seat"`
	Conn      *websocket.Conn `json:"-"`
	Connected bool            `json:"connected"`
}

// Username is a nil-safe accessor for the player's display name.
func (p *Player) Username() string {
	if p.User == nil {
		return ""
	}
	return p.User.Username
}
