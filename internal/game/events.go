// Package game adapts the engine to networked play: it seats players,
// applies their requests under a lock, and fans per-seat state views
// out through broadcast callbacks.
package game

import (
	"github.com/google/uuid"

	"github.com/nullromo/cribbage/engine"
)

// GameEventType tags outbound events.
type GameEventType string

const (
	EventGameCreated  GameEventType = "game_created"
	EventPlayerJoined GameEventType = "player_joined"
	EventStateUpdate  GameEventType = "game_state_update"
	EventGameEnd      GameEventType = "game_end"
	EventError        GameEventType = "error"
)

// GameEvent is one outbound message to one player. PlayerID echoes the
// recipient's own id on created/joined events so the client can rejoin
// its seat after a dropped connection.
type GameEvent struct {
	Type     GameEventType `json:"type"`
	GameID   uuid.UUID     `json:"gameId,omitempty"`
	Code     string        `json:"code,omitempty"`
	PlayerID string        `json:"playerId,omitempty"`
	State    *StateView    `json:"state,omitempty"`
	Winner   string        `json:"winner,omitempty"`
	Message  string        `json:"message,omitempty"`
}

// CardView is a card as sent over the wire.
type CardView struct {
	Rank  uint8  `json:"rank"`
	Suit  uint8  `json:"suit"`
	Value int    `json:"value"`
	Name  string `json:"name"`
}

// StateView is the state of the game as one seat may see it.
type StateView struct {
	You           uint8      `json:"you"`
	Phase         string     `json:"phase"`
	YourTurn      bool       `json:"yourTurn"`
	Dealer        uint8      `json:"dealer"`
	Hand          []CardView `json:"hand"`
	OpponentCards int        `json:"opponentCards"`
	Stack         []CardView `json:"stack"`
	Count         int        `json:"count"`
	Cut           *CardView  `json:"cut,omitempty"`
	CribCards     int        `json:"cribCards"`
	Scores        [2]int16   `json:"scores"`
	Names         [2]string  `json:"names"`
	Log           []string   `json:"log"`
}

func cardView(c engine.Card) CardView {
	return CardView{Rank: c.Rank(), Suit: c.Suit(), Value: c.Value(), Name: c.String()}
}

func cardViews(cards []engine.Card) []CardView {
	out := make([]CardView, len(cards))
	for i, c := range cards {
		out[i] = cardView(c)
	}
	return out
}

func stateView(snap engine.Snapshot) *StateView {
	v := &StateView{
		You:           snap.You,
		Phase:         snap.Phase.String(),
		YourTurn:      snap.YourTurn(),
		Dealer:        snap.Dealer,
		Hand:          cardViews(snap.Hand),
		OpponentCards: snap.OpponentCards,
		Stack:         cardViews(snap.Stack),
		Count:         snap.Count,
		CribCards:     snap.CribCards,
		Scores:        snap.Scores,
		Names:         snap.Names,
		Log:           snap.Log,
	}
	if snap.Cut != engine.EmptyCard {
		cut := cardView(snap.Cut)
		v.Cut = &cut
	}
	return v
}
