package game

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/nullromo/cribbage/engine"
	"github.com/nullromo/cribbage/internal/models"
)

// CribbageGame wraps one engine game with seating, locking, and event
// fan-out. All exported methods are safe for concurrent use.
type CribbageGame struct {
	ID uuid.UUID

	// Seed drives the engine when the second player arrives. Zero
	// means seed from the clock; tests pin it.
	Seed uint64

	// BroadcastToPlayerFn delivers one event to one player. The
	// transport layer installs it; nil drops events.
	BroadcastToPlayerFn func(playerID uuid.UUID, ev GameEvent)

	// OnGameEnd fires once when a winner is decided.
	OnGameEnd func(g *CribbageGame, winnerID uuid.UUID)

	mu      sync.Mutex
	players []*models.Player
	eng     *engine.Game
	ended   bool
	log     *logrus.Entry
}

// NewCribbageGame builds an empty two-seat game.
func NewCribbageGame() *CribbageGame {
	id := uuid.New()
	return &CribbageGame{
		ID:  id,
		log: logrus.WithField("game_id", id),
	}
}

// AddPlayer seats a player. The second seat starts the game and
// broadcasts the opening state to both seats.
func (cg *CribbageGame) AddPlayer(p *models.Player) error {
	cg.mu.Lock()
	defer cg.mu.Unlock()
	if len(cg.players) >= engine.NumPlayers {
		return fmt.Errorf("game %s is full", cg.ID)
	}
	for _, existing := range cg.players {
		if existing.ID == p.ID {
			return fmt.Errorf("player %s is already seated", p.ID)
		}
	}
	p.Seat = uint8(len(cg.players))
	p.Connected = true
	cg.players = append(cg.players, p)
	cg.log.WithFields(logrus.Fields{
		"player_id": p.ID,
		"username":  p.Username(),
		"seat":      p.Seat,
	}).Info("player seated")

	if len(cg.players) < engine.NumPlayers {
		return nil
	}
	seed := cg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	cg.eng = engine.NewGame(seed, cg.players[0].Username(), cg.players[1].Username())
	cg.log.Info("both seats filled, game started")
	cg.broadcastStateLocked()
	return nil
}

// Started reports whether both seats are filled and play has begun.
func (cg *CribbageGame) Started() bool {
	cg.mu.Lock()
	defer cg.mu.Unlock()
	return cg.eng != nil
}

// Players snapshots the seated players.
func (cg *CribbageGame) Players() []*models.Player {
	cg.mu.Lock()
	defer cg.mu.Unlock()
	return append([]*models.Player(nil), cg.players...)
}

// HandleThrowToCrib applies a crib throw for the given player. Errors
// go back to that player as an error event; peers see fresh state on
// success.
func (cg *CribbageGame) HandleThrowToCrib(playerID uuid.UUID, indices []int) {
	cg.mu.Lock()
	defer cg.mu.Unlock()
	seat, err := cg.seatOfLocked(playerID)
	if err != nil {
		cg.sendErrorLocked(playerID, err)
		return
	}
	if len(indices) != engine.ThrowSize {
		cg.sendErrorLocked(playerID, fmt.Errorf("%w: throw exactly %d cards", engine.ErrInvalidDiscard, engine.ThrowSize))
		return
	}
	if err := cg.eng.DiscardToCrib(seat, indices[0], indices[1]); err != nil {
		cg.sendErrorLocked(playerID, err)
		return
	}
	cg.afterActionLocked()
}

// HandlePlay applies a card play, or a pass when index is nil.
func (cg *CribbageGame) HandlePlay(playerID uuid.UUID, index *int) {
	cg.mu.Lock()
	defer cg.mu.Unlock()
	seat, err := cg.seatOfLocked(playerID)
	if err != nil {
		cg.sendErrorLocked(playerID, err)
		return
	}
	if index == nil {
		err = cg.eng.Pass(seat)
	} else {
		err = cg.eng.PlayCard(seat, *index)
	}
	if err != nil {
		cg.sendErrorLocked(playerID, err)
		return
	}
	cg.afterActionLocked()
}

// HandleDisconnect marks the player's connection dead. The seat stays
// reserved so the user can reconnect.
func (cg *CribbageGame) HandleDisconnect(playerID uuid.UUID) {
	cg.mu.Lock()
	defer cg.mu.Unlock()
	for _, p := range cg.players {
		if p.ID == playerID {
			p.Connected = false
			p.Conn = nil
			cg.log.WithField("player_id", playerID).Info("player disconnected")
			return
		}
	}
}

// HandleReconnect reattaches a connection to a reserved seat and
// replays the current state to it.
func (cg *CribbageGame) HandleReconnect(p *models.Player) error {
	cg.mu.Lock()
	defer cg.mu.Unlock()
	for _, existing := range cg.players {
		if existing.ID == p.ID {
			existing.Conn = p.Conn
			existing.Connected = true
			cg.log.WithField("player_id", p.ID).Info("player reconnected")
			if cg.eng != nil {
				cg.sendStateLocked(existing)
			}
			return nil
		}
	}
	return fmt.Errorf("%w: %s never sat in game %s", engine.ErrNullPlayer, p.ID, cg.ID)
}

// StateFor returns the current view for one player, for transports
// that poll instead of subscribing.
func (cg *CribbageGame) StateFor(playerID uuid.UUID) (*StateView, error) {
	cg.mu.Lock()
	defer cg.mu.Unlock()
	seat, err := cg.seatOfLocked(playerID)
	if err != nil {
		return nil, err
	}
	return stateView(cg.eng.SnapshotFor(seat)), nil
}

func (cg *CribbageGame) seatOfLocked(playerID uuid.UUID) (uint8, error) {
	if cg.eng == nil {
		return 0, fmt.Errorf("%w: waiting for an opponent", engine.ErrNullPlayer)
	}
	for _, p := range cg.players {
		if p.ID == playerID {
			return p.Seat, nil
		}
	}
	return 0, fmt.Errorf("%w: %s is not seated in game %s", engine.ErrNullPlayer, playerID, cg.ID)
}

// afterActionLocked pushes fresh state to both seats and settles the
// end of the game exactly once.
func (cg *CribbageGame) afterActionLocked() {
	cg.broadcastStateLocked()
	if cg.eng.Phase != engine.PhaseGameOver || cg.ended {
		return
	}
	cg.ended = true
	winner := cg.players[cg.eng.Winner]
	cg.log.WithFields(logrus.Fields{
		"winner_id": winner.ID,
		"username":  winner.Username(),
	}).Info("game over")
	for _, p := range cg.players {
		cg.emitLocked(p.ID, GameEvent{
			Type:   EventGameEnd,
			GameID: cg.ID,
			Winner: winner.Username(),
		})
	}
	if cg.OnGameEnd != nil {
		cg.OnGameEnd(cg, winner.ID)
	}
}

func (cg *CribbageGame) broadcastStateLocked() {
	for _, p := range cg.players {
		cg.sendStateLocked(p)
	}
}

func (cg *CribbageGame) sendStateLocked(p *models.Player) {
	cg.emitLocked(p.ID, GameEvent{
		Type:   EventStateUpdate,
		GameID: cg.ID,
		State:  stateView(cg.eng.SnapshotFor(p.Seat)),
	})
}

func (cg *CribbageGame) sendErrorLocked(playerID uuid.UUID, err error) {
	var kind string
	switch {
	case errors.Is(err, engine.ErrOutOfTurn):
		kind = "out_of_turn"
	case errors.Is(err, engine.ErrWrongPhase):
		kind = "wrong_phase"
	case errors.Is(err, engine.ErrGameOver):
		kind = "game_over"
	default:
		kind = "invalid_action"
	}
	cg.log.WithError(err).WithField("kind", kind).Debug("rejected action")
	cg.emitLocked(playerID, GameEvent{
		Type:    EventError,
		GameID:  cg.ID,
		Code:    kind,
		Message: err.Error(),
	})
}

func (cg *CribbageGame) emitLocked(playerID uuid.UUID, ev GameEvent) {
	if cg.BroadcastToPlayerFn != nil {
		cg.BroadcastToPlayerFn(playerID, ev)
	}
}
