package game

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nullromo/cribbage/engine"
	"github.com/nullromo/cribbage/internal/models"
)

func newPlayer(username string) *models.Player {
	id := uuid.New()
	return &models.Player{ID: id, User: &models.User{ID: id, Username: username}}
}

// eventRecorder captures per-player events in order.
type eventRecorder struct {
	events map[uuid.UUID][]GameEvent
}

func newRecorder() *eventRecorder {
	return &eventRecorder{events: map[uuid.UUID][]GameEvent{}}
}

func (r *eventRecorder) fn() func(uuid.UUID, GameEvent) {
	return func(id uuid.UUID, ev GameEvent) {
		r.events[id] = append(r.events[id], ev)
	}
}

func (r *eventRecorder) last(id uuid.UUID) GameEvent {
	evs := r.events[id]
	if len(evs) == 0 {
		return GameEvent{}
	}
	return evs[len(evs)-1]
}

func (r *eventRecorder) lastState(id uuid.UUID) *StateView {
	evs := r.events[id]
	for i := len(evs) - 1; i >= 0; i-- {
		if evs[i].Type == EventStateUpdate {
			return evs[i].State
		}
	}
	return nil
}

func seatedGame(t *testing.T, seed uint64) (*CribbageGame, *eventRecorder, *models.Player, *models.Player) {
	t.Helper()
	cg := NewCribbageGame()
	cg.Seed = seed
	rec := newRecorder()
	cg.BroadcastToPlayerFn = rec.fn()
	p0 := newPlayer("alice")
	p1 := newPlayer("bob")
	require.NoError(t, cg.AddPlayer(p0))
	require.False(t, cg.Started())
	require.NoError(t, cg.AddPlayer(p1))
	require.True(t, cg.Started())
	return cg, rec, p0, p1
}

func TestAddPlayerStartsAtTwo(t *testing.T) {
	cg, rec, p0, p1 := seatedGame(t, 11)

	for _, p := range []*models.Player{p0, p1} {
		state := rec.lastState(p.ID)
		require.NotNil(t, state, "no state for %s", p.Username())
		assert.Len(t, state.Hand, engine.DealSize)
		assert.Equal(t, engine.DealSize, state.OpponentCards)
		assert.Equal(t, "await_throw_to_crib", state.Phase)
		assert.Nil(t, state.Cut)
	}
	// Exactly one seat is on turn.
	s0, s1 := rec.lastState(p0.ID), rec.lastState(p1.ID)
	assert.NotEqual(t, s0.YourTurn, s1.YourTurn)

	third := newPlayer("carol")
	assert.Error(t, cg.AddPlayer(third))
}

func TestActionBeforeOpponent(t *testing.T) {
	cg := NewCribbageGame()
	rec := newRecorder()
	cg.BroadcastToPlayerFn = rec.fn()
	p0 := newPlayer("alice")
	require.NoError(t, cg.AddPlayer(p0))

	cg.HandleThrowToCrib(p0.ID, []int{0, 1})
	ev := rec.last(p0.ID)
	assert.Equal(t, EventError, ev.Type)
	assert.Contains(t, ev.Message, "opponent")
}

func TestOutOfTurnThrowRejected(t *testing.T) {
	cg, rec, p0, p1 := seatedGame(t, 12)

	// Whoever is not on turn throws first and gets bounced.
	offTurn := p0
	if rec.lastState(p0.ID).YourTurn {
		offTurn = p1
	}
	hand := rec.lastState(offTurn.ID).Hand
	cg.HandleThrowToCrib(offTurn.ID, []int{0, 1})
	ev := rec.last(offTurn.ID)
	require.Equal(t, EventError, ev.Type)
	assert.Equal(t, "out_of_turn", ev.Code)
	// No fresh state was pushed; the hand is unchanged.
	assert.Equal(t, hand, rec.lastState(offTurn.ID).Hand)
}

func TestThrowSizeEnforced(t *testing.T) {
	cg, rec, p0, p1 := seatedGame(t, 13)
	onTurn := p0
	if rec.lastState(p1.ID).YourTurn {
		onTurn = p1
	}
	cg.HandleThrowToCrib(onTurn.ID, []int{0})
	ev := rec.last(onTurn.ID)
	require.Equal(t, EventError, ev.Type)
	assert.Equal(t, "invalid_action", ev.Code)
}

func TestFullGameThroughHandlers(t *testing.T) {
	cg, rec, p0, p1 := seatedGame(t, 14)
	byID := map[uuid.UUID]*models.Player{p0.ID: p0, p1.ID: p1}

	current := func() *models.Player {
		for id := range byID {
			if s := rec.lastState(id); s != nil && s.YourTurn {
				return byID[id]
			}
		}
		return nil
	}

	for steps := 0; steps < 20000; steps++ {
		p := current()
		if p == nil {
			break // game over, nobody on turn
		}
		state := rec.lastState(p.ID)
		switch state.Phase {
		case "await_throw_to_crib":
			cg.HandleThrowToCrib(p.ID, []int{0, 1})
		case "await_play":
			played := false
			for i, c := range state.Hand {
				if state.Count+c.Value <= engine.MaxCount {
					idx := i
					cg.HandlePlay(p.ID, &idx)
					played = true
					break
				}
			}
			if !played {
				cg.HandlePlay(p.ID, nil)
			}
		default:
			t.Fatalf("unexpected phase %q on turn", state.Phase)
		}
		if ev := rec.last(p.ID); ev.Type == EventError {
			t.Fatalf("legal move rejected: %s", ev.Message)
		}
	}

	for _, p := range []*models.Player{p0, p1} {
		ev := rec.last(p.ID)
		require.Equal(t, EventGameEnd, ev.Type, "player %s", p.Username())
		assert.NotEmpty(t, ev.Winner)
	}
}

func TestDisconnectReconnect(t *testing.T) {
	cg, rec, p0, _ := seatedGame(t, 15)

	cg.HandleDisconnect(p0.ID)
	for _, p := range cg.Players() {
		if p.ID == p0.ID {
			assert.False(t, p.Connected)
		}
	}

	before := len(rec.events[p0.ID])
	require.NoError(t, cg.HandleReconnect(&models.Player{ID: p0.ID, User: p0.User}))
	require.Greater(t, len(rec.events[p0.ID]), before, "reconnect must replay state")
	assert.Equal(t, EventStateUpdate, rec.last(p0.ID).Type)

	stranger := newPlayer("mallory")
	assert.Error(t, cg.HandleReconnect(stranger))
}

func TestStateForUnknownPlayer(t *testing.T) {
	cg, _, _, _ := seatedGame(t, 16)
	_, err := cg.StateFor(uuid.New())
	assert.ErrorIs(t, err, engine.ErrNullPlayer)
}
