// Package agent provides pluggable decision sources that can drive a
// seat in a cribbage game, plus a driver that runs two of them to
// completion. It powers bot opponents and soak tests.
package agent

import (
	"fmt"

	"github.com/nullromo/cribbage/engine"
)

// DecisionSource chooses moves for one seat from that seat's view of
// the game. Implementations must return legal moves for the snapshot
// they are shown.
type DecisionSource interface {
	// ChooseThrow returns two distinct hand indices to throw to the
	// crib.
	ChooseThrow(snap engine.Snapshot) (int, int)
	// ChoosePlay returns the hand index to play, or pass=true when no
	// held card keeps the count at or below the limit.
	ChoosePlay(snap engine.Snapshot) (index int, pass bool)
}

// maxSteps bounds a driven game; real games finish in far fewer moves.
const maxSteps = 20000

// Play drives a game to completion with one decision source per seat
// and returns the winning seat.
func Play(g *engine.Game, sources [engine.NumPlayers]DecisionSource) (int8, error) {
	for steps := 0; ; steps++ {
		if steps > maxSteps {
			return -1, fmt.Errorf("agent: game exceeded %d steps", maxSteps)
		}
		seat := g.ToPlay
		snap := g.SnapshotFor(seat)
		switch snap.Phase {
		case engine.PhaseGameOver:
			return g.Winner, nil
		case engine.PhaseAwaitThrowToCrib:
			first, second := sources[seat].ChooseThrow(snap)
			if err := g.DiscardToCrib(seat, first, second); err != nil {
				return -1, fmt.Errorf("agent: seat %d throw: %w", seat, err)
			}
		case engine.PhaseAwaitPlay:
			index, pass := sources[seat].ChoosePlay(snap)
			if pass {
				if err := g.Pass(seat); err != nil {
					return -1, fmt.Errorf("agent: seat %d pass: %w", seat, err)
				}
				continue
			}
			if err := g.PlayCard(seat, index); err != nil {
				return -1, fmt.Errorf("agent: seat %d play: %w", seat, err)
			}
		}
	}
}

// playableIndices lists hand indices whose card keeps the count legal.
func playableIndices(snap engine.Snapshot) []int {
	var out []int
	for i, c := range snap.Hand {
		if snap.Count+c.Value() <= engine.MaxCount {
			out = append(out, i)
		}
	}
	return out
}
