package agent

import (
	"math/rand/v2"

	"github.com/nullromo/cribbage/engine"
)

// Random throws and plays uniformly among legal moves. It is the
// baseline opponent and the workhorse of soak tests.
type Random struct {
	rng *rand.Rand
}

// NewRandom builds a Random agent with its own seeded stream.
func NewRandom(seed uint64) *Random {
	return &Random{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (a *Random) ChooseThrow(snap engine.Snapshot) (int, int) {
	first := a.rng.IntN(len(snap.Hand))
	second := a.rng.IntN(len(snap.Hand) - 1)
	if second >= first {
		second++
	}
	return first, second
}

func (a *Random) ChoosePlay(snap engine.Snapshot) (int, bool) {
	playable := playableIndices(snap)
	if len(playable) == 0 {
		return 0, true
	}
	return playable[a.rng.IntN(len(playable))], false
}
