package agent

import "github.com/nullromo/cribbage/engine"

// Greedy keeps the four cards that score best before the cut and plays
// whichever card pegs the most right now. No lookahead.
type Greedy struct{}

func (Greedy) ChooseThrow(snap engine.Snapshot) (int, int) {
	n := len(snap.Hand)
	bestFirst, bestSecond, bestScore := 0, 1, -1
	kept := make([]engine.Card, 0, n-2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			kept = kept[:0]
			for k := 0; k < n; k++ {
				if k != i && k != j {
					kept = append(kept, snap.Hand[k])
				}
			}
			if s := engine.ScoreHand(kept, engine.EmptyCard, false); s > bestScore {
				bestFirst, bestSecond, bestScore = i, j, s
			}
		}
	}
	return bestFirst, bestSecond
}

func (Greedy) ChoosePlay(snap engine.Snapshot) (int, bool) {
	playable := playableIndices(snap)
	if len(playable) == 0 {
		return 0, true
	}
	best, bestScore := playable[0], -1
	stack := make([]engine.Card, len(snap.Stack), len(snap.Stack)+1)
	copy(stack, snap.Stack)
	for _, i := range playable {
		if s := engine.ScorePlay(append(stack, snap.Hand[i])); s > bestScore {
			best, bestScore = i, s
		}
	}
	return best, false
}
