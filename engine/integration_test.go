package engine

import "testing"

// TestRandomGamesTerminate drives full games with a naive policy:
// throw the first two cards, play the first playable card, otherwise
// pass. Every seeded game must reach a winner without the engine
// rejecting a move it asked for.
func TestRandomGamesTerminate(t *testing.T) {
	for seed := uint64(1); seed <= 40; seed++ {
		g := newTestGame(seed)
		for steps := 0; g.Phase != PhaseGameOver; steps++ {
			if steps > 20000 {
				t.Fatalf("seed %d: game did not terminate", seed)
			}
			seat := g.ToPlay
			switch g.Phase {
			case PhaseAwaitThrowToCrib:
				if err := g.DiscardToCrib(seat, 0, 1); err != nil {
					t.Fatalf("seed %d: throw: %v", seed, err)
				}
			case PhaseAwaitPlay:
				snap := g.SnapshotFor(seat)
				played := false
				for i, c := range snap.Hand {
					if snap.Count+c.Value() <= MaxCount {
						if err := g.PlayCard(seat, i); err != nil {
							t.Fatalf("seed %d: play: %v", seed, err)
						}
						played = true
						break
					}
				}
				if !played {
					if err := g.Pass(seat); err != nil {
						t.Fatalf("seed %d: pass: %v", seed, err)
					}
				}
			}
		}
		if g.Winner < 0 || g.Winner >= NumPlayers {
			t.Fatalf("seed %d: winner = %d", seed, g.Winner)
		}
		winner := g.Players[g.Winner].Score
		loser := g.Players[otherSeat(uint8(g.Winner))].Score
		if winner < WinningScore {
			t.Errorf("seed %d: winner at %d, below %d", seed, winner, WinningScore)
		}
		if loser >= WinningScore {
			t.Errorf("seed %d: loser at %d, at or above %d", seed, loser, WinningScore)
		}
	}
}

// TestInvariantsHoldThroughout replays games checking structural
// invariants after every applied action.
func TestInvariantsHoldThroughout(t *testing.T) {
	for seed := uint64(50); seed <= 60; seed++ {
		g := newTestGame(seed)
		var prev [NumPlayers]int16
		check := func() {
			for seat := range g.Players {
				if g.Players[seat].Score < prev[seat] {
					t.Fatalf("seed %d: seat %d score went backward: %d -> %d",
						seed, seat, prev[seat], g.Players[seat].Score)
				}
				prev[seat] = g.Players[seat].Score
			}
			total := int(g.Players[0].HandLen) + int(g.Players[1].HandLen) +
				int(g.CribLen) + int(g.StackLen) + g.DeckLen()
			want := DeckSize
			if g.Cut != EmptyCard {
				want--
			}
			// Cards pegged out of previous stacks leave the count.
			if total > want {
				t.Fatalf("seed %d: %d cards tracked, deck holds %d", seed, total, want)
			}
			if g.Count() > MaxCount {
				t.Fatalf("seed %d: count %d past %d", seed, g.Count(), MaxCount)
			}
			if g.Phase != PhaseGameOver && g.ToPlay >= NumPlayers {
				t.Fatalf("seed %d: ToPlay = %d", seed, g.ToPlay)
			}
		}
		for steps := 0; g.Phase != PhaseGameOver && steps < 20000; steps++ {
			seat := g.ToPlay
			if g.Phase == PhaseAwaitThrowToCrib {
				_ = g.DiscardToCrib(seat, 1, 0)
			} else {
				snap := g.SnapshotFor(seat)
				acted := false
				for i := len(snap.Hand) - 1; i >= 0; i-- {
					if snap.Count+snap.Hand[i].Value() <= MaxCount {
						_ = g.PlayCard(seat, i)
						acted = true
						break
					}
				}
				if !acted {
					_ = g.Pass(seat)
				}
			}
			check()
		}
	}
}
