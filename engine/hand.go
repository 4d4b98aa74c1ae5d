package engine

import (
	"fmt"
	"math/bits"
)

// ScoreHand scores a held hand against an optional cut card. Pass
// EmptyCard as cut when no cut card applies; isCrib tightens the flush
// rule so a crib flush only counts when the cut matches the held suit.
func ScoreHand(held []Card, cut Card, isCrib bool) int {
	total, _ := scoreHand(held, cut, isCrib, false)
	return total
}

// ScoreHandTrace is ScoreHand plus a human-readable breakdown, one
// entry per scoring combination in category order.
func ScoreHandTrace(held []Card, cut Card, isCrib bool) (int, []string) {
	return scoreHand(held, cut, isCrib, true)
}

func scoreHand(held []Card, cut Card, isCrib bool, trace bool) (int, []string) {
	full := make([]Card, 0, 5)
	full = append(full, held...)
	if cut != EmptyCard {
		full = append(full, cut)
	}
	n := len(full)

	total := 0
	var notes []string
	score := func(pts int, format string, args ...any) {
		total += pts
		if trace {
			notes = append(notes, fmt.Sprintf(format+" for %d", append(args, pts)...))
		}
	}

	// Fifteens: every subset whose counting values sum to exactly 15.
	for mask := 1; mask < 1<<n; mask++ {
		sum := 0
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				sum += full[i].Value()
			}
		}
		if sum == 15 {
			score(2, "fifteen")
		}
	}

	// Pairs: every unordered pair of equal ranks. Triples and quads
	// fall out as 3 and 6 pairs.
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if full[i].Rank() == full[j].Rank() {
				score(2, "pair of %ss", rankGlyphs[full[i].Rank()])
			}
		}
	}

	// Runs: subsets of distinct consecutive ranks, counted only when
	// maximal, i.e. no card anywhere in the full set extends the run
	// at either end. Duplicated ranks yield one run per combination.
	for mask := 1; mask < 1<<n; mask++ {
		size := bits.OnesCount(uint(mask))
		if size < 3 {
			continue
		}
		var present uint16 // bit r set when rank r is in the subset
		low := RankKing + 1
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				present |= 1 << full[i].Rank()
				if full[i].Rank() < low {
					low = full[i].Rank()
				}
			}
		}
		length := 0
		for r := low; r <= RankKing && present&(1<<r) != 0; r++ {
			length++
		}
		if length != size {
			continue // a gap or duplicated rank inside the subset
		}
		extendable := false
		for i := 0; i < n; i++ {
			r := full[i].Rank()
			if r+1 == low || (r == low+uint8(length) && low+uint8(length) <= RankKing) {
				extendable = true
				break
			}
		}
		if !extendable {
			score(size, "run of %d", size)
		}
	}

	// Flush: all held cards share a suit. Cut match upgrades it to a
	// five-card flush; without the match a crib flush scores nothing.
	if len(held) > 0 {
		suit := held[0].Suit()
		flush := true
		for _, c := range held[1:] {
			if c.Suit() != suit {
				flush = false
				break
			}
		}
		switch {
		case !flush:
		case cut != EmptyCard && cut.Suit() == suit:
			score(len(held)+1, "%d-card flush", len(held)+1)
		case !isCrib:
			score(len(held), "%d-card flush", len(held))
		}
	}

	// His nob: a held Jack matching the cut suit.
	if cut != EmptyCard {
		for _, c := range held {
			if c.Rank() == RankJack && c.Suit() == cut.Suit() {
				score(1, "his nob")
				break
			}
		}
	}

	return total, notes
}
