package engine

import "fmt"

// ScorePlay scores the most recent card of an in-play stack for the
// player who laid it: fifteens, thirty-one, pair multiples, and the
// longest run ending at the top of the stack.
func ScorePlay(stack []Card) int {
	total, _ := scorePlay(stack, false)
	return total
}

// ScorePlayTrace is ScorePlay plus a breakdown of what pegged.
func ScorePlayTrace(stack []Card) (int, []string) {
	return scorePlay(stack, true)
}

func scorePlay(stack []Card, trace bool) (int, []string) {
	if len(stack) == 0 {
		return 0, nil
	}

	total := 0
	var notes []string
	score := func(pts int, format string, args ...any) {
		total += pts
		if trace {
			notes = append(notes, fmt.Sprintf(format+" for %d", append(args, pts)...))
		}
	}

	count := 0
	for _, c := range stack {
		count += c.Value()
	}
	if count == 15 {
		score(2, "fifteen")
	}
	if count == MaxCount {
		score(1, "thirty-one")
	}

	// Pairs: walk back over cards matching the top card's rank. k
	// matches mean k*(k+1)/2 pairs at 2 points each.
	top := stack[len(stack)-1]
	k := 0
	for i := len(stack) - 2; i >= 0 && stack[i].Rank() == top.Rank(); i-- {
		k++
	}
	if k > 0 {
		score(k*(k+1), "%d of a kind", k+1)
	}

	// Runs: the longest stack suffix whose ranks form a consecutive
	// set in any order. Duplicates break the suffix they appear in.
	for size := len(stack); size >= 3; size-- {
		var present uint16
		low := RankKing + 1
		dup := false
		for _, c := range stack[len(stack)-size:] {
			if present&(1<<c.Rank()) != 0 {
				dup = true
				break
			}
			present |= 1 << c.Rank()
			if c.Rank() < low {
				low = c.Rank()
			}
		}
		if dup {
			continue
		}
		length := 0
		for r := low; r <= RankKing && present&(1<<r) != 0; r++ {
			length++
		}
		if length == size {
			score(size, "run of %d", size)
			break
		}
	}

	return total, notes
}
