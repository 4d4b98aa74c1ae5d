package engine

import (
	"fmt"
	"strings"
)

// Phase names where the round/turn machine sits.
type Phase uint8

const (
	// PhaseAwaitThrowToCrib waits on crib discards, dealer first.
	PhaseAwaitThrowToCrib Phase = iota
	// PhaseAwaitPlay waits on a play or pass from ToPlay.
	PhaseAwaitPlay
	// PhaseGameOver is terminal; every action is rejected.
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitThrowToCrib:
		return "await_throw_to_crib"
	case PhaseAwaitPlay:
		return "await_play"
	case PhaseGameOver:
		return "game_over"
	}
	return fmt.Sprintf("phase(%d)", uint8(p))
}

const (
	NumPlayers = 2
	// DealSize cards are dealt to each seat; ThrowSize of them go to
	// the crib, leaving KeepSize in hand.
	DealSize  = 6
	ThrowSize = 2
	KeepSize  = DealSize - ThrowSize
	CribSize  = NumPlayers * ThrowSize
	// MaxCount caps the running total of a play stack.
	MaxCount = 31
	// WinningScore ends the game the moment a seat reaches it.
	WinningScore = 121

	maxStack = NumPlayers * KeepSize
)

// PlayerState is one seat: a name, the cards still in hand this round,
// and the cumulative score.
type PlayerState struct {
	Name    string
	Hand    [DealSize]Card
	HandLen uint8
	Score   int16
}

// handSlice views the live portion of the hand. Callers must not hold
// it across mutations.
func (p *PlayerState) handSlice() []Card { return p.Hand[:p.HandLen] }

func (p *PlayerState) removeCard(idx int) Card {
	c := p.Hand[idx]
	copy(p.Hand[idx:], p.Hand[idx+1:p.HandLen])
	p.HandLen--
	return c
}

// pendingTotals caches the show values computed at cut time, applied
// in pone, dealer, crib order when the round's play finishes.
type pendingTotals struct {
	Pone, Dealer, Crib int16
}

// Game is the full state of one two-player game. The zero value is not
// usable; construct with NewGame. Game is not safe for concurrent use.
type Game struct {
	Players  [NumPlayers]PlayerState
	Crib     [CribSize]Card
	CribLen  uint8
	Cut      Card
	Stack    [maxStack]Card
	StackLen uint8
	// Dealer is this round's dealer seat; the pone is the other seat.
	Dealer uint8
	// ToPlay is the seat that must act next, in both live phases.
	ToPlay uint8
	// Passed is the seat with an unresolved pass this stack, or -1.
	Passed int8
	Phase  Phase
	// Winner is -1 until the game ends.
	Winner int8

	deck    Deck
	pending pendingTotals
	rng     Rand
	log     []string
}

// NewGame seats two named players, picks a first dealer from the seed,
// and deals the first round. Identical seeds and names replay
// identically.
func NewGame(seed uint64, name0, name1 string) *Game {
	g := &Game{
		Cut:    EmptyCard,
		Passed: -1,
		Winner: -1,
		rng:    NewRand(seed),
	}
	g.Players[0].Name = name0
	g.Players[1].Name = name1
	g.Dealer = uint8(g.rng.N(NumPlayers))
	g.logf("Welcome to cribbage: %s vs. %s.", name0, name1)
	g.logf("%s deals first.", g.Players[g.Dealer].Name)
	g.setUpRound()
	return g
}

// Pone returns the non-dealer seat.
func (g *Game) Pone() uint8 { return otherSeat(g.Dealer) }

func otherSeat(seat uint8) uint8 { return 1 - seat }

// Count returns the running total of the active play stack.
func (g *Game) Count() int {
	count := 0
	for _, c := range g.Stack[:g.StackLen] {
		count += c.Value()
	}
	return count
}

// DeckLen reports how many cards remain undealt this round.
func (g *Game) DeckLen() int { return g.deck.Len() }

// Log returns a copy of the game's event log.
func (g *Game) Log() []string {
	out := make([]string, len(g.log))
	copy(out, g.log)
	return out
}

func (g *Game) logf(format string, args ...any) {
	g.log = append(g.log, fmt.Sprintf(format, args...))
}

// setUpRound shuffles a fresh deck, deals six cards to each seat
// alternating dealer first, and opens the throw phase.
func (g *Game) setUpRound() {
	g.CribLen = 0
	g.StackLen = 0
	g.Cut = EmptyCard
	g.Passed = -1
	g.pending = pendingTotals{}
	g.Players[0].HandLen = 0
	g.Players[1].HandLen = 0

	g.deck = *NewDeck()
	g.deck.Shuffle(&g.rng)
	g.logf("Shuffling and dealing. %s has the crib.", g.Players[g.Dealer].Name)
	for i := 0; i < DealSize; i++ {
		for _, seat := range [NumPlayers]uint8{g.Dealer, g.Pone()} {
			c, err := g.deck.Draw()
			if err != nil {
				panic("cribbage: deal exhausted a full deck")
			}
			p := &g.Players[seat]
			p.Hand[p.HandLen] = c
			p.HandLen++
		}
	}
	g.Phase = PhaseAwaitThrowToCrib
	g.ToPlay = g.Dealer
	g.logf("Waiting for %s to throw %d cards to the crib.", g.Players[g.Dealer].Name, ThrowSize)
}

// DiscardToCrib throws the cards at two distinct hand indices into the
// crib. The dealer throws first, then the pone; the second throw draws
// the cut, scores his heels, and opens play.
func (g *Game) DiscardToCrib(seat uint8, first, second int) error {
	if g.Phase == PhaseGameOver {
		return ErrGameOver
	}
	if g.Phase != PhaseAwaitThrowToCrib {
		return fmt.Errorf("%w: cannot throw to the crib during %s", ErrWrongPhase, g.Phase)
	}
	if seat >= NumPlayers {
		return fmt.Errorf("%w: no seat %d", ErrOutOfTurn, seat)
	}
	if seat != g.ToPlay {
		return fmt.Errorf("%w: waiting on %s", ErrOutOfTurn, g.Players[g.ToPlay].Name)
	}
	p := &g.Players[seat]
	if first == second {
		return fmt.Errorf("%w: indices %d and %d must differ", ErrInvalidDiscard, first, second)
	}
	if first < 0 || first >= int(p.HandLen) || second < 0 || second >= int(p.HandLen) {
		return fmt.Errorf("%w: indices %d, %d out of range for a hand of %d", ErrInvalidDiscard, first, second, p.HandLen)
	}

	// Remove the higher index first so the lower stays valid.
	hi, lo := first, second
	if hi < lo {
		hi, lo = lo, hi
	}
	g.Crib[g.CribLen] = p.removeCard(hi)
	g.Crib[g.CribLen+1] = p.removeCard(lo)
	g.CribLen += ThrowSize
	g.logf("%s throws %d cards into the crib.", p.Name, ThrowSize)

	if seat == g.Dealer {
		g.ToPlay = g.Pone()
		g.logf("Waiting for %s to throw %d cards to the crib.", g.Players[g.ToPlay].Name, ThrowSize)
		return nil
	}

	// Both throws are in: cut, then value the round's shows up front
	// so play can settle the round without touching the deck again.
	cut, err := g.deck.Draw()
	if err != nil {
		panic("cribbage: cut from an exhausted deck")
	}
	g.Cut = cut
	g.logf("The cut card is %s.", cut)
	if cut.Rank() == RankJack {
		g.logf("%s scores 2 for his heels.", g.Players[g.Dealer].Name)
		g.award(g.Dealer, 2)
		if g.Phase == PhaseGameOver {
			return nil
		}
	}
	g.pending = pendingTotals{
		Pone:   int16(ScoreHand(g.Players[g.Pone()].handSlice(), cut, false)),
		Dealer: int16(ScoreHand(g.Players[g.Dealer].handSlice(), cut, false)),
		Crib:   int16(ScoreHand(g.Crib[:g.CribLen], cut, true)),
	}
	g.Phase = PhaseAwaitPlay
	g.ToPlay = g.Pone()
	g.logf("Waiting for %s to play a card.", g.Players[g.ToPlay].Name)
	return nil
}

// PlayCard plays the card at the given hand index onto the stack. The
// card must keep the count at or below MaxCount.
func (g *Game) PlayCard(seat uint8, index int) error {
	if err := g.checkPlayTurn(seat); err != nil {
		return err
	}
	p := &g.Players[seat]
	if index < 0 || index >= int(p.HandLen) {
		return fmt.Errorf("%w: index %d out of range for a hand of %d", ErrInvalidPlay, index, p.HandLen)
	}
	if c := p.Hand[index]; g.Count()+c.Value() > MaxCount {
		return fmt.Errorf("%w: %s would take the count past %d", ErrInvalidPlay, c, MaxCount)
	}
	g.playCard(seat, index)
	g.autoResolve()
	return nil
}

// Pass records that the seat cannot keep the count at or below
// MaxCount. A pass is taken at the player's word; the second pass of a
// stack scores the go.
func (g *Game) Pass(seat uint8) error {
	if err := g.checkPlayTurn(seat); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPass, err)
	}
	g.pass(seat)
	g.autoResolve()
	return nil
}

func (g *Game) checkPlayTurn(seat uint8) error {
	if g.Phase == PhaseGameOver {
		return ErrGameOver
	}
	if g.Phase != PhaseAwaitPlay {
		return fmt.Errorf("%w: no play expected during %s", ErrWrongPhase, g.Phase)
	}
	if seat >= NumPlayers {
		return fmt.Errorf("%w: no seat %d", ErrOutOfTurn, seat)
	}
	if seat != g.ToPlay {
		return fmt.Errorf("%w: waiting on %s", ErrOutOfTurn, g.Players[g.ToPlay].Name)
	}
	return nil
}

// playCard mutates without validating; callers check first.
func (g *Game) playCard(seat uint8, index int) {
	p := &g.Players[seat]
	c := p.removeCard(index)
	g.Stack[g.StackLen] = c
	g.StackLen++
	g.logf("%s plays %s. Cards in play: %s (%d).", p.Name, c, formatCards(g.Stack[:g.StackLen]), g.Count())

	if pts, notes := ScorePlayTrace(g.Stack[:g.StackLen]); pts > 0 {
		g.logf("%s pegs %d (%s).", p.Name, pts, strings.Join(notes, ", "))
		g.award(seat, int16(pts))
		if g.Phase == PhaseGameOver {
			return
		}
	}

	if g.Players[0].HandLen == 0 && g.Players[1].HandLen == 0 {
		// Last card of the round earns its go before the shows.
		g.logf("%s scores 1 for the go.", p.Name)
		g.award(seat, 1)
		if g.Phase == PhaseGameOver {
			return
		}
		g.finishRound()
		return
	}

	if g.Passed == -1 {
		g.ToPlay = otherSeat(seat)
	}
}

// pass mutates without validating; callers check first. The first pass
// of a stack hands the turn over; the second scores the go and resets
// the stack, leaving the turn with the go scorer to lead the next one.
func (g *Game) pass(seat uint8) {
	p := &g.Players[seat]
	if g.Passed == -1 {
		g.logf("%s cannot play: go.", p.Name)
		g.Passed = int8(seat)
		g.ToPlay = otherSeat(seat)
		return
	}
	g.logf("%s scores 1 for the go.", p.Name)
	g.Passed = -1
	g.StackLen = 0
	g.award(seat, 1)
}

// autoResolve forces the move of any player left without a real
// choice: exactly one playable card plays itself, none at all passes.
// Forced moves cascade until the player to act has two or more
// options, the round rolls over, or the game ends.
func (g *Game) autoResolve() {
	for g.Phase == PhaseAwaitPlay {
		p := &g.Players[g.ToPlay]
		count := g.Count()
		playable, first := 0, -1
		for i := 0; i < int(p.HandLen); i++ {
			if count+p.Hand[i].Value() <= MaxCount {
				playable++
				if first == -1 {
					first = i
				}
			}
		}
		switch {
		case playable >= 2:
			return
		case playable == 1:
			g.playCard(g.ToPlay, first)
		default:
			g.pass(g.ToPlay)
		}
	}
}

// finishRound applies the show totals cached at cut time in pone,
// dealer, crib order, rotates the dealer, and deals again. Any award
// that ends the game stops the rest cold.
func (g *Game) finishRound() {
	pone, dealer := g.Pone(), g.Dealer
	g.logf("%s counts %d in hand.", g.Players[pone].Name, g.pending.Pone)
	g.award(pone, g.pending.Pone)
	if g.Phase == PhaseGameOver {
		return
	}
	g.logf("%s counts %d in hand.", g.Players[dealer].Name, g.pending.Dealer)
	g.award(dealer, g.pending.Dealer)
	if g.Phase == PhaseGameOver {
		return
	}
	g.logf("%s counts %d in the crib.", g.Players[dealer].Name, g.pending.Crib)
	g.award(dealer, g.pending.Crib)
	if g.Phase == PhaseGameOver {
		return
	}
	g.Dealer = pone
	g.setUpRound()
}

// award adds points to a seat, reports the score, and ends the game
// the instant the seat reaches WinningScore.
func (g *Game) award(seat uint8, pts int16) {
	if g.Phase == PhaseGameOver {
		return
	}
	g.Players[seat].Score += pts
	g.logf("The score is now %s.", g.scoreLine())
	if g.Players[seat].Score >= WinningScore {
		g.Winner = int8(seat)
		g.Phase = PhaseGameOver
		g.logf("%s wins. Final score: %s.", g.Players[seat].Name, g.scoreLine())
	}
}

func (g *Game) scoreLine() string {
	return fmt.Sprintf("%s %d, %s %d",
		g.Players[0].Name, g.Players[0].Score,
		g.Players[1].Name, g.Players[1].Score)
}

func formatCards(cards []Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
