// Package engine implements a complete two-player cribbage game: the
// card model, hand and pegging scorers, and the round/turn state
// machine. It is deterministic given a seed and carries no I/O; callers
// observe the game through snapshots and the event log.
package engine

import "fmt"

// Suits, packed into the high nibble of a Card.
const (
	SuitSpades uint8 = iota
	SuitHearts
	SuitDiamonds
	SuitClubs

	NumSuits uint8 = 4
)

// Ranks run 1..13. Face cards keep their rank for runs and pairs but
// count 10 toward fifteens and the pegging count.
const (
	RankAce   uint8 = 1
	RankJack  uint8 = 11
	RankQueen uint8 = 12
	RankKing  uint8 = 13
)

// Card packs suit and rank into one byte: suit in the high nibble,
// rank in the low nibble.
type Card uint8

// EmptyCard marks an absent card, such as the cut before the throw
// phase completes.
const EmptyCard Card = 0xFF

// NewCard validates suit and rank and packs them into a Card.
func NewCard(suit, rank uint8) (Card, error) {
	if suit >= NumSuits {
		return EmptyCard, fmt.Errorf("%w: %d", ErrInvalidSuit, suit)
	}
	if rank < RankAce || rank > RankKing {
		return EmptyCard, fmt.Errorf("%w: %d", ErrInvalidRank, rank)
	}
	return Card(suit<<4 | rank), nil
}

// mustCard builds a Card from inputs already known to be in range.
func mustCard(suit, rank uint8) Card {
	c, err := NewCard(suit, rank)
	if err != nil {
		panic(err)
	}
	return c
}

// Suit returns the card's suit, one of the Suit constants.
func (c Card) Suit() uint8 { return uint8(c) >> 4 }

// Rank returns the card's rank, 1..13.
func (c Card) Rank() uint8 { return uint8(c) & 0x0F }

// Value returns the card's counting value: rank capped at 10.
func (c Card) Value() int {
	if r := int(c.Rank()); r < 10 {
		return r
	}
	return 10
}

var suitIcons = [NumSuits]string{"♠", "♥", "♦", "♣"}

var rankGlyphs = [RankKing + 1]string{
	"?", "A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K",
}

// String renders the card as a rank glyph followed by a suit icon,
// e.g. "A♠". Presentation only; scoring never inspects it.
func (c Card) String() string {
	if c == EmptyCard {
		return "--"
	}
	if c.Suit() >= NumSuits || c.Rank() < RankAce || c.Rank() > RankKing {
		return fmt.Sprintf("?(%d)", uint8(c))
	}
	return rankGlyphs[c.Rank()] + suitIcons[c.Suit()]
}

// DeckSize is the number of cards in a standard deck.
const DeckSize = 52

// Deck is a mutable pile of cards. Draw pops from the end.
type Deck struct {
	cards [DeckSize]Card
	n     uint8
}

// NewDeck builds a full 52-card deck in suit-major order, unshuffled.
func NewDeck() *Deck {
	var d Deck
	for s := uint8(0); s < NumSuits; s++ {
		for r := RankAce; r <= RankKing; r++ {
			d.cards[d.n] = mustCard(s, r)
			d.n++
		}
	}
	return &d
}

// Len reports how many cards remain.
func (d *Deck) Len() int { return int(d.n) }

// Shuffle applies an unbiased Fisher-Yates permutation driven by rng.
func (d *Deck) Shuffle(rng *Rand) {
	for i := int(d.n) - 1; i > 0; i-- {
		j := int(rng.N(uint64(i + 1)))
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns the top card.
func (d *Deck) Draw() (Card, error) {
	if d.n == 0 {
		return EmptyCard, ErrEmptyDeck
	}
	d.n--
	return d.cards[d.n], nil
}

// Rand is an inline xorshift64 stream, small enough to embed by value
// in game state so every game owns its own reproducible sequence.
type Rand struct {
	s uint64
}

// NewRand seeds a stream. A zero seed is replaced with 1 since
// xorshift64 has a fixed point at zero.
func NewRand(seed uint64) Rand {
	if seed == 0 {
		seed = 1
	}
	return Rand{s: seed}
}

func (r *Rand) next() uint64 {
	x := r.s
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	r.s = x
	return x
}

// N returns a value in [0, n). n must be positive.
func (r *Rand) N(n uint64) uint64 {
	return r.next() % n
}
