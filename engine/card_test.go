package engine

import (
	"errors"
	"testing"
)

func TestNewCardValidation(t *testing.T) {
	if _, err := NewCard(NumSuits, RankAce); !errors.Is(err, ErrInvalidSuit) {
		t.Errorf("suit 4: got %v, want ErrInvalidSuit", err)
	}
	if _, err := NewCard(SuitSpades, 0); !errors.Is(err, ErrInvalidRank) {
		t.Errorf("rank 0: got %v, want ErrInvalidRank", err)
	}
	if _, err := NewCard(SuitSpades, RankKing+1); !errors.Is(err, ErrInvalidRank) {
		t.Errorf("rank 14: got %v, want ErrInvalidRank", err)
	}
	c, err := NewCard(SuitDiamonds, 7)
	if err != nil {
		t.Fatalf("valid card: %v", err)
	}
	if c.Suit() != SuitDiamonds || c.Rank() != 7 {
		t.Errorf("round trip: got suit %d rank %d", c.Suit(), c.Rank())
	}
}

func TestCardValue(t *testing.T) {
	cases := []struct {
		rank uint8
		want int
	}{
		{RankAce, 1}, {2, 2}, {9, 9}, {10, 10},
		{RankJack, 10}, {RankQueen, 10}, {RankKing, 10},
	}
	for _, tc := range cases {
		if got := mustCard(SuitHearts, tc.rank).Value(); got != tc.want {
			t.Errorf("rank %d: Value() = %d, want %d", tc.rank, got, tc.want)
		}
	}
}

func TestCardString(t *testing.T) {
	cases := []struct {
		card Card
		want string
	}{
		{mustCard(SuitSpades, RankAce), "A♠"},
		{mustCard(SuitDiamonds, 10), "10♦"},
		{mustCard(SuitClubs, RankKing), "K♣"},
		{mustCard(SuitHearts, RankQueen), "Q♥"},
		{EmptyCard, "--"},
	}
	for _, tc := range cases {
		if got := tc.card.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestNewDeckComplete(t *testing.T) {
	d := NewDeck()
	if d.Len() != DeckSize {
		t.Fatalf("Len() = %d, want %d", d.Len(), DeckSize)
	}
	seen := map[Card]bool{}
	for d.Len() > 0 {
		c, err := d.Draw()
		if err != nil {
			t.Fatalf("draw: %v", err)
		}
		if seen[c] {
			t.Fatalf("duplicate card %s", c)
		}
		seen[c] = true
	}
	if len(seen) != DeckSize {
		t.Errorf("saw %d distinct cards, want %d", len(seen), DeckSize)
	}
}

func TestShufflePreservesDeck(t *testing.T) {
	d := NewDeck()
	rng := NewRand(42)
	d.Shuffle(&rng)
	seen := map[Card]bool{}
	for d.Len() > 0 {
		c, _ := d.Draw()
		seen[c] = true
	}
	if len(seen) != DeckSize {
		t.Errorf("shuffle lost cards: %d distinct, want %d", len(seen), DeckSize)
	}
}

func TestShuffleDeterministic(t *testing.T) {
	a, b := NewDeck(), NewDeck()
	ra, rb := NewRand(99), NewRand(99)
	a.Shuffle(&ra)
	b.Shuffle(&rb)
	for a.Len() > 0 {
		ca, _ := a.Draw()
		cb, _ := b.Draw()
		if ca != cb {
			t.Fatalf("same seed diverged: %s vs %s", ca, cb)
		}
	}
}

func TestDrawEmptyDeck(t *testing.T) {
	d := NewDeck()
	for i := 0; i < DeckSize; i++ {
		if _, err := d.Draw(); err != nil {
			t.Fatalf("draw %d: %v", i, err)
		}
	}
	if _, err := d.Draw(); !errors.Is(err, ErrEmptyDeck) {
		t.Errorf("got %v, want ErrEmptyDeck", err)
	}
}
