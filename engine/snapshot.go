package engine

// Snapshot is an immutable view of the game prepared for one seat. The
// opponent's cards never appear, only how many they hold; everything
// else mirrors the public table state.
type Snapshot struct {
	You           uint8
	Hand          []Card
	OpponentCards int
	Stack         []Card
	Count         int
	Scores        [NumPlayers]int16
	Names         [NumPlayers]string
	Dealer        uint8
	ToPlay        uint8
	Phase         Phase
	Winner        int8
	Cut           Card
	CribCards     int
	DeckCards     int
	Log           []string
}

// SnapshotFor builds the view of the game a given seat is allowed to
// see. The returned slices are copies; mutating them cannot touch the
// game.
func (g *Game) SnapshotFor(seat uint8) Snapshot {
	s := Snapshot{
		You:           seat,
		OpponentCards: int(g.Players[otherSeat(seat)].HandLen),
		Count:         g.Count(),
		Dealer:        g.Dealer,
		ToPlay:        g.ToPlay,
		Phase:         g.Phase,
		Winner:        g.Winner,
		Cut:           g.Cut,
		CribCards:     int(g.CribLen),
		DeckCards:     g.deck.Len(),
		Log:           g.Log(),
	}
	for i := range g.Players {
		s.Scores[i] = g.Players[i].Score
		s.Names[i] = g.Players[i].Name
	}
	s.Hand = append([]Card(nil), g.Players[seat].handSlice()...)
	s.Stack = append([]Card(nil), g.Stack[:g.StackLen]...)
	return s
}

// YourTurn reports whether the viewing seat is the one expected to act.
func (s *Snapshot) YourTurn() bool {
	return s.Phase != PhaseGameOver && s.ToPlay == s.You
}
