package engine

import "errors"

// Sentinel errors returned by the engine. Callers match with errors.Is;
// wrapped messages carry the offending detail.
var (
	ErrInvalidSuit    = errors.New("invalid suit")
	ErrInvalidRank    = errors.New("invalid rank")
	ErrEmptyDeck      = errors.New("draw from empty deck")
	ErrInvalidDiscard = errors.New("invalid discard")
	ErrInvalidPlay    = errors.New("invalid play")
	ErrInvalidPass    = errors.New("invalid pass")
	ErrOutOfTurn      = errors.New("out of turn")
	ErrWrongPhase     = errors.New("wrong phase")
	ErrNullPlayer     = errors.New("seat is not filled")
	ErrGameOver       = errors.New("game is over")
)
