// Package game implements probabilistic checkers: a game state is a weighted
// ensemble of ordinary checkers boards. A turn may split between several
// moves, each carried forward in its own branch, and a measurement collapses
// the ensemble to one board.
package game

import "errors"

// ErrInvalidMove is returned for move geometry that is neither a step nor a jump,
// and for move text that cannot be turned into coordinates.
var ErrInvalidMove = errors.New("invalid move")

// ErrOutOfBounds is the panic value (wrapped) for cell access outside the board.
var ErrOutOfBounds = errors.New("square out of bounds")

const (
	// ProbabilityTolerance bounds the drift of the summed branch probabilities.
	ProbabilityTolerance = 1e-9

	// Players in a game.
	NumPlayers = 2
)
