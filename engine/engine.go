package engine

import (
	"context"

	"qcheckers/game"
	"qcheckers/notation"
)

// Player supplies the commands of one side. Implementations handle their own
// prompting and re-prompting on unreadable input.
type Player interface {
	NextCommand(ctx context.Context, view View) (notation.Command, error)
}

// View is what a player sees when asked for a command.
type View struct {
	Player   int
	Turn     int
	Ensemble *game.Ensemble
	Rejected error // Why the player's previous command this turn was refused, if it was
}

// Result of a finished or interrupted game.
type Result struct {
	Winner  int  // -1 when nobody won
	Over    bool // A player won
	Quit    bool // A player quit
	Turns   int
	Scores  [game.NumPlayers]float64
	Metrics GameMetric
}
