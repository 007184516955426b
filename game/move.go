package game

import "fmt"

type MoveKind int

const (
	StepMove MoveKind = iota
	JumpMove
)

func (k MoveKind) String() string {
	switch k {
	case StepMove:
		return "step"
	case JumpMove:
		return "jump"
	default:
		return fmt.Sprintf("MoveKind(%d)", int(k))
	}
}

// Move is one directive of a turn: either a pass that only subdivides
// probability mass, or a diagonal relocation From -> To. Probability is the
// share of the turn given to this directive.
type Move struct {
	Pass        bool
	From        Square
	To          Square
	Probability float64
}

// Pass returns a pass directive carrying probability p.
func Pass(p float64) Move {
	return Move{Pass: true, Probability: p}
}

// Step returns a relocation directive carrying probability p.
func Step(from, to Square, p float64) Move {
	return Move{From: from, To: to, Probability: p}
}

// Kind classifies the move for the player. Anything other than a one-row
// step or a two-row jump in the player's forward direction is invalid.
func (m Move) Kind(player int) (MoveKind, error) {
	if m.Pass {
		return 0, fmt.Errorf("%w: a pass has no geometry", ErrInvalidMove)
	}
	forward := Forward(player)
	advance := (m.To.Row - m.From.Row) * forward
	lateral := m.To.Col - m.From.Col
	if lateral < 0 {
		lateral = -lateral
	}

	switch {
	case advance == 1 && lateral == 1:
		return StepMove, nil
	case advance == 2 && lateral == 2:
		return JumpMove, nil
	default:
		return 0, fmt.Errorf("%w: %v -> %v is neither a step nor a jump for player %d", ErrInvalidMove, m.From, m.To, player)
	}
}

func (m Move) String() string {
	if m.Pass {
		return fmt.Sprintf("pass(%.3f)", m.Probability)
	}
	return fmt.Sprintf("(%d,%d)->(%d,%d)(%.3f)", m.From.Row, m.From.Col, m.To.Row, m.To.Col, m.Probability)
}
