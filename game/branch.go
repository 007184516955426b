package game

// Branch is one concrete two-player board configuration with the probability
// that the game is in it.
type Branch struct {
	Players     [2]*PlayerBoard
	Probability float64
	// Inactive marks a branch already consumed by a sub-move of the turn being
	// played. It is cleared once the whole turn is processed.
	Inactive bool
}

// NewBranch returns the standard starting position with probability 1.
func NewBranch(g Geometry) *Branch {
	b := &Branch{Probability: 1}
	for player := range b.Players {
		pb := NewPlayerBoard(g.Size)
		for _, sq := range g.StartingSquares(player) {
			pb.Set(sq.Row, sq.Col, true)
			pb.Score++
		}
		b.Players[player] = pb
	}
	return b
}

// Clone deep-copies the branch with probability scaled by split. When
// scaleOriginal is set the original keeps the remaining 1-split share.
func (b *Branch) Clone(split float64, scaleOriginal bool) *Branch {
	clone := &Branch{
		Players:     [2]*PlayerBoard{b.Players[0].Copy(), b.Players[1].Copy()},
		Probability: b.Probability * split,
		Inactive:    b.Inactive,
	}
	if scaleOriginal {
		b.Probability *= 1 - split
	}
	return clone
}

// Expected returns the probability-weighted presence and phase of a player's cell.
func (b *Branch) Expected(player, r, c int) (value float64, phase float64) {
	pb := b.player(player)
	if pb.Get(r, c) {
		value = b.Probability
	}
	if pb.Phase(r, c) {
		phase = b.Probability
	}
	return value, phase
}

// Mover returns the board of the player on turn.
func (b *Branch) Mover(player int) *PlayerBoard {
	return b.player(player)
}

// Opponent returns the board of the other player.
func (b *Branch) Opponent(player int) *PlayerBoard {
	return b.player(1 - player)
}

func (b *Branch) player(player int) *PlayerBoard {
	if player != 0 && player != 1 {
		panic("unknown player index")
	}
	return b.Players[player]
}

// occupied reports whether either player has a piece on sq.
func (b *Branch) occupied(sq Square) bool {
	return b.Players[0].has(sq) || b.Players[1].has(sq)
}
