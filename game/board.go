package game

import "math"

// Square is a (row, column) coordinate on the board. Row 0 is the top row.
type Square struct {
	Row int
	Col int
}

// Geometry describes the layout of a square checkers board. It is a pure
// function of the board size.
type Geometry struct {
	Size int
}

func NewGeometry(size int) Geometry {
	if size < 4 {
		panic("board size must be at least 4")
	}
	return Geometry{Size: size}
}

func (g Geometry) InBounds(sq Square) bool {
	return sq.Row >= 0 && sq.Row < g.Size && sq.Col >= 0 && sq.Col < g.Size
}

// IsDark reports whether the square is a playable tile.
func (g Geometry) IsDark(sq Square) bool {
	return sq.Row%2 == sq.Col%2
}

// Forward returns the row delta of a single advance for the player.
// Player 0 starts on the high rows and moves toward row 0.
func Forward(player int) int {
	switch player {
	case 0:
		return -1
	case 1:
		return 1
	default:
		panic("unknown player index")
	}
}

// StartingSquares returns the dark tiles a player occupies at the start of a game.
func (g Geometry) StartingSquares(player int) []Square {
	var first, last int
	switch player {
	case 0:
		first = int(math.RoundToEven(float64(g.Size)/2)) + 1
		last = g.Size
	case 1:
		first = 0
		last = g.Size/2 - 1
	default:
		panic("unknown player index")
	}

	squares := []Square{}
	for r := first; r < last; r++ {
		for c := 0; c < g.Size; c++ {
			sq := Square{Row: r, Col: c}
			if g.IsDark(sq) {
				squares = append(squares, sq)
			}
		}
	}
	return squares
}

// Diagonals returns the in-bounds diagonal neighbours of a square.
func (g Geometry) Diagonals(sq Square) []Square {
	neighbours := make([]Square, 0, 4)
	for _, dr := range []int{-1, 1} {
		for _, dc := range []int{-1, 1} {
			n := Square{Row: sq.Row + dr, Col: sq.Col + dc}
			if g.InBounds(n) {
				neighbours = append(neighbours, n)
			}
		}
	}
	return neighbours
}

// AreAdjacent checks if two squares touch diagonally.
func (g Geometry) AreAdjacent(a, b Square) bool {
	for _, n := range g.Diagonals(a) {
		if n == b {
			return true
		}
	}
	return false
}

// Midpoint returns the square halfway between a and b (the captured square of a jump).
func Midpoint(a, b Square) Square {
	return Square{Row: (a.Row + b.Row) / 2, Col: (a.Col + b.Col) / 2}
}
