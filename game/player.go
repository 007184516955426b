package game

import "fmt"

// Cell is one square of a player's board: whether a piece is there and its
// phase bit.
type Cell struct {
	Present bool
	Phase   bool
}

// PlayerBoard is one player's grid of pieces plus their running piece count.
type PlayerBoard struct {
	size  int
	cells []Cell // row-major, size*size
	Score int    // Live pieces, decremented on capture
}

func NewPlayerBoard(size int) *PlayerBoard {
	return &PlayerBoard{
		size:  size,
		cells: make([]Cell, size*size),
	}
}

func (pb *PlayerBoard) Size() int {
	return pb.size
}

func (pb *PlayerBoard) index(r, c int) int {
	if r < 0 || r >= pb.size || c < 0 || c >= pb.size {
		panic(fmt.Errorf("%w: (%d, %d) on a %dx%d board", ErrOutOfBounds, r, c, pb.size, pb.size))
	}
	return r*pb.size + c
}

func (pb *PlayerBoard) Get(r, c int) bool {
	return pb.cells[pb.index(r, c)].Present
}

func (pb *PlayerBoard) Phase(r, c int) bool {
	return pb.cells[pb.index(r, c)].Phase
}

// PhasedValue is 0 for an empty cell and (-1)^phase otherwise.
func (pb *PlayerBoard) PhasedValue(r, c int) int {
	cell := pb.cells[pb.index(r, c)]
	switch {
	case !cell.Present:
		return 0
	case cell.Phase:
		return -1
	default:
		return 1
	}
}

func (pb *PlayerBoard) Set(r, c int, present bool) {
	pb.cells[pb.index(r, c)].Present = present
}

func (pb *PlayerBoard) SetPhase(r, c int, phase bool) {
	pb.cells[pb.index(r, c)].Phase = phase
}

// Move relocates the presence and phase of (r1, c1) to (r2, c2) and clears the source.
func (pb *PlayerBoard) Move(r1, c1, r2, c2 int) {
	src := pb.index(r1, c1)
	dst := pb.index(r2, c2)
	cell := pb.cells[src]
	pb.cells[src] = Cell{}
	pb.cells[dst] = cell
}

// Remove clears a cell. The caller is responsible for decrementing Score.
func (pb *PlayerBoard) Remove(r, c int) {
	pb.cells[pb.index(r, c)] = Cell{}
}

// Count returns the number of occupied cells.
func (pb *PlayerBoard) Count() int {
	n := 0
	for _, cell := range pb.cells {
		if cell.Present {
			n++
		}
	}
	return n
}

func (pb *PlayerBoard) Copy() *PlayerBoard {
	cellsCopy := make([]Cell, len(pb.cells))
	copy(cellsCopy, pb.cells)
	return &PlayerBoard{
		size:  pb.size,
		cells: cellsCopy,
		Score: pb.Score,
	}
}

func (pb *PlayerBoard) has(sq Square) bool {
	return pb.Get(sq.Row, sq.Col)
}
