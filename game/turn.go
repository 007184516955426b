package game

import "golang.org/x/exp/slices"

type directive struct {
	pass   bool
	from   Square
	to     Square
	weight int
}

// Turn collects the directives of one compound turn. Every directive counts
// toward the split, and a repeated move adds weight to its first occurrence
// rather than appearing twice.
type Turn struct {
	directives []directive
	count      int
}

func (t *Turn) AddMove(from, to Square) {
	t.count++
	idx := slices.IndexFunc(t.directives, func(d directive) bool {
		return !d.pass && d.from == from && d.to == to
	})
	if idx >= 0 {
		t.directives[idx].weight++
		return
	}
	t.directives = append(t.directives, directive{from: from, to: to, weight: 1})
}

func (t *Turn) AddPass() {
	t.count++
	t.directives = append(t.directives, directive{pass: true, weight: 1})
}

// Count is the number of directives submitted, duplicates included.
func (t Turn) Count() int {
	return t.count
}

func (t Turn) Empty() bool {
	return t.count == 0
}

// Moves returns the distinct directives, each carrying weight/Count of the turn.
func (t Turn) Moves() []Move {
	moves := make([]Move, 0, len(t.directives))
	for _, d := range t.directives {
		p := float64(d.weight) / float64(t.count)
		if d.pass {
			moves = append(moves, Pass(p))
		} else {
			moves = append(moves, Step(d.from, d.to, p))
		}
	}
	return moves
}
