package game

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

type Option func(e *Ensemble)

// WithSource sets the random source used by Measure.
func WithSource(src rand.Source) Option {
	return func(e *Ensemble) {
		if src != nil {
			e.source = src
		}
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(e *Ensemble) {
		e.logger = logger
	}
}

// Ensemble is the game state: every board the game could be in, each weighted
// by its probability. Probabilities sum to 1 between turns.
// An Ensemble is not safe for concurrent use.
type Ensemble struct {
	geometry Geometry
	branches []*Branch
	source   rand.Source
	logger   zerolog.Logger
}

// TurnResult summarizes what a turn did to the ensemble.
type TurnResult struct {
	Directives int // Distinct directives applied
	Created    int // Branches appended
	Dropped    int // Pre-turn branches superseded by their clones
	Branches   int // Branch count after the turn
}

// NewEnsemble returns a game in the standard starting position.
func NewEnsemble(size int, options ...Option) *Ensemble {
	g := NewGeometry(size)
	e := &Ensemble{
		geometry: g,
		branches: []*Branch{NewBranch(g)},
		logger:   log.Logger,
	}
	for _, option := range options {
		option(e)
	}
	if e.source == nil {
		seed, src := seededSource()
		e.source = src
		e.logger.Debug().Msgf("measurement seed %d", seed)
	}
	return e
}

func (e *Ensemble) Size() int {
	return e.geometry.Size
}

func (e *Ensemble) Geometry() Geometry {
	return e.geometry
}

// Branches returns the live branches. Callers must not modify them.
func (e *Ensemble) Branches() []*Branch {
	return e.branches
}

func (e *Ensemble) Len() int {
	return len(e.branches)
}

func (e *Ensemble) TotalProbability() float64 {
	return floats.Sum(e.probabilities())
}

func (e *Ensemble) probabilities() []float64 {
	return lo.Map(e.branches, func(b *Branch, _ int) float64 {
		return b.Probability
	})
}

// ApplyMove applies one directive to every branch not yet consumed this turn.
// A pass clones each such branch with the directive's probability. A step or
// jump is applied where it is legal: in a clone when the probability is below
// 1, otherwise on the branch itself. Branches where it is illegal are left
// alone. Malformed geometry or a probability outside (0, 1] fails with
// ErrInvalidMove before any branch changes.
// The caller clears Inactive once the turn is done.
func (e *Ensemble) ApplyMove(m Move, player int) error {
	_, err := e.applyMove(m, player, false)
	return err
}

// applyMove returns how much of each source branch's probability went to clones.
func (e *Ensemble) applyMove(m Move, player int, alwaysClone bool) (map[*Branch]float64, error) {
	consumed := make(map[*Branch]float64)
	active := lo.Filter(e.branches, func(b *Branch, _ int) bool {
		return !b.Inactive
	})

	kind, err := e.validate(m, player)
	if err != nil {
		return nil, err
	}

	if m.Pass {
		for _, b := range active {
			clone := b.Clone(m.Probability, false)
			clone.Inactive = true
			e.branches = append(e.branches, clone)
			consumed[b] += m.Probability
		}
		return consumed, nil
	}

	for _, b := range active {
		if !e.legal(b, m, kind, player) {
			continue
		}
		target := b
		if alwaysClone || !isCertain(m.Probability) {
			target = b.Clone(m.Probability, false)
			e.branches = append(e.branches, target)
			consumed[b] += m.Probability
		}
		play(target, m, kind, player)
		target.Inactive = true
	}
	return consumed, nil
}

func (e *Ensemble) validate(m Move, player int) (MoveKind, error) {
	if m.Probability <= 0 || m.Probability > 1 {
		return 0, fmt.Errorf("%w: probability %v outside (0, 1]", ErrInvalidMove, m.Probability)
	}
	if m.Pass {
		return 0, nil
	}
	kind, err := m.Kind(player)
	if err != nil {
		return 0, err
	}
	if !e.geometry.InBounds(m.From) || !e.geometry.InBounds(m.To) {
		return 0, fmt.Errorf("%w: %v -> %v leaves the %dx%d board", ErrInvalidMove, m.From, m.To, e.geometry.Size, e.geometry.Size)
	}
	return kind, nil
}

// legal checks the move against the exact contents of one branch.
func (e *Ensemble) legal(b *Branch, m Move, kind MoveKind, player int) bool {
	mover := b.Mover(player)
	if !mover.has(m.From) || b.occupied(m.To) {
		return false
	}
	if kind == JumpMove {
		mid := Midpoint(m.From, m.To)
		return b.Opponent(player).has(mid) && !mover.has(mid)
	}
	return true
}

func play(b *Branch, m Move, kind MoveKind, player int) {
	b.Mover(player).Move(m.From.Row, m.From.Col, m.To.Row, m.To.Col)
	if kind == JumpMove {
		mid := Midpoint(m.From, m.To)
		opponent := b.Opponent(player)
		opponent.Remove(mid.Row, mid.Col)
		opponent.Score--
	}
}

// PlayTurn plays a compound turn for the player. Every directive's geometry is
// checked before anything is applied, so a malformed turn changes nothing.
// A single directive is applied with ApplyMove; a lone pass does nothing.
// With several directives each one is applied to clones of the pre-turn
// branches, and a pre-turn branch only survives with the share of its
// probability that no legal directive took.
func (e *Ensemble) PlayTurn(t Turn, player int) (TurnResult, error) {
	if t.Empty() {
		return TurnResult{}, fmt.Errorf("%w: empty turn", ErrInvalidMove)
	}
	moves := t.Moves()
	for _, m := range moves {
		if _, err := e.validate(m, player); err != nil {
			return TurnResult{}, err
		}
	}
	defer e.settle()

	before := len(e.branches)
	result := TurnResult{Directives: len(moves)}

	if t.Count() == 1 {
		if !moves[0].Pass {
			if err := e.ApplyMove(moves[0], player); err != nil {
				return TurnResult{}, err
			}
		}
		result.Created = len(e.branches) - before
		result.Branches = len(e.branches)
		e.logTurn(player, result)
		return result, nil
	}

	pre := slices.Clone(e.branches)
	consumed := make(map[*Branch]float64, len(pre))
	for _, m := range moves {
		shares, err := e.applyMove(m, player, true)
		if err != nil {
			return TurnResult{}, err
		}
		for b, p := range shares {
			consumed[b] += p
		}
	}

	superseded := make(map[*Branch]bool)
	for _, b := range pre {
		remaining := 1 - consumed[b]
		if remaining <= ProbabilityTolerance {
			superseded[b] = true
			continue
		}
		b.Probability *= remaining
	}
	e.branches = slices.DeleteFunc(e.branches, func(b *Branch) bool {
		return superseded[b]
	})

	result.Created = len(e.branches) - before + len(superseded)
	result.Dropped = len(superseded)
	result.Branches = len(e.branches)
	e.logTurn(player, result)
	return result, nil
}

func (e *Ensemble) settle() {
	for _, b := range e.branches {
		b.Inactive = false
	}
}

func (e *Ensemble) logTurn(player int, result TurnResult) {
	e.logger.Debug().
		Int("player", player).
		Int("directives", result.Directives).
		Int("created", result.Created).
		Int("dropped", result.Dropped).
		Int("branches", result.Branches).
		Msg("turn played")
}

// Measure collapses the ensemble to a single branch drawn by probability and
// returns the index the branch had before the collapse.
func (e *Ensemble) Measure() int {
	chosen := 0
	if len(e.branches) > 1 {
		dist := distuv.NewCategorical(e.probabilities(), e.source)
		chosen = int(dist.Rand())
	}
	b := e.branches[chosen]
	b.Probability = 1
	e.logger.Debug().Msgf("measured branch %d of %d", chosen+1, len(e.branches))
	e.branches = []*Branch{b}
	return chosen
}

// ExpectedValues returns, per player, the probability that each cell holds one
// of their pieces.
func (e *Ensemble) ExpectedValues() [NumPlayers][][]float64 {
	return e.expectation(func(b *Branch, player, r, c int) float64 {
		value, _ := b.Expected(player, r, c)
		return value
	})
}

// ExpectedPhases is ExpectedValues for the phase bit.
func (e *Ensemble) ExpectedPhases() [NumPlayers][][]float64 {
	return e.expectation(func(b *Branch, player, r, c int) float64 {
		_, phase := b.Expected(player, r, c)
		return phase
	})
}

func (e *Ensemble) expectation(contribution func(b *Branch, player, r, c int) float64) [NumPlayers][][]float64 {
	size := e.geometry.Size
	var grids [NumPlayers][][]float64
	for player := range grids {
		grid := make([][]float64, size)
		for r := range grid {
			grid[r] = make([]float64, size)
			for c := range grid[r] {
				for _, b := range e.branches {
					grid[r][c] += contribution(b, player, r, c)
				}
			}
		}
		grids[player] = grid
	}
	return grids
}

// Score returns each player's expected piece count, rounded to 2 decimals.
func (e *Ensemble) Score() [NumPlayers]float64 {
	var scores [NumPlayers]float64
	for player := range scores {
		expected := lo.SumBy(e.branches, func(b *Branch) float64 {
			return float64(b.Players[player].Score) * b.Probability
		})
		scores[player] = math.Round(expected*100) / 100
	}
	return scores
}

// Winner reports the winning player once either expected score drops below 1.
func (e *Ensemble) Winner() (int, bool) {
	scores := e.Score()
	switch {
	case scores[0] < 1:
		return 1, true
	case scores[1] < 1:
		return 0, true
	default:
		return -1, false
	}
}

func isCertain(p float64) bool {
	return math.Abs(p-1) <= ProbabilityTolerance
}
