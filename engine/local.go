package engine

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"qcheckers/game"
	"qcheckers/meta"
	"qcheckers/notation"
	"qcheckers/render"
)

type Engine struct {
	Ensemble *game.Ensemble
	Players  []Player

	out      io.Writer
	palette  render.Palette
	maxTurns int
	metrics  Collector
	ensemble []game.Option
}

type Option func(e *Engine)

// WithEnsembleOptions passes options through to the game's ensemble.
func WithEnsembleOptions(options ...game.Option) Option {
	return func(e *Engine) {
		e.ensemble = append(e.ensemble, options...)
	}
}

func WithOutput(w io.Writer) Option {
	return func(e *Engine) {
		e.out = w
	}
}

func WithPalette(p render.Palette) Option {
	return func(e *Engine) {
		e.palette = p
	}
}

func WithMaxTurns(n int) Option {
	return func(e *Engine) {
		e.maxTurns = n
	}
}

func WithMetrics(c Collector) Option {
	return func(e *Engine) {
		e.metrics = c
	}
}

// LocalEngine sets up a game on a size x size board between two players.
func LocalEngine(players []Player, size int, options ...Option) *Engine {
	if len(players) != game.NumPlayers {
		panic(fmt.Sprintf("need exactly %d players, got %d", game.NumPlayers, len(players)))
	}

	eng := &Engine{
		Players:  players,
		out:      io.Discard,
		maxTurns: meta.MAX_TURNS,
		metrics:  NewDummyCollector(),
	}
	for _, opt := range options {
		opt(eng)
	}
	eng.Ensemble = game.NewEnsemble(size, eng.ensemble...)
	return eng
}

// Run alternates the players until one wins, one quits, the turn limit is
// reached or ctx is cancelled.
func (e *Engine) Run(ctx context.Context) (Result, error) {
	e.metrics.Start()
	result := Result{Winner: -1}

	log.Info().Msgf("%s is starting", render.PlayerName(0))

	for result.Turns < e.maxTurns {
		if err := ctx.Err(); err != nil {
			return e.finish(result), err
		}
		player := result.Turns % game.NumPlayers

		render.Board(e.out, e.Ensemble.ExpectedValues(), e.palette)
		quit, err := e.takeTurn(ctx, player, result.Turns+1)
		if err != nil {
			return e.finish(result), err
		}
		if quit {
			log.Info().Msgf("%s quit", render.PlayerName(player))
			result.Quit = true
			return e.finish(result), nil
		}
		result.Turns++

		render.Score(e.out, e.Ensemble.Score(), e.Ensemble.Len(), e.palette)
		if winner, ok := e.Ensemble.Winner(); ok {
			result.Winner = winner
			result.Over = true
			log.Info().Msgf("%s wins after %d turns", render.PlayerName(winner), result.Turns)
			return e.finish(result), nil
		}
	}

	log.Info().Msgf("stopped after %d turns (no winner yet)", result.Turns)
	return e.finish(result), nil
}

// takeTurn asks the player for commands until one of them ends the turn.
func (e *Engine) takeTurn(ctx context.Context, player, turn int) (bool, error) {
	view := View{Player: player, Turn: turn, Ensemble: e.Ensemble}
	for {
		cmd, err := e.Players[player].NextCommand(ctx, view)
		if err != nil {
			return false, err
		}

		switch cmd.Type {
		case notation.QuitCommand:
			return true, nil

		case notation.HelpCommand:
			fmt.Fprint(e.out, notation.Usage)

		case notation.BranchesCommand:
			render.Branches(e.out, e.Ensemble, e.palette)

		case notation.MeasureCommand:
			e.Ensemble.Measure()
			e.metrics.AddMeasurement()
			e.metrics.AddTurn(e.Ensemble.Len())
			fmt.Fprintf(e.out, "%s has measured the board!\n", render.PlayerName(player))
			return false, nil

		case notation.TurnCommand:
			res, err := e.Ensemble.PlayTurn(cmd.Turn, player)
			if errors.Is(err, game.ErrInvalidMove) {
				e.metrics.AddRejected()
				view.Rejected = err
				log.Debug().Err(err).Msgf("rejected turn from %s", render.PlayerName(player))
				fmt.Fprintf(e.out, "Invalid move: %v\n", err)
				continue
			}
			if err != nil {
				return false, err
			}
			e.metrics.AddTurn(res.Branches)
			return false, nil

		default:
			panic(fmt.Sprintf("unknown command type %d", cmd.Type))
		}
	}
}

func (e *Engine) finish(result Result) Result {
	result.Scores = e.Ensemble.Score()
	result.Metrics = e.metrics.Complete(result.Winner)
	return result
}
