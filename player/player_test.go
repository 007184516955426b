package player

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/chzyer/readline"
	"github.com/stretchr/testify/require"

	"qcheckers/engine"
	"qcheckers/game"
	"qcheckers/notation"
	"qcheckers/render"
)

type fakeReader struct {
	lines []string
	errs  []error
}

func (f *fakeReader) Readline() (string, error) {
	if len(f.lines) == 0 {
		return "", io.EOF
	}
	line, err := f.lines[0], f.errs[0]
	f.lines, f.errs = f.lines[1:], f.errs[1:]
	return line, err
}

func typed(lines ...string) *fakeReader {
	return &fakeReader{lines: lines, errs: make([]error, len(lines))}
}

func view(player int) engine.View {
	return engine.View{Player: player, Turn: player + 1, Ensemble: game.NewEnsemble(8)}
}

func TestConsole(t *testing.T) {
	t.Run("reprompts until a line parses", func(t *testing.T) {
		var out bytes.Buffer
		c := NewConsole(0, typed("", "a1", "zz zz", "f2 e3"), &out, render.Palette{})

		cmd, err := c.NextCommand(context.Background(), view(0))

		require.NoError(t, err, "a valid line was typed eventually")
		require.Equal(t, notation.TurnCommand, cmd.Type, "turn command")
		require.Equal(t, game.Square{Row: 5, Col: 1}, cmd.Turn.Moves()[0].From, "parsed origin")
		require.Equal(t, 2, strings.Count(out.String(), "Invalid move"), "two unparsable lines reported")
		require.Contains(t, out.String(), "Green's turn (turn 1).", "banner shown")
	})

	t.Run("no banner after a rejection", func(t *testing.T) {
		var out bytes.Buffer
		c := NewConsole(1, typed("m"), &out, render.Palette{})
		v := view(1)
		v.Rejected = game.ErrInvalidMove

		cmd, err := c.NextCommand(context.Background(), v)

		require.NoError(t, err, "measure parses")
		require.Equal(t, notation.MeasureCommand, cmd.Type, "measure command")
		require.NotContains(t, out.String(), "Red's turn", "banner suppressed")
	})

	t.Run("colored banner", func(t *testing.T) {
		var out bytes.Buffer
		c := NewConsole(1, typed("q"), &out, render.ColorPalette)

		_, err := c.NextCommand(context.Background(), view(1))

		require.NoError(t, err, "quit parses")
		require.Contains(t, out.String(), "\033[31mRed's turn (turn 2).\033[0m", "red banner")
	})

	t.Run("interrupt on an empty line quits", func(t *testing.T) {
		r := &fakeReader{
			lines: []string{"f2", ""},
			errs:  []error{readline.ErrInterrupt, readline.ErrInterrupt},
		}
		c := NewConsole(0, r, io.Discard, render.Palette{})

		cmd, err := c.NextCommand(context.Background(), view(0))

		require.NoError(t, err, "interrupt is not an error")
		require.Equal(t, notation.QuitCommand, cmd.Type, "second interrupt quits")
	})

	t.Run("end of input", func(t *testing.T) {
		c := NewConsole(0, typed(), io.Discard, render.Palette{})

		_, err := c.NextCommand(context.Background(), view(0))

		require.ErrorIs(t, err, io.EOF, "EOF is passed through")
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		c := NewConsole(0, typed("f2 e3"), io.Discard, render.Palette{})

		_, err := c.NextCommand(ctx, view(0))

		require.ErrorIs(t, err, context.Canceled, "cancellation wins over input")
	})
}

func TestScripted(t *testing.T) {
	t.Run("skips unparsable lines", func(t *testing.T) {
		s := NewScripted("nonsense", "f2 e3", "b")

		cmd, err := s.NextCommand(context.Background(), view(0))
		require.NoError(t, err, "second line parses")
		require.Equal(t, notation.TurnCommand, cmd.Type, "turn command")

		cmd, err = s.NextCommand(context.Background(), view(1))
		require.NoError(t, err, "third line parses")
		require.Equal(t, notation.BranchesCommand, cmd.Type, "branches command")

		_, err = s.NextCommand(context.Background(), view(0))
		require.ErrorIs(t, err, io.EOF, "script used up")
		require.Equal(t, 0, s.Remaining(), "nothing left")
	})

	t.Run("drives a whole game for both players", func(t *testing.T) {
		s := NewScripted("f2 e3", "c5 d4", "e3 c5", "q")
		eng := engine.LocalEngine([]engine.Player{s, s}, 8)

		result, err := eng.Run(context.Background())

		require.NoError(t, err, "script ends with quit")
		require.True(t, result.Quit, "quit recorded")
		require.Equal(t, 3, result.Turns, "three turns played")
		require.Equal(t, [game.NumPlayers]float64{12, 11}, result.Scores, "green captured once")
	})
}

func TestReadScript(t *testing.T) {
	lines, err := ReadScript(strings.NewReader("# opening\nf2 e3\n\n  c5 d4  \nm\n"))

	require.NoError(t, err, "reading from a string cannot fail")
	require.Equal(t, []string{"f2 e3", "c5 d4", "m"}, lines, "comments and blanks dropped")
}
