// Package player holds the engine.Player implementations.
package player

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"qcheckers/engine"
	"qcheckers/meta"
	"qcheckers/notation"
	"qcheckers/render"
)

// LineReader is the part of *readline.Instance a console needs.
type LineReader interface {
	Readline() (string, error)
}

// Console reads a human player's commands from a terminal. Both players of a
// hot-seat game can share one reader.
type Console struct {
	ID      int
	reader  LineReader
	out     io.Writer
	palette render.Palette
}

func NewConsole(id int, reader LineReader, out io.Writer, palette render.Palette) *Console {
	return &Console{
		ID:      id,
		reader:  reader,
		out:     out,
		palette: palette,
	}
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

// NewReadline opens the terminal prompt shared by console players.
func NewReadline(historyFile string) (*readline.Instance, error) {
	return readline.NewEx(&readline.Config{
		Prompt:          meta.PROMPT,
		HistoryFile:     historyFile,
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
}

// NextCommand prompts until a line parses. Ctrl-C on an empty line quits and
// end of input returns io.EOF.
func (c *Console) NextCommand(ctx context.Context, view engine.View) (notation.Command, error) {
	if view.Rejected == nil {
		banner := fmt.Sprintf("%s's turn (turn %d).", render.PlayerName(view.Player), view.Turn)
		fmt.Fprintln(c.out, c.palette.Paint(view.Player, banner))
		fmt.Fprintln(c.out, `Move format ex: "f2 e3" moves from F2 to E3. Type "h" for help.`)
	}

	for {
		if err := ctx.Err(); err != nil {
			return notation.Command{}, err
		}

		line, err := c.reader.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				return notation.Command{Type: notation.QuitCommand}, nil
			}
			continue
		} else if err != nil {
			return notation.Command{}, err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		cmd, err := notation.Parse(line, view.Ensemble.Size())
		if err != nil {
			fmt.Fprintf(c.out, "Invalid move: %v\n", err)
			continue
		}
		return cmd, nil
	}
}
