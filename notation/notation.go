// Package notation converts between move text and game directives.
//
// A square is a row letter followed by a 1-based column number ("a1" is the
// top-left corner). A turn is a whitespace separated list of square pairs and
// "p" passes, e.g. "f2 e1 f2 e3 p".
package notation

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/kballard/go-shellquote"

	"qcheckers/game"
)

type CommandType int

const (
	TurnCommand CommandType = iota
	MeasureCommand
	BranchesCommand
	HelpCommand
	QuitCommand
)

// Command is one line of player input.
type Command struct {
	Type CommandType
	Turn game.Turn
}

const passToken = "p"

var keywords = map[string]CommandType{
	"m":       MeasureCommand,
	"measure": MeasureCommand,
	"b":       BranchesCommand,
	"boards":  BranchesCommand,
	"h":       HelpCommand,
	"help":    HelpCommand,
	"q":       QuitCommand,
	"quit":    QuitCommand,
	"exit":    QuitCommand,
}

// Parse reads one line of input for a board of the given size.
func Parse(line string, size int) (Command, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		fields = strings.Fields(line)
	}
	if len(fields) == 0 {
		return Command{}, fmt.Errorf("%w: empty input", game.ErrInvalidMove)
	}

	if len(fields) == 1 {
		if typ, ok := keywords[strings.ToLower(fields[0])]; ok {
			return Command{Type: typ}, nil
		}
	}

	turn, err := ParseTurn(fields, size)
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TurnCommand, Turn: turn}, nil
}

// ParseTurn builds a compound turn from tokens.
func ParseTurn(tokens []string, size int) (game.Turn, error) {
	var turn game.Turn
	for len(tokens) > 0 {
		if strings.EqualFold(tokens[0], passToken) {
			turn.AddPass()
			tokens = tokens[1:]
			continue
		}
		if len(tokens) < 2 {
			return game.Turn{}, fmt.Errorf("%w: %q has no destination", game.ErrInvalidMove, tokens[0])
		}
		from, err := ParseSquare(tokens[0], size)
		if err != nil {
			return game.Turn{}, err
		}
		to, err := ParseSquare(tokens[1], size)
		if err != nil {
			return game.Turn{}, err
		}
		turn.AddMove(from, to)
		tokens = tokens[2:]
	}
	if turn.Empty() {
		return game.Turn{}, fmt.Errorf("%w: no moves given", game.ErrInvalidMove)
	}
	return turn, nil
}

// ParseSquare reads a square like "c5". Letters are case-insensitive.
func ParseSquare(token string, size int) (game.Square, error) {
	if len(token) < 2 {
		return game.Square{}, fmt.Errorf("%w: bad square %q", game.ErrInvalidMove, token)
	}
	letter := unicode.ToLower(rune(token[0]))
	if letter < 'a' || letter > 'z' {
		return game.Square{}, fmt.Errorf("%w: bad row letter in %q", game.ErrInvalidMove, token)
	}
	col, err := strconv.Atoi(token[1:])
	if err != nil {
		return game.Square{}, fmt.Errorf("%w: bad column in %q", game.ErrInvalidMove, token)
	}

	sq := game.Square{Row: int(letter - 'a'), Col: col - 1}
	if !game.NewGeometry(size).InBounds(sq) {
		return game.Square{}, fmt.Errorf("%w: %q is off the board", game.ErrInvalidMove, token)
	}
	return sq, nil
}

// RowLetter returns the label of a row.
func RowLetter(row int) string {
	return string(rune('A' + row))
}

func FormatSquare(sq game.Square) string {
	return fmt.Sprintf("%s%d", strings.ToLower(RowLetter(sq.Row)), sq.Col+1)
}

// Usage describes the accepted input.
const Usage = `commands:
<from> <to>            - move a piece, e.g. "f2 e3" (a jump captures the piece in between)
<from> <to> <from> <to> - split the turn evenly between several moves
p                      - pass; inside a split it keeps a share of the board unmoved
m                      - measure: collapse every possible board into one
b                      - show every possible board with its probability
h                      - this help
q                      - quit
`
