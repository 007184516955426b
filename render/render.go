// Package render draws the expected-value board as text.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"qcheckers/game"
	"qcheckers/notation"
)

const (
	green = "\033[32m"
	red   = "\033[31m"
	reset = "\033[0m"

	cellWidth = 7
)

// Palette colors each player's numbers. The zero value prints plain text.
type Palette struct {
	Players [game.NumPlayers]string
}

var ColorPalette = Palette{Players: [game.NumPlayers]string{green, red}}

// Paint wraps text in the player's color.
func (p Palette) Paint(player int, text string) string {
	if p.Players[player] == "" {
		return text
	}
	return p.Players[player] + text + reset
}

// Board writes both players' expected occupancy, one line per player per row.
func Board(w io.Writer, grids [game.NumPlayers][][]float64, palette Palette) {
	size := len(grids[0])
	header := columnHeader(size)
	rule := "  " + strings.Repeat("-", cellWidth*size)

	fmt.Fprintln(w)
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, rule)
	for r := 0; r < size; r++ {
		letter := notation.RowLetter(r)
		for player := range grids {
			if player == 0 {
				fmt.Fprint(w, letter+" | ")
			} else {
				fmt.Fprint(w, "  | ")
			}
			for c := 0; c < size; c++ {
				fmt.Fprint(w, cell(grids[player][r][c], player, palette))
			}
			if player == 0 {
				fmt.Fprint(w, letter)
			}
			fmt.Fprintln(w)
		}
		fmt.Fprintln(w, rule)
	}
	fmt.Fprintln(w, header)
	fmt.Fprintln(w)
}

func cell(value float64, player int, palette Palette) string {
	if value == 0 {
		return "     | "
	}
	return palette.Paint(player, fmt.Sprintf("%.2f", value)) + " | "
}

func columnHeader(size int) string {
	labels := lo.Map(lo.Range(size), func(c int, _ int) string {
		label := strconv.Itoa(c + 1)
		left := (cellWidth - len(label)) / 2
		right := cellWidth - len(label) - left
		return fmt.Sprintf("%*s%s%*s", left, "", label, right, "")
	})
	return "  " + strings.Join(labels, "")
}

// Branches writes every branch as its own board, with its probability.
func Branches(w io.Writer, e *game.Ensemble, palette Palette) {
	for i, b := range e.Branches() {
		fmt.Fprintf(w, "Board %d of %d, probability %.4f\n", i+1, e.Len(), b.Probability)
		Board(w, branchGrid(b, e.Size()), palette)
	}
}

func branchGrid(b *game.Branch, size int) [game.NumPlayers][][]float64 {
	var grids [game.NumPlayers][][]float64
	for player := range grids {
		grids[player] = make([][]float64, size)
		for r := range grids[player] {
			grids[player][r] = make([]float64, size)
			for c := range grids[player][r] {
				if b.Players[player].Get(r, c) {
					grids[player][r][c] = 1
				}
			}
		}
	}
	return grids
}

// Score writes the expected piece counts and the number of boards.
func Score(w io.Writer, scores [game.NumPlayers]float64, boards int, palette Palette) {
	fmt.Fprintln(w, strings.Repeat("_", 60))
	fmt.Fprintln(w, "Score:")
	fmt.Fprintf(w, "  %s: %v\n", palette.Paint(0, "Green"), scores[0])
	fmt.Fprintf(w, "  %s:   %v\n", palette.Paint(1, "Red"), scores[1])
	fmt.Fprintf(w, "Number of possible boards: %d\n", boards)
}

// PlayerName is the color name used for a player in messages.
func PlayerName(player int) string {
	return [game.NumPlayers]string{"Green", "Red"}[player]
}
