package player

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"qcheckers/engine"
	"qcheckers/notation"
	"qcheckers/render"
)

// Scripted replays a fixed list of input lines. One Scripted can serve both
// players, in which case the lines alternate between them.
type Scripted struct {
	lines []string
}

func NewScripted(lines ...string) *Scripted {
	return &Scripted{lines: lines}
}

// ReadScript collects the non-blank lines of r. Lines starting with # are
// comments.
func ReadScript(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}

// Remaining is the number of lines not yet replayed.
func (s *Scripted) Remaining() int {
	return len(s.lines)
}

// NextCommand returns the next parsable line, skipping the others. It returns
// io.EOF once the script is used up.
func (s *Scripted) NextCommand(ctx context.Context, view engine.View) (notation.Command, error) {
	for len(s.lines) > 0 {
		if err := ctx.Err(); err != nil {
			return notation.Command{}, err
		}
		line := s.lines[0]
		s.lines = s.lines[1:]

		cmd, err := notation.Parse(line, view.Ensemble.Size())
		if err != nil {
			log.Warn().Err(err).Msgf("%s: skipping script line %q", render.PlayerName(view.Player), line)
			continue
		}
		return cmd, nil
	}
	return notation.Command{}, io.EOF
}
