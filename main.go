package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"qcheckers/config"
	"qcheckers/engine"
	"qcheckers/game"
	"qcheckers/meta"
	"qcheckers/notation"
	"qcheckers/player"
	"qcheckers/render"
)

func main() {
	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	setupLogging(cfg.GetBool(config.ConfigDebug))
	log.Debug().Msgf("Loaded config: %v", cfg.AllSettings())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := &session{cfg: cfg}
	err := s.run(ctx)
	if path := cfg.GetString(config.ConfigMetricsFile); path != "" && len(s.records) > 0 {
		if werr := engine.WriteGameRecords(path, s.records); werr != nil {
			log.Error().Err(werr).Msg("could not write metrics")
		}
	}
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("")
		os.Exit(1)
	}
}

func setupLogging(debug bool) {
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	output.FormatMessage = func(i interface{}) string {
		return fmt.Sprintf("%s", i)
	}
	output.FormatFieldName = func(i interface{}) string {
		return fmt.Sprintf("%s:", i)
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(output).Level(level).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
	log.Logger = logger
	logger.Debug().Msg("Debug logging is on")
}

// session plays one or more games with the same settings.
type session struct {
	cfg     *config.Config
	palette render.Palette
	records []engine.GameRecord
	src     rand.Source
}

// source returns the measurement source shared by every game of the session,
// or nil when no seed is configured. Later games continue the sequence rather
// than replaying the first game's draws.
func (s *session) source() rand.Source {
	if s.src == nil {
		if seed := s.cfg.GetUint64(config.ConfigSeed); seed != 0 {
			s.src = game.NewSource(seed)
		}
	}
	return s.src
}

func (s *session) run(ctx context.Context) error {
	if s.cfg.GetBool(config.ConfigColor) {
		s.palette = render.ColorPalette
	}

	if path := s.cfg.GetString(config.ConfigScript); path != "" {
		return s.replay(ctx, path)
	}

	rl, err := player.NewReadline(s.cfg.GetString(config.ConfigHistoryFile))
	if err != nil {
		return err
	}
	defer rl.Close()
	fmt.Fprint(rl.Stdout(), notation.Usage)

	for {
		players := []engine.Player{
			player.NewConsole(0, rl, rl.Stdout(), s.palette),
			player.NewConsole(1, rl, rl.Stdout(), s.palette),
		}
		result, err := s.playGame(ctx, players, rl.Stdout())
		if err != nil {
			return err
		}
		if !result.Over || !playAgain(rl, result) {
			return nil
		}
	}
}

// replay plays a scripted game, the script's lines alternating between the players.
func (s *session) replay(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	lines, err := player.ReadScript(f)
	if err != nil {
		return fmt.Errorf("reading script %s: %w", path, err)
	}

	script := player.NewScripted(lines...)
	result, err := s.playGame(ctx, []engine.Player{script, script}, os.Stdout)
	if err != nil {
		return err
	}
	if result.Over {
		fmt.Printf("%s wins!!!\n", render.PlayerName(result.Winner))
	}
	return nil
}

func (s *session) playGame(ctx context.Context, players []engine.Player, out io.Writer) (engine.Result, error) {
	options := []engine.Option{
		engine.WithOutput(out),
		engine.WithPalette(s.palette),
		engine.WithMaxTurns(s.cfg.GetInt(config.ConfigMaxTurns)),
		engine.WithMetrics(engine.NewCollector()),
	}
	if src := s.source(); src != nil {
		options = append(options, engine.WithEnsembleOptions(game.WithSource(src)))
	}

	eng := engine.LocalEngine(players, s.cfg.GetInt(config.ConfigSize), options...)
	result, err := eng.Run(ctx)
	log.Debug().Msgf("game metrics: %+v", result.Metrics)
	s.records = append(s.records, engine.GameRecord{ID: len(s.records) + 1, GameMetric: result.Metrics})
	return result, err
}

func playAgain(rl *readline.Instance, result engine.Result) bool {
	fmt.Fprintf(rl.Stdout(), "\n\n%s wins!!!\n", render.PlayerName(result.Winner))

	rl.SetPrompt("Play again? y/n ")
	defer rl.SetPrompt(meta.PROMPT)
	line, err := rl.Readline()
	if err != nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(line), "y")
}
