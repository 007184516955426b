package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"qcheckers/meta"
)

const (
	ConfigSize        = "size"
	ConfigSeed        = "seed"
	ConfigDebug       = "debug"
	ConfigMaxTurns    = "max-turns"
	ConfigColor       = "color"
	ConfigHistoryFile = "history-file"
	ConfigScript      = "script"
	ConfigMetricsFile = "metrics-file"
	ConfigFile        = "config"
)

// Config layers command-line flags over QCHECKERS_* environment variables
// over an optional YAML file over the defaults.
type Config struct {
	*viper.Viper
}

func (c *Config) Load(args []string) error {
	c.Viper = viper.New()

	fs := pflag.NewFlagSet("qcheckers", pflag.ContinueOnError)
	fs.Int(ConfigSize, meta.BOARD_SIZE, "board size (4 to 26)")
	fs.Uint64(ConfigSeed, 0, "seed for measurements, 0 picks a random one")
	fs.Bool(ConfigDebug, false, "debug logging")
	fs.Int(ConfigMaxTurns, meta.MAX_TURNS, "stop the game after this many turns")
	fs.Bool(ConfigColor, true, "color the board")
	fs.String(ConfigHistoryFile, "/tmp/qcheckers.history", "readline history file")
	fs.String(ConfigScript, "", "replay moves from this file instead of reading the terminal")
	fs.String(ConfigMetricsFile, "", "write per-game metrics as CSV to this file")
	fs.String(ConfigFile, "", "YAML config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c.SetEnvPrefix("qcheckers")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()
	if err := c.BindPFlags(fs); err != nil {
		return err
	}

	if path := c.GetString(ConfigFile); path != "" {
		c.SetConfigFile(path)
		if err := c.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", path, err)
		}
	}
	return c.validate()
}

func (c *Config) validate() error {
	if size := c.GetInt(ConfigSize); size < 4 || size > 26 {
		return fmt.Errorf("board size %d out of range 4-26", size)
	}
	if turns := c.GetInt(ConfigMaxTurns); turns < 1 {
		return fmt.Errorf("max-turns must be positive, got %d", turns)
	}
	return nil
}
