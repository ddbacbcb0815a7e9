// Package config loads the table configuration from an HCL file. A missing
// file yields the built-in defaults, matching how the command-line tools are
// expected to run with no setup at all.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/feltlab/holdem/internal/engine"
)

// Config represents the complete game configuration
type Config struct {
	Game    GameSettings   `hcl:"game,block"`
	Players []PlayerConfig `hcl:"player,block"`
}

// GameSettings contains table-level configuration
type GameSettings struct {
	StartingChips int    `hcl:"starting_chips,optional"`
	SmallBlind    int    `hcl:"small_blind,optional"`
	BigBlind      int    `hcl:"big_blind,optional"`
	Seed          int64  `hcl:"seed,optional"`
	BotTrials     int    `hcl:"bot_trials,optional"` // 0 keeps per-difficulty defaults
	LogLevel      string `hcl:"log_level,optional"`
}

// PlayerConfig defines one seat at the table
type PlayerConfig struct {
	Name       string `hcl:"name,label"`
	Bot        bool   `hcl:"bot,optional"`
	Difficulty string `hcl:"difficulty,optional"`
}

// Default returns the default configuration: one human against three bots of
// increasing difficulty.
func Default() *Config {
	return &Config{
		Game: GameSettings{
			StartingChips: 1000,
			SmallBlind:    10,
			BigBlind:      20,
			LogLevel:      "info",
		},
		Players: []PlayerConfig{
			{Name: "You"},
			{Name: "Alice", Bot: true, Difficulty: "easy"},
			{Name: "Bob", Bot: true, Difficulty: "normal"},
			{Name: "Carol", Bot: true, Difficulty: "hard"},
		},
	}
}

// Load reads configuration from an HCL file, applying defaults for missing
// values. A nonexistent file returns the defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	// Apply defaults for missing values
	if config.Game.StartingChips == 0 {
		config.Game.StartingChips = 1000
	}
	if config.Game.SmallBlind == 0 {
		config.Game.SmallBlind = 10
	}
	if config.Game.BigBlind == 0 {
		config.Game.BigBlind = config.Game.SmallBlind * 2
	}
	if config.Game.LogLevel == "" {
		config.Game.LogLevel = "info"
	}
	if len(config.Players) == 0 {
		config.Players = Default().Players
	}
	for i := range config.Players {
		if config.Players[i].Bot && config.Players[i].Difficulty == "" {
			config.Players[i].Difficulty = "normal"
		}
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Game.StartingChips <= 0 {
		return fmt.Errorf("starting chips must be positive")
	}
	if c.Game.SmallBlind <= 0 {
		return fmt.Errorf("small blind must be positive")
	}
	if c.Game.BigBlind <= c.Game.SmallBlind {
		return fmt.Errorf("big blind must be greater than small blind")
	}
	if c.Game.BotTrials < 0 {
		return fmt.Errorf("bot trials must not be negative")
	}
	if len(c.Players) < 2 {
		return fmt.Errorf("at least two players must be configured")
	}
	if len(c.Players) > 10 {
		return fmt.Errorf("at most ten players can be seated")
	}

	seen := map[string]bool{}
	for _, p := range c.Players {
		if p.Name == "" {
			return fmt.Errorf("player name must not be empty")
		}
		if seen[p.Name] {
			return fmt.Errorf("duplicate player name %s", p.Name)
		}
		seen[p.Name] = true
		if p.Bot {
			if _, err := ParseDifficulty(p.Difficulty); err != nil {
				return fmt.Errorf("player %s: %w", p.Name, err)
			}
		}
	}
	return nil
}

// Seats converts the configured players into engine seats.
func (c *Config) Seats() ([]engine.Seat, error) {
	seats := make([]engine.Seat, len(c.Players))
	for i, p := range c.Players {
		seat := engine.Seat{Name: p.Name, Bot: p.Bot}
		if p.Bot {
			d, err := ParseDifficulty(p.Difficulty)
			if err != nil {
				return nil, fmt.Errorf("player %s: %w", p.Name, err)
			}
			seat.Difficulty = d
		}
		seats[i] = seat
	}
	return seats, nil
}

// ParseDifficulty maps a configuration string to a difficulty tier.
func ParseDifficulty(s string) (engine.Difficulty, error) {
	switch s {
	case "easy":
		return engine.Easy, nil
	case "normal", "":
		return engine.Normal, nil
	case "hard":
		return engine.Hard, nil
	default:
		return engine.Normal, fmt.Errorf("invalid difficulty %q", s)
	}
}
