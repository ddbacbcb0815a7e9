package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feltlab/holdem/internal/engine"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "holdem.hcl")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFullConfig(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
game {
  starting_chips = 2000
  small_blind    = 25
  big_blind      = 50
  seed           = 7
  bot_trials     = 150
  log_level      = "debug"
}

player "Hero" {}

player "Villain" {
  bot        = true
  difficulty = "hard"
}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 2000, cfg.Game.StartingChips)
	assert.Equal(t, 25, cfg.Game.SmallBlind)
	assert.Equal(t, 50, cfg.Game.BigBlind)
	assert.Equal(t, int64(7), cfg.Game.Seed)
	assert.Equal(t, 150, cfg.Game.BotTrials)

	require.Len(t, cfg.Players, 2)
	assert.False(t, cfg.Players[0].Bot)
	assert.True(t, cfg.Players[1].Bot)
	assert.Equal(t, "hard", cfg.Players[1].Difficulty)
}

func TestLoadAppliesDefaultsForOmittedValues(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
game {
  small_blind = 5
}

player "a" {}
player "b" { bot = true }
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 1000, cfg.Game.StartingChips)
	assert.Equal(t, 5, cfg.Game.SmallBlind)
	assert.Equal(t, 10, cfg.Game.BigBlind, "big blind defaults to twice the small")
	assert.Equal(t, "normal", cfg.Players[1].Difficulty, "bots default to normal")
}

func TestLoadRejectsMalformedHCL(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `game { starting_chips = `)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{
			name:   "valid defaults",
			mutate: func(c *Config) {},
		},
		{
			name:   "non-positive chips",
			mutate: func(c *Config) { c.Game.StartingChips = 0 },
			errMsg: "starting chips",
		},
		{
			name:   "big blind below small",
			mutate: func(c *Config) { c.Game.BigBlind = c.Game.SmallBlind },
			errMsg: "big blind",
		},
		{
			name:   "negative bot trials",
			mutate: func(c *Config) { c.Game.BotTrials = -1 },
			errMsg: "bot trials",
		},
		{
			name:   "too few players",
			mutate: func(c *Config) { c.Players = c.Players[:1] },
			errMsg: "at least two",
		},
		{
			name: "duplicate names",
			mutate: func(c *Config) {
				c.Players[1].Name = c.Players[0].Name
			},
			errMsg: "duplicate",
		},
		{
			name: "unknown difficulty",
			mutate: func(c *Config) {
				c.Players[1].Difficulty = "impossible"
			},
			errMsg: "difficulty",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			}
		})
	}
}

func TestSeats(t *testing.T) {
	t.Parallel()

	cfg := Default()
	seats, err := cfg.Seats()
	require.NoError(t, err)
	require.Len(t, seats, 4)

	assert.Equal(t, engine.Seat{Name: "You"}, seats[0])
	assert.Equal(t, engine.Seat{Name: "Carol", Bot: true, Difficulty: engine.Hard}, seats[3])
}

func TestParseDifficulty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    engine.Difficulty
		wantErr bool
	}{
		{"easy", engine.Easy, false},
		{"normal", engine.Normal, false},
		{"hard", engine.Hard, false},
		{"", engine.Normal, false},
		{"expert", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseDifficulty(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}
