package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/rummy/internal/game/rule"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
game:
  hand_size: 7
  min_players: 3
  max_players: 4
  win_policy: natural_run
  seed: 42
  players: ["ann", "bob"]

ui:
  mode: tui
  color: false

redis:
  enabled: true
  addr: "redis:6379"
  password: "secret"
  db: 1

journal:
  path: /tmp/rounds.journal

remote:
  listen: "0.0.0.0:9000"
  seats: ["carol"]
  join_timeout: 30
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 7, cfg.Game.HandSize)
	assert.Equal(t, 3, cfg.Game.MinPlayers)
	assert.Equal(t, uint64(42), cfg.Game.Seed)
	assert.Equal(t, []string{"ann", "bob"}, cfg.Game.Players)
	assert.Equal(t, rule.PolicyNaturalRun, cfg.Policy())
	assert.Equal(t, ModeTUI, cfg.UI.Mode)
	assert.False(t, cfg.UI.Color)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, "secret", cfg.Redis.Password)
	assert.Equal(t, 1, cfg.Redis.DB)
	assert.Equal(t, 50, cfg.Redis.RecentLimit)
	assert.Equal(t, "/tmp/rounds.journal", cfg.Journal.Path)
	assert.Equal(t, "0.0.0.0:9000", cfg.Remote.Listen)
	assert.Equal(t, []string{"carol"}, cfg.Remote.Seats)
	assert.Equal(t, 30*time.Second, cfg.Remote.JoinTimeoutDuration())
}

func TestLoad_PartialConfigUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, "game:\n  hand_size: 0\n"))
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, def.Game, cfg.Game)
	assert.Equal(t, def.UI, cfg.UI)
	assert.Equal(t, def.Remote, cfg.Remote)
	assert.Equal(t, rule.PolicyTwoRuns, cfg.Policy())
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	cfg, err := Load("/nonexistent/path/config.yaml")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, "game: [unclosed"))
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults are valid", func(*Config) {}, ""},
		{"min above max", func(c *Config) { c.Game.MinPlayers = 5 }, "min_players"},
		{"hand too large for deck", func(c *Config) { c.Game.HandSize = 13 }, "53"},
		{"unknown policy", func(c *Config) { c.Game.WinPolicy = "three_sets" }, "win_policy"},
		{"unknown ui mode", func(c *Config) { c.UI.Mode = "gui" }, "ui.mode"},
		{"too few preset players", func(c *Config) { c.Game.Players = []string{"solo"} }, "预设玩家"},
		{"preset plus remote seats", func(c *Config) {
			c.Game.Players = []string{"ann"}
			c.Remote.Seats = []string{"bob"}
		}, ""},
		{"negative join timeout", func(c *Config) { c.Remote.JoinTimeout = -1 }, "join_timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
