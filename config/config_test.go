package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NotNil(t, cfg)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Mode)
	assert.Equal(t, time.Second, cfg.Game.TickInterval)
	assert.Equal(t, 2*time.Second, cfg.Game.RespawnDelay)
	assert.Equal(t, 2.0, cfg.Game.ManaRegen)
	assert.Equal(t, 10.0, cfg.Game.SkillRadius)
	assert.Equal(t, 10, cfg.Game.InitialEnemies)
	assert.Equal(t, 72*time.Hour, cfg.Security.JWTTTLH)
	assert.Equal(t, []string{"127.0.0.1", "::1"}, cfg.Server.AdminIPs)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "server:\n  port: 9000\ngame:\n  counterattack_delay: 1500ms\n  seed: 42\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 1500*time.Millisecond, cfg.Game.CounterattackDelay)
	assert.Equal(t, uint64(42), cfg.Game.Seed)
	assert.Equal(t, time.Second, cfg.Game.AuraDuration, "unset keys keep defaults")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_SampleFile(t *testing.T) {
	cfg, err := Load("config.yaml")
	require.NoError(t, err)
	assert.True(t, cfg.Server.Debug)
	assert.Equal(t, 5.0, cfg.Game.StaminaRegen)
}
