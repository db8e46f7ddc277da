package config

import (
	"path/filepath"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/ini.v1"

	"Radiant/internal/calc/dashboard"
)

func TestFromFile_Empty(t *testing.T) {
	cfg := fromFile(ini.Empty())
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, log.InfoLevel, cfg.LogLevel)
	assert.Equal(t, dashboard.Defaults(), cfg.Defaults)
	assert.Equal(t, 3, cfg.Limits.LoginBurst)
}

func TestFromFile_Overrides(t *testing.T) {
	file, err := ini.Load([]byte(`
[server]
addr = :9000
shutdown_timeout = 2s

[log]
level = debug

[defaults]
t_device_c = 55
h_w_m2k = 8.5

[limits]
max_sweep_steps = 50
`))
	require.NoError(t, err)

	cfg := fromFile(file)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, 2*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, log.DebugLevel, cfg.LogLevel)
	assert.Equal(t, 55.0, cfg.Defaults.TDeviceC)
	assert.Equal(t, 8.5, cfg.Defaults.HWM2K)
	assert.Equal(t, 33.0, cfg.Defaults.THandC)
	assert.Equal(t, 50, cfg.Limits.MaxSweepSteps)
}

func TestFromFile_BadLevel(t *testing.T) {
	file, err := ini.Load([]byte("[log]\nlevel = loud\n"))
	require.NoError(t, err)
	assert.Equal(t, log.InfoLevel, fromFile(file).LogLevel)
}

func TestLoad_MissingFileAndEnv(t *testing.T) {
	t.Setenv("RADIANT_ADDR", ":7070")
	t.Setenv("TOKEN_KEY", "secret")
	t.Setenv("RADIANT_CALC_RATE", "2.5")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.ini"))
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, "secret", cfg.TokenKey)
	assert.Equal(t, 2.5, cfg.Limits.CalcRate)
}
