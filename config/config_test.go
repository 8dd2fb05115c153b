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

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 12, cfg.Seed.UnitCount)
	assert.Equal(t, 5*time.Second, cfg.Watch.Interval)
	assert.Equal(t, "ComRent", cfg.Invoice.CompanyName)
	assert.Len(t, cfg.Seed.Pricing, 4)
	assert.Contains(t, cfg.Invoice.Body, "{{customerName}}")
	assert.Equal(t, 1, cfg.WorkerPool.Size)
}

func TestLoadFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 9090\nseed:\n  unit_count: 4\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 4, cfg.Seed.UnitCount)
	assert.Equal(t, "PC-", cfg.Seed.UnitPrefix, "unset fields fall back to defaults")
	assert.Equal(t, 25.0, cfg.Server.RateLimitPerSec)
	assert.NotEmpty(t, cfg.Seed.Pricing)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.True(t, os.IsNotExist(err))
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestUnitNames(t *testing.T) {
	cfg := Default()
	cfg.Seed.UnitCount = 3

	assert.Equal(t, []string{"PC-01", "PC-02", "PC-03"}, cfg.UnitNames())
}
