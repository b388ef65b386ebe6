package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_Defaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "https://docs.aws.amazon.com/index.html", cfg.LandingURL)
	assert.Equal(t, "https://docs.aws.amazon.com", cfg.DocHost)
	assert.Equal(t, "data/result.json", cfg.OutputPath)
	assert.Equal(t, 1500*time.Millisecond, cfg.LandingSettleDelay)
	assert.Equal(t, time.Second, cfg.DocumentSettleDelay)
	assert.Equal(t, time.Duration(0), cfg.HistorySettleDelay)
	assert.Equal(t, time.Minute, cfg.PageLoadTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.PostgresURL)
	assert.Empty(t, cfg.RedisAddr)
	assert.Empty(t, cfg.MetricsAddr)
}

func TestLoadFile_EnvOverrides(t *testing.T) {
	t.Setenv("OUTPUT_PATH", "/tmp/out.json")
	t.Setenv("DOCUMENT_SETTLE_DELAY", "250ms")
	t.Setenv("REDIS_DB", "3")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "/tmp/out.json", cfg.OutputPath)
	assert.Equal(t, 250*time.Millisecond, cfg.DocumentSettleDelay)
	assert.Equal(t, 3, cfg.RedisDB)
}

func TestLoadFile_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DOC_HOST=https://docs.example.com\nLOG_LEVEL=debug\n"), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "https://docs.example.com", cfg.DocHost)
	assert.Equal(t, "debug", cfg.LogLevel)
}
