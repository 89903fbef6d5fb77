package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingDefaultFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_MissingExplicitFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoad_OverlaysFileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sift.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
limits:
  grep: 25
log_level: debug
history_db: /tmp/h.db
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Limits.Grep)
	assert.Equal(t, 100, cfg.Limits.Glob)
	assert.Equal(t, 200, cfg.Limits.Read)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/h.db", cfg.HistoryDB)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errText string
	}{
		{name: "bad yaml", content: "limits: [", errText: "failed to parse"},
		{name: "negative limit", content: "limits:\n  read: -1\n", errText: "must not be negative"},
		{name: "bad level", content: "log_level: loud\n", errText: "unknown log_level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "c.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}
