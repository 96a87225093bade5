package userconfig

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cli-engine/cli-engine/internal/logging"
	"github.com/cli-engine/cli-engine/pkg/config"
)

func newConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{Bin: "heroku", ConfigDir: filepath.Join(t.TempDir(), "heroku")}
}

func env(vars map[string]string) *config.Environment {
	return &config.Environment{Vars: vars}
}

func fixedID(id string) Option {
	return WithIDGenerator(func() string { return id })
}

func readFile(t *testing.T, path string) UserConfig {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var uc UserConfig
	require.NoError(t, json.Unmarshal(data, &uc))
	return uc
}

func TestNewManager_GeneratesAndPersistsInstallID(t *testing.T) {
	cfg := newConfig(t)

	mgr, err := NewManager(cfg, env(nil), fixedID("1234"), WithLogger(logging.Discard()))
	require.NoError(t, err)

	assert.Equal(t, "1234", mgr.InstallID())
	assert.False(t, mgr.SkipAnalytics())
	assert.Equal(t, filepath.Join(cfg.ConfigDir, FileName), mgr.Path())
	assert.Equal(t, UserConfig{Install: "1234"}, readFile(t, mgr.Path()))

	// second load keeps the persisted id
	again, err := NewManager(cfg, env(nil), fixedID("5678"), WithLogger(logging.Discard()))
	require.NoError(t, err)
	assert.Equal(t, "1234", again.InstallID())
}

func TestNewManager_DefaultIDIsUUID(t *testing.T) {
	mgr, err := NewManager(newConfig(t), env(nil), WithLogger(logging.Discard()))
	require.NoError(t, err)
	assert.Len(t, mgr.InstallID(), 36)
}

func TestNewManager_SkipAnalytics(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
		file string
	}{
		{name: "TESTING", vars: map[string]string{"TESTING": "1"}},
		{name: "scoped", vars: map[string]string{"HEROKU_SKIP_ANALYTICS": "true"}},
		{name: "user config", file: `{"skipAnalytics": true, "install": "old"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newConfig(t)
			if tt.file != "" {
				require.NoError(t, os.MkdirAll(cfg.ConfigDir, 0o700))
				require.NoError(t, os.WriteFile(Path(cfg), []byte(tt.file), 0o600))
			}

			mgr, err := NewManager(cfg, env(tt.vars), fixedID("1234"), WithLogger(logging.Discard()))
			require.NoError(t, err)

			assert.True(t, mgr.SkipAnalytics())
			assert.Empty(t, mgr.InstallID())
		})
	}
}

func TestNewManager_UnwritableDirIsNotFatal(t *testing.T) {
	parent := t.TempDir()
	blocker := filepath.Join(parent, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	// ConfigDir below a regular file cannot be created.
	cfg := &config.Config{Bin: "heroku", ConfigDir: filepath.Join(blocker, "heroku")}

	mgr, err := NewManager(cfg, env(nil), fixedID("1234"), WithLogger(logging.Discard()))
	require.NoError(t, err)
	assert.Empty(t, mgr.InstallID())
}

func TestNewManager_CorruptFile(t *testing.T) {
	cfg := newConfig(t)
	require.NoError(t, os.MkdirAll(cfg.ConfigDir, 0o700))
	require.NoError(t, os.WriteFile(Path(cfg), []byte(`{`), 0o600))

	_, err := NewManager(cfg, env(nil), WithLogger(logging.Discard()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse user config")
}

func TestSetSkipAnalytics(t *testing.T) {
	cfg := newConfig(t)
	mgr, err := NewManager(cfg, env(nil), fixedID("1234"), WithLogger(logging.Discard()))
	require.NoError(t, err)

	require.NoError(t, mgr.SetSkipAnalytics(true))

	assert.True(t, mgr.SkipAnalytics())
	assert.Empty(t, mgr.InstallID())
	assert.Equal(t, UserConfig{SkipAnalytics: true}, mgr.Config())
	assert.Equal(t, UserConfig{SkipAnalytics: true}, readFile(t, mgr.Path()))
}

func TestSetSkipAnalytics_OptBackIn(t *testing.T) {
	cfg := newConfig(t)
	mgr, err := NewManager(cfg, env(nil), fixedID("1234"), WithLogger(logging.Discard()))
	require.NoError(t, err)
	require.NoError(t, mgr.SetSkipAnalytics(true))

	// a later process sees the opt-out and opts back in
	again, err := NewManager(cfg, env(nil), fixedID("5678"), WithLogger(logging.Discard()))
	require.NoError(t, err)
	require.True(t, again.SkipAnalytics())

	require.NoError(t, again.SetSkipAnalytics(false))

	assert.False(t, again.SkipAnalytics())
	assert.Equal(t, "5678", again.InstallID())
	assert.Equal(t, UserConfig{Install: "5678"}, readFile(t, again.Path()))
}

func TestSetSkipAnalytics_EnvStillWins(t *testing.T) {
	cfg := newConfig(t)
	mgr, err := NewManager(cfg, env(map[string]string{"HEROKU_SKIP_ANALYTICS": "1"}), fixedID("1234"), WithLogger(logging.Discard()))
	require.NoError(t, err)

	require.NoError(t, mgr.SetSkipAnalytics(false))

	assert.True(t, mgr.SkipAnalytics())
	assert.Empty(t, mgr.InstallID())
	assert.Equal(t, UserConfig{}, readFile(t, mgr.Path()))
}
