package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/cristianoliveira/forecast-desk/internal/config"
	"github.com/stretchr/testify/require"
)

func setupTest(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_STATE_HOME", tmp)
	t.Setenv("XDG_CONFIG_HOME", tmp)
	t.Setenv("HOME", tmp)
	config.Load()
	return tmp
}

func readLines(t *testing.T, path string) []map[string]any {
	t.Helper()
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(string(raw)), "\n") {
		if line == "" {
			continue
		}
		entry := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		out = append(out, entry)
	}
	return out
}

func TestConfigFromGlobal(t *testing.T) {
	setupTest(t)
	t.Setenv("FORECAST_DESK_LOGGING_ENABLED", "true")
	t.Setenv("FORECAST_DESK_LOGGING_LEVEL", "debug")
	t.Setenv("FORECAST_DESK_LOGGING_MAX_FILES", "5")
	config.Load()

	cfg := FromGlobalConfig("tui")
	require.True(t, cfg.Enabled)
	require.Equal(t, "debug", cfg.Level)
	require.Equal(t, 5, cfg.MaxFiles)
	require.Equal(t, "tui", cfg.Command)
	require.Equal(t, os.Getpid(), cfg.PID)
}

func TestLogDirUsesStateDir(t *testing.T) {
	tmp := setupTest(t)

	dir, err := LogDir()
	require.NoError(t, err)
	require.Equal(t, filepath.Join(tmp, "forecast-desk", "logs"), dir)
}

func TestInitDisabledReturnsNop(t *testing.T) {
	l, err := Init(Config{Enabled: false})
	require.NoError(t, err)
	require.Equal(t, Nop(), l)
	require.NoError(t, l.Shutdown())
}

func TestInitWritesJSONLines(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Level = "debug"
	cfg.Dir = dir
	cfg.Command = "test cmd"

	l, err := Init(cfg)
	require.NoError(t, err)
	l.With("component", "view").Debug("view loaded", "view", "home", "id", 7)
	require.NoError(t, l.Shutdown())

	files, err := filepath.Glob(filepath.Join(dir, filePrefix+"*_test_cmd.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	lines := readLines(t, files[0])
	require.Len(t, lines, 1)
	require.Equal(t, "view loaded", lines[0]["msg"])
	require.Equal(t, "view", lines[0]["component"])
	require.Equal(t, "home", lines[0]["view"])
	require.EqualValues(t, 7, lines[0]["id"])
}

func TestLevelFiltersDebug(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Level = "warn"
	cfg.Dir = dir

	l, err := Init(cfg)
	require.NoError(t, err)
	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown")
	require.NoError(t, l.Shutdown())

	files, err := filepath.Glob(filepath.Join(dir, filePrefix+"*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	lines := readLines(t, files[0])
	require.Len(t, lines, 1)
	require.Equal(t, "shown", lines[0]["msg"])
}

func TestWithResolvesGlobalLazily(t *testing.T) {
	deferred := With("component", "session")

	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.Dir = dir
	l, err := Init(cfg)
	require.NoError(t, err)
	SetGlobal(l)
	t.Cleanup(func() { _ = ShutdownGlobal() })

	deferred.Info("navigation vetoed")
	require.NotEmpty(t, CurrentLogFile())

	lines := readLines(t, CurrentLogFile())
	require.Len(t, lines, 1)
	require.Equal(t, "session", lines[0]["component"])
}

func TestRotateKeepsNewest(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		path := filepath.Join(dir, fmt.Sprintf("%s%d.log", filePrefix, i))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0600))
		mod := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, os.Chtimes(path, mod, mod))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.log"), []byte("x"), 0600))

	require.NoError(t, rotate(dir, 3))

	remaining, err := filepath.Glob(filepath.Join(dir, filePrefix+"*.log"))
	require.NoError(t, err)
	require.Len(t, remaining, 2)
	require.ElementsMatch(t, []string{
		filepath.Join(dir, filePrefix+"3.log"),
		filepath.Join(dir, filePrefix+"4.log"),
	}, remaining)
	require.FileExists(t, filepath.Join(dir, "other.log"))
}
