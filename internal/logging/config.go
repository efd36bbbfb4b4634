// Package logging provides structured file logging for forecast-desk.
package logging

import (
	"os"
	"path/filepath"

	"github.com/cristianoliveira/forecast-desk/internal/config"
)

const (
	filePrefix      = "forecast-desk_"
	defaultLevel    = "info"
	defaultMaxFiles = 10
)

// Config selects whether and where a process logs.
type Config struct {
	Enabled  bool
	Level    string
	MaxFiles int // log files kept after rotation
	Command  string
	PID      int
	Dir      string // empty means LogDir()
}

// DefaultConfig is disabled logging at info level for the running binary.
func DefaultConfig() Config {
	return Config{
		Level:    defaultLevel,
		MaxFiles: defaultMaxFiles,
		Command:  filepath.Base(os.Args[0]),
		PID:      os.Getpid(),
	}
}

// FromGlobalConfig reads logging_enabled, logging_level and logging_max_files.
// An empty command keeps the binary name.
func FromGlobalConfig(command string) Config {
	cfg := DefaultConfig()
	cfg.Enabled = config.GetBool("logging_enabled", cfg.Enabled)
	cfg.Level = config.Get("logging_level", cfg.Level)
	cfg.MaxFiles = config.GetInt("logging_max_files", cfg.MaxFiles)
	if command != "" {
		cfg.Command = command
	}
	return cfg
}

// LogDir picks {state_dir}/logs, or {TMPDIR}/forecast-desk/logs when the
// state directory is unset or not writable.
func LogDir() (string, error) {
	candidates := []string{filepath.Join(os.TempDir(), "forecast-desk", "logs")}
	if stateDir := config.Get("state_dir", ""); stateDir != "" {
		candidates = append([]string{filepath.Join(stateDir, "logs")}, candidates...)
	}
	var lastErr error
	for _, dir := range candidates {
		if lastErr = os.MkdirAll(dir, 0o700); lastErr != nil {
			continue
		}
		if lastErr = probe(dir); lastErr == nil {
			return dir, nil
		}
	}
	return "", lastErr
}

func probe(dir string) error {
	f, err := os.CreateTemp(dir, ".probe-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	return os.Remove(name)
}
