// Package hooks runs user scripts around forecast changes.
//
// Scripts live in <hooks_dir>/<point>/ and run in name order. Each receives
// HOOK_POINT, HOOK_TIMESTAMP, FORECAST_DESK_BINARY and the event variables in
// its environment. Pre hooks may veto the change when the failure mode is abort.
package hooks

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/cristianoliveira/forecast-desk/internal/colors"
	"github.com/cristianoliveira/forecast-desk/internal/config"
	"github.com/cristianoliveira/forecast-desk/internal/domain"
)

// Hook points.
const (
	PreSave    = "pre-save"
	PostSave   = "post-save"
	PreDelete  = "pre-delete"
	PostDelete = "post-delete"
	PostImport = "post-import"
	PostPrune  = "post-prune"
)

// FailureMode decides what a failing script does to the run.
type FailureMode string

const (
	// FailureWarn reports the failure and keeps going.
	FailureWarn FailureMode = "warn"
	// FailureIgnore drops the failure silently.
	FailureIgnore FailureMode = "ignore"
	// FailureAbort stops at the first failing script and returns its error.
	FailureAbort FailureMode = "abort"
)

// DefaultTimeout bounds a single script.
const DefaultTimeout = 30 * time.Second

// Runner executes the scripts of a hook point.
type Runner struct {
	// Dir holds one sub-directory per hook point. Empty disables hooks.
	Dir         string
	FailureMode FailureMode
	Timeout     time.Duration
	// Output receives script output and progress lines.
	Output io.Writer
}

// NewFromConfig builds a Runner from hooks_dir, hooks_failure_mode and hooks_timeout.
func NewFromConfig() *Runner {
	return &Runner{
		Dir:         config.Get("hooks_dir", ""),
		FailureMode: FailureMode(config.Get("hooks_failure_mode", string(FailureWarn))),
		Timeout:     time.Duration(config.GetInt("hooks_timeout", int(DefaultTimeout/time.Second))) * time.Second,
	}
}

// ForecastEnv returns the event variables describing f.
func ForecastEnv(f domain.Forecast) map[string]string {
	return map[string]string{
		"FORECAST_ID":            strconv.FormatInt(f.ID, 10),
		"FORECAST_DATE":          f.Date.Format("2006-01-02"),
		"FORECAST_TEMPERATURE_C": strconv.Itoa(f.TemperatureC),
		"FORECAST_TEMPERATURE_F": strconv.Itoa(f.TemperatureF()),
		"FORECAST_SUMMARY":       f.Summary,
	}
}

// Scripts lists the executable scripts of point, sorted by name.
func (r *Runner) Scripts(point string) []string {
	if r == nil || r.Dir == "" {
		return nil
	}
	dir := filepath.Join(r.Dir, point)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var scripts []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil || info.Mode()&0111 == 0 {
			continue
		}
		scripts = append(scripts, filepath.Join(dir, e.Name()))
	}
	sort.Strings(scripts)
	return scripts
}

// Run executes every script of point with env added to the process environment.
// Only FailureAbort makes Run return an error.
func (r *Runner) Run(ctx context.Context, point string, env map[string]string) error {
	scripts := r.Scripts(point)
	if len(scripts) == 0 {
		return nil
	}
	colors.Debug(fmt.Sprintf("Running %s hooks (%d script(s))", point, len(scripts)))

	environ := r.environ(point, env)
	for _, script := range scripts {
		if err := r.runScript(ctx, script, environ); err != nil {
			switch r.FailureMode {
			case FailureAbort:
				return err
			case FailureIgnore:
			default:
				colors.Warning(err.Error())
			}
		}
	}
	return nil
}

func (r *Runner) environ(point string, env map[string]string) []string {
	environ := append(os.Environ(),
		"HOOK_POINT="+point,
		"HOOK_TIMESTAMP="+time.Now().Format(time.RFC3339),
	)
	if exe, err := os.Executable(); err == nil {
		environ = append(environ, "FORECAST_DESK_BINARY="+exe)
	}
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		environ = append(environ, k+"="+env[k])
	}
	return environ
}

func (r *Runner) runScript(ctx context.Context, script string, environ []string) error {
	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	name := filepath.Base(script)
	start := time.Now()
	cmd := exec.CommandContext(ctx, script)
	cmd.Env = environ
	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output
	cmd.WaitDelay = time.Second
	err := cmd.Run()

	if output.Len() > 0 && r.Output != nil {
		if _, werr := r.Output.Write(output.Bytes()); werr != nil {
			colors.Warning(fmt.Sprintf("hook %s: write output: %v", name, werr))
		}
	}
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("hook %s timed out after %s", name, timeout)
	}
	if err != nil {
		return fmt.Errorf("hook %s failed: %w", name, err)
	}
	colors.Debug(fmt.Sprintf("hook %s completed in %.2fs", name, time.Since(start).Seconds()))
	return nil
}
