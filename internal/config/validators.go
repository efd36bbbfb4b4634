package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cristianoliveira/forecast-desk/internal/colors"
)

// Validator normalizes one configuration value. Invalid values fall back to
// defaultValue with a warning instead of failing the load.
type Validator func(key, value, defaultValue string) (normalized string, err error)

var (
	validatorsMu sync.RWMutex
	validators   = map[string]Validator{}
)

// RegisterValidator binds v to key. Registering a key twice panics.
func RegisterValidator(key string, v Validator) {
	validatorsMu.Lock()
	defer validatorsMu.Unlock()
	if _, dup := validators[key]; dup {
		panic(fmt.Sprintf("validator already registered for key: %s", key))
	}
	validators[key] = v
}

func getValidator(key string) Validator {
	validatorsMu.RLock()
	defer validatorsMu.RUnlock()
	return validators[key]
}

// rule turns a check into a Validator. check returns the normalized value
// and, when the value is rejected, a description of what was expected.
func rule(check func(value string) (string, string)) Validator {
	return func(key, value, defaultValue string) (string, error) {
		if value == "" {
			return defaultValue, nil
		}
		normalized, expected := check(value)
		if expected != "" {
			colors.Warning(fmt.Sprintf("invalid %s value '%s': %s, using default: %s", key, value, expected, defaultValue))
			return defaultValue, nil
		}
		return normalized, nil
	}
}

// PositiveIntValidator accepts integers greater than zero.
func PositiveIntValidator() Validator {
	return rule(func(v string) (string, string) {
		if n, err := strconv.Atoi(v); err != nil || n <= 0 {
			return "", "must be a positive integer"
		}
		return v, ""
	})
}

// EnumValidator accepts one of allowed, case-insensitively, and lowercases it.
func EnumValidator(allowed ...string) Validator {
	sorted := slices.Sorted(slices.Values(allowed))
	return rule(func(v string) (string, string) {
		lower := strings.ToLower(v)
		if !slices.Contains(sorted, lower) {
			return "", "must be one of: " + strings.Join(sorted, ", ")
		}
		return lower, ""
	})
}

// BoolValidator accepts 1/0, true/false, yes/no and on/off.
func BoolValidator() Validator {
	return rule(func(v string) (string, string) {
		n := normalizeBool(v)
		if n != "true" && n != "false" {
			return "", "must be one of: 1, true, yes, on, 0, false, no, off"
		}
		return n, ""
	})
}

// RouteValidator accepts absolute paths such as "/" or "/forecasts".
func RouteValidator() Validator {
	return rule(func(v string) (string, string) {
		if !strings.HasPrefix(v, "/") {
			return "", "must start with '/'"
		}
		return v, ""
	})
}

// DateLayoutValidator accepts Go reference-time layouts that round-trip a date.
func DateLayoutValidator() Validator {
	ref := time.Date(2006, time.January, 2, 0, 0, 0, 0, time.UTC)
	return rule(func(v string) (string, string) {
		parsed, err := time.Parse(v, ref.Format(v))
		if err != nil || !parsed.Equal(ref) {
			return "", "must be a Go date layout such as 2006-01-02"
		}
		return v, ""
	})
}

func initValidators() {
	positive := PositiveIntValidator()
	for _, key := range []string{"page_size", "logging_max_files", "retention_days", "hooks_timeout"} {
		RegisterValidator(key, positive)
	}

	RegisterValidator("table_format", EnumValidator("default", "minimal", "tsv", "json"))
	RegisterValidator("hooks_failure_mode", EnumValidator("warn", "ignore", "abort"))
	RegisterValidator("logging_level", EnumValidator("debug", "info", "warn", "error"))

	boolean := BoolValidator()
	RegisterValidator("debug", boolean)
	RegisterValidator("logging_enabled", boolean)

	RegisterValidator("default_route", RouteValidator())
	RegisterValidator("date_format", DateLayoutValidator())
}

// normalizeBool maps the accepted spellings to "true"/"false" and returns
// anything else unchanged.
func normalizeBool(val string) string {
	switch strings.ToLower(val) {
	case "1", "true", "yes", "on":
		return "true"
	case "0", "false", "no", "off":
		return "false"
	default:
		return val
	}
}
