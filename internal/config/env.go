package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variable names.
const (
	EnvTaskFile      = "TASK_CLI_FILE"
	EnvIndent        = "TASK_CLI_INDENT"
	EnvLogLevel      = "TASK_CLI_LOG_LEVEL"
	EnvLogFormat     = "TASK_CLI_LOG_FORMAT"
	EnvLogTimestamps = "TASK_CLI_LOG_TIMESTAMPS"
)

// DotEnvFile is read from the working directory when present.
const DotEnvFile = ".env"

type envLookup func(string) (string, bool)

// newEnvLookup layers the .env file in workDir under lookup. The process
// environment is never modified.
func newEnvLookup(lookup envLookup, workDir string) (envLookup, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	dotenv, err := godotenv.Read(filepath.Join(workDir, DotEnvFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return lookup, nil
		}
		return nil, fmt.Errorf("loading %s: %w", DotEnvFile, err)
	}

	return func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}, nil
}

// loadFromEnv overrides config from environment variables. Empty values are
// ignored, as are indents that are not integers.
func loadFromEnv(cfg *Config, lookup envLookup) {
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	if v := get(EnvTaskFile); v != "" {
		cfg.TaskFile = v
	}
	if v := get(EnvIndent); v != "" {
		var i int
		if _, err := fmt.Sscanf(v, "%d", &i); err == nil {
			cfg.Indent = i
		}
	}
	if v := get(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := get(EnvLogFormat); v != "" {
		cfg.LogFormat = v
	}
	if v := get(EnvLogTimestamps); v != "" {
		cfg.LogTimestamps = boolFromString(v)
	}
}

func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
