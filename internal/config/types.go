package config

import (
	"github.com/nibzard/task-cli/internal/logging"
	"github.com/nibzard/task-cli/internal/storage"
)

// Default values.
const (
	DefaultTaskFile  = storage.DefaultFile
	DefaultIndent    = storage.DefaultIndent
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

// Config holds the full configuration for task-cli.
type Config struct {
	// Path to the task file. Relative paths resolve against WorkDir.
	TaskFile string `toml:"task_file"`

	// Indentation width of the saved task file.
	Indent int `toml:"indent"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`

	// Config files that were applied, lowest priority first (computed)
	Files []string `toml:"-"`

	// Keys found in config files that task-cli does not know (computed)
	Warnings []string `toml:"-"`

	// Working directory (computed)
	WorkDir string `toml:"-"`
}

// LogOptions returns the logging options described by the config.
func (c *Config) LogOptions() logging.Options {
	opts := logging.DefaultOptions()
	opts.Level = c.LogLevel
	opts.Format = c.LogFormat
	opts.Timestamps = c.LogTimestamps
	return opts
}

func setDefaults(cfg *Config) {
	cfg.TaskFile = DefaultTaskFile
	cfg.Indent = DefaultIndent
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.LogTimestamps = false
}
