package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ErrFlags reports global flags that could not be parsed. The flag package
// has already printed the problem to the flag set's output.
var ErrFlags = errors.New("invalid flags")

// Loader resolves configuration. The zero value reads the process
// environment, working directory and user config directory.
type Loader struct {
	// WorkDir overrides the working directory.
	WorkDir string
	// UserConfigDir overrides the directory searched for task-cli/config.toml.
	UserConfigDir string
	// LookupEnv overrides os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// Load loads configuration using the process environment. It registers the
// global flags on fs and parses args; the caller reads the remaining
// positional arguments from fs.Args().
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	return Loader{}.Load(fs, args)
}

// flagValues holds global flags until the lower layers are loaded.
type flagValues struct {
	configFile string
	taskFile   string
	logLevel   string
}

// registerFlags defines the global configuration flags on fs.
func registerFlags(fs *flag.FlagSet, v *flagValues) {
	fs.StringVar(&v.configFile, "config", "", "Path to a config file (replaces user and project config)")
	fs.StringVar(&v.taskFile, "file", "", "Path to the task file (default "+DefaultTaskFile+")")
	fs.StringVar(&v.logLevel, "log-level", "", "Log level (debug|info|warn|error)")
}

// Load runs every layer in priority order and finalizes the result.
func (l Loader) Load(fs *flag.FlagSet, args []string) (*Config, error) {
	if fs == nil {
		fs = flag.NewFlagSet("task-cli", flag.ContinueOnError)
	}
	var flags flagValues
	registerFlags(fs, &flags)
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFlags, err)
	}

	workDir := l.WorkDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		workDir = wd
	}

	cfg := &Config{WorkDir: workDir}

	// 1. Defaults
	setDefaults(cfg)

	// 2 and 3. Config files
	files := l.configFiles(flags.configFile, workDir)
	for _, path := range files {
		if err := loadConfigFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
		cfg.Files = append(cfg.Files, path)
	}

	// 4. Environment, with .env filling gaps
	env, err := newEnvLookup(l.LookupEnv, workDir)
	if err != nil {
		return nil, err
	}
	loadFromEnv(cfg, env)

	// 5. Flags that were set explicitly
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "file":
			cfg.TaskFile = flags.taskFile
		case "log-level":
			cfg.LogLevel = flags.logLevel
		}
	})

	if err := finalizeConfig(cfg); err != nil {
		return nil, fmt.Errorf("finalizing config: %w", err)
	}
	return cfg, nil
}

// configFiles returns the config files to apply, lowest priority first.
func (l Loader) configFiles(explicit, workDir string) []string {
	if explicit != "" {
		path := expandPath(explicit)
		if !filepath.IsAbs(path) {
			path = filepath.Join(workDir, path)
		}
		return []string{path}
	}

	var files []string
	if path := findUserConfigFile(l.UserConfigDir); path != "" {
		files = append(files, path)
	}
	if path := findProjectConfigFile(workDir); path != "" {
		files = append(files, path)
	}
	return files
}

// loadConfigFile decodes TOML from path over cfg and records unknown keys.
func loadConfigFile(cfg *Config, path string) error {
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	for _, key := range meta.Undecoded() {
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf("%s: unknown key %q", path, key.String()))
	}
	return nil
}

// finalizeConfig computes derived values and validates settings.
func finalizeConfig(cfg *Config) error {
	if cfg.TaskFile == "" {
		return fmt.Errorf("task file path is empty")
	}
	if cfg.Indent < 0 {
		return fmt.Errorf("indent must not be negative, got %d", cfg.Indent)
	}

	cfg.TaskFile = expandPath(cfg.TaskFile)
	if !filepath.IsAbs(cfg.TaskFile) {
		cfg.TaskFile = filepath.Join(cfg.WorkDir, cfg.TaskFile)
	}
	return nil
}
