// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (<user config dir>/task-cli/config.toml)
// 3. Project config file (task-cli.toml or .task-cli.toml in the working directory)
// 4. Environment variables (TASK_CLI_*), with a .env file in the working
// directory filling in variables the environment does not set
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
// The -config flag names one file that replaces levels 2 and 3.
//
// Example task-cli.toml:
//
//	task_file = "~/notes/tasks.json"
//	indent = 2
//	log_level = "debug"
//	log_format = "logfmt"
//	log_timestamps = true
package config
