package config

import (
	"os"
	"path/filepath"
)

// projectConfigNames are checked in the working directory, in order.
var projectConfigNames = []string{"task-cli.toml", ".task-cli.toml"}

// findProjectConfigFile returns the first project config file in workDir.
func findProjectConfigFile(workDir string) string {
	for _, name := range projectConfigNames {
		path := filepath.Join(workDir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// findUserConfigFile returns task-cli/config.toml under dir, or under the OS
// user config directory when dir is empty.
func findUserConfigFile(dir string) string {
	if dir == "" {
		d, err := os.UserConfigDir()
		if err != nil {
			return ""
		}
		dir = d
	}
	path := filepath.Join(dir, "task-cli", "config.toml")
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return path
	}
	return ""
}
