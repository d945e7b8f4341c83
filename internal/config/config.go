// Package config loads the notegit settings file. Settings are consumed
// at call time by the task repository and the status poller; nothing
// here is cached across calls.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the settings file looked up at the vault root.
const FileName = "notegit.yaml"

// Config is the notegit settings surface. Missing keys are filled with
// defaults on load.
type Config struct {
	AutoSyncOnClose   bool   `yaml:"autoSyncOnClose"`
	ShowStatusBar     bool   `yaml:"showStatusBar"`
	ShowTasks         bool   `yaml:"showTasks"`
	ShowTasksRibbon   bool   `yaml:"showTasksRibbon"`
	TasksExcludeFiles string `yaml:"tasksExcludeFiles"`

	StatusCommand         string `yaml:"statusCommand"`
	SyncCommand           string `yaml:"syncCommand"`
	CommandTimeoutSeconds int    `yaml:"commandTimeoutSeconds"`
	DebounceMillis        int    `yaml:"debounceMillis"`
}

// Default returns the default-filled configuration.
func Default() Config {
	return Config{
		ShowStatusBar:         true,
		ShowTasks:             true,
		ShowTasksRibbon:       true,
		StatusCommand:         "notegit-status",
		SyncCommand:           "notegit-sync",
		CommandTimeoutSeconds: 30,
		DebounceMillis:        500,
	}
}

// Load reads the settings file at the vault root. A missing file is not
// an error: defaults are returned. Keys absent from the file keep their
// default values.
func Load(root string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Join(root, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Default(), fmt.Errorf("read %s: %w", FileName, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse %s: %w", FileName, err)
	}
	return cfg, nil
}

// ExcludePatterns splits tasksExcludeFiles on commas, trimming each
// entry and dropping empties.
func (c Config) ExcludePatterns() []string {
	var patterns []string
	for _, part := range strings.Split(c.TasksExcludeFiles, ",") {
		if p := strings.TrimSpace(part); p != "" {
			patterns = append(patterns, p)
		}
	}
	return patterns
}

// StatusArgv returns the status command as an argv slice.
func (c Config) StatusArgv() []string {
	return strings.Fields(c.StatusCommand)
}

// SyncArgv returns the sync command as an argv slice.
func (c Config) SyncArgv() []string {
	return strings.Fields(c.SyncCommand)
}

// CommandTimeout returns the external tool timeout as a duration.
func (c Config) CommandTimeout() time.Duration {
	return time.Duration(c.CommandTimeoutSeconds) * time.Second
}

// DebounceWindow returns the status refresh debounce window as a
// duration.
func (c Config) DebounceWindow() time.Duration {
	return time.Duration(c.DebounceMillis) * time.Millisecond
}
