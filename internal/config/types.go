package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/nibzard/tasks-go/internal/groups"
	"github.com/nibzard/tasks-go/internal/logging"
	"github.com/nibzard/tasks-go/internal/todo"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were applied, lowest priority first.
	Files []string
}

// Default values.
const (
	DefaultTasksDir = "~/.tasks"
	DefaultBarWidth = 60
	MinBarWidth     = 10
	MaxBarWidth     = 200
)

// Config holds the full configuration for tasks.
type Config struct {
	// TasksDir holds one file per task group.
	TasksDir string `toml:"tasks_dir"`

	// DefaultGroup is used when a command names no group.
	DefaultGroup string `toml:"default_group"`

	// BarWidth is the progress bar width in cells.
	BarWidth int `toml:"bar_width"`

	// Color enables strike-through and colored output.
	Color bool `toml:"color"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"tasks_dir",
		"default_group",
		"bar_width",
		"color",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}

// Validate checks the merged configuration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.TasksDir) == "" {
		return fmt.Errorf("tasks_dir: must not be empty")
	}
	if err := groups.ValidateName(c.DefaultGroup); err != nil {
		return fmt.Errorf("default_group: %w", err)
	}
	if c.BarWidth < MinBarWidth || c.BarWidth > MaxBarWidth {
		return fmt.Errorf("bar_width: must be between %d and %d, got %d", MinBarWidth, MaxBarWidth, c.BarWidth)
	}
	if !slices.Contains(logging.ValidLevels(), strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("log_level: invalid level %q, must be one of: %s", c.LogLevel, strings.Join(logging.ValidLevels(), ", "))
	}
	if !slices.Contains(logging.ValidFormats(), strings.ToLower(c.LogFormat)) {
		return fmt.Errorf("log_format: invalid format %q, must be one of: %s", c.LogFormat, strings.Join(logging.ValidFormats(), ", "))
	}
	return nil
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.TasksDir = DefaultTasksDir
	cfg.DefaultGroup = todo.DefaultGroup
	cfg.BarWidth = DefaultBarWidth
	cfg.Color = true
	cfg.LogLevel = "info"
	cfg.LogFormat = "text"
	cfg.LogTimestamps = false
	cfg.LogCaller = false
}
