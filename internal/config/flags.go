package config

import (
	"flag"
)

// parseFlags defines the global CLI flags on fs, parses args, and records
// every explicitly set flag as a flag-sourced value.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("tasks", flag.ContinueOnError)
	}

	fs.StringVar(&cfg.TasksDir, "dir", cfg.TasksDir, "Directory holding task group files")
	fs.StringVar(&cfg.DefaultGroup, "default-group", cfg.DefaultGroup, "Group used when a command names none")
	fs.IntVar(&cfg.BarWidth, "bar-width", cfg.BarWidth, "Progress bar width")
	noColor := fs.Bool("no-color", !cfg.Color, "Disable colored and struck-through output")

	// Logging
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	// Map flag names to source field names
	flagToSource := map[string]string{
		"dir":            "tasks_dir",
		"default-group":  "default_group",
		"bar-width":      "bar_width",
		"no-color":       "color",
		"log-level":      "log_level",
		"log-format":     "log_format",
		"log-timestamps": "log_timestamps",
		"log-caller":     "log_caller",
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "no-color" {
			cfg.Color = !*noColor
		}
		if sources == nil {
			return
		}
		if fieldName, ok := flagToSource[f.Name]; ok {
			sources[fieldName] = SourceFlag
		}
	})

	return nil
}
