package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/nibzard/tasks-go/internal/utils"
)

// loadFromEnv overrides config from environment variables and records the
// environment as the source of every value it sets.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) error {
	set := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}

	if v := os.Getenv("TASKS_DIR"); v != "" {
		cfg.TasksDir = v
		set("tasks_dir")
	}
	if v := os.Getenv("TASKS_GROUP"); v != "" {
		cfg.DefaultGroup = v
		set("default_group")
	}
	if v := os.Getenv("TASKS_BAR_WIDTH"); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("TASKS_BAR_WIDTH: %w", err)
		}
		cfg.BarWidth = i
		set("bar_width")
	}
	// NO_COLOR is honored per https://no-color.org; TASKS_COLOR wins if both are set.
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		cfg.Color = false
		set("color")
	}
	if v := os.Getenv("TASKS_COLOR"); v != "" {
		b, err := utils.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TASKS_COLOR: %w", err)
		}
		cfg.Color = b
		set("color")
	}

	// Logging configuration
	if v := os.Getenv("TASKS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
		set("log_level")
	}
	if v := os.Getenv("TASKS_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
		set("log_format")
	}
	if v := os.Getenv("TASKS_LOG_TIMESTAMPS"); v != "" {
		b, err := utils.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TASKS_LOG_TIMESTAMPS: %w", err)
		}
		cfg.LogTimestamps = b
		set("log_timestamps")
	}
	if v := os.Getenv("TASKS_LOG_CALLER"); v != "" {
		b, err := utils.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TASKS_LOG_CALLER: %w", err)
		}
		cfg.LogCaller = b
		set("log_caller")
	}
	return nil
}
