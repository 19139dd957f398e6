package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# tasks configuration file
# Values can be overridden by TASKS_* environment variables or CLI flags.

# Directory holding one file per task group (supports ~ and $VAR expansion)
tasks_dir = "~/.tasks"

# Group used when a command does not name one
default_group = "miscellaneous"

# Progress bar width in cells (10-200)
bar_width = 60

# Strike through completed tasks and color progress bars
color = true

# Diagnostics written to stderr
log_level = "info"      # debug, info, warn, error, fatal
log_format = "text"     # text, json, logfmt
log_timestamps = false
log_caller = false
`
}
