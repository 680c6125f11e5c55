package config

import (
	"os"
	"strings"
)

// loadFromEnv overrides config from TASKBOARD_* environment variables.
// If sources is non-nil, it tracks the source of each value.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	track := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}

	if v := os.Getenv("TASKBOARD_FILE"); v != "" {
		cfg.TaskFile = v
		track("task_file")
	}
	if v := os.Getenv("TASKBOARD_STRICT"); v != "" {
		cfg.Strict = boolFromString(v)
		track("strict")
	}
	if v := os.Getenv("TASKBOARD_DATE_FORMAT"); v != "" {
		cfg.DateFormat = v
		track("date_format")
	}
	if v := os.Getenv("TASKBOARD_TIMEZONE"); v != "" {
		cfg.Timezone = v
		track("timezone")
	}
	if v := os.Getenv("TASKBOARD_CONFIRM_DELETE"); v != "" {
		cfg.ConfirmDelete = boolFromString(v)
		track("confirm_delete")
	}

	// Logging configuration
	if v := os.Getenv("TASKBOARD_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
		track("log_level")
	}
	if v := os.Getenv("TASKBOARD_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
		track("log_format")
	}
	if v := os.Getenv("TASKBOARD_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
		track("log_timestamps")
	}
	if v := os.Getenv("TASKBOARD_LOG_CALLER"); v != "" {
		cfg.LogCaller = boolFromString(v)
		track("log_caller")
	}
	if v := os.Getenv("TASKBOARD_LOG_FILE"); v != "" {
		cfg.LogFile = v
		track("log_file")
	}
}

// boolFromString parses a boolean from a string.
func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
