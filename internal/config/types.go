package config

import (
	"time"

	"github.com/nibzard/taskboard/internal/boarddir"
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
	// Files lists the config files that were read, in load order.
	Files []string
}

// Default values.
const (
	DefaultDateFormat    = "Jan 2, 2006 3:04 PM"
	DefaultTimezone      = "Local"
	DefaultConfirmDelete = true
	DefaultLogLevel      = "warn"
	DefaultLogFormat     = "text"
)

// DefaultTaskFile is the task file path relative to the project root.
var DefaultTaskFile = boarddir.DefaultTasksPath

// Config holds the full configuration for taskboard.
type Config struct {
	// Storage
	TaskFile string `toml:"task_file"`
	Strict   bool   `toml:"strict"`

	// Display
	DateFormat string `toml:"date_format"`
	Timezone   string `toml:"timezone"`

	// Interaction
	ConfirmDelete bool `toml:"confirm_delete"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`
	LogFile       string `toml:"log_file"`

	// DryRun keeps mutations in memory. Flag only.
	DryRun bool `toml:"-"`

	// Computed
	ProjectRoot string         `toml:"-"`
	Location    *time.Location `toml:"-"`
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"task_file",
		"strict",
		"date_format",
		"timezone",
		"confirm_delete",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
		"log_file",
	}
}
