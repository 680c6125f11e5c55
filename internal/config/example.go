package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# taskboard configuration file
# Values can be overridden by TASKBOARD_* environment variables or CLI flags

# Task file (relative to project root, supports ~ and $VAR expansion)
task_file = ".taskboard/tasks.json"

# Fail instead of warning when the task file does not match the schema
strict = false

# Due date display layout (Go time layout)
date_format = "Jan 2, 2006 3:04 PM"

# Timezone for entering and displaying due dates (IANA name or "Local")
timezone = "Local"

# Ask before deleting a task
confirm_delete = true

# Logging
log_level = "warn"       # debug, info, warn, error
log_format = "text"      # text, json, logfmt
log_timestamps = false
log_caller = false
# log_file = "~/.taskboard/taskboard.log"
`
}
