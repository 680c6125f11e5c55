// Package boarddir provides constants and helpers for the .taskboard state
// directory.
package boarddir

import "path/filepath"

const (
	// Dir is the name of the taskboard state directory.
	Dir = ".taskboard"

	// TasksFile is the default task list file name (inside .taskboard).
	TasksFile = "tasks.json"

	// ConfigFile is the config file name, both in the project root and in
	// the user config directory.
	ConfigFile = "taskboard.toml"

	// HiddenConfigFile is the alternate project config file name.
	HiddenConfigFile = ".taskboard.toml"
)

// DefaultTasksPath is the task file path relative to the project root.
var DefaultTasksPath = TasksPath("")

// TasksPath returns the task file path within a work directory.
func TasksPath(workDir string) string {
	return joinPath(workDir, TasksFile)
}

// DirPath returns the .taskboard directory within a work directory.
func DirPath(workDir string) string {
	if workDir == "." || workDir == "" {
		return Dir
	}
	return filepath.Join(workDir, Dir)
}

// UserConfigPath returns the user-level config path under home.
func UserConfigPath(home string) string {
	return joinPath(home, ConfigFile)
}

// ProjectConfigPaths returns candidate project config files in lookup order.
func ProjectConfigPaths(projectRoot string) []string {
	return []string{
		filepath.Join(projectRoot, ConfigFile),
		filepath.Join(projectRoot, HiddenConfigFile),
	}
}

func joinPath(workDir, file string) string {
	return filepath.Join(DirPath(workDir), file)
}
