package cmd

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/nibzard/taskboard/internal/config"
	"github.com/nibzard/taskboard/internal/storage"
	"github.com/nibzard/taskboard/internal/task"
)

// doctorCommand checks config and task file validity.
func doctorCommand(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("taskboard doctor", flag.ContinueOnError)
	verbose := fs.Bool("v", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	taskPath := cfg.TaskFile
	if len(remaining) == 1 {
		taskPath = remaining[0]
	}

	fmt.Println("Taskboard Doctor")
	fmt.Println("================")
	fmt.Println()

	allOK := true

	fmt.Printf("Project root: %s\n", cfg.ProjectRoot)
	if _, err := os.Stat(cfg.ProjectRoot); err != nil {
		fmt.Printf("  ❌ Error: %v\n", err)
		allOK = false
	} else {
		fmt.Println("  ✅ OK")
	}
	fmt.Println()

	fmt.Println("Config:")
	configErrs := cfg.Validate()
	for _, err := range configErrs {
		fmt.Printf("  ❌ %v\n", err)
	}
	if len(configErrs) > 0 {
		allOK = false
	} else {
		fmt.Printf("  ✅ Timezone: %s\n", cfg.Location)
		fmt.Printf("  ✅ Date format: %s\n", cfg.DateFormat)
		fmt.Printf("  ✅ Log level: %s (%s)\n", cfg.LogLevel, cfg.LogFormat)
	}
	fmt.Println()

	fmt.Printf("Task file: %s\n", taskPath)
	info, err := os.Stat(taskPath)
	switch {
	case os.IsNotExist(err):
		fmt.Println("  ⚠️  Not found (will be created on first change)")
	case err != nil:
		fmt.Printf("  ❌ Error: %v\n", err)
		allOK = false
	case info.IsDir():
		fmt.Println("  ❌ Error: path is a directory")
		allOK = false
	default:
		fmt.Println("  ✅ OK")
		if !checkTaskFile(taskPath, *verbose) {
			allOK = false
		}
	}
	fmt.Println()

	if allOK {
		fmt.Println("✅ All checks passed!")
		return nil
	}
	fmt.Println("⚠️  Some checks failed. Taskboard may not function correctly.")
	return fmt.Errorf("doctor checks failed")
}

func checkTaskFile(path string, verbose bool) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("  ❌ Read error: %v\n", err)
		return false
	}
	result := storage.Validate(data)
	if !result.Valid {
		fmt.Println("  ❌ Validation failed:")
		for _, e := range result.Errors {
			fmt.Printf("     - %v\n", e)
		}
		return false
	}
	fmt.Println("  ✅ Valid")

	tasks, err := storage.NewJSONFile(path).Load()
	if err != nil {
		fmt.Printf("  ❌ Load error: %v\n", err)
		return false
	}
	done := 0
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}
	fmt.Printf("  Tasks: %d (%d completed)\n", len(tasks), done)
	if verbose {
		for _, t := range tasks {
			fmt.Printf("    - %s %s: %s\n", checkbox(t), t.ID, t.Name)
		}
	}
	return true
}

func checkbox(t task.Task) string {
	if t.Completed {
		return "[x]"
	}
	return "[ ]"
}

// configCommand prints the effective configuration and where each value
// came from.
func configCommand(cws *config.ConfigWithSources, args []string) error {
	fs := flag.NewFlagSet("taskboard config", flag.ContinueOnError)
	example := fs.Bool("example", false, "Print an example config file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if *example {
		fmt.Print(config.ExampleConfig())
		return nil
	}

	if file := cws.GetConfigFile(); file != "" {
		fmt.Printf("# config file: %s\n", file)
	} else {
		fmt.Println("# config file: (none)")
	}
	for _, name := range cws.SortedFields() {
		source := cws.Sources[name]
		if source == "" {
			source = config.SourceDefault
		}
		fmt.Printf("%s = %s  # %s\n", name, fieldValue(cws.Config, name), source)
	}
	return nil
}

func fieldValue(cfg *config.Config, name string) string {
	switch name {
	case "task_file":
		return strconv.Quote(cfg.TaskFile)
	case "strict":
		return strconv.FormatBool(cfg.Strict)
	case "date_format":
		return strconv.Quote(cfg.DateFormat)
	case "timezone":
		return strconv.Quote(cfg.Timezone)
	case "confirm_delete":
		return strconv.FormatBool(cfg.ConfirmDelete)
	case "log_level":
		return strconv.Quote(cfg.LogLevel)
	case "log_format":
		return strconv.Quote(cfg.LogFormat)
	case "log_timestamps":
		return strconv.FormatBool(cfg.LogTimestamps)
	case "log_caller":
		return strconv.FormatBool(cfg.LogCaller)
	case "log_file":
		return strconv.Quote(cfg.LogFile)
	}
	return ""
}
