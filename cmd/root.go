// Package cmd implements the CLI command structure for taskboard.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskboard/internal/config"
	"github.com/nibzard/taskboard/internal/logging"
	"github.com/nibzard/taskboard/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

var (
	// now is the clock used for categorizing; tests replace it.
	now = time.Now
	// stdin is read by confirmation prompts.
	stdin io.Reader = os.Stdin
)

// Run executes the taskboard CLI.
func Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("taskboard", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := cws.Config
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()
	for _, verr := range cfg.Validate() {
		logger.Warn("Invalid config value", "err", verr)
	}

	// No command or a leading flag means ls.
	subcommand := "ls"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "ls", "list":
		return lsCommand(cfg, logger, remainingArgs)
	case "add":
		return addCommand(cfg, logger, remainingArgs)
	case "edit":
		return editCommand(cfg, logger, remainingArgs)
	case "done", "toggle":
		return doneCommand(cfg, logger, remainingArgs)
	case "rm", "delete":
		return rmCommand(cfg, logger, remainingArgs)
	case "tui":
		return tuiCommand(ctx, cfg, logger, remainingArgs)
	case "doctor":
		return doctorCommand(cfg, remainingArgs)
	case "config":
		return configCommand(cws, remainingArgs)
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, os.Stdout)
		return nil
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, os.Stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// newLogger builds the process logger. Logs go to stderr unless log_file
// is set.
func newLogger(cfg *config.Config) (*log.Logger, func() error, error) {
	if cfg.LogFile == "" {
		logger := logging.FromConfig(os.Stderr, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)
		return logger, func() error { return nil }, nil
	}
	f, err := logging.OpenFile(cfg.LogFile)
	if err != nil {
		return nil, nil, err
	}
	logger := logging.FromConfig(f, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)
	return logger, f.Close, nil
}

// tuiCommand launches the interactive board.
func tuiCommand(ctx context.Context, cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("taskboard tui", flag.ContinueOnError)
	interval := fs.Duration("refresh", ui.DefaultTickInterval, "Re-categorize interval")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	st, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	loc := cfg.Location
	return ui.RunTUI(ctx, st, ui.Options{
		Layout:        cfg.DateFormat,
		Location:      loc,
		ConfirmDelete: cfg.ConfirmDelete,
		Now:           func() time.Time { return now().In(loc) },
		TickInterval:  *interval,
	})
}

// versionCommand prints version information.
func versionCommand() error {
	fmt.Printf("taskboard version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "taskboard - tasks with due dates, grouped into today, upcoming and completed")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  taskboard [global options] [command] [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  ls                         Show the board (default command)")
	fmt.Fprintln(w, "  add <name...> -date D -time T")
	fmt.Fprintln(w, "  add <name...> -due \"D T\"    Add a task due at date D (YYYY-MM-DD) time T (HH:MM)")
	fmt.Fprintln(w, "  edit <id> [-name N] [-date D] [-time T] [-due \"D T\"]")
	fmt.Fprintln(w, "                             Change a task's name or due date")
	fmt.Fprintln(w, "  done <id...>               Toggle completion")
	fmt.Fprintln(w, "  rm <id> [-y]               Delete a task")
	fmt.Fprintln(w, "  tui                        Launch terminal UI")
	fmt.Fprintln(w, "  doctor                     Check config and task file validity")
	fmt.Fprintln(w, "  config [-example]          Show effective config and where each value came from")
	fmt.Fprintln(w, "  version                    Show version information")
	fmt.Fprintln(w, "  help                       Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ids may be shortened to any unique prefix of at least 6 characters.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}
