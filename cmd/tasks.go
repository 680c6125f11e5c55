package cmd

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/taskboard/internal/config"
	"github.com/nibzard/taskboard/internal/presenter"
	"github.com/nibzard/taskboard/internal/storage"
	"github.com/nibzard/taskboard/internal/store"
	"github.com/nibzard/taskboard/internal/task"
	"github.com/nibzard/taskboard/internal/ui"
)

// openStore loads the configured task file. With -dry-run the file is
// read once and changes stay in memory.
func openStore(cfg *config.Config, logger *log.Logger) (*store.Store, error) {
	file := storage.NewJSONFile(cfg.TaskFile)
	file.Strict = cfg.Strict
	file.Warn = func(err error) {
		logger.Warn("Task file does not match schema", "path", cfg.TaskFile, "err", err)
	}

	var backend store.Backend = file
	if cfg.DryRun {
		tasks, err := file.Load()
		if err != nil {
			return nil, err
		}
		backend = storage.NewMemory(tasks...)
		logger.Info("Dry run, changes will not be written", "path", cfg.TaskFile)
	}

	st, err := store.New(backend, store.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", cfg.TaskFile, err)
	}
	return st, nil
}

// lsCommand prints the categorized board.
func lsCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("taskboard ls", flag.ContinueOnError)
	fullIDs := fs.Bool("full-ids", false, "Print complete task ids")
	color := fs.Bool("color", ui.IsTTY(os.Stdout), "Colorize output")
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
	board := presenter.Categorize(st.List(), now().In(cfg.Location))
	return ui.RenderBoard(os.Stdout, board, ui.RenderOptions{
		Layout:   cfg.DateFormat,
		Location: cfg.Location,
		Color:    *color,
		FullIDs:  *fullIDs,
	})
}

// addCommand creates a task from the remaining words and a due date.
func addCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("taskboard add", flag.ContinueOnError)
	date := fs.String("date", "", "Due date (YYYY-MM-DD)")
	clock := fs.String("time", "", "Due time (HH:MM)")
	dueArg := fs.String("due", "", "Due date and time (\"YYYY-MM-DD HH:MM\" or RFC 3339)")
	words, err := parseArgs(fs, args)
	if err != nil {
		return err
	}

	due, err := resolveDue(*dueArg, *date, *clock, cfg.Location)
	if err != nil {
		return err
	}

	st, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	created, err := st.Add(strings.Join(words, " "), due)
	if err != nil && !store.IsWarning(err) {
		return err
	}
	fmt.Printf("Added %s: %s (due %s)\n", created.ID, created.Name, presenter.FormatDue(created.DueDate, cfg.DateFormat, cfg.Location))
	return notSaved(err)
}

// editCommand changes the name and/or due date of a task. Omitted parts
// keep their current values.
func editCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("taskboard edit", flag.ContinueOnError)
	name := fs.String("name", "", "New name")
	date := fs.String("date", "", "New due date (YYYY-MM-DD)")
	clock := fs.String("time", "", "New due time (HH:MM)")
	dueArg := fs.String("due", "", "New due date and time")
	rest, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(rest) == 0 {
		return errors.New("edit requires a task id")
	}
	ref, words := rest[0], rest[1:]
	if *name != "" && len(words) > 0 {
		return fmt.Errorf("unexpected arguments: %v", words)
	}
	if *name == "" && len(words) > 0 {
		*name = strings.Join(words, " ")
	}
	if *name == "" && *date == "" && *clock == "" && *dueArg == "" {
		return errors.New("nothing to change: pass -name, -date, -time or -due")
	}

	st, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	id, err := st.Resolve(ref)
	if err != nil {
		return err
	}
	current, err := st.Get(id)
	if err != nil {
		return err
	}

	newName := current.Name
	if *name != "" {
		newName = *name
	}
	due := current.DueDate
	switch {
	case *dueArg != "":
		if due, err = resolveDue(*dueArg, *date, *clock, cfg.Location); err != nil {
			return err
		}
	case *date != "" || *clock != "":
		curDate, curClock := task.SplitDue(current.DueDate, cfg.Location)
		if *date != "" {
			curDate = *date
		}
		if *clock != "" {
			curClock = *clock
		}
		if due, err = task.ParseDue(curDate, curClock, cfg.Location); err != nil {
			return err
		}
	}

	err = st.Edit(id, newName, due)
	if err != nil && !store.IsWarning(err) {
		return err
	}
	fmt.Printf("Updated %s: %s (due %s)\n", id, strings.TrimSpace(newName), presenter.FormatDue(due, cfg.DateFormat, cfg.Location))
	return notSaved(err)
}

// doneCommand toggles completion for each id.
func doneCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("taskboard done", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("done requires at least one task id")
	}

	st, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	var saveErr error
	for _, ref := range fs.Args() {
		id, err := st.Resolve(ref)
		if err != nil {
			return err
		}
		err = st.ToggleComplete(id)
		if err != nil && !store.IsWarning(err) {
			return err
		}
		if err != nil {
			saveErr = err
		}
		t, _ := st.Get(id)
		verb := "Reopened"
		if t.Completed {
			verb = "Completed"
		}
		fmt.Printf("%s %s: %s\n", verb, t.ID, t.Name)
	}
	return notSaved(saveErr)
}

// rmCommand deletes a task, asking first when confirm_delete is set.
func rmCommand(cfg *config.Config, logger *log.Logger, args []string) error {
	fs := flag.NewFlagSet("taskboard rm", flag.ContinueOnError)
	yes := fs.Bool("y", false, "Delete without asking")
	rest, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return errors.New("rm requires exactly one task id")
	}

	st, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	id, err := st.Resolve(rest[0])
	if err != nil {
		return err
	}
	t, err := st.Get(id)
	if err != nil {
		return err
	}

	if cfg.ConfirmDelete && !*yes {
		fmt.Printf("Are you sure you want to delete this task? %q [y/N] ", t.Name)
		if !readYes() {
			fmt.Println("Cancelled")
			return nil
		}
	}

	err = st.Delete(id)
	if err != nil && !store.IsWarning(err) {
		return err
	}
	fmt.Printf("Deleted %s: %s\n", t.ID, t.Name)
	return notSaved(err)
}

func readYes() bool {
	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && line == "" {
		fmt.Println()
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

// resolveDue reads either -due or the -date/-time pair.
func resolveDue(due, date, clock string, loc *time.Location) (time.Time, error) {
	if due != "" {
		if date != "" || clock != "" {
			return time.Time{}, errors.New("use -due or -date/-time, not both")
		}
		return task.ParseDueString(due, loc)
	}
	return task.ParseDue(date, clock, loc)
}

// notSaved turns a persist warning into the command's error so the exit
// status reflects that the change was lost with the process.
func notSaved(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("change applied but not saved: %w", err)
}

// parseArgs parses flags that may be interleaved with positional
// arguments and returns the positionals in order.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		if consumed := len(args) - len(rest); consumed > 0 && args[consumed-1] == "--" {
			return append(positional, rest...), nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}
