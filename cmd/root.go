// Package cmd implements the CLI command structure for task-cli.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/nibzard/task-cli/internal/config"
	"github.com/nibzard/task-cli/internal/logging"
	"github.com/nibzard/task-cli/internal/repository"
	"github.com/nibzard/task-cli/internal/storage"
	"github.com/nibzard/task-cli/internal/task"
	"github.com/nibzard/task-cli/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// ErrUsage marks command misuse that has already been reported on stdout.
var ErrUsage = errors.New("usage error")

// commands lists the task commands in usage order.
var commands = []string{"add", "list", "update", "delete", "mark-done", "mark-in-progress"}

// app carries what a single invocation needs.
type app struct {
	repo   *repository.Repository
	stdout io.Writer
}

// Run executes the task-cli CLI against the process stdout and stderr.
func Run(ctx context.Context, args []string) error {
	return Execute(ctx, args, os.Stdout, os.Stderr)
}

// Execute parses global flags, then dispatches the command in args.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("task-cli", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cfg, err := config.Load(fs, args)
	if err != nil {
		if errors.Is(err, config.ErrFlags) {
			return fmt.Errorf("%w: %w", ErrUsage, err)
		}
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand(stdout)
	}

	logger := logging.New(stderr, cfg.LogOptions())
	for _, w := range cfg.Warnings {
		logger.Warn(w)
	}
	store := storage.New(cfg.TaskFile,
		storage.WithIndent(cfg.Indent),
		storage.WithLogger(logger),
	)
	a := &app{
		repo:   repository.New(store, repository.WithLogger(logger)),
		stdout: stdout,
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		printUsage(fs, stdout)
		return nil
	}

	name, rest := remaining[0], remaining[1:]
	logger.Debug("dispatching", "command", name, "task_file", store.Path())

	switch name {
	case "add":
		return a.addCommand(rest)
	case "list":
		return a.listCommand(rest)
	case "update":
		return a.updateCommand(rest)
	case "delete":
		return a.deleteCommand(rest)
	case "mark-done", "mark-in-progress":
		return a.markCommand(name, rest)
	case "board":
		return ui.RunBoard(ctx, a.repo, stdout)
	case "schema":
		fmt.Fprint(stdout, storage.SchemaJSON())
		return nil
	case "version":
		return versionCommand(stdout)
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		return a.usageError("Error: Unknown command '%s'.", name)
	}
}

// addCommand creates a task from the remaining words.
func (a *app) addCommand(args []string) error {
	if len(args) < 1 {
		return a.usageError("Error: 'add' command requires a description.")
	}

	added, err := a.repo.Add(strings.Join(args, " "))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Task added successfully (ID: %d)\n", added.ID)
	return nil
}

// listCommand prints tasks, optionally only those with one status.
func (a *app) listCommand(args []string) error {
	var filter *task.Status
	if len(args) > 0 {
		status := task.Status(args[0])
		filter = &status
	}

	tasks, err := a.repo.List(filter)
	if err != nil {
		return err
	}
	for _, t := range tasks {
		fmt.Fprintln(a.stdout, formatTask(t))
	}
	return nil
}

// updateCommand replaces the description of a task.
func (a *app) updateCommand(args []string) error {
	if len(args) < 2 {
		return a.usageError("Error: 'update' requires an ID and a new description.")
	}
	id, err := a.parseID(args[0])
	if err != nil {
		return err
	}

	if err := a.repo.Update(id, strings.Join(args[1:], " ")); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Task %d updated.\n", id)
	return nil
}

// deleteCommand removes a task. Deleting a missing id still succeeds.
func (a *app) deleteCommand(args []string) error {
	if len(args) < 1 {
		return a.usageError("Error: 'delete' requires a task ID.")
	}
	id, err := a.parseID(args[0])
	if err != nil {
		return err
	}

	if err := a.repo.Delete(id); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Task %d deleted.\n", id)
	return nil
}

// markCommand sets the status named by the command itself.
func (a *app) markCommand(name string, args []string) error {
	if len(args) < 1 {
		return a.usageError("Error: '%s' requires a task ID.", name)
	}
	id, err := a.parseID(args[0])
	if err != nil {
		return err
	}

	status := statusFromCommand(name)
	if err := a.repo.Mark(id, status); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Task %d marked as %s.\n", id, status)
	return nil
}

// parseID parses a task id argument, reporting misuse when it is not an integer.
func (a *app) parseID(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, a.usageError("Error: Task ID must be an integer.")
	}
	return id, nil
}

// usageError prints a user-facing message and returns it wrapped in ErrUsage.
func (a *app) usageError(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(a.stdout, msg)
	return fmt.Errorf("%w: %s", ErrUsage, msg)
}

// statusFromCommand returns the text after the first hyphen of a mark
// command: mark-done is done, mark-in-progress is in-progress.
func statusFromCommand(name string) task.Status {
	_, status, _ := strings.Cut(name, "-")
	return task.Status(status)
}

// formatTask renders a task as "[id] description - status".
func formatTask(t task.Task) string {
	return fmt.Sprintf("[%d] %s - %s", t.ID, t.Description, t.Status)
}

// statusNames joins the recognized statuses for help text.
func statusNames() string {
	names := make([]string, 0, len(task.Statuses()))
	for _, s := range task.Statuses() {
		names = append(names, string(s))
	}
	return strings.Join(names, "|")
}

// versionCommand prints version information.
func versionCommand(w io.Writer) error {
	fmt.Fprintf(w, "task-cli version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Usage: task-cli [options] <command> [arguments]")
	fmt.Fprintf(w, "Commands: %s\n", strings.Join(commands, ", "))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  add <description...>          Add a task")
	fmt.Fprintf(w, "  list [status]                 List tasks, optionally by status (%s)\n", statusNames())
	fmt.Fprintln(w, "  update <id> <description...>  Replace a task's description")
	fmt.Fprintln(w, "  delete <id>                   Delete a task")
	fmt.Fprintln(w, "  mark-done <id>                Mark a task as done")
	fmt.Fprintln(w, "  mark-in-progress <id>         Mark a task as in-progress")
	fmt.Fprintln(w, "  board                         Interactive task board (requires a terminal)")
	fmt.Fprintln(w, "  schema                        Print the JSON Schema of the task file")
	fmt.Fprintln(w, "  version                       Show version information")
	fmt.Fprintln(w, "  help                          Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}
