// Package cmd implements the CLI command structure for tasks.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasks-go/internal/config"
	"github.com/nibzard/tasks-go/internal/groups"
	"github.com/nibzard/tasks-go/internal/logging"
	"github.com/nibzard/tasks-go/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// errSaveFailed prefixes every failure to write a group back to disk.
var errSaveFailed = errors.New("unable to save changes")

// Run executes the tasks CLI.
func Run(ctx context.Context, args []string) error {
	err := run(ctx, args, os.Stdout, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		// Subcommand usage was already printed.
		return nil
	}
	return err
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("tasks", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand(stdout)
	}

	remainingArgs := fs.Args()
	if len(remainingArgs) == 0 {
		printUsage(fs, stderr)
		return errors.New("missing command")
	}
	subcommand, remainingArgs := remainingArgs[0], remainingArgs[1:]

	// Commands that never touch the tasks directory
	switch subcommand {
	case "version":
		return versionCommand(stdout)
	case "help":
		printUsage(fs, stdout)
		return nil
	case "config":
		return configCommand(cws, stdout, remainingArgs)
	}

	a, err := newApp(cws.Config, stdout, stderr)
	if err != nil {
		return err
	}

	switch subcommand {
	case "add":
		return a.addCommand(remainingArgs)
	case "list", "ls":
		return a.listCommand(remainingArgs)
	case "complete", "done":
		return a.completeCommand(remainingArgs)
	case "remove", "rm":
		return a.removeCommand(remainingArgs)
	case "create":
		return a.createCommand(remainingArgs)
	case "groups":
		return a.groupsCommand(remainingArgs)
	case "tui":
		return a.tuiCommand(ctx, remainingArgs)
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// app carries what every group command needs.
type app struct {
	cfg      *config.Config
	logger   *log.Logger
	registry *groups.Registry
	renderer *ui.Renderer
	stdout   io.Writer
	stderr   io.Writer
}

func newApp(cfg *config.Config, stdout, stderr io.Writer) (*app, error) {
	logger := logging.NewFromConfig(stderr, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)
	registry := groups.New(cfg.TasksDir,
		groups.WithLogger(logger),
		groups.WithDefaultGroup(cfg.DefaultGroup),
	)
	if err := registry.EnsureDir(); err != nil {
		return nil, err
	}
	logger.Debug("using tasks directory", "dir", registry.Root())

	return &app{
		cfg:      cfg,
		logger:   logger,
		registry: registry,
		renderer: ui.NewRenderer(stdout, ui.WithColor(cfg.Color), ui.WithBarWidth(cfg.BarWidth)),
		stdout:   stdout,
		stderr:   stderr,
	}, nil
}

func versionCommand(w io.Writer) error {
	fmt.Fprintf(w, "tasks version %s\n", Version)
	return nil
}

// configCommand prints the resolved configuration, the example file, or the
// config schema.
func configCommand(cws *config.ConfigWithSources, w io.Writer, args []string) error {
	fs := flag.NewFlagSet("tasks config", flag.ContinueOnError)
	example := fs.Bool("example", false, "Print an example config file")
	schema := fs.Bool("schema", false, "Print the config file JSON Schema")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	switch {
	case *example:
		fmt.Fprint(w, config.ExampleConfig())
		return nil
	case *schema:
		fmt.Fprint(w, config.Schema())
		return nil
	}

	if file := cws.ConfigFile(); file != "" {
		fmt.Fprintf(w, "# config file: %s\n", file)
	} else {
		fmt.Fprintln(w, "# config file: none")
	}
	for _, f := range cws.Fields() {
		fmt.Fprintf(w, "%-15s = %-30s # %s\n", f.Name, f.Value, f.Source)
	}
	return nil
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Tasks - A file-backed personal task list")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tasks [global options] <command> [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  add [-g group] <task...>        Add a task")
	fmt.Fprintln(w, "  list [-g group] [-p]            List tasks or show progress")
	fmt.Fprintln(w, "  complete [-g group] <number>    Mark a task as completed")
	fmt.Fprintln(w, "  remove [-g group] -n <number>   Remove a task")
	fmt.Fprintln(w, "  remove [-g group] -c            Remove all completed tasks")
	fmt.Fprintln(w, "  create <group>                  Create an empty task group")
	fmt.Fprintln(w, "  groups                          Show progress for every group")
	fmt.Fprintln(w, "  tui [-g group]                  Browse and edit a group interactively")
	fmt.Fprintln(w, "  config [-example|-schema]       Show the resolved configuration")
	fmt.Fprintln(w, "  version                         Show version information")
	fmt.Fprintln(w, "  help                            Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Task numbers are 1-based, as shown by list.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
}

// groupFlag registers -g and -group on fs.
func groupFlag(fs *flag.FlagSet) *string {
	group := fs.String("g", "", "Task group (default from config)")
	fs.StringVar(group, "group", "", "Task group (default from config)")
	return group
}

// parseCommandFlags parses args for a subcommand, routing flag errors and
// usage to stderr.
func (a *app) parseCommandFlags(fs *flag.FlagSet, args []string) error {
	fs.SetOutput(a.stderr)
	return fs.Parse(args)
}

func unexpectedArgs(args []string) error {
	return fmt.Errorf("unexpected arguments: %s", strings.Join(args, " "))
}
