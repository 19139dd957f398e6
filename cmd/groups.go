package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/nibzard/tasks-go/internal/todo"
	"github.com/nibzard/tasks-go/internal/ui"
)

// createCommand creates an empty group file.
func (a *app) createCommand(args []string) error {
	fs := flag.NewFlagSet("tasks create", flag.ContinueOnError)
	if err := a.parseCommandFlags(fs, args); err != nil {
		return err
	}
	// "tasks create group <name>" reads naturally; accept it.
	rest := fs.Args()
	if len(rest) == 2 && rest[0] == "group" {
		rest = rest[1:]
	}
	if len(rest) != 1 {
		return errors.New("create needs exactly one group name")
	}
	name := rest[0]

	created, err := a.registry.Create(name)
	if err != nil {
		return fmt.Errorf("unable to create group %q: %w", name, err)
	}
	if !created {
		fmt.Fprintf(a.stdout, "group %q already exists\n", name)
		return nil
	}
	fmt.Fprintf(a.stdout, "created group %q\n", name)
	return nil
}

// groupsCommand prints a progress line for every group.
func (a *app) groupsCommand(args []string) error {
	fs := flag.NewFlagSet("tasks groups", flag.ContinueOnError)
	if err := a.parseCommandFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return unexpectedArgs(fs.Args())
	}

	list, err := a.registry.List()
	if err != nil {
		return fmt.Errorf("unable to list groups: %w", err)
	}
	if len(list) == 0 {
		fmt.Fprintln(a.stdout, "no task groups")
		return nil
	}
	for _, g := range list {
		if g.Err != nil {
			fmt.Fprintf(a.stdout, "%s: unable to load: %v\n", g.Name, g.Err)
			continue
		}
		fmt.Fprintln(a.stdout, a.renderer.ProgressLine(g.Name, g.Store.NumCompleted(), g.Store.Len()))
	}
	return nil
}

// tuiCommand opens a group in the interactive viewer.
func (a *app) tuiCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("tasks tui", flag.ContinueOnError)
	group := groupFlag(fs)
	if err := a.parseCommandFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return unexpectedArgs(fs.Args())
	}

	s, err := a.registry.OpenOrCreate(*group)
	if err != nil {
		return fmt.Errorf("unable to load tasks: %w", err)
	}

	err = ui.RunViewer(ctx, s, a.registry,
		ui.WithRenderOptions(ui.WithColor(a.cfg.Color), ui.WithBarWidth(a.cfg.BarWidth)),
		ui.WithAltScreen(a.altScreen()),
	)
	if errors.Is(err, todo.ErrWrite) {
		return fmt.Errorf("%w: %w", errSaveFailed, err)
	}
	return err
}

// altScreen reports whether the viewer should take over the whole terminal.
// Debug logs go to stderr and would be hidden behind the alternate screen.
func (a *app) altScreen() bool {
	return !strings.EqualFold(a.cfg.LogLevel, "debug")
}
