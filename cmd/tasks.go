package cmd

import (
	"errors"
	"flag"
	"fmt"
	"strconv"

	"github.com/nibzard/tasks-go/internal/todo"
	"github.com/nibzard/tasks-go/internal/utils"
)

// numberError reports a 1-based task number with no task behind it.
type numberError struct {
	action string
	number int
	err    error
}

func (e *numberError) Error() string {
	return fmt.Sprintf("%s: no task with number %d", e.action, e.number)
}

func (e *numberError) Unwrap() error {
	return e.err
}

// parseTaskNumber reads a 1-based task number from the command line.
func parseTaskNumber(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid task number %q", s)
	}
	return n, nil
}

// save writes s back, reporting failures under errSaveFailed.
func (a *app) save(s *todo.Store) error {
	if err := a.registry.Save(s); err != nil {
		return fmt.Errorf("%w: %w", errSaveFailed, err)
	}
	return nil
}

// load opens an existing group for a command.
func (a *app) load(group string) (*todo.Store, error) {
	s, err := a.registry.Open(group)
	if err != nil {
		return nil, fmt.Errorf("unable to load tasks: %w", err)
	}
	return s, nil
}

// addCommand appends a task, creating the group if needed.
func (a *app) addCommand(args []string) error {
	fs := flag.NewFlagSet("tasks add", flag.ContinueOnError)
	group := groupFlag(fs)
	if err := a.parseCommandFlags(fs, args); err != nil {
		return err
	}

	content := utils.JoinWords(fs.Args())
	if content == "" {
		return errors.New("cannot add empty task")
	}

	s, err := a.registry.OpenOrCreate(*group)
	if err != nil {
		return fmt.Errorf("unable to load tasks: %w", err)
	}
	s.Add(content)
	a.logger.Debug("added task", "group", s.Name(), "number", s.Len())
	return a.save(s)
}

// listCommand prints a group's tasks or its progress.
func (a *app) listCommand(args []string) error {
	fs := flag.NewFlagSet("tasks list", flag.ContinueOnError)
	group := groupFlag(fs)
	progress := fs.Bool("p", false, "Show progress instead of tasks")
	fs.BoolVar(progress, "progress", false, "Show progress instead of tasks")
	if err := a.parseCommandFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return unexpectedArgs(fs.Args())
	}

	s, err := a.load(*group)
	if err != nil {
		return err
	}
	if *progress {
		return a.renderer.RenderProgress(s)
	}
	return a.renderer.RenderList(s)
}

// completeCommand marks one task as completed. The group is written back
// even when the number is out of range.
func (a *app) completeCommand(args []string) error {
	fs := flag.NewFlagSet("tasks complete", flag.ContinueOnError)
	group := groupFlag(fs)
	if err := a.parseCommandFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("complete needs exactly one task number")
	}
	n, err := parseTaskNumber(fs.Arg(0))
	if err != nil {
		return err
	}

	s, err := a.load(*group)
	if err != nil {
		return err
	}

	var opErr error
	if err := s.Complete(n - 1); err != nil {
		opErr = &numberError{action: "unable to mark task as completed", number: n, err: err}
	}
	return errors.Join(opErr, a.save(s))
}

// removeCommand removes one task by number, or every completed task.
func (a *app) removeCommand(args []string) error {
	fs := flag.NewFlagSet("tasks remove", flag.ContinueOnError)
	group := groupFlag(fs)
	number := fs.Int("n", 0, "Number of the task to remove")
	completed := fs.Bool("c", false, "Remove all completed tasks")
	if err := a.parseCommandFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return unexpectedArgs(fs.Args())
	}
	numberSet := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "n" {
			numberSet = true
		}
	})
	if numberSet == *completed {
		return errors.New("remove needs exactly one of -n <number> or -c")
	}

	s, err := a.load(*group)
	if err != nil {
		return err
	}

	var opErr error
	if *completed {
		if !s.RemoveCompleted() {
			opErr = errors.New("unable to remove tasks: no tasks marked as completed")
		}
	} else if err := s.Remove(*number - 1); err != nil {
		opErr = &numberError{action: "unable to remove task", number: *number, err: err}
	}
	return errors.Join(opErr, a.save(s))
}
