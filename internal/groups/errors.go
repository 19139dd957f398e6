package groups

import (
	"errors"
	"fmt"

	"github.com/nibzard/tasks-go/internal/todo"
)

// ErrInvalidName reports a group name that cannot be used as a file name
// inside the tasks directory.
var ErrInvalidName = errors.New("invalid group name")

// GroupNotFoundError reports an operation on a group with no file.
type GroupNotFoundError struct {
	Name string
}

func (e *GroupNotFoundError) Error() string {
	return fmt.Sprintf("no task group named %q", e.Name)
}

// Is reports todo.ErrNotFound so callers can classify without this package.
func (e *GroupNotFoundError) Is(target error) bool {
	return target == todo.ErrNotFound
}
