package todo

import (
	"iter"
	"slices"
)

// DefaultGroup names a store created without an explicit group.
const DefaultGroup = "miscellaneous"

// Task is a single to-do item.
type Task struct {
	Content   string
	Completed bool
}

// Store is an ordered list of tasks for one group. Order is insertion order
// and is the only identity a task has.
type Store struct {
	name  string
	tasks []Task
}

// New returns an empty store for the default group.
func New() *Store {
	return NewNamed(DefaultGroup)
}

// NewNamed returns an empty store for the named group.
func NewNamed(name string) *Store {
	if name == "" {
		name = DefaultGroup
	}
	return &Store{name: name}
}

// Name returns the group's display name.
func (s *Store) Name() string {
	return s.name
}

// Add appends an incomplete task. Callers reject empty content.
func (s *Store) Add(content string) {
	s.tasks = append(s.tasks, Task{Content: content})
}

// Complete marks the task at index as completed. Completing a completed
// task is a no-op.
func (s *Store) Complete(index int) error {
	if !s.inRange(index) {
		return &IndexError{Index: index}
	}
	s.tasks[index].Completed = true
	return nil
}

// Remove deletes the task at index. Later tasks move up one position.
func (s *Store) Remove(index int) error {
	if !s.inRange(index) {
		return &IndexError{Index: index}
	}
	s.tasks = slices.Delete(s.tasks, index, index+1)
	return nil
}

// RemoveCompleted drops every completed task, keeping the rest in order.
// It reports whether anything was removed.
func (s *Store) RemoveCompleted() bool {
	kept := make([]Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(s.tasks) {
		return false
	}
	s.tasks = kept
	return true
}

// Task returns a copy of the task at index.
func (s *Store) Task(index int) (Task, error) {
	if !s.inRange(index) {
		return Task{}, &IndexError{Index: index}
	}
	return s.tasks[index], nil
}

// Tasks iterates over positions and copies of the tasks in store order.
// The sequence may be ranged over any number of times.
func (s *Store) Tasks() iter.Seq2[int, Task] {
	return func(yield func(int, Task) bool) {
		for i, t := range s.tasks {
			if !yield(i, t) {
				return
			}
		}
	}
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// NumCompleted counts completed tasks.
func (s *Store) NumCompleted() int {
	n := 0
	for _, t := range s.tasks {
		if t.Completed {
			n++
		}
	}
	return n
}

func (s *Store) inRange(index int) bool {
	return index >= 0 && index < len(s.tasks)
}
