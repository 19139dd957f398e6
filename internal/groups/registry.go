package groups

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasks-go/internal/logging"
	"github.com/nibzard/tasks-go/internal/todo"
)

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithDefaultGroup sets the group used when a name is empty.
func WithDefaultGroup(name string) Option {
	return func(r *Registry) {
		if name != "" {
			r.defaultGroup = name
		}
	}
}

// Registry resolves group names to files under a single root directory.
type Registry struct {
	root         string
	defaultGroup string
	logger       *log.Logger
}

// Group is one entry of a directory listing. Err is set when the group's
// file could not be loaded; Store is nil in that case.
type Group struct {
	Name  string
	Store *todo.Store
	Err   error
}

// New returns a registry rooted at root.
func New(root string, opts ...Option) *Registry {
	r := &Registry{
		root:         root,
		defaultGroup: todo.DefaultGroup,
		logger:       logging.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Root returns the tasks directory.
func (r *Registry) Root() string {
	return r.root
}

// DefaultGroup returns the name used for an empty group name.
func (r *Registry) DefaultGroup() string {
	return r.defaultGroup
}

// ValidateName reports whether name can be stored as a file directly
// inside the tasks directory.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty", ErrInvalidName)
	case strings.HasPrefix(name, "."):
		return fmt.Errorf("%w: %q starts with a dot", ErrInvalidName, name)
	case strings.ContainsAny(name, `/\`+"\x00"):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	}
	return nil
}

func (r *Registry) resolveName(name string) string {
	if name == "" {
		return r.defaultGroup
	}
	return name
}

// Path returns the file path backing the named group.
func (r *Registry) Path(name string) (string, error) {
	name = r.resolveName(name)
	if err := ValidateName(name); err != nil {
		return "", err
	}
	return filepath.Join(r.root, name), nil
}

// EnsureDir creates the tasks directory if it is missing.
func (r *Registry) EnsureDir() error {
	if err := os.MkdirAll(r.root, 0755); err != nil {
		return fmt.Errorf("create tasks dir: %w", err)
	}
	return nil
}

// Exists reports whether the named group has a file.
func (r *Registry) Exists(name string) bool {
	path, err := r.Path(name)
	if err != nil {
		return false
	}
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}

// Open loads an existing group. A missing file is a *GroupNotFoundError.
func (r *Registry) Open(name string) (*todo.Store, error) {
	name = r.resolveName(name)
	path, err := r.Path(name)
	if err != nil {
		return nil, err
	}
	s, err := todo.Load(path)
	if err != nil {
		if errors.Is(err, todo.ErrNotFound) {
			return nil, &GroupNotFoundError{Name: name}
		}
		return nil, err
	}
	r.logger.Debug("loaded group", "group", name, "tasks", s.Len())
	return s, nil
}

// OpenOrCreate loads a group, or returns an empty store named after the
// group when its file does not exist yet. Nothing is written.
func (r *Registry) OpenOrCreate(name string) (*todo.Store, error) {
	s, err := r.Open(name)
	var nf *GroupNotFoundError
	if errors.As(err, &nf) {
		r.logger.Debug("starting empty group", "group", nf.Name)
		return todo.NewNamed(nf.Name), nil
	}
	return s, err
}

// Create writes an empty file for the named group. It reports false and
// leaves the file untouched when the group already exists.
func (r *Registry) Create(name string) (bool, error) {
	name = r.resolveName(name)
	path, err := r.Path(name)
	if err != nil {
		return false, err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return false, nil
		}
		return false, &todo.WriteError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return false, &todo.WriteError{Path: path, Err: err}
	}
	r.logger.Debug("created group", "group", name, "path", path)
	return true, nil
}

// Save writes s to the file of the group it is named after.
func (r *Registry) Save(s *todo.Store) error {
	path, err := r.Path(s.Name())
	if err != nil {
		return err
	}
	if err := s.WriteFile(path); err != nil {
		return err
	}
	r.logger.Debug("saved group", "group", s.Name(), "tasks", s.Len())
	return nil
}

// List loads every group in the tasks directory, in name order. A group
// that fails to load is returned with Err set and does not stop the
// listing. A missing directory yields no groups.
func (r *Registry) List() ([]Group, error) {
	entries, err := os.ReadDir(r.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read tasks dir: %w", err)
	}

	var groups []Group
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || ValidateName(name) != nil {
			continue
		}
		s, err := todo.Load(filepath.Join(r.root, name))
		if err != nil {
			r.logger.Warn("unable to load group", "group", name, "err", err)
			groups = append(groups, Group{Name: name, Err: err})
			continue
		}
		groups = append(groups, Group{Name: name, Store: s})
	}
	return groups, nil
}
