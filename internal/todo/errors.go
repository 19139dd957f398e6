package todo

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports that a group file does not exist.
	ErrNotFound = errors.New("task file not found")
	// ErrParse reports a malformed line in a group file.
	ErrParse = errors.New("malformed task line")
	// ErrIndex reports a task position outside the store.
	ErrIndex = errors.New("task index out of range")
	// ErrWrite reports a failure while writing a group file.
	ErrWrite = errors.New("write task file")
)

// ParseError describes a line that could not be decoded.
type ParseError struct {
	Path string // empty when decoding from a stream
	Line int    // 1-based; 0 when unknown
	Err  error
}

func (e *ParseError) Error() string {
	switch {
	case e.Path != "" && e.Line > 0:
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("line %d: %s", e.Line, e.Err)
	default:
		return e.Err.Error()
	}
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is reports ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// IndexError reports a task position with no task behind it.
type IndexError struct {
	Index int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("no task with number %d", e.Index)
}

// Is reports ErrIndex.
func (e *IndexError) Is(target error) bool {
	return target == ErrIndex
}

// WriteError wraps a failure to persist a store. The file on disk may no
// longer match the store in memory.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %s", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *WriteError) Unwrap() error {
	return e.Err
}

// Is reports ErrWrite.
func (e *WriteError) Is(target error) bool {
	return target == ErrWrite
}
