package todo

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Load reads a group file. The store is named after the file. A missing
// file yields an error matching ErrNotFound; a malformed line yields a
// *ParseError and no store.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("open task file: %w", err)
	}
	defer f.Close()

	s, err := Decode(f, filepath.Base(path))
	if err != nil {
		var pe *ParseError
		if errors.As(err, &pe) {
			pe.Path = path
			return nil, pe
		}
		return nil, fmt.Errorf("read task file: %w", err)
	}
	return s, nil
}

// Decode reads tasks from r, one per line, in order.
func Decode(r io.Reader, name string) (*Store, error) {
	s := NewNamed(name)
	br := bufio.NewReader(r)
	for lineNo := 1; ; lineNo++ {
		line, readErr := br.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return nil, readErr
		}
		if line != "" {
			t, err := DecodeLine(line)
			if err != nil {
				var pe *ParseError
				if errors.As(err, &pe) {
					pe.Line = lineNo
				}
				return nil, err
			}
			s.tasks = append(s.tasks, t)
		}
		if readErr == io.EOF {
			return s, nil
		}
	}
}

// Encode writes every task to w in store order.
func (s *Store) Encode(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for i, t := range s.tasks {
		if _, err := bw.WriteString(EncodeLine(i, t)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile replaces the contents of path with the store. The write is not
// atomic; on failure the file may be truncated.
func (s *Store) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if err := s.Encode(f); err != nil {
		f.Close()
		return &WriteError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}
