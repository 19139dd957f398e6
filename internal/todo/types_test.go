package todo

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func collect(s *Store) []Task {
	var out []Task
	for _, t := range s.Tasks() {
		out = append(out, t)
	}
	return out
}

func equalTasks(a, b []Task) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNew(t *testing.T) {
	s := New()
	if s.Name() != DefaultGroup {
		t.Errorf("Name: got %q, want %q", s.Name(), DefaultGroup)
	}
	if s.Len() != 0 {
		t.Errorf("Len: got %d, want 0", s.Len())
	}
	if got := NewNamed("").Name(); got != DefaultGroup {
		t.Errorf("NewNamed(\"\").Name: got %q, want %q", got, DefaultGroup)
	}
	if got := NewNamed("work").Name(); got != "work" {
		t.Errorf("NewNamed(work).Name: got %q, want work", got)
	}
}

func TestAdd(t *testing.T) {
	s := New()
	s.Add("buy milk")
	s.Add("walk dog")

	want := []Task{{Content: "buy milk"}, {Content: "walk dog"}}
	if got := collect(s); !equalTasks(got, want) {
		t.Errorf("Tasks: got %+v, want %+v", got, want)
	}
}

func TestComplete(t *testing.T) {
	s := New()
	s.Add("buy milk")
	s.Add("walk dog")

	if err := s.Complete(0); err != nil {
		t.Fatalf("Complete(0): %v", err)
	}
	if err := s.Complete(0); err != nil {
		t.Fatalf("Complete(0) again: %v", err)
	}

	want := []Task{{Content: "buy milk", Completed: true}, {Content: "walk dog"}}
	if got := collect(s); !equalTasks(got, want) {
		t.Errorf("Tasks: got %+v, want %+v", got, want)
	}
	if s.NumCompleted() != 1 {
		t.Errorf("NumCompleted: got %d, want 1", s.NumCompleted())
	}
}

func TestIndexErrors(t *testing.T) {
	tests := []struct {
		name  string
		index int
	}{
		{"negative", -1},
		{"one past end", 2},
		{"far past end", 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.Add("a")
			s.Add("b")
			before := collect(s)

			for op, fn := range map[string]func(int) error{
				"Complete": s.Complete,
				"Remove":   s.Remove,
				"Task": func(i int) error {
					_, err := s.Task(i)
					return err
				},
			} {
				err := fn(tt.index)
				var ie *IndexError
				if !errors.As(err, &ie) {
					t.Fatalf("%s(%d): got %v, want *IndexError", op, tt.index, err)
				}
				if !errors.Is(err, ErrIndex) {
					t.Errorf("%s(%d): error does not match ErrIndex", op, tt.index)
				}
				if ie.Index != tt.index {
					t.Errorf("%s: Index got %d, want %d", op, ie.Index, tt.index)
				}
			}
			if got := collect(s); !equalTasks(got, before) {
				t.Errorf("store changed: got %+v, want %+v", got, before)
			}
		})
	}
}

func TestIndexErrorMessage(t *testing.T) {
	s := New()
	s.Add("buy milk")
	for op, fn := range map[string]func(int) error{"Complete": s.Complete, "Remove": s.Remove} {
		err := fn(5)
		if err == nil || err.Error() != "no task with number 5" {
			t.Errorf("%s(5): got %v, want \"no task with number 5\"", op, err)
		}
	}
}

func TestRemove(t *testing.T) {
	s := New()
	for _, c := range []string{"a", "b", "c", "d"} {
		s.Add(c)
	}

	if err := s.Remove(1); err != nil {
		t.Fatalf("Remove(1): %v", err)
	}

	want := []Task{{Content: "a"}, {Content: "c"}, {Content: "d"}}
	if got := collect(s); !equalTasks(got, want) {
		t.Errorf("Tasks: got %+v, want %+v", got, want)
	}

	// "c" now has display number 2.
	task, err := s.Task(1)
	if err != nil || task.Content != "c" {
		t.Errorf("Task(1): got %+v, %v, want c", task, err)
	}
}

func TestRemoveCompleted(t *testing.T) {
	t.Run("mixed", func(t *testing.T) {
		s := New()
		s.Add("a")
		s.Add("b")
		s.Add("c")
		_ = s.Complete(0)
		_ = s.Complete(2)

		if !s.RemoveCompleted() {
			t.Fatal("RemoveCompleted: got false, want true")
		}
		want := []Task{{Content: "b"}}
		if got := collect(s); !equalTasks(got, want) {
			t.Errorf("Tasks: got %+v, want %+v", got, want)
		}
	})

	t.Run("adjacent completed", func(t *testing.T) {
		s := New()
		for _, c := range []string{"a", "b", "c", "d", "e"} {
			s.Add(c)
		}
		_ = s.Complete(1)
		_ = s.Complete(2)
		_ = s.Complete(4)

		if !s.RemoveCompleted() {
			t.Fatal("RemoveCompleted: got false, want true")
		}
		want := []Task{{Content: "a"}, {Content: "d"}}
		if got := collect(s); !equalTasks(got, want) {
			t.Errorf("Tasks: got %+v, want %+v", got, want)
		}
	})

	t.Run("nothing completed", func(t *testing.T) {
		s := New()
		s.Add("a")
		s.Add("b")
		if s.RemoveCompleted() {
			t.Error("RemoveCompleted: got true, want false")
		}
		if s.Len() != 2 {
			t.Errorf("Len: got %d, want 2", s.Len())
		}
	})

	t.Run("empty store", func(t *testing.T) {
		if New().RemoveCompleted() {
			t.Error("RemoveCompleted on empty store: got true, want false")
		}
	})
}

func TestTasksIsRestartable(t *testing.T) {
	s := New()
	s.Add("a")
	s.Add("b")

	first := collect(s)
	second := collect(s)
	if !equalTasks(first, second) {
		t.Errorf("second pass differs: %+v vs %+v", first, second)
	}

	// Mutating a yielded copy must not touch the store.
	for _, task := range s.Tasks() {
		task.Completed = true
		_ = task
	}
	if s.NumCompleted() != 0 {
		t.Errorf("NumCompleted after mutating copies: got %d, want 0", s.NumCompleted())
	}

	// Early break stops iteration.
	n := 0
	for range s.Tasks() {
		n++
		break
	}
	if n != 1 {
		t.Errorf("iterations after break: got %d, want 1", n)
	}
}

func TestLoadAndSave(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "chores")

	original := NewNamed("chores")
	original.Add("buy milk")
	original.Add("walk dog")
	if err := original.Complete(0); err != nil {
		t.Fatal(err)
	}

	if err := original.WriteFile(path); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if want := "0,true,buy milk\n1,false,walk dog\n"; string(data) != want {
		t.Errorf("file contents: got %q, want %q", data, want)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Name() != "chores" {
		t.Errorf("Name: got %q, want chores", loaded.Name())
	}
	want := []Task{{Content: "buy milk", Completed: true}, {Content: "walk dog"}}
	if got := collect(loaded); !equalTasks(got, want) {
		t.Errorf("Tasks: got %+v, want %+v", got, want)
	}
}

func TestWriteFileOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "g")
	if err := os.WriteFile(path, []byte("0,false,one\n1,false,two\n2,false,three\n"), 0644); err != nil {
		t.Fatal(err)
	}

	s := New()
	s.Add("only")
	if err := s.WriteFile(path); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "0,false,only\n" {
		t.Errorf("got %q", data)
	}
}

func TestLoadIgnoresPositionPrefix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "g")
	content := "7,false,first\n0,true,second\n7,false,third\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []Task{{Content: "first"}, {Content: "second", Completed: true}, {Content: "third"}}
	if got := collect(s); !equalTasks(got, want) {
		t.Errorf("Tasks: got %+v, want %+v", got, want)
	}
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}

func TestLoadParseError(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantLine int
	}{
		{"too few fields", "0,false,ok\n1,false\n", 2},
		{"bad position", "x,false,a\n", 1},
		{"negative position", "-1,false,a\n", 1},
		{"signed position", "+1,false,a\n", 1},
		{"bad flag", "0,yes,a\n", 1},
		{"capitalized flag", "0,True,a\n", 1},
		{"blank line", "0,false,a\n\n1,false,b\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "g")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			s, err := Load(path)
			if s != nil {
				t.Errorf("expected no store, got %d tasks", s.Len())
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("got %v, want *ParseError", err)
			}
			if !errors.Is(err, ErrParse) {
				t.Error("error does not match ErrParse")
			}
			if pe.Line != tt.wantLine {
				t.Errorf("Line: got %d, want %d", pe.Line, tt.wantLine)
			}
			if pe.Path != path {
				t.Errorf("Path: got %q, want %q", pe.Path, path)
			}
			if !strings.HasPrefix(err.Error(), path+":") {
				t.Errorf("message %q lacks path prefix", err.Error())
			}
		})
	}
}

func TestLoadWithoutTrailingNewline(t *testing.T) {
	s, err := Decode(strings.NewReader("0,false,a\n1,true,b"), "g")
	if err != nil {
		t.Fatal(err)
	}
	want := []Task{{Content: "a"}, {Content: "b", Completed: true}}
	if got := collect(s); !equalTasks(got, want) {
		t.Errorf("Tasks: got %+v, want %+v", got, want)
	}
}

func TestLoadCRLF(t *testing.T) {
	s, err := Decode(strings.NewReader("0,false,a\r\n1,true,b\r\n"), "g")
	if err != nil {
		t.Fatal(err)
	}
	want := []Task{{Content: "a"}, {Content: "b", Completed: true}}
	if got := collect(s); !equalTasks(got, want) {
		t.Errorf("Tasks: got %+v, want %+v", got, want)
	}
}

func TestWriteFileError(t *testing.T) {
	dir := t.TempDir()
	// A directory cannot be opened for writing.
	err := New().WriteFile(dir)
	var we *WriteError
	if !errors.As(err, &we) {
		t.Fatalf("got %v, want *WriteError", err)
	}
	if !errors.Is(err, ErrWrite) {
		t.Error("error does not match ErrWrite")
	}
	if we.Path != dir {
		t.Errorf("Path: got %q, want %q", we.Path, dir)
	}
}

// Scenario: complete the first of two tasks, then round trip.
func TestScenarioCompleteRoundTrip(t *testing.T) {
	s := New()
	s.Add("buy milk")
	s.Add("walk dog")
	if err := s.Complete(0); err != nil {
		t.Fatal(err)
	}

	want := []Task{{Content: "buy milk", Completed: true}, {Content: "walk dog"}}
	if got := collect(s); !equalTasks(got, want) {
		t.Fatalf("Tasks: got %+v, want %+v", got, want)
	}

	path := filepath.Join(t.TempDir(), DefaultGroup)
	if err := s.WriteFile(path); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got := collect(loaded); !equalTasks(got, want) {
		t.Errorf("after reload: got %+v, want %+v", got, want)
	}
}

// Scenario: remove the completed tasks around an incomplete one.
func TestScenarioRemoveCompleted(t *testing.T) {
	s, err := Decode(strings.NewReader("0,true,a\n1,false,b\n2,true,c\n"), "g")
	if err != nil {
		t.Fatal(err)
	}
	if !s.RemoveCompleted() {
		t.Fatal("RemoveCompleted: got false, want true")
	}
	want := []Task{{Content: "b"}}
	if got := collect(s); !equalTasks(got, want) {
		t.Errorf("Tasks: got %+v, want %+v", got, want)
	}
}
