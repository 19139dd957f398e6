package todo

import (
	"fmt"
	"strconv"
	"strings"
)

const fieldSep = ","

// EncodeLine renders a task as one newline-terminated line. The position is
// written for readability only.
func EncodeLine(position int, t Task) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(position))
	b.WriteString(fieldSep)
	b.WriteString(strconv.FormatBool(t.Completed))
	b.WriteString(fieldSep)
	b.WriteString(escapeContent(t.Content))
	b.WriteByte('\n')
	return b.String()
}

// DecodeLine parses a single line produced by EncodeLine. A trailing line
// terminator is ignored. The position field is validated and discarded.
func DecodeLine(line string) (Task, error) {
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")

	fields := strings.SplitN(line, fieldSep, 3)
	if len(fields) < 3 {
		return Task{}, &ParseError{Err: fmt.Errorf("expected 3 fields, got %d", len(fields))}
	}

	if !isDigits(fields[0]) {
		return Task{}, &ParseError{Err: fmt.Errorf("invalid position %q", fields[0])}
	}
	if _, err := strconv.ParseUint(fields[0], 10, 64); err != nil {
		return Task{}, &ParseError{Err: fmt.Errorf("invalid position %q: %w", fields[0], err)}
	}

	var completed bool
	switch fields[1] {
	case "true":
		completed = true
	case "false":
	default:
		return Task{}, &ParseError{Err: fmt.Errorf("invalid completed flag %q", fields[1])}
	}

	return Task{Content: unescapeContent(fields[2]), Completed: completed}, nil
}

// isDigits rejects signs and whitespace that strconv would otherwise accept
// or report less clearly.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func escapeContent(s string) string {
	if !strings.ContainsAny(s, "\\\n\r") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 4)
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func unescapeContent(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			b.WriteByte(c)
			continue
		}
		switch s[i+1] {
		case '\\':
			b.WriteByte('\\')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		default:
			// Unknown sequence, keep both bytes.
			b.WriteByte(c)
			b.WriteByte(s[i+1])
		}
		i++
	}
	return b.String()
}
