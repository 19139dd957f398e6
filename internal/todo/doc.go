// Package todo loads, updates, and writes task group files.
//
// A group file holds one task per line:
//
//	0,false,buy milk
//	1,true,walk dog, then feed the cat
//
// The first field is the task's position at write time. It is advisory
// only: on load, tasks are placed purely by line order and renumbered.
// The second field is the literal text true or false. Everything after the
// second comma is the task content, so content may contain commas.
//
// # Escaping
//
// Content is escaped so that any string survives a round trip:
//
//   - backslash is written as \\
//   - newline is written as \n
//   - carriage return is written as \r
//
// Any other backslash sequence is read back verbatim.
//
// # Numbering
//
// Positions are 0-based inside the package. The number shown to a user is
// position + 1 and is derived fresh on every listing. Removing a task
// shifts the numbers of every later task.
//
// # Limitations
//
// Store performs no locking. Two processes writing the same group file can
// race and lose updates. WriteFile truncates and rewrites in place, so an
// I/O failure part way through can leave a truncated file.
package todo
