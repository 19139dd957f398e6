// Package groups maps task group names to files in a tasks directory.
//
// Every group is one file directly inside the directory and the file name is
// the group name. A group exists exactly when its file exists.
//
// Commands that may create a group (adding a task, creating a group) use
// OpenOrCreate, which treats a missing file as an empty group. Commands that
// act on existing tasks use Open, which reports a missing file as a
// *GroupNotFoundError.
//
// The registry performs no locking; concurrent invocations against the same
// group can overwrite each other's changes.
package groups
