// Package store holds the pieces shared by the task table backends.
package store

import "errors"

// Table is the name of the remote table every backend reads and writes.
const Table = "tasks"

// ErrNotFound is returned when an update or delete matched no row.
var ErrNotFound = errors.New("task not found")
