package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an operation references a record that does not
// exist.
var ErrNotFound = errors.New("record not found")

// PersistenceError wraps a store-level failure (driver error, constraint
// violation, bad field map) with the operation and table it occurred on.
type PersistenceError struct {
	Op    string
	Table string
	Err   error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Table, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func persistErr(op, table string, err error) error {
	return &PersistenceError{Op: op, Table: table, Err: err}
}
