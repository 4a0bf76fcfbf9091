package db

import (
	"errors"
	"fmt"
)

// ErrTitleExists is returned by SaveIfAbsent when rows already exist for the
// title (compared case-insensitively).
var ErrTitleExists = errors.New("title already exists")

// StorageError wraps a persistence failure with the operation that caused it.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func storageErr(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
