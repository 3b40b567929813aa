package chatlog

import (
	"errors"
	"fmt"
)

// ErrNotInserted is returned by Writer.Save when the store reports zero
// affected rows for an insert.
var ErrNotInserted = errors.New("chat record not inserted")

// StorageError represents an error from the storage backend.
type StorageError struct {
	Backend   string // Storage backend type ("sqlite", "mysql")
	Operation string // Operation that failed ("insert", "delete", "migrate", ...)
	Cause     error  // Underlying error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error [backend=%s, operation=%s]: %v", e.Backend, e.Operation, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageError creates a new StorageError.
func NewStorageError(backend, operation string, cause error) *StorageError {
	return &StorageError{
		Backend:   backend,
		Operation: operation,
		Cause:     cause,
	}
}

// RetentionError represents an error during retention policy enforcement.
type RetentionError struct {
	Table      string // Table being purged
	MaxAgeDays int    // Configured retention period
	Cause      error  // Underlying error
}

// Error implements the error interface.
func (e *RetentionError) Error() string {
	return fmt.Sprintf("retention error [table=%s, max_age_days=%d]: %v", e.Table, e.MaxAgeDays, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *RetentionError) Unwrap() error {
	return e.Cause
}

// NewRetentionError creates a new RetentionError.
func NewRetentionError(table string, maxAgeDays int, cause error) *RetentionError {
	return &RetentionError{
		Table:      table,
		MaxAgeDays: maxAgeDays,
		Cause:      cause,
	}
}
