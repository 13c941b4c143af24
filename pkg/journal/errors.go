package journal

import "fmt"

// StorageError reports a failed backend operation.
type StorageError struct {
	Backend   string // "memory", "sqlite"
	Operation string // "open", "store", "query", "count", "delete"
	Cause     error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	return fmt.Sprintf("journal storage error [backend=%s, operation=%s]: %v", e.Backend, e.Operation, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageError creates a StorageError.
func NewStorageError(backend, operation string, cause error) *StorageError {
	return &StorageError{Backend: backend, Operation: operation, Cause: cause}
}

// RetentionError reports a failed pruning run.
type RetentionError struct {
	RetentionDays int
	Cause         error
}

// Error implements the error interface.
func (e *RetentionError) Error() string {
	return fmt.Sprintf("journal retention error [days=%d]: %v", e.RetentionDays, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *RetentionError) Unwrap() error {
	return e.Cause
}

// NewRetentionError creates a RetentionError.
func NewRetentionError(retentionDays int, cause error) *RetentionError {
	return &RetentionError{RetentionDays: retentionDays, Cause: cause}
}
