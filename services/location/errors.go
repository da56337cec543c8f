package location

import (
	"errors"
	"fmt"
)

// ErrNoData is returned by the store when no location has been recorded yet.
// It describes a valid state, not a failure.
var ErrNoData = errors.New("no location data")

// ErrCorruptRecord marks a stored record that cannot be decoded.
// Reading it again gives the same result.
var ErrCorruptRecord = errors.New("corrupt location record")

// ValidationError reports a malformed device report
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// StorageError wraps a failure of the backing store
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError wraps err as a StorageError for operation op.
// A nil err yields nil.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

// IsValidation reports whether err is, or wraps, a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsStorage reports whether err is, or wraps, a StorageError
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// IsRetryable reports whether err is a StorageError that may succeed on a later attempt
func IsRetryable(err error) bool {
	return IsStorage(err) && !errors.Is(err, ErrCorruptRecord)
}
