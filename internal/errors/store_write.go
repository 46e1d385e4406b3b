package errors

import "errors"

// StoreWriteError signals that a datastore write failed. Unlike read
// errors, which the store degrades to empty results, write failures are
// surfaced so a seeding batch can record the item and move on.
type StoreWriteError struct {
	Op  string
	Err error
}

func (e *StoreWriteError) Error() string {
	if e.Err == nil {
		return "store write failed: " + e.Op
	}
	return "store write failed: " + e.Op + ": " + e.Err.Error()
}

func (e *StoreWriteError) Unwrap() error {
	return e.Err
}

// NewStoreWriteError wraps err as a StoreWriteError for the given operation.
func NewStoreWriteError(op string, err error) *StoreWriteError {
	return &StoreWriteError{Op: op, Err: err}
}

// IsStoreWriteError reports whether err is a StoreWriteError (even when
// wrapped).
func IsStoreWriteError(err error) bool {
	var serr *StoreWriteError
	return errors.As(err, &serr)
}
