package upstream

import (
	"errors"
	"fmt"
)

// DataError reports a malformed or error response from an upstream data
// source (time tracking API, roster, holiday calendar). It is always fatal
// for a report run.
type DataError struct {
	Source  string
	Message string
	Err     error
}

func NewDataError(source, message string) *DataError {
	return &DataError{Source: source, Message: message}
}

func WrapDataError(source string, err error) *DataError {
	return &DataError{Source: source, Message: err.Error(), Err: err}
}

func (e *DataError) Error() string {
	return fmt.Sprintf("upstream data error from %s: %s", e.Source, e.Message)
}

func (e *DataError) Unwrap() error {
	return e.Err
}

// IsDataError reports whether err or anything it wraps is a DataError.
func IsDataError(err error) bool {
	var dataErr *DataError
	return errors.As(err, &dataErr)
}
