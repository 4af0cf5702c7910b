package media

import (
	"errors"
	"fmt"
)

// ErrorCode enumerates the failure modes of the asset manager.
type ErrorCode string

const (
	CodeUnsupportedType ErrorCode = "unsupported_type"
	CodeFileTooLarge    ErrorCode = "file_too_large"
	CodeInvalidRequest  ErrorCode = "invalid_request"
	CodeStorageWrite    ErrorCode = "storage_write_failed"
	CodeStorageDelete   ErrorCode = "storage_delete_failed"
	CodeStorageRead     ErrorCode = "storage_read_failed"
	CodeMetadataInsert  ErrorCode = "metadata_insert_failed"
	CodeMetadataDelete  ErrorCode = "metadata_delete_failed"
	CodeMetadataQuery   ErrorCode = "metadata_query_failed"
	CodeNotFound        ErrorCode = "not_found"
)

var (
	// ErrObjectExists is returned by Storage.Put when the key is taken and overwrite is off.
	ErrObjectExists = errors.New("object already exists")
	// ErrObjectNotFound is returned by Storage when the key does not exist.
	ErrObjectNotFound = errors.New("object not found")
)

// Error is a classified asset manager failure.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation reports whether the error was raised before any remote call.
func (e *Error) Validation() bool {
	switch e.Code {
	case CodeUnsupportedType, CodeFileTooLarge, CodeInvalidRequest:
		return true
	}
	return false
}

func newError(code ErrorCode, err error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Err: err}
}

// CodeOf returns the code of a classified error, or "" for anything else.
func CodeOf(err error) ErrorCode {
	var mErr *Error
	if errors.As(err, &mErr) {
		return mErr.Code
	}
	return ""
}

// IsCode reports whether err is an *Error with the given code.
func IsCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}
