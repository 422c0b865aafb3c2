package models

import "fmt"

// ValidationError represents an error due to invalid or malformed input.
// Supports errors.As.
type ValidationError struct {
	msg string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.msg
}

// NewValidationError creates a new ValidationError with the given message.
func NewValidationError(msg string) error {
	return &ValidationError{msg: msg}
}

// TransformationError wraps failures converting stored rows into models,
// for example an unparseable uuid column.
type TransformationError struct {
	msg string
}

// Error implements the error interface.
func (e *TransformationError) Error() string {
	return e.msg
}

// NewTransformationError creates a new TransformationError.
func NewTransformationError(msg string) error {
	return &TransformationError{msg: msg}
}

// DatabaseError wraps errors related to database or SQL interactions.
// Will only be provided as a response from internal stores.
// Supports errors.As and errors.Unwrap.
type DatabaseError struct {
	err error
}

// Error implements the error interface.
func (e *DatabaseError) Error() string {
	return fmt.Sprintf("database error: %v", e.err)
}

func (e *DatabaseError) Unwrap() error {
	return e.err
}

// NewDatabaseError creates a new DatabaseError.
func NewDatabaseError(err error) error {
	return &DatabaseError{err: err}
}

// SessionParseError reports a stored session user record that cannot be
// decoded into a Profile. The guard recovers from it locally by clearing
// the session; it is never returned to route handlers.
type SessionParseError struct {
	Payload string // raw stored value, kept for debug logging
	err     error
}

func NewSessionParseError(payload string, err error) error {
	return &SessionParseError{Payload: payload, err: err}
}

func (e *SessionParseError) Error() string {
	return fmt.Sprintf("session user record is malformed: %v", e.err)
}

func (e *SessionParseError) Unwrap() error {
	return e.err
}

// ErrSessionParse matches any SessionParseError with errors.Is.
var ErrSessionParse = &SessionParseError{}

func (e *SessionParseError) Is(target error) bool {
	_, ok := target.(*SessionParseError)
	return ok
}
