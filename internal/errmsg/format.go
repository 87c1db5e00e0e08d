// Package errmsg provides consistent error formatting for user-facing messages.
package errmsg

import "fmt"

// Op represents an operation that can fail.
type Op string

const (
	// Source operations
	OpSourceConnect Op = "connect to media source"
	OpSourceList    Op = "list media sources"

	OpPrepare    Op = "prepare playback"
	OpInitialize Op = "initialize application"
)

// Format creates a user-friendly error message.
func Format(op Op, err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// FormatWith creates an error message naming what the operation acted on.
func FormatWith(op Op, context string, err error) string {
	if err == nil {
		return ""
	}
	if context == "" {
		return Format(op, err)
	}
	return fmt.Sprintf("Failed to %s '%s': %v", op, context, err)
}

// Error is an error whose message is the user-facing text of Op.
type Error struct {
	Op  Op
	Err error
}

// Wrap returns err tagged with op, or nil when err is nil.
func Wrap(op Op, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}

func (e *Error) Error() string { return Format(e.Op, e.Err) }
func (e *Error) Unwrap() error { return e.Err }
