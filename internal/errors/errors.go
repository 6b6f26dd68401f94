package errors

import (
	stderrors "errors"
	"fmt"
)

// Code represents a typed error code.
type Code string

// Planner error codes. The calculator performs no I/O, so InvalidInput is
// the only code it produces; the other codes belong to the surrounding
// shell (cluster inspection, serving).
const (
	ErrInvalidInput       Code = "INVALID_INPUT"
	ErrClusterUnreachable Code = "CLUSTER_UNREACHABLE"
	ErrMetricsUnavailable Code = "METRICS_UNAVAILABLE"
)

// InputError reports an invalid field in a SizingInput or policy value.
// A zero divisor is a configuration error, not a zero-traffic case, so it
// surfaces here instead of producing a partial report.
type InputError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Error implements the error interface.
func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

// Code returns ErrInvalidInput for all InputErrors.
func (e *InputError) Code() Code { return ErrInvalidInput }

// NewInvalidInput creates an InputError for the given field.
func NewInvalidInput(field, reason string) *InputError {
	return &InputError{Field: field, Reason: reason}
}

// IsInvalidInput reports whether err is (or wraps) an InputError.
func IsInvalidInput(err error) bool {
	var ie *InputError
	return stderrors.As(err, &ie)
}

// InvalidField returns the offending field name when err is an InputError.
func InvalidField(err error) (string, bool) {
	var ie *InputError
	if stderrors.As(err, &ie) {
		return ie.Field, true
	}
	return "", false
}

// ShellError attaches a Code to an I/O failure from the shell around the
// calculator.
type ShellError struct {
	ErrCode Code
	Msg     string
	Err     error
}

func (e *ShellError) Error() string {
	return fmt.Sprintf("%s: %v", e.Msg, e.Err)
}

func (e *ShellError) Unwrap() error { return e.Err }

// Code returns the error code.
func (e *ShellError) Code() Code { return e.ErrCode }

// Wrap wraps err with a code and a message.
func Wrap(code Code, msg string, err error) *ShellError {
	return &ShellError{ErrCode: code, Msg: msg, Err: err}
}

// CodeOf extracts the Code from err, or empty when it carries none.
func CodeOf(err error) Code {
	var se *ShellError
	if stderrors.As(err, &se) {
		return se.ErrCode
	}
	var ie *InputError
	if stderrors.As(err, &ie) {
		return ErrInvalidInput
	}
	return ""
}
