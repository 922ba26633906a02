// Package gmperr defines the protocol-visible error type of the command
// engine. Every recoverable engine failure is an *Error carrying the
// status code and status text rendered into the response envelope for
// the failed command.
package gmperr

import (
	"fmt"

	"github.com/greenbone/gvmd-sub000/gmp"
)

// Error is a protocol error. It renders as a COMMAND_response envelope
// with the carried status and status text and no body.
type Error struct {
	// Status is the protocol status code token, e.g. "400".
	Status string
	// StatusText is the fixed text accompanying Status.
	StatusText string
	// Command is the command name the error responds to. It may be
	// empty when the failed element was not a recognized command.
	Command string
}

func (e *Error) Error() string {
	if e.Command != "" {
		return fmt.Sprintf("%s: status %s (%s)", e.Command, e.Status, e.StatusText)
	}
	return fmt.Sprintf("status %s (%s)", e.Status, e.StatusText)
}

// Option is an Error option function.
type Option func(*Error)

// WithCommand sets the command name the error responds to.
func WithCommand(name string) Option { return func(e *Error) { e.Command = name } }

// WithStatusText overrides the fixed status text.
func WithStatusText(text string) Option { return func(e *Error) { e.StatusText = text } }

func build(status, text string, opts []Option) *Error {
	e := &Error{Status: status, StatusText: text}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AuthRequired is the pre-authentication gate error.
func AuthRequired(opts ...Option) *Error {
	return build(gmp.StatusSyntax, gmp.TextAuthRequired, opts)
}

// BogusCommand reports an unrecognized top-level command name.
func BogusCommand(opts ...Option) *Error {
	return build(gmp.StatusSyntax, gmp.TextBogusCommand, opts)
}

// CommandDisabled reports a command present in the session's disabled set.
func CommandDisabled(opts ...Option) *Error {
	return build(gmp.StatusServiceUnavailable, gmp.TextCommandDisabled, opts)
}

// MissingField reports a required field absent at command end.
func MissingField(command, field string, opts ...Option) *Error {
	return build(gmp.StatusSyntax,
		fmt.Sprintf("A %s is required", field),
		append([]Option{WithCommand(command)}, opts...))
}

// InvalidValue reports a malformed or out-of-range field value.
func InvalidValue(command, reason string, opts ...Option) *Error {
	return build(gmp.StatusSyntax, reason,
		append([]Option{WithCommand(command)}, opts...))
}

// NotFound reports an unresolvable referenced resource.
func NotFound(command, kind, id string, opts ...Option) *Error {
	return build(gmp.StatusNotFound,
		fmt.Sprintf("Failed to find %s '%s'", kind, id),
		append([]Option{WithCommand(command)}, opts...))
}

// Conflict reports a semantic conflict, e.g. deleting a resource in use.
func Conflict(command, reason string, opts ...Option) *Error {
	return build(gmp.StatusConflict, reason,
		append([]Option{WithCommand(command)}, opts...))
}

// PermissionDenied is the fixed permission error.
func PermissionDenied(command string, opts ...Option) *Error {
	return build(gmp.StatusPermissionDenied, gmp.TextPermissionDenied,
		append([]Option{WithCommand(command)}, opts...))
}

// Internal is the generic internal-error response.
func Internal(command string, opts ...Option) *Error {
	return build(gmp.StatusInternal, gmp.TextInternal,
		append([]Option{WithCommand(command)}, opts...))
}

// AuthFailed reports a failed authenticate command.
func AuthFailed(opts ...Option) *Error {
	return build(gmp.StatusSyntax, "Authentication failed",
		append([]Option{WithCommand(gmp.CmdAuthenticate)}, opts...))
}

// Is reports whether err is a protocol error, returning it if so.
func Is(err error) (*Error, bool) {
	e, ok := err.(*Error)
	return e, ok
}
