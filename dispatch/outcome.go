package dispatch

import (
	"fmt"

	"github.com/greenbone/gvmd-sub000/response"
)

// OutcomeKind enumerates the result shapes a command can produce.
type OutcomeKind int

const (
	// KindOK is a side effect applied with no new id.
	KindOK OutcomeKind = iota
	// KindCreated is a resource creation; the id is echoed in the response.
	KindCreated
	// KindOKWithBody is a success carrying a payload: a small
	// marshallable body, a pre-rendered fragment, or a result cursor.
	KindOKWithBody
	// KindNotFound means a referenced resource does not exist.
	KindNotFound
	// KindConflict is a semantic conflict with existing state.
	KindConflict
	// KindInvalid is a validation failure with a readable reason.
	KindInvalid
	// KindPermissionDenied is a permission failure, checked before any
	// external side effect.
	KindPermissionDenied
	// KindFatal is an unexpected internal failure.
	KindFatal
)

func (k OutcomeKind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindCreated:
		return "created"
	case KindOKWithBody:
		return "ok-with-body"
	case KindNotFound:
		return "not-found"
	case KindConflict:
		return "conflict"
	case KindInvalid:
		return "invalid"
	case KindPermissionDenied:
		return "permission-denied"
	case KindFatal:
		return "fatal"
	default:
		return fmt.Sprintf("OutcomeKind(%d)", int(k))
	}
}

// Outcome is the result of one command dispatch. Exactly the fields
// implied by Kind are set.
type Outcome struct {
	Kind OutcomeKind

	// ID is the created resource id (KindCreated).
	ID string

	// Body is a small marshallable payload, Raw a pre-rendered
	// fragment and Cursor a streamed result set (KindOKWithBody).
	Body   any
	Raw    []byte
	Cursor response.Cursor

	// ResourceKind and ResourceID name the missing resource (KindNotFound).
	ResourceKind string
	ResourceID   string

	// Reason is the human-readable failure reason (KindConflict, KindInvalid).
	Reason string

	// Err is the internal failure (KindFatal).
	Err error

	// Teardown compensates external allocations made before the
	// failure was detected. The dispatcher calls it on every
	// non-success outcome that carries one.
	Teardown func() error
}

// Success reports whether the outcome is one of the success kinds.
func (o Outcome) Success() bool {
	switch o.Kind {
	case KindOK, KindCreated, KindOKWithBody:
		return true
	}
	return false
}

// WithTeardown attaches a compensating teardown to the outcome.
func (o Outcome) WithTeardown(f func() error) Outcome {
	o.Teardown = f
	return o
}

func OK() Outcome               { return Outcome{Kind: KindOK} }
func Created(id string) Outcome { return Outcome{Kind: KindCreated, ID: id} }

// Rows is a success streaming the given cursor.
func Rows(cur response.Cursor) Outcome { return Outcome{Kind: KindOKWithBody, Cursor: cur} }

// BodyOf is a success carrying one marshallable value.
func BodyOf(v any) Outcome { return Outcome{Kind: KindOKWithBody, Body: v} }

// RawBody is a success carrying a pre-rendered XML fragment.
func RawBody(b []byte) Outcome { return Outcome{Kind: KindOKWithBody, Raw: b} }

func NotFound(kind, id string) Outcome {
	return Outcome{Kind: KindNotFound, ResourceKind: kind, ResourceID: id}
}
func Conflict(reason string) Outcome { return Outcome{Kind: KindConflict, Reason: reason} }
func Invalid(reason string) Outcome  { return Outcome{Kind: KindInvalid, Reason: reason} }
func PermissionDenied() Outcome      { return Outcome{Kind: KindPermissionDenied} }
func Fatal(err error) Outcome        { return Outcome{Kind: KindFatal, Err: err} }
