package dispatch

import (
	"github.com/sirupsen/logrus"

	"github.com/greenbone/gvmd-sub000/command"
	"github.com/greenbone/gvmd-sub000/gmp"
	"github.com/greenbone/gvmd-sub000/gmperr"
	"github.com/greenbone/gvmd-sub000/response"
)

// Dispatcher hands completed builders to the Core and writes the
// response envelope for each outcome.
type Dispatcher struct {
	Core Core
	Log  *logrus.Entry

	// RunWizard executes the run_wizard command. It is installed by
	// the session, which owns the re-entrant sub-command machinery the
	// wizard replays commands through.
	RunWizard func(*command.RunWizard) Outcome
}

// Dispatch validates b, invokes the Core and emits exactly one
// response envelope. The builder is reset on every path. The returned
// outcome lets the session act on it (authenticate flips the session's
// gate); the returned error is connection-fatal: it is only non-nil
// when the sink failed or a stream aborted after bytes were written,
// in which case no further envelope is emitted for this exchange.
func (d *Dispatcher) Dispatch(b command.Builder, enc *response.Encoder) (Outcome, error) {
	defer b.Reset()

	kind := b.Kind()
	if perr := validate(b); perr != nil {
		return Invalid(perr.StatusText), enc.Protocol(perr)
	}

	out := d.invoke(b)

	if !out.Success() && out.Teardown != nil {
		if terr := out.Teardown(); terr != nil {
			d.log().WithError(terr).WithField("command", kind).
				Warn("compensating teardown failed")
		}
	}

	return out, d.respond(kind, out, enc)
}

func (d *Dispatcher) invoke(b command.Builder) Outcome {
	switch b := b.(type) {
	case *command.GetVersion:
		return d.Core.Version()
	case *command.Authenticate:
		return d.Core.Authenticate(Credentials{Username: b.Username, Password: b.Password})
	case *command.CreateTarget:
		return d.Core.CreateTarget(b)
	case *command.CreateTask:
		return d.Core.CreateTask(b)
	case *command.CreateAlert:
		return d.Core.CreateAlert(b)
	case *command.CreateTag:
		return d.Core.CreateTag(b)
	case *command.GetTasks:
		return d.Core.GetTasks(b)
	case *command.GetTargets:
		return d.Core.GetTargets(b)
	case *command.GetAlerts:
		return d.Core.GetAlerts(b)
	case *command.DeleteTarget:
		return d.Core.DeleteTarget(b)
	case *command.DeleteTask:
		return d.Core.DeleteTask(b)
	case *command.RunWizard:
		if d.RunWizard == nil {
			return Invalid("No wizard support on this session")
		}
		return d.RunWizard(b)
	default:
		return Invalid("Bogus command kind")
	}
}

func (d *Dispatcher) respond(kind string, out Outcome, enc *response.Encoder) error {
	switch out.Kind {
	case KindOK:
		return enc.Envelope(kind, gmp.StatusOK, gmp.TextOK)
	case KindCreated:
		return enc.Created(kind, gmp.StatusCreated, gmp.TextCreated, out.ID)
	case KindOKWithBody:
		switch {
		case out.Cursor != nil:
			return enc.Stream(kind, gmp.StatusOK, gmp.TextOK, out.Cursor)
		case out.Raw != nil:
			return enc.Raw(kind, gmp.StatusOK, gmp.TextOK, out.Raw)
		default:
			return enc.Body(kind, gmp.StatusOK, gmp.TextOK, out.Body)
		}
	case KindNotFound:
		return enc.Protocol(gmperr.NotFound(kind, out.ResourceKind, out.ResourceID))
	case KindConflict:
		return enc.Protocol(gmperr.Conflict(kind, out.Reason))
	case KindInvalid:
		if kind == gmp.CmdAuthenticate {
			return enc.Protocol(gmperr.AuthFailed())
		}
		return enc.Protocol(gmperr.InvalidValue(kind, out.Reason))
	case KindPermissionDenied:
		return enc.Protocol(gmperr.PermissionDenied(kind))
	case KindFatal:
		d.log().WithError(out.Err).WithField("command", kind).
			Error("management core failure")
		return enc.Protocol(gmperr.Internal(kind))
	default:
		d.log().WithField("command", kind).WithField("kind", out.Kind).
			Error("unmapped command outcome")
		return enc.Protocol(gmperr.Internal(kind))
	}
}

func (d *Dispatcher) log() *logrus.Entry {
	if d.Log != nil {
		return d.Log
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

// validate enforces the structural requirements checked at command
// end. Unresolvable references are the Core's to report; only shape
// problems are caught here.
func validate(b command.Builder) *gmperr.Error {
	switch b := b.(type) {
	case *command.Authenticate:
		if b.Username == "" {
			return gmperr.MissingField(b.Kind(), "username")
		}
	case *command.CreateTarget:
		if b.Name == "" {
			return gmperr.MissingField(b.Kind(), "name")
		}
		if b.Hosts == "" {
			return gmperr.MissingField(b.Kind(), "hosts list")
		}
	case *command.CreateTask:
		if b.Name == "" {
			return gmperr.MissingField(b.Kind(), "name")
		}
		if b.TargetID == "" {
			return gmperr.MissingField(b.Kind(), "target")
		}
	case *command.CreateAlert:
		switch {
		case b.Name == "":
			return gmperr.MissingField(b.Kind(), "name")
		case b.Condition == "":
			return gmperr.MissingField(b.Kind(), "condition")
		case b.Event == "":
			return gmperr.MissingField(b.Kind(), "event")
		case b.Method == "":
			return gmperr.MissingField(b.Kind(), "method")
		}
	case *command.CreateTag:
		if b.Name == "" {
			return gmperr.MissingField(b.Kind(), "name")
		}
	case *command.DeleteTarget:
		if b.ID == "" {
			return gmperr.MissingField(b.Kind(), "target_id attribute")
		}
	case *command.DeleteTask:
		if b.ID == "" {
			return gmperr.MissingField(b.Kind(), "task_id attribute")
		}
	case *command.RunWizard:
		if b.Name == "" {
			return gmperr.MissingField(b.Kind(), "name")
		}
	}
	return nil
}
