package session

import (
	"bytes"
	"context"
	"encoding/xml"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/greenbone/gvmd-sub000/command"
	"github.com/greenbone/gvmd-sub000/dispatch"
	"github.com/greenbone/gvmd-sub000/gmp"
	"github.com/greenbone/gvmd-sub000/gmperr"
	"github.com/greenbone/gvmd-sub000/machine"
	"github.com/greenbone/gvmd-sub000/response"
	"github.com/greenbone/gvmd-sub000/wizard"
	"github.com/greenbone/gvmd-sub000/xmlutil"
)

// Session is the per-connection protocol engine. Create one with New
// per accepted connection and drive it with Run; it is not safe for
// concurrent use.
type Session struct {
	core dispatch.Core
	disp *dispatch.Dispatcher
	sink io.Writer
	enc  *response.Encoder
	log  *logrus.Entry

	state machine.State
	skip  *machine.Skip
	ctx   machine.Context

	authenticated bool
	disabled      map[string]struct{}

	// pending is the response queued for a gated, disabled or bogus
	// command whose subtree is still being skipped; it is emitted once
	// the subtree closes so the client sees exactly one envelope.
	pending *gmperr.Error

	runCtx context.Context
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session's log entry.
func WithLogger(log *logrus.Entry) Option {
	return func(s *Session) { s.log = log }
}

// WithDisabledCommands marks command names as administratively
// disabled: they answer "service unavailable" and never reach the
// management core.
func WithDisabledCommands(names ...string) Option {
	return func(s *Session) {
		for _, name := range names {
			s.disabled[gmp.Normalize(name)] = struct{}{}
		}
	}
}

// New returns a Session dispatching to core and writing responses to
// sink.
func New(core dispatch.Core, sink io.Writer, opts ...Option) *Session {
	s := &Session{
		core:     core,
		sink:     sink,
		enc:      response.NewEncoder(sink),
		state:    machine.Top,
		disabled: map[string]struct{}{},
		log:      logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.disp = &dispatch.Dispatcher{Core: core, Log: s.log}
	s.disp.RunWizard = s.runWizard
	return s
}

// Authenticated reports whether the session has passed the
// authentication gate.
func (s *Session) Authenticated() bool { return s.authenticated }

// Run drives the session from r until EOF or a fatal error. Input may
// arrive in chunks of any size; the emitted responses are identical
// regardless of how the bytes are split.
//
// A nil return means the stream ended cleanly at a command boundary.
// Any error return means the session cannot resynchronize and the
// connection should be torn down without further responses.
func (s *Session) Run(ctx context.Context, r io.Reader) error {
	return s.run(ctx, xml.NewDecoder(r))
}

func (s *Session) run(ctx context.Context, dec *xml.Decoder) error {
	s.runCtx = ctx
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		tok, err := dec.Token()
		if err == io.EOF {
			if s.skip != nil || (s.state != machine.Top && s.state != machine.Authentic) {
				return errors.Wrap(io.ErrUnexpectedEOF, "stream ended mid-command")
			}
			return nil
		}
		if err != nil {
			// tokenizer-level malformation: there is no reliable way
			// back to a command boundary
			return errors.Wrap(err, "malformed command stream")
		}
		switch tok := tok.(type) {
		case xml.StartElement:
			err = s.onStart(tok)
		case xml.CharData:
			s.onText(tok)
		case xml.EndElement:
			err = s.onEnd()
		default:
			// comments, directives and processing instructions carry
			// no protocol meaning
		}
		if err != nil {
			return err
		}
	}
}

func (s *Session) onStart(se xml.StartElement) error {
	if s.skip != nil {
		s.skip.Start()
		return nil
	}
	name := gmp.Normalize(se.Name.Local)

	rule, known := machine.Lookup(s.state, name)
	if known && s.atRest() {
		if _, off := s.disabled[name]; off {
			s.pending = gmperr.CommandDisabled(gmperr.WithCommand(name))
			s.skip = machine.Open(s.state)
			return nil
		}
	}
	if known {
		if rule.Enter != nil {
			rule.Enter(&s.ctx, xmlutil.Attrs(se))
		}
		s.state = rule.Next
		return nil
	}

	// unrecognized: inside a command this is a future-protocol element
	// and is skipped silently; at a resting state the client is owed a
	// response for the command it attempted
	switch s.state {
	case machine.Top:
		s.pending = gmperr.AuthRequired(gmperr.WithCommand(name))
	case machine.Authentic:
		if _, off := s.disabled[name]; off {
			s.pending = gmperr.CommandDisabled(gmperr.WithCommand(name))
		} else {
			s.pending = gmperr.BogusCommand(gmperr.WithCommand(name))
		}
	}
	s.skip = machine.Open(s.state)
	return nil
}

func (s *Session) onText(cd xml.CharData) {
	if s.skip != nil {
		return
	}
	s.ctx.Text(string(cd))
}

func (s *Session) onEnd() error {
	if s.skip != nil {
		if !s.skip.End() {
			return nil
		}
		s.state = s.skip.Parent
		s.skip = nil
		if perr := s.pending; perr != nil {
			s.pending = nil
			return s.enc.Protocol(perr)
		}
		return nil
	}

	er, ok := machine.AtEnd(s.state)
	if !ok {
		// the tokenizer delivers well-nested events, so an end tag at
		// a resting state means a decoder bug, not client input
		return errors.Errorf("unbalanced end tag in state %s", s.state)
	}
	if !er.Complete {
		if er.Leave != nil {
			er.Leave(&s.ctx)
		}
		s.state = er.Parent
		return nil
	}
	return s.complete()
}

// complete dispatches the finished command and returns the session to
// its resting state. The builder is reset on every path.
func (s *Session) complete() error {
	b := s.ctx.Builder
	kind := b.Kind()

	out, err := s.disp.Dispatch(b, s.enc)
	s.ctx.Reset()

	if kind == gmp.CmdAuthenticate {
		// success opens the gate; failure closes it and the reset
		// above has already cleared the entered credentials
		s.authenticated = out.Success()
	}
	if s.authenticated {
		s.state = machine.Authentic
	} else {
		s.state = machine.Top
	}
	if err != nil {
		return errors.Wrapf(err, "responding to %s", kind)
	}
	s.log.WithFields(logrus.Fields{
		"command": kind,
		"outcome": out.Kind.String(),
	}).Debug("command dispatched")
	return nil
}

func (s *Session) atRest() bool {
	return s.state == machine.Top || s.state == machine.Authentic
}

// RunSub executes doc as a nested command sequence, capturing its
// responses instead of writing them to the connection. The outer parse
// state, skip region, builder, pending response and authentication
// context are saved and restored, so the caller's in-progress command
// is unaffected.
func (s *Session) RunSub(ctx context.Context, doc string) ([]byte, error) {
	type saved struct {
		state         machine.State
		skip          *machine.Skip
		builder       command.Builder
		pending       *gmperr.Error
		enc           *response.Encoder
		authenticated bool
	}
	keep := saved{
		state:         s.state,
		skip:          s.skip,
		builder:       s.ctx.Builder,
		pending:       s.pending,
		enc:           s.enc,
		authenticated: s.authenticated,
	}

	var capture bytes.Buffer
	s.enc = response.NewEncoder(&capture)
	s.skip, s.pending = nil, nil
	s.ctx = machine.Context{}
	if s.authenticated {
		s.state = machine.Authentic
	} else {
		s.state = machine.Top
	}

	err := s.run(ctx, xml.NewDecoder(strings.NewReader(doc)))

	s.state = keep.state
	s.skip = keep.skip
	s.ctx = machine.Context{Builder: keep.builder}
	s.pending = keep.pending
	s.enc = keep.enc
	s.authenticated = keep.authenticated

	return capture.Bytes(), err
}

func (s *Session) runWizard(b *command.RunWizard) dispatch.Outcome {
	ctx := s.runCtx
	if ctx == nil {
		ctx = context.Background()
	}
	// the builder is reset by the dispatcher after this returns; the
	// replayed steps must not observe it mid-flight
	req := &command.RunWizard{Name: b.Name, Params: b.Params}
	return wizard.Run(req, func(doc string) ([]byte, error) {
		return s.RunSub(ctx, doc)
	})
}
