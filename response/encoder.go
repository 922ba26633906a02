package response

import (
	"bytes"
	"encoding/xml"
	"io"

	"github.com/pkg/errors"

	"github.com/greenbone/gvmd-sub000/gmperr"
)

// Encoder writes response envelopes to an output sink. The sink is
// typically the connection; re-entrant sub-command runs point a fresh
// Encoder at a private capture buffer instead.
//
// Writes to the sink may block under backpressure. The Encoder keeps
// no buffered state of its own between envelopes, so a blocked write
// never affects parser state.
type Encoder struct {
	w io.Writer
}

// NewEncoder returns an Encoder writing envelopes to w.
func NewEncoder(w io.Writer) *Encoder { return &Encoder{w: w} }

// Envelope writes an empty response envelope:
// <COMMAND_response status="..." status_text="..."/>
func (e *Encoder) Envelope(command, status, text string) error {
	return e.emit(command, status, text, "", nil, nil)
}

// Created writes an empty envelope carrying the new resource id, as
// answered by create_* commands.
func (e *Encoder) Created(command, status, text, id string) error {
	return e.emit(command, status, text, id, nil, nil)
}

// Body writes an envelope wrapping one XML-marshallable value.
func (e *Encoder) Body(command, status, text string, body any) error {
	return e.emit(command, status, text, "", func(xe *xml.Encoder) error {
		return xe.Encode(body)
	}, nil)
}

// Raw writes an envelope wrapping a pre-rendered XML fragment, used
// for wizard playback where the body is a sequence of captured
// sub-command responses.
func (e *Encoder) Raw(command, status, text string, fragment []byte) error {
	return e.emit(command, status, text, "", nil, fragment)
}

// Stream writes an envelope whose body is drained from cur one row at
// a time, each row marshalled and written immediately. The cursor is
// closed on every path. A sink write failure aborts the drain and is
// returned as the single error for the exchange.
func (e *Encoder) Stream(command, status, text string, cur Cursor) (err error) {
	defer func() {
		if cerr := cur.Close(); err == nil && cerr != nil {
			err = errors.Wrap(cerr, "releasing result cursor")
		}
	}()

	if err = e.open(command, status, text, ""); err != nil {
		return err
	}
	xe := xml.NewEncoder(e.w)
	for {
		row, rerr := cur.Next()
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return errors.Wrap(rerr, "reading result cursor")
		}
		if err = xe.Encode(row); err != nil {
			return err
		}
	}
	return e.closeTag(command)
}

// Protocol writes the envelope for a recoverable protocol error.
func (e *Encoder) Protocol(perr *gmperr.Error) error {
	command := perr.Command
	if command == "" {
		command = "gmp"
	}
	return e.Envelope(command, perr.Status, perr.StatusText)
}

func (e *Encoder) emit(command, status, text, id string, body func(*xml.Encoder) error, raw []byte) error {
	if body == nil && raw == nil {
		return e.selfClose(command, status, text, id)
	}
	if err := e.open(command, status, text, id); err != nil {
		return err
	}
	if body != nil {
		xe := xml.NewEncoder(e.w)
		if err := body(xe); err != nil {
			return err
		}
	}
	if len(raw) > 0 {
		if _, err := e.w.Write(raw); err != nil {
			return err
		}
	}
	return e.closeTag(command)
}

func (e *Encoder) open(command, status, text, id string) error {
	_, err := e.w.Write(startTag(command, status, text, id, false))
	return err
}

func (e *Encoder) selfClose(command, status, text, id string) error {
	_, err := e.w.Write(startTag(command, status, text, id, true))
	return err
}

func (e *Encoder) closeTag(command string) error {
	var b bytes.Buffer
	b.WriteString("</")
	b.WriteString(command)
	b.WriteString("_response>")
	_, err := e.w.Write(b.Bytes())
	return err
}

func startTag(command, status, text, id string, selfClose bool) []byte {
	var b bytes.Buffer
	b.WriteByte('<')
	b.WriteString(command)
	b.WriteString(`_response status="`)
	escapeAttr(&b, status)
	b.WriteString(`" status_text="`)
	escapeAttr(&b, text)
	b.WriteByte('"')
	if id != "" {
		b.WriteString(` id="`)
		escapeAttr(&b, id)
		b.WriteByte('"')
	}
	if selfClose {
		b.WriteByte('/')
	}
	b.WriteByte('>')
	return b.Bytes()
}

// escapeAttr escapes v for use in a double-quoted attribute value.
// Status texts embed client-supplied identifiers (e.g. "Failed to
// find target '...'"), so escaping is not optional.
func escapeAttr(b *bytes.Buffer, v string) {
	// xml.EscapeText covers quotes as well
	_ = xml.EscapeText(b, []byte(v))
}
