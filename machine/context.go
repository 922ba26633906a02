package machine

import "github.com/greenbone/gvmd-sub000/command"

// Context carries the mutable per-command accumulation state shared
// between transition rules: the active command builder and the text
// target the current element's character data is appended to.
type Context struct {
	// Builder is the active command accumulator, nil between commands.
	Builder command.Builder

	text *string
}

// StartText clears p and makes it the append target for subsequent
// text events. Fields are cleared on element open, not on command
// reset, so a builder case reused across commands never shows a stale
// value.
func (c *Context) StartText(p *string) {
	*p = ""
	c.text = p
}

// RetargetText switches the append target without clearing it, used
// when a mixed-content element resumes after a nested child closed.
func (c *Context) RetargetText(p *string) { c.text = p }

// Text appends a character data chunk to the bound target. Character
// data may arrive in several chunks per element; appending (not
// assigning) keeps the accumulated value correct regardless of how
// the tokenizer splits it.
func (c *Context) Text(s string) {
	if c.text != nil {
		*c.text += s
	}
}

// EndText drops the append target.
func (c *Context) EndText() { c.text = nil }

// Reset clears the builder and any text binding. Called after every
// dispatch and on every recoverable protocol error.
func (c *Context) Reset() {
	if c.Builder != nil {
		c.Builder.Reset()
	}
	c.Builder = nil
	c.text = nil
}
