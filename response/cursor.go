package response

import "io"

// Cursor is a finite, one-shot, forward-only sequence of result rows
// produced by the management core for get_* commands. Next returns
// io.EOF after the last row. A cursor must be fully drained or Closed
// before its session proceeds to the next command; Close is imposed on
// every path, including abandoned drains.
type Cursor interface {
	// Next returns the next row, an XML-marshallable value.
	Next() (row any, err error)
	Close() error
}

// SliceCursor is a Cursor over an in-memory row slice, used by tests
// and by cores that materialize small result sets anyway.
type SliceCursor struct {
	Rows   []any
	pos    int
	closed bool
}

func (c *SliceCursor) Next() (any, error) {
	if c.closed || c.pos >= len(c.Rows) {
		return nil, io.EOF
	}
	row := c.Rows[c.pos]
	c.pos++
	return row, nil
}

func (c *SliceCursor) Close() error {
	c.closed = true
	return nil
}

// Closed reports whether Close was called, for tests asserting cursor
// release on aborted drains.
func (c *SliceCursor) Closed() bool { return c.closed }
