package parser

import (
	"bufio"
	"io"
	"strings"
)

// line is one non-blank input line with its 1-based number. Leading
// indentation and the line terminator are already removed.
type line struct {
	num  int
	text string
}

// cursor yields the non-blank lines of a stream with one line of lookahead.
type cursor struct {
	sc      *bufio.Scanner
	num     int
	peeked  *line
	readErr error
}

func newCursor(r io.Reader, maxLineSize int) *cursor {
	sc := bufio.NewScanner(r)
	initial := 64 * 1024
	if maxLineSize < initial {
		initial = maxLineSize
	}
	sc.Buffer(make([]byte, 0, initial), maxLineSize)
	return &cursor{sc: sc}
}

// peek returns the next non-blank line without consuming it.
func (c *cursor) peek() (line, bool) {
	if c.peeked != nil {
		return *c.peeked, true
	}
	for c.readErr == nil && c.sc.Scan() {
		c.num++
		text := strings.TrimLeft(strings.TrimSuffix(c.sc.Text(), "\r"), " \t\v\f\ufeff")
		if strings.TrimSpace(text) == "" {
			continue
		}
		c.peeked = &line{num: c.num, text: text}
		return *c.peeked, true
	}
	if c.readErr == nil {
		if err := c.sc.Err(); err != nil {
			c.readErr = &ErrRead{Line: c.num + 1, Err: err}
		}
	}
	return line{num: c.num + 1}, false
}

// next consumes and returns the next non-blank line.
func (c *cursor) next() (line, bool) {
	l, ok := c.peek()
	c.peeked = nil
	return l, ok
}

// err returns the first read error, if any.
func (c *cursor) err() error {
	return c.readErr
}
