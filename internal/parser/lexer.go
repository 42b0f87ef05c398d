package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// scanner walks a single line of TXF text.
//
// Every primitive either consumes what it recognizes and reports success, or
// leaves the position untouched and reports failure, so record recognizers can
// try alternatives on the same line without copying it.
type scanner struct {
	s   string
	pos int
}

func newScanner(s string) *scanner {
	return &scanner{s: s}
}

// skipSpace consumes a run of inline whitespace and reports whether any was present.
func (sc *scanner) skipSpace() bool {
	start := sc.pos
	for sc.pos < len(sc.s) && isInlineSpace(sc.s[sc.pos]) {
		sc.pos++
	}
	return sc.pos > start
}

// literal consumes lit if the remaining text starts with it.
func (sc *scanner) literal(lit string) bool {
	if strings.HasPrefix(sc.s[sc.pos:], lit) {
		sc.pos += len(lit)
		return true
	}
	return false
}

// integer consumes one or more decimal digits.
func (sc *scanner) integer() (string, bool) {
	return sc.span(isDigit)
}

// decimal consumes one or more characters from [0-9.-]. The token is not
// checked for numeric well-formedness.
func (sc *scanner) decimal() (string, bool) {
	return sc.span(func(b byte) bool {
		return isDigit(b) || b == '.' || b == '-'
	})
}

// ident consumes one or more letters.
func (sc *scanner) ident() (string, bool) {
	start := sc.pos
	for sc.pos < len(sc.s) {
		r, size := utf8.DecodeRuneInString(sc.s[sc.pos:])
		if !unicode.IsLetter(r) {
			break
		}
		sc.pos += size
	}
	if sc.pos == start {
		return "", false
	}
	return sc.s[start:sc.pos], true
}

// token consumes a run of non-whitespace characters.
func (sc *scanner) token() (string, bool) {
	return sc.span(func(b byte) bool { return !isInlineSpace(b) })
}

// rest consumes and returns everything left on the line, whitespace included.
func (sc *scanner) rest() string {
	r := sc.s[sc.pos:]
	sc.pos = len(sc.s)
	return r
}

// atEnd reports whether only whitespace remains.
func (sc *scanner) atEnd() bool {
	for i := sc.pos; i < len(sc.s); i++ {
		if !isInlineSpace(sc.s[i]) {
			return false
		}
	}
	return true
}

func (sc *scanner) span(accept func(byte) bool) (string, bool) {
	start := sc.pos
	for sc.pos < len(sc.s) && accept(sc.s[sc.pos]) {
		sc.pos++
	}
	if sc.pos == start {
		return "", false
	}
	return sc.s[start:sc.pos], true
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isInlineSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\v' || b == '\f'
}

// trimValue strips trailing whitespace from a captured value.
func trimValue(s string) string {
	return strings.TrimRightFunc(s, unicode.IsSpace)
}
