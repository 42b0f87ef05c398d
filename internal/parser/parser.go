package parser

import (
	"io"
)

// Parser parses TXF text (the SXF/SIT exchange format) into a Document.
//
// A TXF file is a sequence of lines: a header naming the format and version,
// an optional passport block, a .DAT line declaring how many objects follow,
// the objects themselves and a closing .END line. Every object carries its
// fields, a coordinate block and either a semantics block or a title line.
// Declared counts are integrity checks: any mismatch fails the parse.
type Parser interface {
	// Parse reads TXF text from r and returns the parsed document.
	// r must yield decoded text; selecting a character encoding is the
	// caller's job. Returns an error on the first structural or count
	// violation; no partial document is returned.
	Parse(r io.Reader) (*Document, error)

	// ParseWithOptions parses with custom options
	ParseWithOptions(r io.Reader, opts ParseOptions) (*Document, error)
}

// DefaultMaxLineSize is the longest line accepted by default (1 MiB).
const DefaultMaxLineSize = 1 << 20

// ParseOptions configures parsing behavior
type ParseOptions struct {
	// MaxLineSize is the longest accepted line in bytes.
	// Default: DefaultMaxLineSize. Values <= 0 select the default.
	MaxLineSize int

	// RejectTrailingContent: if true, non-blank lines after .END fail the parse.
	// Default: false (anything after .END is ignored)
	RejectTrailingContent bool
}

// DefaultParseOptions returns parse options with defaults
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		MaxLineSize:           DefaultMaxLineSize,
		RejectTrailingContent: false,
	}
}

// defaultParser implements the Parser interface
type defaultParser struct {
}

// NewParser creates a new TXF parser
func NewParser() Parser {
	return &defaultParser{}
}

// Parse reads TXF text and returns the parsed document
func (p *defaultParser) Parse(r io.Reader) (*Document, error) {
	return p.ParseWithOptions(r, DefaultParseOptions())
}

// ParseWithOptions parses with custom options
func (p *defaultParser) ParseWithOptions(r io.Reader, opts ParseOptions) (*Document, error) {
	if opts.MaxLineSize <= 0 {
		opts.MaxLineSize = DefaultMaxLineSize
	}
	return parseDocument(newCursor(r, opts.MaxLineSize), opts)
}
