package txf

import "github.com/beetlebugorg/txf/internal/parser"

// DefaultEncoding is the text encoding assumed for TXF files. Files produced
// by SXF tooling are usually written in the Cyrillic Windows code page.
const DefaultEncoding = "windows-1251"

// DefaultMaxLineSize is the longest line accepted by default (1 MiB).
const DefaultMaxLineSize = parser.DefaultMaxLineSize

// ParseOptions configures parsing behavior
type ParseOptions struct {
	// Encoding is a WHATWG encoding label such as "windows-1251", "utf-8",
	// "koi8-r" or "ibm866". Empty selects DefaultEncoding.
	Encoding string

	// MaxLineSize is the longest accepted line in bytes after decoding.
	// Values <= 0 select DefaultMaxLineSize.
	MaxLineSize int

	// RejectTrailingContent: if true, non-blank lines after .END fail the parse.
	// Default: false (anything after .END is ignored)
	RejectTrailingContent bool
}

// DefaultParseOptions returns parse options with defaults
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		Encoding:    DefaultEncoding,
		MaxLineSize: DefaultMaxLineSize,
	}
}
