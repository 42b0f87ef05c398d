package txf

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// lookupEncoding resolves a WHATWG label. An empty label selects
// DefaultEncoding.
func lookupEncoding(label string) (encoding.Encoding, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		label = DefaultEncoding
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("unknown text encoding %q: %w", label, err)
	}
	return enc, nil
}

// decodeReader wraps r so it yields UTF-8 text. UTF-8 input is passed
// through the BOM-aware decoder, which also replaces invalid bytes.
func decodeReader(r io.Reader, enc encoding.Encoding) io.Reader {
	if enc == unicode.UTF8 {
		enc = unicode.UTF8BOM
	}
	return transform.NewReader(r, enc.NewDecoder())
}

// EncodingName returns the canonical name for an encoding label, or an error
// if the label is unknown.
func EncodingName(label string) (string, error) {
	enc, err := lookupEncoding(label)
	if err != nil {
		return "", err
	}
	return htmlindex.Name(enc)
}
