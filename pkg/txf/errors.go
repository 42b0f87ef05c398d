package txf

import (
	"errors"
	"io/fs"

	"github.com/beetlebugorg/txf/internal/parser"
)

// Error types returned by the parser. Use errors.As to inspect them.
type (
	// ErrSyntax: a line does not have the shape the current section expects.
	ErrSyntax = parser.ErrSyntax
	// ErrCountMismatch: a declared count differs from the records present.
	ErrCountMismatch = parser.ErrCountMismatch
	// ErrMissingField: an object has no usable .KEY field.
	ErrMissingField = parser.ErrMissingField
	// ErrDuplicateSemantic: a semantic code repeats within one object.
	ErrDuplicateSemantic = parser.ErrDuplicateSemantic
	// ErrTrailingContent: content after .END with RejectTrailingContent set.
	ErrTrailingContent = parser.ErrTrailingContent
	// ErrRead: the underlying reader failed or a line was too long.
	ErrRead = parser.ErrRead
)

// Error kinds reported by ErrorKind.
const (
	ErrorKindSyntax            = "syntax"
	ErrorKindCountMismatch     = "count_mismatch"
	ErrorKindMissingField      = "missing_field"
	ErrorKindDuplicateSemantic = "duplicate_semantic"
	ErrorKindIO                = "io"
	ErrorKindUnknown           = "unknown"
)

// ErrorKind classifies an error returned by this package. It returns "" for a
// nil error. Trailing content counts as a syntax error.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}

	var (
		syntax    *ErrSyntax
		trailing  *ErrTrailingContent
		mismatch  *ErrCountMismatch
		missing   *ErrMissingField
		duplicate *ErrDuplicateSemantic
		readErr   *ErrRead
		pathErr   *fs.PathError
	)
	switch {
	case errors.As(err, &syntax), errors.As(err, &trailing):
		return ErrorKindSyntax
	case errors.As(err, &mismatch):
		return ErrorKindCountMismatch
	case errors.As(err, &missing):
		return ErrorKindMissingField
	case errors.As(err, &duplicate):
		return ErrorKindDuplicateSemantic
	case errors.As(err, &readErr), errors.As(err, &pathErr):
		return ErrorKindIO
	default:
		return ErrorKindUnknown
	}
}
