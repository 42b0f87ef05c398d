package parser

import (
	"fmt"
)

// ErrSyntax indicates the input does not have the record or section shape
// expected at the current line.
type ErrSyntax struct {
	Line     int
	Expected string
	Got      string
}

func (e *ErrSyntax) Error() string {
	if e.Got == "" {
		return fmt.Sprintf("line %d: expected %s, got end of input", e.Line, e.Expected)
	}
	return fmt.Sprintf("line %d: expected %s, got %q", e.Line, e.Expected, e.Got)
}

// ErrCountMismatch indicates a declared count differs from the number of
// records actually present in the block that follows it.
type ErrCountMismatch struct {
	Line     int
	Block    string // "coordinates", "semantics" or "objects"
	Declared int
	Actual   int
}

func (e *ErrCountMismatch) Error() string {
	return fmt.Sprintf("line %d: need %d %s, but present %d",
		e.Line, e.Declared, e.Block, e.Actual)
}

// ErrMissingField indicates an object lacks a resolvable required field.
// Value holds the offending text when the field is present but unusable.
type ErrMissingField struct {
	Line  int
	Field string
	Value string
}

func (e *ErrMissingField) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("line %d: object field %s has non-integer value %q",
			e.Line, e.Field, e.Value)
	}
	return fmt.Sprintf("line %d: object has no %s field", e.Line, e.Field)
}

// ErrDuplicateSemantic indicates a semantic code repeated within one object.
type ErrDuplicateSemantic struct {
	Line int
	Code string
}

func (e *ErrDuplicateSemantic) Error() string {
	return fmt.Sprintf("line %d: duplicate semantic code %s", e.Line, e.Code)
}

// ErrTrailingContent indicates non-blank input after the .END marker when
// trailing content is rejected.
type ErrTrailingContent struct {
	Line int
	Text string
}

func (e *ErrTrailingContent) Error() string {
	return fmt.Sprintf("line %d: unexpected content after .END: %q", e.Line, e.Text)
}

// ErrRead wraps a failure of the underlying reader, including lines longer
// than the configured maximum.
type ErrRead struct {
	Line int
	Err  error
}

func (e *ErrRead) Error() string {
	return fmt.Sprintf("read line %d: %v", e.Line, e.Err)
}

func (e *ErrRead) Unwrap() error {
	return e.Err
}
