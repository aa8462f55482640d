// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package frames

import (
	"errors"
	"fmt"
)

var (
	// ErrParse matches any *ParseError via errors.Is.
	ErrParse = errors.New("malformed numeric token")

	// ErrShape matches any *ShapeError via errors.Is.
	ErrShape = errors.New("sample count incompatible with frame shape")
)

// ParseError reports a token that could not be read as a finite float.
type ParseError struct {
	Line  int
	Token string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("line %d: invalid number %q: %v", e.Line, e.Token, e.Err)
	}
	return fmt.Sprintf("line %d: invalid number %q", e.Line, e.Token)
}

func (e *ParseError) Unwrap() error { return e.Err }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// ShapeError reports a sample count that is zero or not a multiple of the
// frame cell count.
type ShapeError struct {
	Count int
	Cells int
	// Detail overrides the default message (used when decoding nested JSON).
	Detail string
}

func (e *ShapeError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Count == 0 {
		return fmt.Sprintf("no values to reshape: expected a positive multiple of %d", e.Cells)
	}
	return fmt.Sprintf("cannot reshape %d values into frames of %d: %d left over",
		e.Count, e.Cells, e.Count%e.Cells)
}

func (e *ShapeError) Is(target error) bool { return target == ErrShape }
