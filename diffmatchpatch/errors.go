// Copyright (c) 2012-2016 The go-diff authors. All rights reserved.
// https://github.com/sergi/go-diff
// See the included LICENSE file for license details.
//
// go-diff is a Go implementation of Google's Diff, Match, and Patch library
// Original library is Copyright (c) 2006 Google Inc.
// http://code.google.com/p/google-diff-match-patch/

package diffmatchpatch

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by the typed errors below through errors.Is.
var (
	// ErrFormat reports a malformed delta token or patch line.
	ErrFormat = errors.New("diffmatchpatch: malformed input")
	// ErrLengthMismatch reports a delta that does not consume exactly the
	// source text.
	ErrLengthMismatch = errors.New("diffmatchpatch: delta length mismatch")
	// ErrDecoding reports an invalid percent-escape or a payload that does
	// not decode to UTF-8.
	ErrDecoding = errors.New("diffmatchpatch: invalid escape sequence")
)

// FormatError is returned when a delta or a patch text cannot be parsed.
type FormatError struct {
	// Msg describes the problem together with the offending input.
	Msg string
	// Err is the underlying parse error, if any.
	Err error
}

func (e *FormatError) Error() string {
	if e.Err == nil {
		return e.Msg
	}
	return e.Msg + ": " + e.Err.Error()
}

func (e *FormatError) Unwrap() error { return e.Err }

// Is reports whether target is ErrFormat.
func (e *FormatError) Is(target error) bool { return target == ErrFormat }

// LengthMismatchError is returned by DiffFromDelta when the delta covers
// a different number of characters than the source text holds.
type LengthMismatchError struct {
	DeltaLength int
	TextLength  int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("delta length (%d) is different from source text length (%d)", e.DeltaLength, e.TextLength)
}

// Is reports whether target is ErrLengthMismatch.
func (e *LengthMismatchError) Is(target error) bool { return target == ErrLengthMismatch }

// DecodingError is returned when an escaped payload cannot be decoded.
type DecodingError struct {
	// Input is the escaped text as it appeared in the delta or patch.
	Input string
	Err   error
}

func (e *DecodingError) Error() string { return e.Err.Error() }

func (e *DecodingError) Unwrap() error { return e.Err }

// Is reports whether target is ErrDecoding.
func (e *DecodingError) Is(target error) bool { return target == ErrDecoding }
