// Copyright (c) 2012-2016 The go-diff authors. All rights reserved.
// https://github.com/sergi/go-diff
// See the included LICENSE file for license details.
//
// go-diff is a Go implementation of Google's Diff, Match, and Patch library
// Original library is Copyright (c) 2006 Google Inc.
// http://code.google.com/p/google-diff-match-patch/

package diffmatchpatch

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// DiffToDelta crushes the diff into an encoded string which describes the operations required to transform text1 into text2.
// E.g. =3\t-2\t+ing  -> Keep 3 chars, delete 2 chars, insert 'ing'. Operations are tab-separated.  Inserted text is escaped using %xx notation.
func (dmp *DiffMatchPatch) DiffToDelta(diffs []Diff) string {
	var text strings.Builder
	for i, aDiff := range diffs {
		if i > 0 {
			_ = text.WriteByte('\t')
		}
		switch aDiff.Type {
		case DiffInsert:
			_ = text.WriteByte('+')
			_, _ = text.WriteString(escapeText(aDiff.Text))
		case DiffDelete:
			_ = text.WriteByte('-')
			_, _ = text.WriteString(strconv.Itoa(utf8.RuneCountInString(aDiff.Text)))
		case DiffEqual:
			_ = text.WriteByte('=')
			_, _ = text.WriteString(strconv.Itoa(utf8.RuneCountInString(aDiff.Text)))
		}
	}
	return text.String()
}

// DiffFromDelta given the original text1, and an encoded string which describes the operations required to transform text1 into text2, compute the full diff.
// Counts in the delta are in runes. The returned error is a *FormatError,
// a *DecodingError or a *LengthMismatchError.
func (dmp *DiffMatchPatch) DiffFromDelta(text1 string, delta string) (diffs []Diff, err error) {
	runes := []rune(text1)
	// Cursor into runes. It keeps counting past the end of text1 so that an
	// overrun is reported with the full length of the delta.
	i := 0

	for _, token := range strings.Split(delta, "\t") {
		if len(token) == 0 {
			// Blank tokens are ok (from a trailing \t).
			continue
		}

		// Each token begins with a one character parameter which specifies the operation of this token (delete, insert, equality).
		param := token[1:]

		switch op := token[0]; op {
		case '+':
			text, err := unescapeText(param)
			if err != nil {
				return nil, err
			}
			diffs = append(diffs, Diff{DiffInsert, text})
		case '=', '-':
			n, err := strconv.ParseInt(param, 10, 0)
			if err != nil {
				return nil, &FormatError{Msg: "invalid number in DiffFromDelta: " + strconv.Quote(param), Err: err}
			} else if n < 0 {
				return nil, &FormatError{Msg: "negative number in DiffFromDelta: " + param}
			}

			if n > int64(len(runes)-i) {
				// Past the end of text1. The count saturates instead of wrapping.
				if n > int64(math.MaxInt-i) {
					i = math.MaxInt
				} else {
					i += int(n)
				}
				continue
			}
			i += int(n)
			text := string(runes[i-int(n) : i])
			if op == '=' {
				diffs = append(diffs, Diff{DiffEqual, text})
			} else {
				diffs = append(diffs, Diff{DiffDelete, text})
			}
		default:
			// Anything else is an error.
			return nil, &FormatError{Msg: "invalid diff operation in DiffFromDelta: " + string(token[0])}
		}
	}

	if i != len(runes) {
		return nil, &LengthMismatchError{DeltaLength: i, TextLength: len(runes)}
	}

	return diffs, nil
}
