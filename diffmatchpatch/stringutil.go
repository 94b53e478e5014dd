// Copyright (c) 2012-2016 The go-diff authors. All rights reserved.
// https://github.com/sergi/go-diff
// See the included LICENSE file for license details.
//
// go-diff is a Go implementation of Google's Diff, Match, and Patch library
// Original library is Copyright (c) 2006 Google Inc.
// http://code.google.com/p/google-diff-match-patch/

package diffmatchpatch

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

// unescaper restores the characters that JavaScript's encodeURI leaves
// alone, so that deltas and patch bodies stay readable and interoperable.
//
// Example: "%3F" -> "?", "%24" -> "$", etc.
var unescaper = strings.NewReplacer(
	"%21", "!", "%7E", "~", "%27", "'",
	"%28", "(", "%29", ")", "%3B", ";",
	"%2F", "/", "%3F", "?", "%3A", ":",
	"%40", "@", "%26", "&", "%3D", "=",
	"%2B", "+", "%24", "$", "%2C", ",", "%23", "#", "%2A", "*")

// escapeText percent-encodes text the way deltas and patch bodies expect:
// spaces stay literal, the encodeURI-safe set is left as is and hex digits
// are lowercase.
func escapeText(text string) string {
	return lowerHexEscapes(unescaper.Replace(strings.ReplaceAll(url.QueryEscape(text), "+", " ")))
}

// lowerHexEscapes lowercases the two hex digits following every '%'.
func lowerHexEscapes(text string) string {
	if strings.IndexByte(text, '%') < 0 {
		return text
	}
	b := []byte(text)
	for i := 0; i+2 < len(b); i++ {
		if b[i] != '%' {
			continue
		}
		for j := i + 1; j <= i+2; j++ {
			if 'A' <= b[j] && b[j] <= 'F' {
				b[j] += 'a' - 'A'
			}
		}
		i += 2
	}
	return string(b)
}

// unescapeText reverses escapeText. Hex digits of either case are accepted
// and a literal '+' stays a '+'.
func unescapeText(text string) (string, error) {
	decoded, err := url.QueryUnescape(strings.ReplaceAll(text, "+", "%2B"))
	if err != nil {
		return "", &DecodingError{Input: text, Err: err}
	}
	if !utf8.ValidString(decoded) {
		return "", &DecodingError{Input: text, Err: fmt.Errorf("invalid UTF-8 token: %q", decoded)}
	}
	return decoded, nil
}

// indexOf returns the first index of pattern in str, starting at str[i].
func indexOf(str string, pattern string, i int) int {
	if i > len(str)-1 {
		return -1
	}
	if i <= 0 {
		return strings.Index(str, pattern)
	}
	if ind := strings.Index(str[i:], pattern); ind != -1 {
		return ind + i
	}
	return -1
}

// lastIndexOf returns the last index of pattern in str that starts at or
// before str[i].
func lastIndexOf(str string, pattern string, i int) int {
	if i < 0 {
		return -1
	}
	if i >= len(str) {
		return strings.LastIndex(str, pattern)
	}
	_, size := utf8.DecodeRuneInString(str[i:])
	return strings.LastIndex(str[:i+size], pattern)
}

// runesIndexOf returns the index of pattern in target, starting at target[i].
func runesIndexOf(target, pattern []rune, i int) int {
	if i > len(target)-1 {
		return -1
	}
	if i <= 0 {
		return runesIndex(target, pattern)
	}
	if ind := runesIndex(target[i:], pattern); ind != -1 {
		return ind + i
	}
	return -1
}

func runesEqual(r1, r2 []rune) bool {
	if len(r1) != len(r2) {
		return false
	}
	for i, c := range r1 {
		if c != r2[i] {
			return false
		}
	}
	return true
}

// runesIndex is the equivalent of strings.Index for rune slices.
func runesIndex(r1, r2 []rune) int {
	last := len(r1) - len(r2)
	for i := 0; i <= last; i++ {
		if runesEqual(r1[i:i+len(r2)], r2) {
			return i
		}
	}
	return -1
}

// runeStart moves i back to the first byte of the rune containing text[i].
func runeStart(text string, i int) int {
	for i > 0 && i < len(text) && !utf8.RuneStart(text[i]) {
		i--
	}
	return i
}

// runeEnd moves i forward until text[:i] ends on a whole rune.
func runeEnd(text string, i int) int {
	for i > 0 && i < len(text) && !utf8.RuneStart(text[i]) {
		i++
	}
	return i
}
