// Package tokenstream implements the whitespace/parenthesis-tolerant token
// reader MiniLight's model-file grammar is built on. It is the external
// collaborator spec'd as TokenStream: next() -> string, close().
package tokenstream

import (
	"bufio"
	"errors"
	"io"
)

// ErrEndOfStream is returned by Next when no further tokens remain. Callers
// reading the triangle list treat this as expected end-of-file; callers
// reading any other field treat it as fatal.
var ErrEndOfStream = errors.New("tokenstream: end of stream")

// TokenStream splits an io.Reader into whitespace-separated tokens,
// treating "(" and ")" as ordinary separator characters rather than
// meaningful syntax, matching MiniLight's free-form model grammar.
type TokenStream struct {
	reader io.RuneScanner
	closer io.Closer
}

// New wraps an io.Reader as a TokenStream. If r also implements io.Closer,
// Close will close it.
func New(r io.Reader) *TokenStream {
	ts := &TokenStream{reader: bufio.NewReader(r)}
	if c, ok := r.(io.Closer); ok {
		ts.closer = c
	}
	return ts
}

func isSeparator(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f', '(', ')':
		return true
	}
	return false
}

// Next reads and returns the next token, skipping any leading separators.
// It returns ErrEndOfStream when the stream is exhausted before a token
// starts.
func (ts *TokenStream) Next() (string, error) {
	var r rune
	var err error

	// Skip leading separators.
	for {
		r, _, err = ts.reader.ReadRune()
		if err != nil {
			return "", ErrEndOfStream
		}
		if !isSeparator(r) {
			break
		}
	}

	var token []rune
	token = append(token, r)
	for {
		r, _, err = ts.reader.ReadRune()
		if err != nil {
			break
		}
		if isSeparator(r) {
			ts.reader.UnreadRune()
			break
		}
		token = append(token, r)
	}

	return string(token), nil
}

// Close releases the underlying reader, if it is closeable.
func (ts *TokenStream) Close() error {
	if ts.closer != nil {
		return ts.closer.Close()
	}
	return nil
}
