package parser

import (
	"errors"
	"fmt"
)

// Error kinds. Every *Error unwraps to one of these.
var (
	ErrUnmatchedBrace      = errors.New("unmatched brace")
	ErrUnterminatedBlock   = errors.New("unterminated block")
	ErrUnknownElement      = errors.New("unknown element")
	ErrIdentifierNotFound  = errors.New("identifier not found")
	ErrMalformedValueEntry = errors.New("malformed value entry")
	ErrMalformedCode       = errors.New("malformed code")
	ErrDuplicateDefinition = errors.New("duplicate definition")
)

// snippetLen bounds the input excerpt carried by an Error.
const snippetLen = 32

// Error is a parse failure at a byte offset of the normalized text.
type Error struct {
	Kind    error  // one of the Err* kinds
	Offset  int    // absolute offset in the normalized text
	Snippet string // input starting at Offset, truncated
	Msg     string // optional detail
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Msg != "" {
		msg += ": " + e.Msg
	}
	return fmt.Sprintf("offset %d: %s near %q", e.Offset, msg, e.Snippet)
}

// Unwrap returns the error kind so callers can use errors.Is.
func (e *Error) Unwrap() error {
	return e.Kind
}

// newError builds an Error for local position i of window s, whose first
// byte sits at absolute offset base.
func newError(kind error, s string, i, base int, msg string) *Error {
	return &Error{
		Kind:    kind,
		Offset:  base + i,
		Snippet: snippet(s, i),
		Msg:     msg,
	}
}

func snippet(s string, i int) string {
	if i >= len(s) {
		return ""
	}
	end := min(i+snippetLen, len(s))
	return s[i:end]
}
