// Package prep turns raw specification text into the single-line form the
// parser consumes.
//
// Normalization drops ASN.1 comments, collapses whitespace, and removes
// every space that does not separate two word characters, so that
//
//	foo OPERATION ::= {
//	    ARGUMENT [0] IMPLICIT INTEGER (0..10)
//	}
//
// becomes
//
//	foo OPERATION::={ARGUMENT[0]IMPLICIT INTEGER(0..10)}
package prep

import "strings"

// Normalize strips comments and collapses whitespace. The result is stable:
// Normalize(Normalize(x)) == Normalize(x).
func Normalize(src []byte) string {
	return CollapseSpace(StripComments(string(src)))
}

// StripComments removes comment lines (first non-blank characters are "--")
// and trailing comments. A trailing comment runs from "--" to the next "--"
// or the end of the line.
func StripComments(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimLeft(line, " \t\r\v\f"), "--") {
			continue
		}
		kept = append(kept, stripTrailingComment(line))
	}
	return strings.Join(kept, "\n")
}

func stripTrailingComment(line string) string {
	i := strings.Index(line, "--")
	if i < 0 {
		return line
	}
	var b strings.Builder
	for i >= 0 {
		b.WriteString(line[:i])
		rest := line[i+2:]
		end := strings.Index(rest, "--")
		if end < 0 {
			return b.String()
		}
		line = rest[end+2:]
		i = strings.Index(line, "--")
	}
	b.WriteString(line)
	return b.String()
}

// CollapseSpace replaces whitespace runs with a single space and then drops
// the spaces that are not between two word characters. A space between two
// hyphens survives so that no comment opener is formed.
func CollapseSpace(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	var prev byte
	for i := 0; i < len(s); {
		c := s[i]
		if !IsSpace(c) {
			b.WriteByte(c)
			prev = c
			i++
			continue
		}
		for i < len(s) && IsSpace(s[i]) {
			i++
		}
		if i == len(s) || b.Len() == 0 {
			continue
		}
		next := s[i]
		if (IsWord(prev) && IsWord(next)) || (prev == '-' && next == '-') {
			b.WriteByte(' ')
			prev = ' '
		}
	}
	return b.String()
}

// IsWord reports whether c is an ASCII word character [A-Za-z0-9_].
func IsWord(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

// IsSpace reports whether c is ASCII whitespace.
func IsSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
