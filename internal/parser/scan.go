package parser

import (
	"strconv"
	"strings"

	"github.com/golangsnmp/asnops/internal/prep"
)

// Scanning helpers. Each takes a window of normalized text and returns a
// length or index local to that window.

const extensionMarker = "..."

func isWord(s string, i int) bool {
	return i >= 0 && i < len(s) && prep.IsWord(s[i])
}

// isBoundary reports a word boundary between s[i-1] and s[i].
func isBoundary(s string, i int) bool {
	return isWord(s, i-1) != isWord(s, i)
}

func isNameByte(c byte) bool {
	return c == '-' || prep.IsWord(c)
}

// hasWord reports whether s starts with kw and kw is not followed by a
// word character.
func hasWord(s, kw string) bool {
	return strings.HasPrefix(s, kw) && !isWord(s, len(kw))
}

// skipSpace consumes at most one whitespace byte at i.
func skipSpace(s string, i int) int {
	if i < len(s) && prep.IsSpace(s[i]) {
		return i + 1
	}
	return i
}

// scanDigits returns the length of the leading decimal digit run.
func scanDigits(s string) int {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	return n
}

// scanName returns the length of the longest leading run of name bytes
// (letters, digits, underscore, hyphen) that ends on a word boundary.
func scanName(s string) int {
	n := 0
	for n < len(s) && isNameByte(s[n]) {
		n++
	}
	for n > 0 && !isBoundary(s, n) {
		n--
	}
	return n
}

// scanTag matches a context tag "[N]" and returns its length and digits.
func scanTag(s string) (n int, digits string) {
	if len(s) == 0 || s[0] != '[' {
		return 0, ""
	}
	d := scanDigits(s[1:])
	if d == 0 || 1+d >= len(s) || s[1+d] != ']' {
		return 0, ""
	}
	return d + 2, s[1 : 1+d]
}

// matchQualifier returns the length of a qualifier at the start of s:
// an optional ".&Name" field reference followed by a balanced
// parenthesised group. It returns 0 when no complete qualifier is present.
func matchQualifier(s string) int {
	i := 0
	if strings.HasPrefix(s, ".&") {
		i = 2
		for i < len(s) && prep.IsWord(s[i]) {
			i++
		}
		if i == 2 {
			return 0
		}
	}
	if i >= len(s) || s[i] != '(' {
		return 0
	}
	depth := 0
	for ; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return 0
}

// findKeyword returns the index of the first occurrence of kw that stands
// outside any braces or parentheses and is delimited by word boundaries,
// or -1.
func findKeyword(s, kw string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{', '(':
			depth++
			continue
		case '}', ')':
			if depth > 0 {
				depth--
			}
			continue
		}
		if depth == 0 && strings.HasPrefix(s[i:], kw) &&
			isBoundary(s, i) && !isWord(s, i+len(kw)) {
			return i
		}
	}
	return -1
}

// splitTopLevel splits s on any byte of seps that occurs outside braces
// and parentheses. It returns the parts with their start offsets.
func splitTopLevel(s, seps string) (parts []string, starts []int) {
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '{' || c == '(':
			depth++
		case c == '}' || c == ')':
			if depth > 0 {
				depth--
			}
		case depth == 0 && strings.IndexByte(seps, c) >= 0:
			parts = append(parts, s[start:i])
			starts = append(starts, start)
			start = i + 1
		}
	}
	parts = append(parts, s[start:])
	starts = append(starts, start)
	return parts, starts
}

func parseUint32(digits string) (uint32, bool) {
	v, err := strconv.ParseUint(digits, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(v), true
}
