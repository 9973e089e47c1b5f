package parser

// ExtractBlock returns the text between an opening brace and its matching
// closing brace. start must be the index just past the opening '{'. The
// returned end is the index just past the matching '}'.
func ExtractBlock(text string, start int) (contents string, end int, err error) {
	return extractBlock(text, start, 0)
}

// extractBlock is ExtractBlock for a window s whose first byte sits at
// absolute offset base.
func extractBlock(s string, start, base int) (string, int, error) {
	if start <= 0 || start > len(s) || s[start-1] != '{' {
		return "", 0, newError(ErrUnmatchedBrace, s, max(start-1, 0), base,
			"block does not start after '{'")
	}
	nesting := 1
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			nesting++
		case '}':
			nesting--
			if nesting == 0 {
				return s[start:i], i + 1, nil
			}
		}
	}
	return "", 0, newError(ErrUnterminatedBlock, s, start-1, base,
		"no matching '}'")
}
