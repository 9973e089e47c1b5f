package parser

import (
	"strings"

	"github.com/golangsnmp/asnops/catalog"
)

// Block keywords. Each is searched for independently over the whole block,
// but only outside nested braces and parentheses.
const (
	kwArgument     = "ARGUMENT"
	kwReturnResult = "RETURN RESULT"
	kwResult       = "RESULT"
	kwParameter    = "PARAMETER"
	kwCode         = "CODE"
	kwErrors       = "ERRORS"
	localPrefix    = "local:"
)

// parseOperation parses the contents of an OPERATION block.
func (p *Parser) parseOperation(s string, base int) (*catalog.OperationBody, error) {
	op := &catalog.OperationBody{}
	var err error

	if at := findKeyword(s, kwArgument); at >= 0 {
		if op.Argument, err = p.elementAfter(s, at+len(kwArgument), base); err != nil {
			return nil, err
		}
	}

	at := findKeyword(s, kwReturnResult)
	kwLen := len(kwReturnResult)
	if at < 0 {
		at = findKeyword(s, kwResult)
		kwLen = len(kwResult)
	}
	if at >= 0 {
		if op.Result, err = p.elementAfter(s, at+kwLen, base); err != nil {
			return nil, err
		}
	}

	if op.Code, err = parseCode(s, base); err != nil {
		return nil, err
	}

	if at := findKeyword(s, kwErrors); at >= 0 {
		if op.Errors, err = p.parseErrorList(s, at+len(kwErrors), base); err != nil {
			return nil, err
		}
	}

	return op, nil
}

// parseErrorBody parses the contents of an ERROR block.
func (p *Parser) parseErrorBody(s string, base int) (*catalog.ErrorBody, error) {
	e := &catalog.ErrorBody{}
	var err error

	if at := findKeyword(s, kwParameter); at >= 0 {
		if e.Parameter, err = p.elementAfter(s, at+len(kwParameter), base); err != nil {
			return nil, err
		}
	}

	if e.Code, err = parseCode(s, base); err != nil {
		return nil, err
	}
	return e, nil
}

// elementAfter parses the unnamed element that follows a keyword ending
// at i.
func (p *Parser) elementAfter(s string, i, base int) (*catalog.Element, error) {
	i = skipSpace(s, i)
	el, _, err := p.parseElement(s[i:], base+i)
	return el, err
}

// parseCode finds "CODE local:N" and returns N, or nil when the block has
// no CODE clause.
func parseCode(s string, base int) (*uint32, error) {
	at := findKeyword(s, kwCode)
	if at < 0 {
		return nil, nil
	}
	i := skipSpace(s, at+len(kwCode))
	if !strings.HasPrefix(s[i:], localPrefix) {
		return nil, newError(ErrMalformedCode, s, i, base, "expected local:<n>")
	}
	d := scanDigits(s[i+len(localPrefix):])
	if d == 0 {
		return nil, newError(ErrMalformedCode, s, i, base, "expected digits after local:")
	}
	digits := s[i+len(localPrefix) : i+len(localPrefix)+d]
	code, ok := parseUint32(digits)
	if !ok {
		return nil, newError(ErrMalformedCode, s, i, base, "code out of range")
	}
	return &code, nil
}

// parseErrorList parses "ERRORS { a | b | {PARAMETER ... CODE local:n} }".
// Entries are error names or inline error objects.
func (p *Parser) parseErrorList(s string, i, base int) ([]catalog.ErrorRef, error) {
	i = skipSpace(s, i)
	if i >= len(s) || s[i] != '{' {
		return nil, newError(ErrMalformedValueEntry, s, i, base, "expected '{' after ERRORS")
	}
	body, _, err := extractBlock(s, i+1, base)
	if err != nil {
		return nil, err
	}
	bodyBase := base + i + 1

	refs := []catalog.ErrorRef{}
	parts, starts := splitTopLevel(body, "|,")
	for k, part := range parts {
		switch {
		case part == "" || part == extensionMarker:
			continue
		case part[0] == '{':
			inner, end, err := extractBlock(part, 1, bodyBase+starts[k])
			if err != nil {
				return nil, err
			}
			if end != len(part) {
				return nil, newError(ErrMalformedValueEntry, body, starts[k]+end, bodyBase, "unexpected text after error object")
			}
			e, err := p.parseErrorBody(inner, bodyBase+starts[k]+1)
			if err != nil {
				return nil, err
			}
			refs = append(refs, catalog.ErrorRef{Body: e})
		case scanName(part) == len(part):
			refs = append(refs, catalog.ErrorRef{Name: part})
		default:
			return nil, newError(ErrMalformedValueEntry, body, starts[k], bodyBase, "expected error name or object")
		}
	}
	return refs, nil
}
