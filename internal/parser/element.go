package parser

import (
	"log/slog"
	"strings"

	"github.com/golangsnmp/asnops/catalog"
)

// typeKeywords is tried in order; the first prefix match wins.
var typeKeywords = []struct {
	keyword string
	kind    catalog.TypeKind
}{
	{"OCTET STRING", catalog.TypeOctetString},
	{"INTEGER", catalog.TypeInteger},
	{"NULL", catalog.TypeNull},
	{"BOOLEAN", catalog.TypeBoolean},
	{"NumericString", catalog.TypeNumericString},
	{"SEQUENCE", catalog.TypeSequence},
	{"CHOICE", catalog.TypeChoice},
	{"BIT STRING", catalog.TypeBitString},
	{"ENUMERATED", catalog.TypeEnumerated},
	{"MAP-EXTENSION", catalog.TypeMapExtension},
}

func matchType(s string) (catalog.TypeKind, int) {
	for _, t := range typeKeywords {
		if strings.HasPrefix(s, t.keyword) {
			return t.kind, len(t.keyword)
		}
	}
	return catalog.TypeUnknown, 0
}

// parseElement parses one type occurrence at the start of s:
//
//	[N] IMPLICIT TYPE qualifier OF element
//	TYPE { fields }        -- SEQUENCE, CHOICE
//	TYPE { name(v), ... }  -- ENUMERATED, BIT STRING
//	TRUE
//
// It returns the element and the number of bytes consumed. base is the
// absolute offset of s[0], used for error positions.
func (p *Parser) parseElement(s string, base int) (*catalog.Element, int, error) {
	if hasWord(s, "TRUE") {
		v := true
		p.traceElement(catalog.TypeBoolean, base)
		return &catalog.Element{Type: catalog.TypeBoolean, Value: &v}, len("TRUE"), nil
	}

	el := &catalog.Element{}
	i := 0

	if n, digits := scanTag(s); n > 0 {
		tag, ok := parseUint32(digits)
		if !ok {
			return nil, 0, newError(ErrUnknownElement, s, 0, base, "tag out of range")
		}
		el.Tag = &tag
		i += n
	}

	if strings.HasPrefix(s[i:], "IMPLICIT") && isSpaceAt(s, i+len("IMPLICIT")) {
		el.Implicit = true
		i += len("IMPLICIT") + 1
	}

	kind, n := matchType(s[i:])
	if n == 0 {
		return nil, 0, newError(ErrUnknownElement, s, 0, base, "")
	}
	el.Type = kind
	i = skipSpace(s, i+n)

	if q := matchQualifier(s[i:]); q > 0 {
		el.Qualifiers = s[i : i+q]
		i += q
	}

	p.traceElement(kind, base)

	if strings.HasPrefix(s[i:], "OF") && isBoundary(s, i) && isSpaceAt(s, i+2) {
		i += len("OF") + 1
		of, m, err := p.parseElement(s[i:], base+i)
		if err != nil {
			return nil, 0, err
		}
		el.OfElement = of
		return el, i + m, nil
	}

	switch {
	case kind.IsConstructed():
		if i >= len(s) || s[i] != '{' {
			return nil, 0, newError(ErrUnknownElement, s, i, base, "expected '{' after "+kind.String())
		}
		body, end, err := extractBlock(s, i+1, base)
		if err != nil {
			return nil, 0, err
		}
		if body == extensionMarker {
			el.Elements = []*catalog.Element{}
		} else {
			fields, err := p.parseSequence(body, base+i+1)
			if err != nil {
				return nil, 0, err
			}
			el.Elements = fields
		}
		i = end

	case kind.HasNamedValues() && i < len(s) && s[i] == '{':
		body, end, err := extractBlock(s, i+1, base)
		if err != nil {
			return nil, 0, err
		}
		values, err := p.parseValues(body, base+i+1)
		if err != nil {
			return nil, 0, err
		}
		el.Values = values
		i = end
	}

	return el, i, nil
}

func isSpaceAt(s string, i int) bool {
	return i < len(s) && skipSpace(s, i) == i+1
}

func (p *Parser) traceElement(kind catalog.TypeKind, offset int) {
	if p.TraceEnabled() {
		p.Trace("element",
			slog.String("type", kind.String()),
			slog.Int("offset", offset))
	}
}
