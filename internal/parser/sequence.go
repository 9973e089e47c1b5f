package parser

import (
	"log/slog"
	"strings"

	"github.com/golangsnmp/asnops/catalog"
)

// parseSequence parses the body of a SEQUENCE or CHOICE block: a
// comma-separated list of "name TYPE [qualifier] [OPTIONAL]" fields.
// Extension markers ("...") are skipped.
func (p *Parser) parseSequence(s string, base int) ([]*catalog.Element, error) {
	var fields []*catalog.Element
	i := 0
	for {
		var name string
		switch n := scanName(s[i:]); {
		case strings.HasPrefix(s[i:], extensionMarker):
			name = extensionMarker
			i += len(extensionMarker)
		case n > 0:
			name = s[i : i+n]
			i += n
		default:
			return nil, newError(ErrIdentifierNotFound, s, i, base, "expected field name")
		}
		i = skipSpace(s, i)

		if name != extensionMarker {
			el, n, err := p.parseElement(s[i:], base+i)
			if err != nil {
				return nil, err
			}
			i += n
			el.Name = name

			if q := matchQualifier(s[i:]); q > 0 {
				el.Qualifiers += s[i : i+q]
				i += q
			}
			i = skipSpace(s, i)
			if strings.HasPrefix(s[i:], "OPTIONAL") {
				el.Optional = true
				i += len("OPTIONAL")
			}

			if p.TraceEnabled() {
				p.Trace("field",
					slog.String("name", name),
					slog.String("type", el.Type.String()),
					slog.Bool("optional", el.Optional))
			}
			fields = append(fields, el)
		}

		if i >= len(s) || s[i] != ',' {
			break
		}
		i++
	}
	if fields == nil {
		fields = []*catalog.Element{}
	}
	return fields, nil
}
