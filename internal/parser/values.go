package parser

import (
	"log/slog"
	"strconv"

	"github.com/golangsnmp/asnops/catalog"
)

// parseValues parses the body of an ENUMERATED or BIT STRING block:
// comma-separated name(value) entries, with "..." entries dropped.
func (p *Parser) parseValues(s string, base int) ([]catalog.NamedValue, error) {
	values := []catalog.NamedValue{}

	parts, starts := splitTopLevel(s, ",")
	for i, part := range parts {
		if part == extensionMarker {
			continue
		}
		nv, ok := parseNamedValue(part)
		if !ok {
			return nil, newError(ErrMalformedValueEntry, s, starts[i], base,
				"expected name(value)")
		}
		if p.TraceEnabled() {
			p.Trace("named value",
				slog.String("name", nv.Name),
				slog.Int64("value", nv.Value),
				slog.Int("offset", base+starts[i]))
		}
		values = append(values, nv)
	}
	return values, nil
}

// parseNamedValue matches name(digits) at the start of s.
func parseNamedValue(s string) (catalog.NamedValue, bool) {
	n := scanName(s)
	if n == 0 || n >= len(s) || s[n] != '(' {
		return catalog.NamedValue{}, false
	}
	d := scanDigits(s[n+1:])
	end := n + 1 + d
	if d == 0 || end >= len(s) || s[end] != ')' {
		return catalog.NamedValue{}, false
	}
	v, err := strconv.ParseInt(s[n+1:end], 10, 64)
	if err != nil {
		return catalog.NamedValue{}, false
	}
	return catalog.NamedValue{Name: s[:n], Value: v}, true
}
