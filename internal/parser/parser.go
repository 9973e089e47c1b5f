// Package parser implements the recursive-descent parser for OPERATION and
// ERROR definitions.
//
// Input is text that has already been normalized by package prep: a single
// line with comments removed and only the spaces that separate two words.
// Every parse step works on a window of that text and returns how many
// bytes it consumed, so callers advance an explicit cursor. Failures carry
// the absolute offset of the offending input and abort the whole parse.
package parser

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/golangsnmp/asnops/catalog"
	"github.com/golangsnmp/asnops/internal/types"
)

// Config controls parser behavior.
type Config struct {
	// StrictDuplicates makes a second definition with an already used name
	// fail with ErrDuplicateDefinition instead of replacing the first.
	StrictDuplicates bool
}

// Parser converts normalized text into a catalog.
type Parser struct {
	src string
	cfg Config
	types.Logger
}

// New returns a Parser for normalized text. Pass nil for logger to disable
// logging.
func New(src string, logger *slog.Logger, cfg Config) *Parser {
	p := &Parser{
		src:    src,
		cfg:    cfg,
		Logger: types.Logger{L: logger},
	}
	p.Log(slog.LevelDebug, "parser initialized", slog.Int("bytes", len(src)))
	return p
}

// header is a "<name> OPERATION::=" or "<name> ERROR::=" match.
type header struct {
	name string
	kind catalog.Kind
	at   int // offset of the name
	open int // offset just past "::="
}

var headerMarkers = []struct {
	text string
	kind catalog.Kind
}{
	{" OPERATION::=", catalog.KindOperation},
	{" ERROR::=", catalog.KindError},
}

// headerScanner finds definition headers left to right. Each marker's next
// position is remembered and only searched again once the cursor passes it.
type headerScanner struct {
	s    string
	next [2]int // per headerMarkers entry: absolute position, markerUnknown, or markerAbsent
}

const (
	markerUnknown = -2
	markerAbsent  = -1
)

func newHeaderScanner(s string) *headerScanner {
	return &headerScanner{s: s, next: [2]int{markerUnknown, markerUnknown}}
}

// marker returns the position of marker k at or after from, or -1.
func (hs *headerScanner) marker(k, from int) int {
	pos := hs.next[k]
	if pos == markerAbsent || pos >= from {
		return pos
	}
	if j := strings.Index(hs.s[from:], headerMarkers[k].text); j >= 0 {
		hs.next[k] = from + j
	} else {
		hs.next[k] = markerAbsent
	}
	return hs.next[k]
}

// find returns the first definition header at or after from. Calls must
// not move from backwards.
func (hs *headerScanner) find(from int) (header, bool) {
	s := hs.s
	for from < len(s) {
		best := header{at: -1}
		markerAt := -1
		for k, m := range headerMarkers {
			j := hs.marker(k, from)
			if j < 0 {
				continue
			}
			if markerAt < 0 || j < markerAt {
				markerAt = j
				best.kind = m.kind
				best.open = j + len(m.text)
			}
		}
		if markerAt < 0 {
			return header{}, false
		}

		start := markerAt
		for start > 0 && isNameByte(s[start-1]) {
			start--
		}
		for start < markerAt && s[start] == '-' {
			start++
		}
		if start < markerAt {
			best.name = s[start:markerAt]
			best.at = start
			return best, true
		}
		from = markerAt + 1
	}
	return header{}, false
}

// Parse scans the text for definitions and returns them as a catalog.
// The first failure aborts the parse; no partial catalog is returned.
func (p *Parser) Parse() (*catalog.Catalog, error) {
	cat := catalog.New()

	headers := newHeaderScanner(p.src)
	pos := 0
	for {
		h, ok := headers.find(pos)
		if !ok {
			break
		}

		if h.open >= len(p.src) || p.src[h.open] != '{' {
			return nil, fmt.Errorf("%s %s: %w", h.kind, h.name,
				newError(ErrUnterminatedBlock, p.src, h.open, 0, "expected '{' after ::="))
		}
		body, end, err := extractBlock(p.src, h.open+1, 0)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", h.kind, h.name, err)
		}

		def, err := p.parseDefinition(h, body)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", h.kind, h.name, err)
		}

		if cat.Has(h.name) {
			if p.cfg.StrictDuplicates {
				return nil, fmt.Errorf("%s %s: %w", h.kind, h.name,
					newError(ErrDuplicateDefinition, p.src, h.at, 0, "name already defined"))
			}
			p.Log(slog.LevelDebug, "replacing duplicate definition",
				slog.String("name", h.name),
				slog.Int("offset", h.at))
		}
		cat.Set(def)

		if p.Enabled(slog.LevelDebug) {
			attrs := []slog.Attr{
				slog.String("name", h.name),
				slog.String("kind", h.kind.String()),
			}
			if code, ok := def.Code(); ok {
				attrs = append(attrs, slog.Int("code", int(code)))
			}
			p.Log(slog.LevelDebug, "parsed definition", attrs...)
		}

		pos = end
	}

	p.Log(slog.LevelDebug, "parsing complete", slog.Int("definitions", cat.Len()))
	return cat, nil
}

func (p *Parser) parseDefinition(h header, body string) (*catalog.Definition, error) {
	base := h.open + 1
	switch h.kind {
	case catalog.KindError:
		e, err := p.parseErrorBody(body, base)
		if err != nil {
			return nil, err
		}
		return catalog.NewError(h.name, e), nil
	default:
		op, err := p.parseOperation(body, base)
		if err != nil {
			return nil, err
		}
		return catalog.NewOperation(h.name, op), nil
	}
}
