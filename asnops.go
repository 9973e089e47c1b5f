// Package asnops parses remote-operation and error definitions written in
// the ASN.1 notation of ROS/MAP-style protocol specifications.
//
// A document is normalized (comments dropped, whitespace collapsed) and
// then scanned for "name OPERATION ::= {...}" and "name ERROR ::= {...}"
// blocks. The result is a Catalog that keeps definitions in input order:
//
//	cat, err := asnops.Parse(src)
//	if err != nil {
//	    return err
//	}
//	op := cat.Operation("sendAuthenticationInfo")
//
// Whole directories of documents are parsed with Load.
package asnops

import (
	"errors"
	"log/slog"

	"github.com/golangsnmp/asnops/internal/parser"
	"github.com/golangsnmp/asnops/internal/prep"
	"github.com/golangsnmp/asnops/internal/types"
)

// ErrNoSources is returned when Load is called with no sources.
var ErrNoSources = errors.New("no document sources provided")

// LevelTrace is a custom log level more verbose than Debug.
// Use for per-item logging (elements, sequence fields, value entries).
// Enable with: &slog.HandlerOptions{Level: slog.Level(-8)}
const LevelTrace = types.LevelTrace

// ParseOption configures Parse, ParseNormalized, Load and LoadNamed.
type ParseOption func(*parseConfig)

type parseConfig struct {
	logger           *slog.Logger
	strictDuplicates bool
	searchPaths      bool
}

// WithLogger sets the logger for debug/trace output.
// If not set, no logging occurs (zero overhead).
func WithLogger(logger *slog.Logger) ParseOption {
	return func(c *parseConfig) { c.logger = logger }
}

// WithStrictDuplicates makes a repeated definition name an error
// (ErrDuplicateDefinition). By default a later definition replaces an
// earlier one and keeps its position.
func WithStrictDuplicates() ParseOption {
	return func(c *parseConfig) { c.strictDuplicates = true }
}

func newParseConfig(opts []ParseOption) parseConfig {
	var cfg parseConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

func (c parseConfig) parserConfig() parser.Config {
	return parser.Config{StrictDuplicates: c.strictDuplicates}
}

// Normalize returns the preprocessed single-line form of src: comment
// lines and trailing comments removed, whitespace collapsed, and only the
// spaces that separate two words kept. Normalize is idempotent.
func Normalize(src []byte) string {
	return prep.Normalize(src)
}

// Parse normalizes src and parses every OPERATION and ERROR definition in
// it. The first malformed construct aborts the parse; the error unwraps to
// one of the Err* kinds and to a *ParseError carrying its offset in the
// normalized text.
func Parse(src []byte, opts ...ParseOption) (*Catalog, error) {
	return parseBytes(src, newParseConfig(opts))
}

// ParseNormalized parses text that has already been through Normalize.
func ParseNormalized(text string, opts ...ParseOption) (*Catalog, error) {
	return parseNormalized(text, newParseConfig(opts))
}

func parseBytes(src []byte, cfg parseConfig) (*Catalog, error) {
	return parseNormalized(prep.Normalize(src), cfg)
}

func parseNormalized(text string, cfg parseConfig) (*Catalog, error) {
	p := parser.New(text, types.Component(cfg.logger, "parser"), cfg.parserConfig())
	return p.Parse()
}
