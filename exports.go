package asnops

import (
	"github.com/golangsnmp/asnops/catalog"
	"github.com/golangsnmp/asnops/internal/parser"
)

// Type aliases for the public API. The types live in the catalog package.

// Catalog is the ordered set of parsed definitions.
type Catalog = catalog.Catalog

// Definition is one named OPERATION or ERROR.
type Definition = catalog.Definition

// Kind distinguishes OPERATION from ERROR definitions.
type Kind = catalog.Kind

// OperationBody is the content of an OPERATION block.
type OperationBody = catalog.OperationBody

// ErrorBody is the content of an ERROR block.
type ErrorBody = catalog.ErrorBody

// ErrorRef is an entry of an operation's ERRORS clause.
type ErrorRef = catalog.ErrorRef

// Element is a parsed type occurrence.
type Element = catalog.Element

// TypeKind identifies the base type of an Element.
type TypeKind = catalog.TypeKind

// NamedValue is a labeled integer from an ENUMERATED or BIT STRING body.
type NamedValue = catalog.NamedValue

// ParseError is a parse failure at an offset of the normalized text.
type ParseError = parser.Error

// Definition kinds.
const (
	KindOperation = catalog.KindOperation
	KindError     = catalog.KindError
)

// Element base types.
const (
	TypeUnknown       = catalog.TypeUnknown
	TypeOctetString   = catalog.TypeOctetString
	TypeInteger       = catalog.TypeInteger
	TypeNull          = catalog.TypeNull
	TypeBoolean       = catalog.TypeBoolean
	TypeNumericString = catalog.TypeNumericString
	TypeSequence      = catalog.TypeSequence
	TypeChoice        = catalog.TypeChoice
	TypeBitString     = catalog.TypeBitString
	TypeEnumerated    = catalog.TypeEnumerated
	TypeMapExtension  = catalog.TypeMapExtension
)

// Parse error kinds. Use errors.Is to test for them.
var (
	ErrUnmatchedBrace      = parser.ErrUnmatchedBrace
	ErrUnterminatedBlock   = parser.ErrUnterminatedBlock
	ErrUnknownElement      = parser.ErrUnknownElement
	ErrIdentifierNotFound  = parser.ErrIdentifierNotFound
	ErrMalformedValueEntry = parser.ErrMalformedValueEntry
	ErrMalformedCode       = parser.ErrMalformedCode
	ErrDuplicateDefinition = parser.ErrDuplicateDefinition
)
