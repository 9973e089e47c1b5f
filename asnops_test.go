package asnops

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `
-- operations
sendRoutingInfo OPERATION ::= {
    ARGUMENT SEQUENCE {
        msisdn [0] IMPLICIT OCTET STRING (SIZE (1..9)),
        interrogationType [1] IMPLICIT ENUMERATED { basicCall (0), forwarding (1) },
        ... }
    RESULT SEQUENCE { imsi [0] IMPLICIT OCTET STRING (SIZE (3..8)) OPTIONAL }
    CODE local:22 }

unknownSubscriber ERROR ::= {
    PARAMETER NULL
    CODE local:1 }
`

func TestParse(t *testing.T) {
	cat, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)
	assert.Equal(t, []string{"sendRoutingInfo", "unknownSubscriber"}, cat.Names())

	op := cat.Operation("sendRoutingInfo")
	require.NotNil(t, op)
	assert.Equal(t, uint32(22), *op.Code)

	it := op.Argument.Field("interrogationType")
	require.NotNil(t, it)
	v, ok := it.NamedValue("forwarding")
	require.True(t, ok)
	assert.Equal(t, int64(1), v.Value)

	imsi := op.Result.Field("imsi")
	require.NotNil(t, imsi)
	assert.True(t, imsi.Optional)

	e := cat.Error("unknownSubscriber")
	require.NotNil(t, e)
	assert.Equal(t, uint32(1), *e.Code)
}

func TestParseNormalizedMatchesParse(t *testing.T) {
	want, err := Parse([]byte(sampleDoc))
	require.NoError(t, err)

	got, err := ParseNormalized(Normalize([]byte(sampleDoc)))
	require.NoError(t, err)
	assert.Equal(t, want.Definitions(), got.Definitions())
}

func TestNormalizeIdempotent(t *testing.T) {
	once := Normalize([]byte(sampleDoc))
	assert.Equal(t, once, Normalize([]byte(once)))
	assert.NotContains(t, once, "--")
}

func TestParseErrorKinds(t *testing.T) {
	tests := []struct {
		src  string
		kind error
	}{
		{"a OPERATION ::= { ARGUMENT INTEGER", ErrUnterminatedBlock},
		{"a OPERATION ::= { ARGUMENT REAL }", ErrUnknownElement},
		{"a OPERATION ::= { ARGUMENT SEQUENCE { , } }", ErrIdentifierNotFound},
		{"a OPERATION ::= { ARGUMENT ENUMERATED { x } }", ErrMalformedValueEntry},
		{"a OPERATION ::= { CODE global:1 }", ErrMalformedCode},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			cat, err := Parse([]byte(tt.src))
			assert.Nil(t, cat)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.kind), "got %v", err)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.kind, perr.Kind)
		})
	}
}

func TestWithStrictDuplicates(t *testing.T) {
	src := []byte("x ERROR ::= { CODE local:1 }\nx ERROR ::= { CODE local:2 }")

	cat, err := Parse(src)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), *cat.Error("x").Code)

	_, err = Parse(src, WithStrictDuplicates())
	assert.ErrorIs(t, err, ErrDuplicateDefinition)
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: LevelTrace}))

	_, err := Parse([]byte(sampleDoc), WithLogger(logger))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "component=parser")
	assert.Contains(t, buf.String(), "name=sendRoutingInfo")
	assert.Contains(t, buf.String(), "msg=\"named value\"")
}
