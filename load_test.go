package asnops

import (
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMergesInPathOrder(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.asn": "x OPERATION ::= { CODE local:1 }\ny ERROR ::= { CODE local:2 }",
		"b.asn": "z ERROR ::= { CODE local:3 }\nx OPERATION ::= { CODE local:4 }",
	})

	cat, err := Load(context.Background(), MustDir(dir))
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y", "z"}, cat.Names())
	assert.Equal(t, uint32(4), *cat.Operation("x").Code)
}

func TestLoadStrictDuplicatesAcrossDocuments(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.asn": "x ERROR ::= { CODE local:1 }",
		"b.asn": "x ERROR ::= { CODE local:2 }",
	})

	_, err := Load(context.Background(), MustDir(dir), WithStrictDuplicates())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDuplicateDefinition)
	assert.Contains(t, err.Error(), "b.asn")
}

func TestLoadFailingDocument(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"good.asn": "x ERROR ::= { CODE local:1 }",
		"bad.asn":  "y OPERATION ::= { ARGUMENT INTEGER",
	})

	cat, err := Load(context.Background(), MustDir(dir))
	assert.Nil(t, cat)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnterminatedBlock)
	assert.Contains(t, err.Error(), filepath.Join(dir, "bad.asn"))

	var perr *ParseError
	assert.True(t, errors.As(err, &perr))
}

func TestLoadSkipsNonSpecContent(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"ops.asn":    "x ERROR ::= { CODE local:1 }",
		"README.txt": "notes about OPERATION blocks {",
		"blob":       "a\x00b ::= {",
		"empty.asn":  "",
	})

	cat, err := Load(context.Background(), MustDir(dir))
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, cat.Names())
}

func TestLoadNoHeuristic(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"ops.asn": "x ERROR ::= { CODE local:1 }\n-- \x00 trailer",
	})

	cat, err := Load(context.Background(), MustDir(dir))
	require.NoError(t, err)
	assert.Zero(t, cat.Len())

	cat, err = Load(context.Background(), MustDir(dir, WithNoHeuristic()))
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, cat.Names())
}

func TestLoadNoSources(t *testing.T) {
	_, err := Load(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoSources)

	_, err = LoadNamed(context.Background(), []string{"x"}, nil)
	assert.ErrorIs(t, err, ErrNoSources)
}

func TestLoadEmptyDir(t *testing.T) {
	cat, err := Load(context.Background(), MustDir(t.TempDir()))
	require.NoError(t, err)
	assert.Zero(t, cat.Len())
}

func TestLoadContextCancellation(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.asn": "x ERROR ::= { CODE local:1 }",
		"b.asn": "y ERROR ::= { CODE local:2 }",
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, MustDir(dir))
	assert.ErrorIs(t, err, context.Canceled)

	_, err = LoadNamed(ctx, []string{"a"}, MustDir(dir))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"map/ops.asn":  {Data: []byte("send OPERATION ::= { ARGUMENT NULL CODE local:9 }")},
		"map/errs.asn": {Data: []byte("fail ERROR ::= { CODE local:1 }")},
	}

	cat, err := Load(context.Background(), FS("embedded", fsys))
	require.NoError(t, err)
	assert.Equal(t, []string{"fail", "send"}, cat.Names())
}

func TestLoadNamed(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"ops.asn":   "send OPERATION ::= { CODE local:9 }",
		"errs.asn":  "fail ERROR ::= { CODE local:1 }",
		"other.asn": "other ERROR ::= { CODE local:2 }",
	})

	cat, err := LoadNamed(context.Background(), []string{"ops", "errs"}, MustDir(dir))
	require.NoError(t, err)
	assert.Equal(t, []string{"send", "fail"}, cat.Names())

	_, err = LoadNamed(context.Background(), []string{"missing"}, MustDir(dir))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoadWithSearchPaths(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"ops.asn":        "send OPERATION ::= { CODE local:9 }",
		"vendor/ext.asn": "extend OPERATION ::= { CODE local:10 }",
	})
	t.Setenv(PathEnv, dir)

	cat, err := Load(context.Background(), nil, WithSearchPaths())
	require.NoError(t, err)
	assert.Equal(t, []string{"send", "extend"}, cat.Names())
}

func TestLoadDirTreeSameNamedFiles(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"cap/ops.asn": "capOp OPERATION ::= { CODE local:1 }",
		"map/ops.asn": "mapOp OPERATION ::= { CODE local:2 }",
		"map/ops.txt": "mapNote ERROR ::= { CODE local:3 }",
	})

	cat, err := Load(context.Background(), MustDirTree(dir))
	require.NoError(t, err)
	assert.Equal(t, []string{"capOp", "mapOp", "mapNote"}, cat.Names())
}

func TestLoadFSSameNamedFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"a/ops.asn": {Data: []byte("aOp OPERATION ::= { CODE local:1 }")},
		"b/ops.txt": {Data: []byte("bOp OPERATION ::= { CODE local:2 }")},
	}

	cat, err := Load(context.Background(), FS("mem", fsys))
	require.NoError(t, err)
	assert.Equal(t, []string{"aOp", "bOp"}, cat.Names())
}

func TestLooksLikeSpecContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"definition", "x ERROR ::= {}", true},
		{"no assignment", "x ERROR {}", false},
		{"empty", "", false},
		{"binary", "\x00\x01::=", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, looksLikeSpecContent([]byte(tt.content)))
		})
	}
}
