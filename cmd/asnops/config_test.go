package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "empty.toml", "")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
}

func TestLoadConfigValues(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ASNOPS_TEST_DIR", dir)
	writeFile(t, dir, "c.toml", `
[output]
format = "cbor"

[parse]
strict_duplicates = true
extensions = [".asn"]
paths = ["/srv/specs", "/opt/specs"]
`)

	cfg, err := LoadConfig("$ASNOPS_TEST_DIR/c.toml")
	require.NoError(t, err)
	assert.Equal(t, formatCBOR, cfg.Output.Format)
	assert.Equal(t, 2, cfg.Output.Indent)
	assert.True(t, cfg.Parse.StrictDuplicates)
	assert.Equal(t, []string{".asn"}, cfg.Parse.Extensions)
	assert.Equal(t, []string{"/srv/specs", "/opt/specs"}, cfg.Parse.Paths)
}

func TestLoadConfigInvalid(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"syntax", "[output\n", "failed to parse config"},
		{"negative indent", "[output]\nindent = -1\n", "indent must not be negative"},
		{"unknown section", "[server]\nport = 1\n", "unknown key"},
		{"wrong type", "[parse]\nstrict_duplicates = \"yes\"\n", "failed to parse config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, filepath.Base(t.Name())+".toml", tt.content)
			_, err := LoadConfig(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	t.Setenv(ConfigEnv, "")
	assert.Equal(t, "", findConfigFile(""))

	writeFile(t, dir, defaultConfigFile, "")
	assert.Equal(t, defaultConfigFile, findConfigFile(""))

	t.Setenv(ConfigEnv, "/etc/other.toml")
	assert.Equal(t, "/etc/other.toml", findConfigFile(""))
	assert.Equal(t, "explicit.toml", findConfigFile("explicit.toml"))
}
