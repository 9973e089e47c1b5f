package main

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/BurntSushi/toml"
)

// ConfigEnv names the environment variable that points at a configuration
// file.
const ConfigEnv = "ASNOPS_CONFIG"

const defaultConfigFile = "asnops.toml"

// Config holds the command-line configuration.
type Config struct {
	Output OutputConfig `toml:"output"`
	Parse  ParseConfig  `toml:"parse"`
}

// OutputConfig holds catalog output settings.
type OutputConfig struct {
	Format string `toml:"format"`
	Indent int    `toml:"indent"`
}

// ParseConfig holds parsing and loading settings.
type ParseConfig struct {
	StrictDuplicates bool     `toml:"strict_duplicates"`
	Extensions       []string `toml:"extensions"`
	Paths            []string `toml:"paths"`
}

func defaultConfig() Config {
	return Config{
		Output: OutputConfig{
			Format: formatJSON,
			Indent: 2,
		},
	}
}

// LoadConfig reads a TOML configuration file over the defaults. Unknown
// keys are rejected.
func LoadConfig(path string) (Config, error) {
	path = os.ExpandEnv(path)

	cfg := defaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	if !slices.Contains(formats, c.Output.Format) {
		return fmt.Errorf("unknown output format %q", c.Output.Format)
	}
	if c.Output.Indent < 0 {
		return errors.New("indent must not be negative")
	}
	return nil
}

// findConfigFile returns the configuration file to read: the explicit
// path, then $ASNOPS_CONFIG, then ./asnops.toml if it exists. An empty
// result means built-in defaults.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(ConfigEnv); env != "" {
		return env
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile
	}
	return ""
}
