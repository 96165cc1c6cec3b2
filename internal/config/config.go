// Package config loads the project's dfrs.toml (spec.md §6) with
// spf13/viper, adapted from dphaener-conduit's internal/cli/config
// package (swapping its YAML config file for TOML, per spec.md's
// "dfrs.toml" name and viper's built-in pelletier/go-toml/v2 codec).
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// FileName is the project config file's fixed name (spec.md §6).
const FileName = "dfrs.toml"

// defaultTransportPort is the platform's conventional local plugin port.
const defaultTransportPort = 59132

// ErrConfigNotFound is returned by Load when no dfrs.toml exists in dir.
// Per spec.md §6, "missing file → compilation declines to run"; callers
// surface this as a diagnostic, not a panic.
var ErrConfigNotFound = errors.New("config: dfrs.toml not found")

// Config is the decoded project configuration.
type Config struct {
	Debug     DebugConfig     `mapstructure:"debug"`
	Transport TransportConfig `mapstructure:"transport"`
}

// DebugConfig controls the diagnostic dumps spec.md §6 names:
// debug.tokens, debug.nodes, debug.compile.
type DebugConfig struct {
	Tokens  bool `mapstructure:"tokens"`
	Nodes   bool `mapstructure:"nodes"`
	Compile bool `mapstructure:"compile"`
}

// TransportConfig configures the out-of-scope "send" collaborator
// (spec.md §1, §6); the compiler core never reads it.
type TransportConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Load reads dfrs.toml from dir. It returns ErrConfigNotFound, not a
// viper error, when the file is absent.
func Load(dir string) (*Config, error) {
	v := viper.New()

	v.SetDefault("transport.host", "localhost")
	v.SetDefault("transport.port", defaultTransportPort)

	v.SetConfigName("dfrs")
	v.SetConfigType("toml")
	v.AddConfigPath(dir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil, ErrConfigNotFound
		}
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("config: read %s: %w", filepath.Join(dir, FileName), err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	return &cfg, nil
}

// Save writes a commented default config to path, for `dfrsc init`.
func (c *Config) Save(path string) error {
	const template = `# dfrs.toml — generated by "dfrsc init"

[debug]
tokens = false
nodes = false
compile = false

[transport]
host = "localhost"
port = %d
`
	port := c.Transport.Port
	if port == 0 {
		port = defaultTransportPort
	}
	return os.WriteFile(path, []byte(fmt.Sprintf(template, port)), 0o644)
}

// Default returns the configuration init writes when none exists yet.
func Default() *Config {
	return &Config{Transport: TransportConfig{Host: "localhost", Port: defaultTransportPort}}
}
