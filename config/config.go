/*
Package config holds the configuration of the cnfc tool and its HTTP service.

Configuration is read from a YAML file. Every value has a default, so a file
needs to mention only the values it changes:

    server:
      addr: ":8080"
      max_body_bytes: 1048576
    tracing:
      level: Info
    engine:
      max_productions: 100000
      max_body_length: 256
      terminal_prefix: T
      chain_prefix: X
      prune: false

Environment variables CNFC_ADDR and CNFC_TRACE override the server address
and the trace level.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/npillmayer/chomsky/cnf"
	"github.com/npillmayer/schuko/tracing"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Tracing TracingConfig `yaml:"tracing"`
	Engine  EngineConfig  `yaml:"engine"`
}

// ServerConfig configures the HTTP service.
type ServerConfig struct {
	Addr         string `yaml:"addr"`
	MaxBodyBytes int64  `yaml:"max_body_bytes"` // upper bound for request bodies
}

// TracingConfig configures tracing.
type TracingConfig struct {
	Level string `yaml:"level"` // Debug, Info or Error
}

// EngineConfig configures the CNF converter.
type EngineConfig struct {
	MaxProductions int    `yaml:"max_productions"`
	MaxBodyLength  int    `yaml:"max_body_length"`
	TerminalPrefix string `yaml:"terminal_prefix"`
	ChainPrefix    string `yaml:"chain_prefix"`
	Prune          bool   `yaml:"prune"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:         ":8080",
			MaxBodyBytes: 1 << 20,
		},
		Tracing: TracingConfig{
			Level: "Info",
		},
		Engine: EngineConfig{
			MaxProductions: cnf.DefaultLimits.MaxProductions,
			MaxBodyLength:  cnf.DefaultLimits.MaxBodyLength,
			TerminalPrefix: cnf.DefaultTerminalPrefix,
			ChainPrefix:    cnf.DefaultChainPrefix,
		},
	}
}

// Load loads the configuration from a YAML file. An empty path or a missing
// file yield the defaults. Environment overrides are applied in any case.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err == nil {
			if err := cfg.decode(bytes.NewReader(data)); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		}
	}
	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read reads a configuration from r, on top of the defaults.
// Environment variables are not consulted.
func Read(r io.Reader) (*Config, error) {
	cfg := Default()
	if err := cfg.decode(r); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Write writes the configuration as YAML.
func (c *Config) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

func (c *Config) applyEnvOverrides() {
	if addr := os.Getenv("CNFC_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if level := os.Getenv("CNFC_TRACE"); level != "" {
		c.Tracing.Level = level
	}
}

// Validate checks the configuration and reports all problems found.
func (c *Config) Validate() error {
	var errs error
	if c.Server.Addr == "" {
		errs = multierr.Append(errs, errors.New("server.addr must not be empty"))
	}
	if c.Server.MaxBodyBytes <= 0 {
		errs = multierr.Append(errs, errors.New("server.max_body_bytes must be positive"))
	}
	switch strings.ToLower(c.Tracing.Level) {
	case "debug", "info", "error":
	default:
		errs = multierr.Append(errs, fmt.Errorf("unknown trace level %q", c.Tracing.Level))
	}
	if c.Engine.MaxProductions < 0 || c.Engine.MaxBodyLength < 0 {
		errs = multierr.Append(errs, errors.New("engine limits must not be negative"))
	}
	if errs != nil {
		return fmt.Errorf("invalid configuration: %w", errs)
	}
	return nil
}

// TraceLevel returns the configured trace level.
func (c *Config) TraceLevel() tracing.TraceLevel {
	return tracing.TraceLevelFromString(c.Tracing.Level)
}

// Limits returns the configured engine limits.
func (c *Config) Limits() cnf.Limits {
	return cnf.Limits{
		MaxProductions: c.Engine.MaxProductions,
		MaxBodyLength:  c.Engine.MaxBodyLength,
	}
}

// Converter creates a CNF converter as configured.
func (c *Config) Converter() *cnf.Converter {
	return cnf.NewConverter(
		cnf.WithLimits(c.Limits()),
		cnf.WithTerminalPrefix(c.Engine.TerminalPrefix),
		cnf.WithChainPrefix(c.Engine.ChainPrefix),
		cnf.WithPruning(c.Engine.Prune),
	)
}
