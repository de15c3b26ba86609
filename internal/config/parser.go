package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Parser reads TOML configuration files.
type Parser struct {
	// Strict rejects keys the Config does not define.
	Strict bool
	// ExpandEnv expands ${VAR}, ${VAR:-default} and $VAR in string values.
	ExpandEnv bool
}

// NewParser creates a strict Parser that expands environment variables.
func NewParser() *Parser {
	return &Parser{Strict: true, ExpandEnv: true}
}

// ParseFile reads and parses a configuration file.
func (p *Parser) ParseFile(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	cfg, err := p.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseFromFS reads and parses a configuration file from fsys.
func (p *Parser) ParseFromFS(fsys fs.FS, path string) (*Config, error) {
	content, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config from FS %s: %w", path, err)
	}
	return p.Parse(content)
}

// ParseReader parses configuration from an io.Reader.
func (p *Parser) ParseReader(r io.Reader) (*Config, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return p.Parse(content)
}

// Parse decodes content over DefaultConfig.
func (p *Parser) Parse(content []byte) (*Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(content))
	if p.Strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(&cfg); err != nil {
		return nil, describe(err)
	}
	if p.ExpandEnv {
		ExpandEnvConfig(&cfg)
	}
	return &cfg, nil
}

// describe adds the position go-toml reports to a decode error.
func describe(err error) error {
	var decodeErr *toml.DecodeError
	if errors.As(err, &decodeErr) {
		row, col := decodeErr.Position()
		return fmt.Errorf("%w: line %d column %d: %v", ErrParse, row, col, decodeErr)
	}
	var strictErr *toml.StrictMissingError
	if errors.As(err, &strictErr) {
		return fmt.Errorf("%w: unknown keys:\n%s", ErrParse, strictErr.String())
	}
	return fmt.Errorf("%w: %v", ErrParse, err)
}
