package config

import "errors"

var (
	// ErrParse wraps TOML syntax and type errors.
	ErrParse = errors.New("invalid configuration file")

	// ErrNilConfig is returned when validating a nil Config.
	ErrNilConfig = errors.New("config is nil")
)
