// Copyright 2024 The vault-plugin-secrets-stronghold Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the engine's mount-wide defaults: which hash and
// AEAD algorithm a procedure request gets when it omits one, and the log
// level the backend should run at. These are deployment knobs, not
// per-request parameters, so they live in a small YAML document rather than
// in the procedure wire format.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the engine's mount-wide configuration.
type Config struct {
	// DefaultHash names the HashType used when a procedure request omits
	// one. Valid values: blake2b256, sha256, sha384, sha512.
	DefaultHash string `yaml:"default_hash"`

	// DefaultAead names the AeadAlgorithm used when a procedure request
	// omits one. Valid values: aes256gcm, xchacha20poly1305.
	DefaultAead string `yaml:"default_aead"`

	// LogLevel is passed through to the backend's hclog logger: trace,
	// debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		DefaultHash: "sha256",
		DefaultAead: "aes256gcm",
		LogLevel:    "info",
	}
}

var validHashes = map[string]bool{
	"blake2b256": true,
	"sha256":     true,
	"sha384":     true,
	"sha512":     true,
}

var validAeads = map[string]bool{
	"aes256gcm":         true,
	"xchacha20poly1305": true,
}

var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true,
}

// Validate checks that every field holds a recognised value.
func (c Config) Validate() error {
	if !validHashes[c.DefaultHash] {
		return fmt.Errorf("config: unrecognised default_hash %q", c.DefaultHash)
	}
	if !validAeads[c.DefaultAead] {
		return fmt.Errorf("config: unrecognised default_aead %q", c.DefaultAead)
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("config: unrecognised log_level %q", c.LogLevel)
	}
	return nil
}

// Load reads and parses a YAML config file at path, filling in Default's
// values for any field left blank. A missing file is not an error: it
// yields Default() unchanged.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}

	// Decode over the defaults so a partial file only overrides the fields
	// it mentions.
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
