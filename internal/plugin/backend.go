// Copyright 2024 The vault-plugin-secrets-stronghold Authors
// SPDX-License-Identifier: Apache-2.0

// Package plugin implements a HashiCorp Vault secrets engine exposing the
// procedure engine: a dispatcher that validates and executes cryptographic
// procedures (key generation, derivation, signing, key agreement, hashing,
// AEAD, and key stretching) against secrets held in the mount's own
// storage.
package plugin

import (
	"context"
	"os"
	"strings"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/vault/sdk/framework"
	"github.com/hashicorp/vault/sdk/logical"

	"github.com/lpassig/vault-plugin-secrets-stronghold/internal/config"
)

// configStoragePath is the Vault storage path for the mount's engine
// configuration.
const configStoragePath = "config"

// bootstrapConfigPathEnv names the environment variable the plugin process
// reads at startup for the path to a YAML file holding the mount's initial
// defaults — before any mount has ever written its own config entry, and
// before the backend has a Vault storage handle to read one from.
const bootstrapConfigPathEnv = "STRONGHOLD_CONFIG_FILE"

// strongholdBackend is the backend for the procedure engine. Unlike a
// caching backend that memoises an expensive derived value, this one
// caches only its own small configuration; every procedure request opens a
// fresh runner.VaultRunner over the request's storage.
type strongholdBackend struct {
	*framework.Backend

	// cfgLock protects cachedCfg.
	cfgLock   sync.RWMutex
	cachedCfg *config.Config
}

// Factory creates a new instance of the strongholdBackend. This is the
// entry point called by Vault when the plugin is loaded.
func Factory(ctx context.Context, conf *logical.BackendConfig) (logical.Backend, error) {
	b := &strongholdBackend{}

	bootCfg, err := config.Load(os.Getenv(bootstrapConfigPathEnv))
	if err != nil {
		return nil, err
	}
	b.applyLogLevel(conf.Logger, bootCfg.LogLevel)

	b.Backend = &framework.Backend{
		BackendType:    logical.TypeLogical,
		Help:           strings.TrimSpace(backendHelp),
		InitializeFunc: b.initialize,
		Invalidate:     b.invalidate,
		Paths: framework.PathAppend(
			b.pathConfig(),
			b.pathProcedures(),
		),
	}

	if err := b.Setup(ctx, conf); err != nil {
		return nil, err
	}

	return b, nil
}

// initialize is called when the backend is first mounted or Vault starts.
// Configuration is lazily loaded on first request.
func (b *strongholdBackend) initialize(ctx context.Context, req *logical.InitializationRequest) error {
	return nil
}

// applyLogLevel sets logger's level from the given config value, if
// recognised. A nil logger or an unrecognised level is a no-op. config.Load
// (for the bootstrap file) and handleConfigWrite both run Validate before a
// level reaches here; a config entry read back from storage is not
// validated again.
func (b *strongholdBackend) applyLogLevel(logger hclog.Logger, level string) {
	if logger == nil {
		return
	}
	if lvl := hclog.LevelFromString(level); lvl != hclog.NoLevel {
		logger.SetLevel(lvl)
	}
}

// invalidate clears the cached configuration when Vault reports that the
// config key changed underneath this instance: on a standby promotion, a
// seal, or a write from another node sharing the same storage.
func (b *strongholdBackend) invalidate(ctx context.Context, key string) {
	if key == configStoragePath {
		b.cfgLock.Lock()
		b.cachedCfg = nil
		b.cfgLock.Unlock()
	}
}

// readConfig retrieves the engine configuration from Vault storage.
func (b *strongholdBackend) readConfig(ctx context.Context, storage logical.Storage) (*config.Config, error) {
	entry, err := storage.Get(ctx, configStoragePath)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, nil
	}
	var cfg config.Config
	if err := entry.DecodeJSON(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// writeConfig persists the engine configuration to Vault storage.
func (b *strongholdBackend) writeConfig(ctx context.Context, storage logical.Storage, cfg *config.Config) error {
	entry, err := logical.StorageEntryJSON(configStoragePath, cfg)
	if err != nil {
		return err
	}
	return storage.Put(ctx, entry)
}

// getConfig returns the cached engine configuration, falling back to
// config.Default() when the mount has never been configured. It uses the
// check-lock-check pattern to minimise lock contention on the common path.
func (b *strongholdBackend) getConfig(ctx context.Context, storage logical.Storage) (config.Config, error) {
	b.cfgLock.RLock()
	if b.cachedCfg != nil {
		cfg := *b.cachedCfg
		b.cfgLock.RUnlock()
		return cfg, nil
	}
	b.cfgLock.RUnlock()

	b.cfgLock.Lock()
	defer b.cfgLock.Unlock()

	if b.cachedCfg != nil {
		return *b.cachedCfg, nil
	}

	stored, err := b.readConfig(ctx, storage)
	if err != nil {
		return config.Config{}, err
	}
	if stored == nil {
		def := config.Default()
		b.cachedCfg = &def
		b.applyLogLevel(b.Logger(), def.LogLevel)
		return def, nil
	}

	b.cachedCfg = stored
	b.applyLogLevel(b.Logger(), stored.LogLevel)
	return *stored, nil
}

const backendHelp = `
The stronghold secrets engine executes cryptographic procedures against
secrets held in its own storage: key generation, hierarchical key
derivation, digital signatures, key agreement, hashing, key stretching,
and authenticated encryption.

Endpoints:
  config             - Read or write the mount's default hash and AEAD algorithms
  procedures/execute  - Execute a procedure against stored secrets
  procedures/output   - Report the location a procedure would write to, without executing it

For more information, see the plugin documentation.
`
