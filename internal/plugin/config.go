// Copyright 2024 The vault-plugin-secrets-stronghold Authors
// SPDX-License-Identifier: Apache-2.0

package plugin

import (
	"context"

	"github.com/hashicorp/vault/sdk/framework"
	"github.com/hashicorp/vault/sdk/logical"

	"github.com/lpassig/vault-plugin-secrets-stronghold/internal/config"
)

// pathConfig returns the path configuration for the "config" endpoint.
func (b *strongholdBackend) pathConfig() []*framework.Path {
	return []*framework.Path{
		{
			Pattern: "config",
			Fields: map[string]*framework.FieldSchema{
				"default_hash": {
					Type:        framework.TypeString,
					Description: "Hash algorithm used when a procedure request omits one: blake2b256, sha256, sha384, sha512.",
					Default:     config.Default().DefaultHash,
				},
				"default_aead": {
					Type:        framework.TypeString,
					Description: "AEAD algorithm used when a procedure request omits one: aes256gcm, xchacha20poly1305.",
					Default:     config.Default().DefaultAead,
				},
				"log_level": {
					Type:        framework.TypeString,
					Description: "Log level for the backend's logger: trace, debug, info, warn, error.",
					Default:     config.Default().LogLevel,
				},
			},
			Operations: map[logical.Operation]framework.OperationHandler{
				logical.ReadOperation: &framework.PathOperation{
					Callback: b.handleConfigRead,
					Summary:  "Read the mount's engine configuration.",
				},
				logical.CreateOperation: &framework.PathOperation{
					Callback: b.handleConfigWrite,
					Summary:  "Set the mount's engine configuration.",
				},
				logical.UpdateOperation: &framework.PathOperation{
					Callback: b.handleConfigWrite,
					Summary:  "Update the mount's engine configuration.",
				},
			},
			ExistenceCheck:  b.configExists,
			HelpSynopsis:    pathConfigHelpSyn,
			HelpDescription: pathConfigHelpDesc,
		},
	}
}

func (b *strongholdBackend) handleConfigRead(ctx context.Context, req *logical.Request, _ *framework.FieldData) (*logical.Response, error) {
	cfg, err := b.getConfig(ctx, req.Storage)
	if err != nil {
		return nil, err
	}
	return &logical.Response{
		Data: map[string]interface{}{
			"default_hash": cfg.DefaultHash,
			"default_aead": cfg.DefaultAead,
			"log_level":    cfg.LogLevel,
		},
	}, nil
}

func (b *strongholdBackend) handleConfigWrite(ctx context.Context, req *logical.Request, data *framework.FieldData) (*logical.Response, error) {
	cfg := config.Config{
		DefaultHash: data.Get("default_hash").(string),
		DefaultAead: data.Get("default_aead").(string),
		LogLevel:    data.Get("log_level").(string),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := b.writeConfig(ctx, req.Storage, &cfg); err != nil {
		return nil, err
	}

	b.cfgLock.Lock()
	b.cachedCfg = &cfg
	b.cfgLock.Unlock()
	b.applyLogLevel(b.Logger(), cfg.LogLevel)

	return &logical.Response{
		Data: map[string]interface{}{
			"default_hash": cfg.DefaultHash,
			"default_aead": cfg.DefaultAead,
			"log_level":    cfg.LogLevel,
		},
	}, nil
}

// configExists checks if configuration already exists (for ExistenceCheck).
func (b *strongholdBackend) configExists(ctx context.Context, req *logical.Request, _ *framework.FieldData) (bool, error) {
	entry, err := req.Storage.Get(ctx, configStoragePath)
	if err != nil {
		return false, err
	}
	return entry != nil, nil
}

const pathConfigHelpSyn = `Configure the mount's default hash and AEAD algorithms.`

const pathConfigHelpDesc = `
This endpoint reads or writes the mount-wide defaults applied when a
procedure request omits an explicit algorithm choice: default_hash for
Hash/Hmac/Hkdf/Pbkdf2Hmac, and default_aead for AeadEncrypt/AeadDecrypt.

These are deployment knobs, not cryptographic parameters of any individual
procedure — every request may still name its own algorithm explicitly.
`
