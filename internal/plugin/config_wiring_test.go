// Copyright 2024 The vault-plugin-secrets-stronghold Authors
// SPDX-License-Identifier: Apache-2.0

package plugin

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/vault/sdk/logical"

	"github.com/lpassig/vault-plugin-secrets-stronghold/internal/procedure"
)

func TestApplyLogLevelSetsRecognisedLevel(t *testing.T) {
	b := &strongholdBackend{}
	logger := hclog.New(&hclog.LoggerOptions{Level: hclog.Info})

	b.applyLogLevel(logger, "warn")
	if logger.GetLevel() != hclog.Warn {
		t.Fatalf("got %v, want hclog.Warn", logger.GetLevel())
	}
}

func TestApplyLogLevelIgnoresUnrecognisedLevel(t *testing.T) {
	b := &strongholdBackend{}
	logger := hclog.New(&hclog.LoggerOptions{Level: hclog.Info})

	b.applyLogLevel(logger, "not-a-level")
	if logger.GetLevel() != hclog.Info {
		t.Fatalf("got %v, want the level left unchanged at hclog.Info", logger.GetLevel())
	}
}

func TestApplyLogLevelToleratesNilLogger(t *testing.T) {
	b := &strongholdBackend{}
	b.applyLogLevel(nil, "debug")
}

func TestConfigWriteAppliesLogLevel(t *testing.T) {
	b, storage := newTestBackend(t)

	writeReq := &logical.Request{
		Operation: logical.UpdateOperation,
		Path:      "config",
		Storage:   storage,
		Data: map[string]interface{}{
			"default_hash": "sha512",
			"default_aead": "xchacha20poly1305",
			"log_level":    "debug",
		},
	}
	if _, err := b.HandleRequest(context.Background(), writeReq); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if got := b.Logger().GetLevel(); got != hclog.Debug {
		t.Fatalf("got logger level %v, want hclog.Debug", got)
	}
}

func TestFactoryAppliesBootstrapConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stronghold.yaml")
	if err := os.WriteFile(path, []byte("log_level: warn\ndefault_hash: sha384\n"), 0o600); err != nil {
		t.Fatalf("writing bootstrap config: %v", err)
	}
	t.Setenv(bootstrapConfigPathEnv, path)

	conf := logical.TestBackendConfig()
	conf.StorageView = &logical.InmemStorage{}

	raw, err := Factory(context.Background(), conf)
	if err != nil {
		t.Fatalf("Factory: %v", err)
	}
	b, ok := raw.(*strongholdBackend)
	if !ok {
		t.Fatalf("got %T, want *strongholdBackend", raw)
	}
	if got := b.Logger().GetLevel(); got != hclog.Warn {
		t.Fatalf("got logger level %v, want hclog.Warn from the bootstrap file", got)
	}
}

func TestHandleExecuteProcedureAppliesConfiguredDefaultHash(t *testing.T) {
	b, storage := newTestBackend(t)

	writeReq := &logical.Request{
		Operation: logical.UpdateOperation,
		Path:      "config",
		Storage:   storage,
		Data: map[string]interface{}{
			"default_hash": "sha512",
			"default_aead": "aes256gcm",
			"log_level":    "info",
		},
	}
	if _, err := b.HandleRequest(context.Background(), writeReq); err != nil {
		t.Fatalf("write config: %v", err)
	}

	data, err := procedure.MarshalProcedure(procedure.Hash{Msg: []byte("hello")})
	if err != nil {
		t.Fatalf("MarshalProcedure: %v", err)
	}

	req := &logical.Request{
		Operation: logical.CreateOperation,
		Path:      "procedures/execute",
		Storage:   storage,
		Data:      map[string]interface{}{"procedure": string(data)},
	}
	resp, err := b.HandleRequest(context.Background(), req)
	if err != nil {
		t.Fatalf("HandleRequest: %v", err)
	}

	want, err := procedure.Execute(context.Background(), nil, procedure.Hash{Type: procedure.HashSHA512, Msg: []byte("hello")})
	if err != nil {
		t.Fatalf("computing expected digest: %v", err)
	}
	if resp.Data["output"] == nil || string(resp.Data["output"].([]byte)) != string(want.([]byte)) {
		t.Fatalf("got %+v, want a digest computed under the configured default sha512", resp.Data)
	}
}
