// Copyright 2024 The vault-plugin-secrets-stronghold Authors
// SPDX-License-Identifier: Apache-2.0

package plugin

import (
	"context"
	"testing"

	"github.com/hashicorp/vault/sdk/logical"

	"github.com/lpassig/vault-plugin-secrets-stronghold/internal/procedure"
)

func newTestBackend(t *testing.T) (*strongholdBackend, logical.Storage) {
	t.Helper()
	conf := logical.TestBackendConfig()
	conf.StorageView = &logical.InmemStorage{}

	b, err := Factory(context.Background(), conf)
	if err != nil {
		t.Fatalf("Factory: %v", err)
	}
	backend, ok := b.(*strongholdBackend)
	if !ok {
		t.Fatalf("got %T, want *strongholdBackend", b)
	}
	return backend, conf.StorageView
}

func TestHandleExecuteProcedureHash(t *testing.T) {
	b, storage := newTestBackend(t)
	data, err := procedure.MarshalProcedure(procedure.Hash{Type: procedure.HashSHA256, Msg: []byte("hello")})
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
	if resp == nil || resp.Data["type"] != "Hash" {
		t.Fatalf("got %+v", resp)
	}
}

func TestHandleExecuteProcedureRejectsMissingField(t *testing.T) {
	b, storage := newTestBackend(t)
	req := &logical.Request{
		Operation: logical.CreateOperation,
		Path:      "procedures/execute",
		Storage:   storage,
		Data:      map[string]interface{}{},
	}
	_, err := b.HandleRequest(context.Background(), req)
	if err == nil {
		t.Fatal("expected an error for a missing procedure field")
	}
}

func TestHandleProcedureOutputReportsLocation(t *testing.T) {
	b, storage := newTestBackend(t)
	hint, _ := procedure.NewRecordHint("h")
	target := procedure.NewLocation("v1", "target")
	data, err := procedure.MarshalProcedure(procedure.Slip10Generate{Target: target, Hint: hint})
	if err != nil {
		t.Fatalf("MarshalProcedure: %v", err)
	}

	req := &logical.Request{
		Operation: logical.CreateOperation,
		Path:      "procedures/output",
		Storage:   storage,
		Data:      map[string]interface{}{"procedure": string(data)},
	}
	resp, err := b.HandleRequest(context.Background(), req)
	if err != nil {
		t.Fatalf("HandleRequest: %v", err)
	}
	if resp.Data["has_output"] != true || resp.Data["record_id"] != "target" {
		t.Fatalf("got %+v", resp.Data)
	}
}

func TestConfigReadWriteRoundTrips(t *testing.T) {
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

	readReq := &logical.Request{
		Operation: logical.ReadOperation,
		Path:      "config",
		Storage:   storage,
	}
	resp, err := b.HandleRequest(context.Background(), readReq)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	if resp.Data["default_hash"] != "sha512" {
		t.Fatalf("got %+v", resp.Data)
	}
}
