// Copyright 2024 The vault-plugin-secrets-stronghold Authors
// SPDX-License-Identifier: Apache-2.0

// Package runner adapts HashiCorp Vault's logical.Storage into the
// procedure engine's Runner contract: it resolves a Location to a stored
// record, hands the plaintext to the engine as a guarded Lease, tracks
// which records are currently leased to prevent re-entrant access, and
// commits produced secrets back to storage.
package runner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/armon/go-metrics"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/vault/sdk/logical"

	"github.com/lpassig/vault-plugin-secrets-stronghold/internal/procedure"
)

// storagePrefix namespaces every record this engine writes, keeping it out
// of the way of a mount's own config/ or policy storage.
const storagePrefix = "records/"

// storedRecord is the on-disk shape of a vault record: the secret payload
// plus its non-secret hint.
type storedRecord struct {
	Secret []byte               `json:"secret"`
	Hint   procedure.RecordHint `json:"hint"`
}

// VaultRunner implements procedure.Runner against a Vault backend's
// logical.Storage. One VaultRunner is created per request; it is not
// meant to outlive the request that owns it, so its lease-tracking map
// never needs to be pruned beyond that lifetime.
type VaultRunner struct {
	id      string
	storage logical.Storage
	logger  hclog.Logger

	mu     sync.Mutex
	leased map[string]struct{}
}

// New builds a VaultRunner over storage. logger may be nil, in which case a
// no-op logger is used. Each runner is tagged with a random id so its log
// lines can be correlated across the WithLease/Commit calls a single
// request makes, without threading a request ID down from the caller.
func New(storage logical.Storage, logger hclog.Logger) *VaultRunner {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &VaultRunner{
		id:      uuid.NewString(),
		storage: storage,
		logger:  logger,
		leased:  make(map[string]struct{}),
	}
}

func storagePath(loc procedure.Location) string {
	return fmt.Sprintf("%s%s/%s", storagePrefix, loc.VaultID, loc.RecordID)
}

// WithLease implements procedure.Runner.
func (r *VaultRunner) WithLease(ctx context.Context, source procedure.Location, fn func(*procedure.Lease) error) error {
	key := source.String()

	r.mu.Lock()
	if _, locked := r.leased[key]; locked {
		r.mu.Unlock()
		return &procedure.ProcedureError{Kind: procedure.KindSourceLocked, Msg: fmt.Sprintf("record %s is already leased on this runner", key)}
	}
	r.leased[key] = struct{}{}
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		delete(r.leased, key)
		r.mu.Unlock()
	}()

	start := time.Now()
	defer metrics.MeasureSince([]string{"stronghold", "runner", "with_lease"}, start)

	entry, err := r.storage.Get(ctx, storagePath(source))
	if err != nil {
		metrics.IncrCounter([]string{"stronghold", "runner", "storage_read_error"}, 1)
		return &procedure.ProcedureError{Kind: procedure.KindSourceMissing, Msg: fmt.Sprintf("reading %s: %v", key, err)}
	}
	if entry == nil {
		metrics.IncrCounter([]string{"stronghold", "runner", "source_missing"}, 1)
		return &procedure.ProcedureError{Kind: procedure.KindSourceMissing, Msg: fmt.Sprintf("no record at %s", key)}
	}

	var rec storedRecord
	if err := entry.DecodeJSON(&rec); err != nil {
		return &procedure.ProcedureError{Kind: procedure.KindSourceMissing, Msg: fmt.Sprintf("decoding record at %s: %v", key, err)}
	}

	lease := procedure.NewLease(rec.Secret)
	defer lease.Release()

	if err := fn(lease); err != nil {
		return err
	}
	return nil
}

// Commit implements procedure.Runner.
func (r *VaultRunner) Commit(ctx context.Context, secret []byte, target procedure.Location, hint procedure.RecordHint) error {
	rec := storedRecord{Secret: secret, Hint: hint}
	entry, err := logical.StorageEntryJSON(storagePath(target), &rec)
	if err != nil {
		return &procedure.ProcedureError{Kind: procedure.KindTargetWriteFailed, Msg: fmt.Sprintf("encoding record for %s: %v", target, err)}
	}
	if err := r.storage.Put(ctx, entry); err != nil {
		metrics.IncrCounter([]string{"stronghold", "runner", "storage_write_error"}, 1)
		return &procedure.ProcedureError{Kind: procedure.KindTargetWriteFailed, Msg: fmt.Sprintf("writing record at %s: %v", target, err)}
	}
	r.logger.Debug("committed record", "runner", r.id, "location", target.String())
	return nil
}

// Exists implements procedure.Runner.
func (r *VaultRunner) Exists(ctx context.Context, loc procedure.Location) (bool, error) {
	entry, err := r.storage.Get(ctx, storagePath(loc))
	if err != nil {
		return false, err
	}
	return entry != nil, nil
}

// Remove implements procedure.Runner.
func (r *VaultRunner) Remove(ctx context.Context, loc procedure.Location) error {
	return r.storage.Delete(ctx, storagePath(loc))
}
