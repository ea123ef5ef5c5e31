// Copyright 2024 The vault-plugin-secrets-stronghold Authors
// SPDX-License-Identifier: Apache-2.0

package runner

import (
	"context"
	"testing"

	"github.com/hashicorp/vault/sdk/logical"

	"github.com/lpassig/vault-plugin-secrets-stronghold/internal/procedure"
)

func newTestRunner(t *testing.T) *VaultRunner {
	t.Helper()
	return New(&logical.InmemStorage{}, nil)
}

func TestNewAssignsDistinctRunnerIDs(t *testing.T) {
	a := newTestRunner(t)
	b := newTestRunner(t)
	if a.id == "" || b.id == "" {
		t.Fatal("expected a non-empty runner id")
	}
	if a.id == b.id {
		t.Fatalf("expected distinct runner ids, both got %q", a.id)
	}
}

func TestWithLeaseSourceMissing(t *testing.T) {
	r := newTestRunner(t)
	loc := procedure.NewLocation("v1", "absent")

	err := r.WithLease(context.Background(), loc, func(l *procedure.Lease) error {
		t.Fatal("fn should not run for a missing record")
		return nil
	})

	if err == nil {
		t.Fatal("expected an error for a missing source")
	}
	perr, ok := err.(*procedure.ProcedureError)
	if !ok || perr.Kind != procedure.KindSourceMissing {
		t.Fatalf("got %v, want KindSourceMissing ProcedureError", err)
	}
}

func TestCommitThenWithLeaseRoundTrips(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()
	target := procedure.NewLocation("v1", "seed")
	hint, _ := procedure.NewRecordHint("seed")

	secret := []byte("the-secret-bytes")
	if err := r.Commit(ctx, secret, target, hint); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	var got []byte
	err := r.WithLease(ctx, target, func(l *procedure.Lease) error {
		got = append([]byte(nil), l.Bytes()...)
		return nil
	})
	if err != nil {
		t.Fatalf("WithLease: %v", err)
	}
	if string(got) != string(secret) {
		t.Fatalf("got %q, want %q", got, secret)
	}

	exists, err := r.Exists(ctx, target)
	if err != nil || !exists {
		t.Fatalf("Exists: %v, %v", exists, err)
	}

	if err := r.Remove(ctx, target); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	exists, err = r.Exists(ctx, target)
	if err != nil || exists {
		t.Fatalf("expected record removed, exists=%v err=%v", exists, err)
	}
}

func TestWithLeaseRejectsReentrantLock(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()
	loc := procedure.NewLocation("v1", "locked")
	hint, _ := procedure.NewRecordHint("locked")
	if err := r.Commit(ctx, []byte("data"), loc, hint); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	outerErr := r.WithLease(ctx, loc, func(l *procedure.Lease) error {
		innerErr := r.WithLease(ctx, loc, func(*procedure.Lease) error { return nil })
		if innerErr == nil {
			t.Fatal("expected re-entrant WithLease on the same location to fail")
		}
		return nil
	})
	if outerErr != nil {
		t.Fatalf("outer WithLease: %v", outerErr)
	}
}

func TestLeaseZeroisedAfterWithLease(t *testing.T) {
	r := newTestRunner(t)
	ctx := context.Background()
	loc := procedure.NewLocation("v1", "zero-me")
	hint, _ := procedure.NewRecordHint("z")
	if err := r.Commit(ctx, []byte("sensitive"), loc, hint); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	var captured *procedure.Lease
	err := r.WithLease(ctx, loc, func(l *procedure.Lease) error {
		captured = l
		return nil
	})
	if err != nil {
		t.Fatalf("WithLease: %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("expected Bytes() to panic on a released lease")
		}
	}()
	captured.Bytes()
}
