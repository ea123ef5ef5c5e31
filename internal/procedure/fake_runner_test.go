// Copyright 2024 The vault-plugin-secrets-stronghold Authors
// SPDX-License-Identifier: Apache-2.0

package procedure

import "context"

// fakeRunner is a minimal in-memory Runner used to exercise variant logic
// in isolation from any real vault storage.
type fakeRunner struct {
	records map[string][]byte
	leased  map[string]bool
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{records: make(map[string][]byte), leased: make(map[string]bool)}
}

func (r *fakeRunner) put(loc Location, secret []byte) {
	r.records[loc.String()] = append([]byte(nil), secret...)
}

func (r *fakeRunner) WithLease(ctx context.Context, source Location, fn func(*Lease) error) error {
	key := source.String()
	if r.leased[key] {
		return newProcErr(KindSourceLocked, "locked: %s", key)
	}
	data, ok := r.records[key]
	if !ok {
		return newProcErr(KindSourceMissing, "missing: %s", key)
	}
	r.leased[key] = true
	defer delete(r.leased, key)

	lease := NewLease(append([]byte(nil), data...))
	defer lease.Release()
	return fn(lease)
}

func (r *fakeRunner) Commit(ctx context.Context, secret []byte, target Location, hint RecordHint) error {
	r.put(target, secret)
	return nil
}

func (r *fakeRunner) Exists(ctx context.Context, loc Location) (bool, error) {
	_, ok := r.records[loc.String()]
	return ok, nil
}

func (r *fakeRunner) Remove(ctx context.Context, loc Location) error {
	delete(r.records, loc.String())
	return nil
}
