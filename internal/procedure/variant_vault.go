// Copyright 2024 The vault-plugin-secrets-stronghold Authors
// SPDX-License-Identifier: Apache-2.0

package procedure

import "context"

// CopyRecord moves a secret from Source to Target unchanged, re-encoding
// nothing. It is the Deriver variant with no cryptographic primitive at
// all — the primitive is the identity function. It refuses to run if
// Target already holds a record, using the runner's Exists pre-check
// rather than silently overwriting it.
type CopyRecord struct {
	Source Location   `json:"source"`
	Target Location   `json:"target"`
	Hint   RecordHint `json:"hint"`
}

func (CopyRecord) procedureKind() string { return "CopyRecord" }

// OutputLocation reports Target: CopyRecord always writes a secret.
func (p CopyRecord) OutputLocation() (Location, bool) { return p.Target, true }

func (p CopyRecord) Derive(ctx context.Context, r Runner) (Products[any], error) {
	exists, err := r.Exists(ctx, p.Target)
	if err != nil {
		return Products[any]{}, newProcErr(KindTargetWriteFailed, "copy record: checking target %s: %v", p.Target, err)
	}
	if exists {
		return Products[any]{}, newProcErr(KindTargetWriteFailed, "copy record: target %s already holds a record", p.Target)
	}

	var products Products[any]
	err = r.WithLease(ctx, p.Source, func(lease *Lease) error {
		secret := append([]byte(nil), lease.Bytes()...)
		if err := r.Commit(ctx, secret, p.Target, p.Hint); err != nil {
			return err
		}
		products = Products[any]{Secret: secret}
		return nil
	})
	return products, err
}
