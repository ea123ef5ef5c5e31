// Copyright 2024 The vault-plugin-secrets-stronghold Authors
// SPDX-License-Identifier: Apache-2.0

package procedure

import (
	"context"

	"github.com/lpassig/vault-plugin-secrets-stronghold/internal/crypto"
)

// Slip10Generate samples a fresh SLIP-10 Ed25519 master extended key from
// random seed material and stores the resulting key‖chaincode pair at
// Target. SizeBytes controls the width of the sampled seed, not the stored
// key — the master is always 64 bytes.
type Slip10Generate struct {
	SizeBytes int        `json:"size_bytes"`
	Target    Location   `json:"target"`
	Hint      RecordHint `json:"hint"`
}

func (Slip10Generate) procedureKind() string { return "Slip10Generate" }

func (p Slip10Generate) OutputLocation() (Location, bool) { return p.Target, true }

func (p Slip10Generate) Generate(ctx context.Context, r Runner) (Products[any], error) {
	size := p.SizeBytes
	if size <= 0 {
		size = 64
	}
	if size < 16 || size > 64 {
		return Products[any]{}, newProcErr(KindInvalidParameter, "slip10 seed size %d out of range [16,64]", size)
	}
	seed, err := crypto.GenerateRandom(size)
	if err != nil {
		return Products[any]{}, newFatalErr(KindRngFailure, err, "slip10 generate: sampling seed")
	}
	master := crypto.Slip10MasterFromSeed(seed)
	secret := master.Bytes()
	if err := r.Commit(ctx, secret, p.Target, p.Hint); err != nil {
		return Products[any]{}, err
	}
	return Products[any]{Secret: secret}, nil
}

// Slip10Derive walks a hardened derivation Chain from an input extended key
// (or, when ParentType is Slip10FromSeed, from raw seed material run
// through the master-key step first) and stores the resulting extended key
// at Target. Output is the derived chain code, which callers use to verify
// they derived the path they expected without re-deriving the private key.
// An empty Chain is a valid no-op: it stores the parent's own key and chain
// code unchanged.
type Slip10Derive struct {
	ParentType Slip10ParentType `json:"parent_type"`
	Chain      []uint32         `json:"chain"`
	Source     Location         `json:"source"`
	Target     Location         `json:"target"`
	Hint       RecordHint       `json:"hint"`
}

func (Slip10Derive) procedureKind() string { return "Slip10Derive" }

func (p Slip10Derive) OutputLocation() (Location, bool) { return p.Target, true }

func (p Slip10Derive) Derive(ctx context.Context, r Runner) (Products[any], error) {
	var products Products[any]
	err := r.WithLease(ctx, p.Source, func(lease *Lease) error {
		var root crypto.Slip10ExtendedKey
		switch p.ParentType {
		case Slip10FromSeed:
			root = crypto.Slip10MasterFromSeed(lease.Bytes())
		case Slip10FromKey:
			parsed, err := crypto.ParseSlip10ExtendedKey(lease.Bytes())
			if err != nil {
				return newProcErr(KindInputLengthMismatch, "slip10 derive: %v", err)
			}
			root = parsed
		default:
			return newProcErr(KindInvalidParameter, "slip10 derive: unknown parent type %q", p.ParentType)
		}
		for _, idx := range p.Chain {
			if idx&0x80000000 != 0 {
				return newProcErr(KindBadChain, "slip10 derive: index %d already carries the hardened bit; every index in Chain is hardened implicitly", idx)
			}
		}
		derived := crypto.Slip10Derive(root, p.Chain)
		secret := derived.Bytes()
		if err := r.Commit(ctx, secret, p.Target, p.Hint); err != nil {
			return err
		}
		chainCode := derived.ChainCode
		products = Products[any]{Secret: secret, Output: chainCode[:]}
		return nil
	})
	return products, err
}
