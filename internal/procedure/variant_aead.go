// Copyright 2024 The vault-plugin-secrets-stronghold Authors
// SPDX-License-Identifier: Apache-2.0

package procedure

import (
	"context"

	"github.com/lpassig/vault-plugin-secrets-stronghold/internal/crypto"
)

// AeadEncrypt seals Plaintext under the key at Source, Nonce, and
// associated data Ad. Output is tag‖ciphertext — the tag always comes
// first, matching internal/crypto's convention. A User: the key is read,
// never rewritten.
type AeadEncrypt struct {
	Algorithm AeadAlgorithm `json:"algorithm"`
	Source    Location      `json:"source"`
	Nonce     []byte        `json:"nonce"`
	Ad        []byte        `json:"ad"`
	Plaintext []byte        `json:"plaintext"`
}

func (AeadEncrypt) procedureKind() string { return "AeadEncrypt" }

func (AeadEncrypt) OutputLocation() (Location, bool) { return Location{}, false }

func (p AeadEncrypt) Use(ctx context.Context, r Runner) (any, error) {
	var out []byte
	err := r.WithLease(ctx, p.Source, func(lease *Lease) error {
		sealed, err := crypto.AeadEncrypt(p.Algorithm, lease.Bytes(), p.Nonce, p.Ad, p.Plaintext)
		if err != nil {
			return newProcErr(KindInvalidParameter, "aead encrypt: %v", err)
		}
		out = sealed
		return nil
	})
	return out, err
}

// AeadDecrypt opens Ciphertext (with its detached Tag) under the key at
// Source, Nonce, and associated data Ad. A failed tag check is reported as
// KindAuthenticationFailed and is fatal: there is no meaningful retry of
// the identical request.
type AeadDecrypt struct {
	Algorithm  AeadAlgorithm `json:"algorithm"`
	Source     Location      `json:"source"`
	Nonce      []byte        `json:"nonce"`
	Ad         []byte        `json:"ad"`
	Ciphertext []byte        `json:"ciphertext"`
	Tag        []byte        `json:"tag"`
}

func (AeadDecrypt) procedureKind() string { return "AeadDecrypt" }

func (AeadDecrypt) OutputLocation() (Location, bool) { return Location{}, false }

func (p AeadDecrypt) Use(ctx context.Context, r Runner) (any, error) {
	var out []byte
	err := r.WithLease(ctx, p.Source, func(lease *Lease) error {
		plaintext, err := crypto.AeadDecrypt(p.Algorithm, lease.Bytes(), p.Nonce, p.Ad, p.Ciphertext, p.Tag)
		if err != nil {
			return newFatalErr(KindAuthenticationFailed, err, "aead decrypt: tag check failed")
		}
		out = plaintext
		return nil
	})
	return out, err
}
