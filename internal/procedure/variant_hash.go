// Copyright 2024 The vault-plugin-secrets-stronghold Authors
// SPDX-License-Identifier: Apache-2.0

package procedure

import "github.com/lpassig/vault-plugin-secrets-stronghold/internal/crypto"

// Hash digests Msg under Type. It is the engine's one Pure variant: it
// touches no Location and no Runner at all.
type Hash struct {
	Type HashType `json:"type"`
	Msg  []byte   `json:"msg"`
}

func (Hash) procedureKind() string { return "Hash" }

func (Hash) OutputLocation() (Location, bool) { return Location{}, false }

func (p Hash) Eval() (any, error) {
	digest, err := crypto.Sum(p.Type, p.Msg)
	if err != nil {
		return nil, newProcErr(KindInvalidParameter, "hash: %v", err)
	}
	return digest, nil
}
