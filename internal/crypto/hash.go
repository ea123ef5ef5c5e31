// Copyright 2024 The vault-plugin-secrets-stronghold Authors
// SPDX-License-Identifier: Apache-2.0

// Package crypto wraps the concrete cryptographic primitives consumed by
// the procedure engine: hashing, MAC, KDF, AEAD, and the asymmetric key
// operations. Every function here is a thin, allocation-conscious adapter
// over the standard library or golang.org/x/crypto — none of it knows
// about vaults, locations, or leases.
package crypto

import (
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"

	"golang.org/x/crypto/blake2b"
)

// HashType is the closed set of digest algorithms the engine supports.
type HashType string

const (
	HashBlake2b256 HashType = "blake2b256"
	HashSHA256     HashType = "sha256"
	HashSHA384     HashType = "sha384"
	HashSHA512     HashType = "sha512"
)

// HashLen returns the digest length in bytes for ht, or 0 if ht is not
// recognised.
func HashLen(ht HashType) int {
	switch ht {
	case HashBlake2b256:
		return 32
	case HashSHA256:
		return sha256.Size
	case HashSHA384:
		return sha512.Size384
	case HashSHA512:
		return sha512.Size
	default:
		return 0
	}
}

// NewHasher returns a fresh hash.Hash for ht, or an error for an
// unrecognised type. Callers in this engine never need a streaming writer
// across a lease boundary — Hash is always computed on values already
// held in memory.
func NewHasher(ht HashType) (hash.Hash, error) {
	switch ht {
	case HashBlake2b256:
		return blake2b.New256(nil)
	case HashSHA256:
		return sha256.New(), nil
	case HashSHA384:
		return sha512.New384(), nil
	case HashSHA512:
		return sha512.New(), nil
	default:
		return nil, fmt.Errorf("crypto: unsupported hash type %q", ht)
	}
}

// Sum computes the digest of msg under ht.
func Sum(ht HashType, msg []byte) ([]byte, error) {
	h, err := NewHasher(ht)
	if err != nil {
		return nil, err
	}
	h.Write(msg)
	return h.Sum(nil), nil
}
