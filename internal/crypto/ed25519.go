// Copyright 2024 The vault-plugin-secrets-stronghold Authors
// SPDX-License-Identifier: Apache-2.0

package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
)

// Ed25519SeedLen is the width of the canonical secret-key encoding this
// engine stores: the 32-byte seed, not the 64-byte expanded private key
// the stdlib's ed25519.PrivateKey type uses internally.
const Ed25519SeedLen = ed25519.SeedSize

// GenerateEd25519Seed samples a fresh 32-byte Ed25519 seed.
func GenerateEd25519Seed() ([]byte, error) {
	seed := make([]byte, Ed25519SeedLen)
	if _, err := rand.Read(seed); err != nil {
		return nil, fmt.Errorf("crypto: ed25519 seed: %w", err)
	}
	return seed, nil
}

// Ed25519PublicKey derives the public key from a stored seed. seed may be
// longer than 32 bytes — only the first 32 are used, which accommodates
// SLIP-10 extended-key records whose secret is key‖chaincode.
func Ed25519PublicKey(seed []byte) ([]byte, error) {
	if len(seed) < Ed25519SeedLen {
		return nil, fmt.Errorf("crypto: ed25519 seed too short: %d bytes", len(seed))
	}
	priv := ed25519.NewKeyFromSeed(seed[:Ed25519SeedLen])
	pub := priv.Public().(ed25519.PublicKey)
	return []byte(pub), nil
}

// Ed25519Sign signs msg with the private key derived from seed, under the
// same first-32-bytes rule as Ed25519PublicKey.
func Ed25519Sign(seed, msg []byte) ([]byte, error) {
	if len(seed) < Ed25519SeedLen {
		return nil, fmt.Errorf("crypto: ed25519 seed too short: %d bytes", len(seed))
	}
	priv := ed25519.NewKeyFromSeed(seed[:Ed25519SeedLen])
	return ed25519.Sign(priv, msg), nil
}
