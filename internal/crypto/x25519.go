// Copyright 2024 The vault-plugin-secrets-stronghold Authors
// SPDX-License-Identifier: Apache-2.0

package crypto

import (
	"crypto/ecdh"
	"crypto/rand"
	"fmt"
)

// X25519KeyLen is the width of an X25519 private or public key.
const X25519KeyLen = 32

// GenerateX25519Key samples a fresh X25519 private key, returned in its
// canonical 32-byte encoding.
func GenerateX25519Key() ([]byte, error) {
	priv, err := ecdh.X25519().GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("crypto: x25519 key: %w", err)
	}
	return priv.Bytes(), nil
}

// X25519PublicKey derives the public key from a stored private key. Unlike
// Ed25519PublicKey, the private key length must equal X25519KeyLen exactly.
func X25519PublicKey(priv []byte) ([]byte, error) {
	if len(priv) != X25519KeyLen {
		return nil, fmt.Errorf("crypto: x25519 private key length %d, want %d", len(priv), X25519KeyLen)
	}
	key, err := ecdh.X25519().NewPrivateKey(priv)
	if err != nil {
		return nil, fmt.Errorf("crypto: x25519 private key: %w", err)
	}
	return key.PublicKey().Bytes(), nil
}

// X25519SharedSecret computes the raw Diffie-Hellman shared secret between
// a stored private key and a peer's public key, both 32 bytes.
func X25519SharedSecret(priv, peerPublic []byte) ([]byte, error) {
	if len(priv) != X25519KeyLen {
		return nil, fmt.Errorf("crypto: x25519 private key length %d, want %d", len(priv), X25519KeyLen)
	}
	if len(peerPublic) != X25519KeyLen {
		return nil, fmt.Errorf("crypto: x25519 public key length %d, want %d", len(peerPublic), X25519KeyLen)
	}
	privKey, err := ecdh.X25519().NewPrivateKey(priv)
	if err != nil {
		return nil, fmt.Errorf("crypto: x25519 private key: %w", err)
	}
	pubKey, err := ecdh.X25519().NewPublicKey(peerPublic)
	if err != nil {
		return nil, fmt.Errorf("crypto: x25519 public key: %w", err)
	}
	return privKey.ECDH(pubKey)
}
