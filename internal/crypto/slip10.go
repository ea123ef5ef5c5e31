// Copyright 2024 The vault-plugin-secrets-stronghold Authors
// SPDX-License-Identifier: Apache-2.0

package crypto

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"fmt"
)

// Slip10ExtendedKeyLen is the width of a stored SLIP-10 extended key: a
// 32-byte private key followed by its 32-byte chain code.
const Slip10ExtendedKeyLen = 64

const ed25519HMACKey = "ed25519 seed"

// Slip10ExtendedKey is a private key paired with the chain code needed to
// derive further children. Only the Ed25519 curve is supported — SLIP-10's
// Ed25519 variant permits hardened derivation exclusively, so every index
// in a Chain is treated as hardened regardless of its high bit.
type Slip10ExtendedKey struct {
	Key       [32]byte
	ChainCode [32]byte
}

// Bytes returns the canonical 64-byte encoding (key‖chaincode) stored as a
// vault secret.
func (k Slip10ExtendedKey) Bytes() []byte {
	out := make([]byte, Slip10ExtendedKeyLen)
	copy(out[:32], k.Key[:])
	copy(out[32:], k.ChainCode[:])
	return out
}

// ParseSlip10ExtendedKey decodes a stored 64-byte extended key.
func ParseSlip10ExtendedKey(b []byte) (Slip10ExtendedKey, error) {
	var k Slip10ExtendedKey
	if len(b) != Slip10ExtendedKeyLen {
		return k, fmt.Errorf("crypto: slip10 extended key length %d, want %d", len(b), Slip10ExtendedKeyLen)
	}
	copy(k.Key[:], b[:32])
	copy(k.ChainCode[:], b[32:])
	return k, nil
}

// Slip10MasterFromSeed derives the SLIP-10 Ed25519 master extended key
// from a seed of arbitrary length (typically a BIP-39 seed).
func Slip10MasterFromSeed(seed []byte) Slip10ExtendedKey {
	mac := hmac.New(sha512.New, []byte(ed25519HMACKey))
	mac.Write(seed)
	i := mac.Sum(nil)

	var k Slip10ExtendedKey
	copy(k.Key[:], i[:32])
	copy(k.ChainCode[:], i[32:])
	return k
}

// Slip10DeriveChild derives the hardened child at index from parent.
func Slip10DeriveChild(parent Slip10ExtendedKey, index uint32) Slip10ExtendedKey {
	hardened := index | 0x80000000

	data := make([]byte, 0, 1+32+4)
	data = append(data, 0x00)
	data = append(data, parent.Key[:]...)
	var idxBuf [4]byte
	binary.BigEndian.PutUint32(idxBuf[:], hardened)
	data = append(data, idxBuf[:]...)

	mac := hmac.New(sha512.New, parent.ChainCode[:])
	mac.Write(data)
	i := mac.Sum(nil)

	var child Slip10ExtendedKey
	copy(child.Key[:], i[:32])
	copy(child.ChainCode[:], i[32:])
	return child
}

// Slip10Derive walks chain from root, returning the final extended key.
// An empty chain returns root unchanged.
func Slip10Derive(root Slip10ExtendedKey, chain []uint32) Slip10ExtendedKey {
	cur := root
	for _, idx := range chain {
		cur = Slip10DeriveChild(cur, idx)
	}
	return cur
}
