// Copyright 2024 The vault-plugin-secrets-stronghold Authors
// SPDX-License-Identifier: Apache-2.0

package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
)

// shaHashFunc resolves the subset of HashType accepted by HMAC, HKDF, and
// PBKDF2: SHA-256, SHA-384, SHA-512. Blake2b is a Hash-only variant.
func shaHashFunc(ht HashType) (func() hash.Hash, error) {
	switch ht {
	case HashSHA256:
		return sha256.New, nil
	case HashSHA384:
		return sha512.New384, nil
	case HashSHA512:
		return sha512.New, nil
	default:
		return nil, fmt.Errorf("crypto: unsupported SHA-2 variant %q", ht)
	}
}

// HMAC computes HMAC-{SHA256,SHA384,SHA512}(key, msg).
func HMAC(ht HashType, key, msg []byte) ([]byte, error) {
	hf, err := shaHashFunc(ht)
	if err != nil {
		return nil, err
	}
	mac := hmac.New(hf, key)
	mac.Write(msg)
	return mac.Sum(nil), nil
}
