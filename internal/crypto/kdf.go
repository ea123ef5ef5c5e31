// Copyright 2024 The vault-plugin-secrets-stronghold Authors
// SPDX-License-Identifier: Apache-2.0

package crypto

import (
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/pbkdf2"
)

// HKDF runs HKDF-Extract-then-Expand over ikm with salt, expanding label
// into a key of the hash's native digest length.
func HKDF(ht HashType, ikm, salt, label []byte) ([]byte, error) {
	hf, err := shaHashFunc(ht)
	if err != nil {
		return nil, err
	}
	r := hkdf.New(hf, ikm, salt, label)
	out := make([]byte, HashLen(ht))
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, fmt.Errorf("crypto: hkdf expand: %w", err)
	}
	return out, nil
}

// PBKDF2 computes PBKDF2-HMAC-{SHA256,SHA384,SHA512}(password, salt,
// count), with an output length equal to the hash's native digest length.
// count must be greater than zero; the caller is responsible for rejecting
// count == 0 before calling this (see procedure validation).
func PBKDF2(ht HashType, password, salt []byte, count int) ([]byte, error) {
	hf, err := shaHashFunc(ht)
	if err != nil {
		return nil, err
	}
	return pbkdf2.Key(password, salt, count, HashLen(ht), hf), nil
}
