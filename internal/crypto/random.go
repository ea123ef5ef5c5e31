// Copyright 2024 The vault-plugin-secrets-stronghold Authors
// SPDX-License-Identifier: Apache-2.0

package crypto

import (
	"crypto/rand"
	"fmt"
)

// GenerateRandom samples n bytes from the system entropy source. It is used
// by variants whose generated secret has no more specific shape than "n
// uniformly random bytes": Slip10Generate's seed material and
// BIP39Generate's entropy.
func GenerateRandom(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("crypto: random: %w", err)
	}
	return b, nil
}
