// Copyright 2024 The vault-plugin-secrets-stronghold Authors
// SPDX-License-Identifier: Apache-2.0

package procedure

import "github.com/lpassig/vault-plugin-secrets-stronghold/internal/crypto"

// AsymmetricAlgorithm selects the curve for GenerateKey and PublicKey.
type AsymmetricAlgorithm string

const (
	AlgorithmEd25519 AsymmetricAlgorithm = "ed25519"
	AlgorithmX25519  AsymmetricAlgorithm = "x25519"
)

// Slip10ParentType selects how Slip10Derive interprets its input lease:
// either the raw seed material (typically a BIP-39 seed), or an
// already-derived SLIP-10 extended key. The core hard-codes the Ed25519
// curve for both — see DESIGN.md for the curve-selection open question.
type Slip10ParentType string

const (
	Slip10FromSeed Slip10ParentType = "seed"
	Slip10FromKey  Slip10ParentType = "key"
)

// reexported hash/aead aliases keep variant field types close to the
// wire-format vocabulary while the implementation lives in internal/crypto.
type (
	HashType      = crypto.HashType
	AeadAlgorithm = crypto.AeadAlgorithm
)

const (
	HashBlake2b256 = crypto.HashBlake2b256
	HashSHA256     = crypto.HashSHA256
	HashSHA384     = crypto.HashSHA384
	HashSHA512     = crypto.HashSHA512

	AeadAES256GCM         = crypto.AeadAES256GCM
	AeadXChaCha20Poly1305 = crypto.AeadXChaCha20Poly1305
)
