// Copyright 2024 The vault-plugin-secrets-stronghold Authors
// SPDX-License-Identifier: Apache-2.0

package procedure

import (
	"context"

	"github.com/lpassig/vault-plugin-secrets-stronghold/internal/crypto"
	"github.com/lpassig/vault-plugin-secrets-stronghold/internal/mnemonic"
)

// bip39EntropyBytes is the entropy width used for freshly generated
// mnemonics: 256 bits, the strongest BIP-39 strength, yielding a 24-word
// sentence.
const bip39EntropyBytes = 32

// BIP39Generate samples fresh entropy, encodes it as a mnemonic sentence in
// Language, stretches it into a 64-byte seed via Passphrase, and stores the
// seed at Target. Output is the mnemonic sentence — the one case in this
// engine where a Generate variant surfaces secret-adjacent material as
// Output rather than only Secret, because the sentence is the only
// practical way to back up or re-derive the stored seed.
type BIP39Generate struct {
	Language   mnemonic.Language `json:"language"`
	Passphrase string            `json:"passphrase"`
	Target     Location          `json:"target"`
	Hint       RecordHint        `json:"hint"`
}

func (BIP39Generate) procedureKind() string { return "BIP39Generate" }

func (p BIP39Generate) OutputLocation() (Location, bool) { return p.Target, true }

func (p BIP39Generate) Generate(ctx context.Context, r Runner) (Products[any], error) {
	entropy, err := crypto.GenerateRandom(bip39EntropyBytes)
	if err != nil {
		return Products[any]{}, newFatalErr(KindRngFailure, err, "bip39 generate: sampling entropy")
	}
	phrase, err := mnemonic.Generate(entropy, p.Language)
	if err != nil {
		return Products[any]{}, newProcErr(KindInvalidParameter, "bip39 generate: %v", err)
	}
	seed := mnemonic.Seed(phrase, p.Passphrase)
	if err := r.Commit(ctx, seed, p.Target, p.Hint); err != nil {
		return Products[any]{}, err
	}
	return Products[any]{Secret: seed, Output: phrase}, nil
}

// BIP39Recover reconstructs the 64-byte seed from a caller-supplied
// mnemonic sentence and passphrase, validating the sentence's checksum
// before storing anything. Unlike BIP39Generate it consumes no lease: the
// mnemonic arrives as a request parameter, not a vault record.
type BIP39Recover struct {
	Mnemonic   string            `json:"mnemonic"`
	Passphrase string            `json:"passphrase"`
	Language   mnemonic.Language `json:"language"`
	Target     Location          `json:"target"`
	Hint       RecordHint        `json:"hint"`
}

func (BIP39Recover) procedureKind() string { return "BIP39Recover" }

func (p BIP39Recover) OutputLocation() (Location, bool) { return p.Target, true }

func (p BIP39Recover) Generate(ctx context.Context, r Runner) (Products[any], error) {
	if err := mnemonic.Validate(p.Mnemonic, p.Language); err != nil {
		return Products[any]{}, newProcErr(KindInvalidParameter, "bip39 recover: %v", err)
	}
	seed := mnemonic.Seed(p.Mnemonic, p.Passphrase)
	if err := r.Commit(ctx, seed, p.Target, p.Hint); err != nil {
		return Products[any]{}, err
	}
	return Products[any]{Secret: seed}, nil
}
