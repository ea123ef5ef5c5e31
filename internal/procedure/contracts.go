// Copyright 2024 The vault-plugin-secrets-stronghold Authors
// SPDX-License-Identifier: Apache-2.0

package procedure

import "context"

// Runner is the abstraction the engine requires from the vault layer. It is
// single-threaded from the engine's point of view: one procedure executes
// at a time against a given Runner. Higher layers multiplex Runners across
// sessions.
type Runner interface {
	// WithLease opens the record at source, materialises a Lease over its
	// plaintext bytes, invokes fn, and releases (and zeroises) the lease on
	// every exit path from fn — including a panic unwinding through it.
	//
	// Returns a *ProcedureError{Kind: KindSourceMissing} if source does not
	// exist, KindSourceLocked if it is already leased on this Runner, or
	// whatever error fn itself returned.
	WithLease(ctx context.Context, source Location, fn func(*Lease) error) error

	// Commit atomically writes secret to target under hint. It is the only
	// way secret bytes leave the engine in durable form.
	Commit(ctx context.Context, secret []byte, target Location, hint RecordHint) error

	// Exists reports whether a record is present at loc.
	Exists(ctx context.Context, loc Location) (bool, error)

	// Remove deletes the record at loc, if present.
	Remove(ctx context.Context, loc Location) error
}

// Generator is implemented by variants that produce a new secret without
// consuming one: Slip10Generate, BIP39Generate, BIP39Recover, GenerateKey,
// Pbkdf2Hmac.
type Generator interface {
	Generate(ctx context.Context, r Runner) (Products[any], error)
}

// Deriver is implemented by variants that consume one input secret via a
// Lease and also produce a new secret: CopyRecord, Slip10Derive,
// X25519DiffieHellman, Hkdf.
type Deriver interface {
	Derive(ctx context.Context, r Runner) (Products[any], error)
}

// User is implemented by variants that consume one input secret via a
// Lease but write nothing back to the vault: PublicKey, Ed25519Sign, Hmac,
// AeadEncrypt, AeadDecrypt.
type User interface {
	Use(ctx context.Context, r Runner) (any, error)
}

// Pure is implemented by the one variant that touches no vault state at
// all: Hash.
type Pure interface {
	Eval() (any, error)
}
