// Copyright 2024 The vault-plugin-secrets-stronghold Authors
// SPDX-License-Identifier: Apache-2.0

package procedure

import (
	"context"

	"github.com/lpassig/vault-plugin-secrets-stronghold/internal/crypto"
)

// GenerateKey samples a fresh asymmetric private key under Algorithm and
// stores it at Target. It never surfaces the key itself as Output — only
// PublicKey does that, and only for the public half.
type GenerateKey struct {
	Algorithm AsymmetricAlgorithm `json:"algorithm"`
	Target    Location            `json:"target"`
	Hint      RecordHint          `json:"hint"`
}

func (GenerateKey) procedureKind() string { return "GenerateKey" }

func (p GenerateKey) OutputLocation() (Location, bool) { return p.Target, true }

func (p GenerateKey) Generate(ctx context.Context, r Runner) (Products[any], error) {
	var (
		secret []byte
		err    error
	)
	switch p.Algorithm {
	case AlgorithmEd25519:
		secret, err = crypto.GenerateEd25519Seed()
	case AlgorithmX25519:
		secret, err = crypto.GenerateX25519Key()
	default:
		return Products[any]{}, newProcErr(KindInvalidParameter, "generate key: unknown algorithm %q", p.Algorithm)
	}
	if err != nil {
		return Products[any]{}, newFatalErr(KindRngFailure, err, "generate key: sampling %s key", p.Algorithm)
	}
	if err := r.Commit(ctx, secret, p.Target, p.Hint); err != nil {
		return Products[any]{}, err
	}
	return Products[any]{Secret: secret}, nil
}

// PublicKey derives the public half of the private key stored at Source.
// It is a User: it reads a lease but writes nothing back.
type PublicKey struct {
	Algorithm AsymmetricAlgorithm `json:"algorithm"`
	Source    Location            `json:"source"`
}

func (PublicKey) procedureKind() string { return "PublicKey" }

func (PublicKey) OutputLocation() (Location, bool) { return Location{}, false }

func (p PublicKey) Use(ctx context.Context, r Runner) (any, error) {
	var out []byte
	err := r.WithLease(ctx, p.Source, func(lease *Lease) error {
		var err error
		switch p.Algorithm {
		case AlgorithmEd25519:
			out, err = crypto.Ed25519PublicKey(lease.Bytes())
		case AlgorithmX25519:
			out, err = crypto.X25519PublicKey(lease.Bytes())
		default:
			return newProcErr(KindInvalidParameter, "public key: unknown algorithm %q", p.Algorithm)
		}
		if err != nil {
			return newProcErr(KindInputLengthMismatch, "public key: %v", err)
		}
		return nil
	})
	return out, err
}

// Ed25519Sign signs Msg with the Ed25519 seed stored at Source.
type Ed25519Sign struct {
	Source Location `json:"source"`
	Msg    []byte   `json:"msg"`
}

func (Ed25519Sign) procedureKind() string { return "Ed25519Sign" }

func (Ed25519Sign) OutputLocation() (Location, bool) { return Location{}, false }

func (p Ed25519Sign) Use(ctx context.Context, r Runner) (any, error) {
	var sig []byte
	err := r.WithLease(ctx, p.Source, func(lease *Lease) error {
		s, err := crypto.Ed25519Sign(lease.Bytes(), p.Msg)
		if err != nil {
			return newProcErr(KindInputLengthMismatch, "ed25519 sign: %v", err)
		}
		sig = s
		return nil
	})
	return sig, err
}

// X25519DiffieHellman computes the raw ECDH shared secret between the
// private key stored at Source and PeerPublicKey, storing the shared
// secret at Target.
type X25519DiffieHellman struct {
	Source        Location   `json:"source"`
	PeerPublicKey []byte     `json:"peer_public_key"`
	Target        Location   `json:"target"`
	Hint          RecordHint `json:"hint"`
}

func (X25519DiffieHellman) procedureKind() string { return "X25519DiffieHellman" }

func (p X25519DiffieHellman) OutputLocation() (Location, bool) { return p.Target, true }

func (p X25519DiffieHellman) Derive(ctx context.Context, r Runner) (Products[any], error) {
	var products Products[any]
	err := r.WithLease(ctx, p.Source, func(lease *Lease) error {
		shared, err := crypto.X25519SharedSecret(lease.Bytes(), p.PeerPublicKey)
		if err != nil {
			return newProcErr(KindInputLengthMismatch, "x25519 diffie-hellman: %v", err)
		}
		if err := r.Commit(ctx, shared, p.Target, p.Hint); err != nil {
			return err
		}
		products = Products[any]{Secret: shared}
		return nil
	})
	return products, err
}
