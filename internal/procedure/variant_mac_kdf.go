// Copyright 2024 The vault-plugin-secrets-stronghold Authors
// SPDX-License-Identifier: Apache-2.0

package procedure

import (
	"context"

	"github.com/lpassig/vault-plugin-secrets-stronghold/internal/crypto"
)

// Hmac computes HMAC(key at Source, Msg) under Type. A User: it reads the
// key but writes nothing back.
type Hmac struct {
	Type   HashType `json:"type"`
	Source Location `json:"source"`
	Msg    []byte   `json:"msg"`
}

func (Hmac) procedureKind() string { return "Hmac" }

func (Hmac) OutputLocation() (Location, bool) { return Location{}, false }

func (p Hmac) Use(ctx context.Context, r Runner) (any, error) {
	var mac []byte
	err := r.WithLease(ctx, p.Source, func(lease *Lease) error {
		m, err := crypto.HMAC(p.Type, lease.Bytes(), p.Msg)
		if err != nil {
			return newProcErr(KindInvalidParameter, "hmac: %v", err)
		}
		mac = m
		return nil
	})
	return mac, err
}

// Hkdf expands the input keying material at Source under Salt and Label,
// storing the output keying material at Target. A Deriver.
type Hkdf struct {
	Type   HashType   `json:"type"`
	Source Location   `json:"source"`
	Salt   []byte     `json:"salt"`
	Label  []byte     `json:"label"`
	Target Location   `json:"target"`
	Hint   RecordHint `json:"hint"`
}

func (Hkdf) procedureKind() string { return "Hkdf" }

func (p Hkdf) OutputLocation() (Location, bool) { return p.Target, true }

func (p Hkdf) Derive(ctx context.Context, r Runner) (Products[any], error) {
	var products Products[any]
	err := r.WithLease(ctx, p.Source, func(lease *Lease) error {
		okm, err := crypto.HKDF(p.Type, lease.Bytes(), p.Salt, p.Label)
		if err != nil {
			return newProcErr(KindInvalidParameter, "hkdf: %v", err)
		}
		if err := r.Commit(ctx, okm, p.Target, p.Hint); err != nil {
			return err
		}
		products = Products[any]{Secret: okm}
		return nil
	})
	return products, err
}

// Pbkdf2Hmac stretches Password under Salt for Count rounds, storing the
// derived key at Target. A Generator: the password arrives as a request
// parameter, not a leased vault record.
type Pbkdf2Hmac struct {
	Type     HashType   `json:"type"`
	Password []byte     `json:"password"`
	Salt     []byte     `json:"salt"`
	Count    int        `json:"count"`
	Target   Location   `json:"target"`
	Hint     RecordHint `json:"hint"`
}

func (Pbkdf2Hmac) procedureKind() string { return "Pbkdf2Hmac" }

func (p Pbkdf2Hmac) OutputLocation() (Location, bool) { return p.Target, true }

func (p Pbkdf2Hmac) Generate(ctx context.Context, r Runner) (Products[any], error) {
	if p.Count <= 0 {
		return Products[any]{}, newProcErr(KindInvalidParameter, "pbkdf2: count must be positive, got %d", p.Count)
	}
	dk, err := crypto.PBKDF2(p.Type, p.Password, p.Salt, p.Count)
	if err != nil {
		return Products[any]{}, newProcErr(KindInvalidParameter, "pbkdf2: %v", err)
	}
	if err := r.Commit(ctx, dk, p.Target, p.Hint); err != nil {
		return Products[any]{}, err
	}
	return Products[any]{Secret: dk}, nil
}
