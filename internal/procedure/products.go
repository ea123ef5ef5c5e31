// Copyright 2024 The vault-plugin-secrets-stronghold Authors
// SPDX-License-Identifier: Apache-2.0

package procedure

// Products is the canonical result of a Generate or Derive primitive: the
// new secret payload bound for the vault, plus whatever non-secret value
// the caller should see. Output is the zero value of T when a variant has
// nothing to surface (e.g. CopyRecord).
type Products[T any] struct {
	Secret []byte
	Output T
}
