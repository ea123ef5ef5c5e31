// Copyright 2024 The vault-plugin-secrets-stronghold Authors
// SPDX-License-Identifier: Apache-2.0

package procedure

// ApplyDefaults fills in an omitted Type/Algorithm field on the six
// variants that carry one, using the mount's configured defaults. A
// request that already names its own algorithm is never overridden.
// Every other variant is returned unchanged.
func ApplyDefaults(p Procedure, defaultHash HashType, defaultAead AeadAlgorithm) Procedure {
	switch v := p.(type) {
	case Hash:
		if v.Type == "" {
			v.Type = defaultHash
		}
		return v
	case Hmac:
		if v.Type == "" {
			v.Type = defaultHash
		}
		return v
	case Hkdf:
		if v.Type == "" {
			v.Type = defaultHash
		}
		return v
	case Pbkdf2Hmac:
		if v.Type == "" {
			v.Type = defaultHash
		}
		return v
	case AeadEncrypt:
		if v.Algorithm == "" {
			v.Algorithm = defaultAead
		}
		return v
	case AeadDecrypt:
		if v.Algorithm == "" {
			v.Algorithm = defaultAead
		}
		return v
	default:
		return p
	}
}
