// Copyright 2024 The vault-plugin-secrets-stronghold Authors
// SPDX-License-Identifier: Apache-2.0

package procedure

import (
	"encoding/json"
	"fmt"
)

// envelope is the self-describing wire shape for a Procedure: a type tag
// alongside the variant's own JSON-tagged fields.
type envelope struct {
	Type   string          `json:"type"`
	Params json.RawMessage `json:"params"`
}

// MarshalProcedure encodes p as a self-describing envelope: its wire type
// name plus its parameters, so UnmarshalProcedure can round-trip it without
// the caller naming the concrete Go type.
func MarshalProcedure(p Procedure) ([]byte, error) {
	params, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("procedure: marshal %s: %w", Kind(p), err)
	}
	return json.Marshal(envelope{Type: Kind(p), Params: params})
}

// UnmarshalProcedure decodes a self-describing envelope produced by
// MarshalProcedure back into the concrete Procedure it names. An unknown
// type tag is a recoverable error: the caller sent a request this build
// does not know how to route, not a malformed one.
func UnmarshalProcedure(data []byte) (Procedure, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("procedure: unmarshal envelope: %w", err)
	}

	switch env.Type {
	case "CopyRecord":
		var v CopyRecord
		if err := json.Unmarshal(env.Params, &v); err != nil {
			return nil, err
		}
		return v, nil
	case "Slip10Generate":
		var v Slip10Generate
		if err := json.Unmarshal(env.Params, &v); err != nil {
			return nil, err
		}
		return v, nil
	case "Slip10Derive":
		var v Slip10Derive
		if err := json.Unmarshal(env.Params, &v); err != nil {
			return nil, err
		}
		return v, nil
	case "BIP39Generate":
		var v BIP39Generate
		if err := json.Unmarshal(env.Params, &v); err != nil {
			return nil, err
		}
		return v, nil
	case "BIP39Recover":
		var v BIP39Recover
		if err := json.Unmarshal(env.Params, &v); err != nil {
			return nil, err
		}
		return v, nil
	case "GenerateKey":
		var v GenerateKey
		if err := json.Unmarshal(env.Params, &v); err != nil {
			return nil, err
		}
		return v, nil
	case "PublicKey":
		var v PublicKey
		if err := json.Unmarshal(env.Params, &v); err != nil {
			return nil, err
		}
		return v, nil
	case "Ed25519Sign":
		var v Ed25519Sign
		if err := json.Unmarshal(env.Params, &v); err != nil {
			return nil, err
		}
		return v, nil
	case "X25519DiffieHellman":
		var v X25519DiffieHellman
		if err := json.Unmarshal(env.Params, &v); err != nil {
			return nil, err
		}
		return v, nil
	case "Hash":
		var v Hash
		if err := json.Unmarshal(env.Params, &v); err != nil {
			return nil, err
		}
		return v, nil
	case "Hmac":
		var v Hmac
		if err := json.Unmarshal(env.Params, &v); err != nil {
			return nil, err
		}
		return v, nil
	case "Hkdf":
		var v Hkdf
		if err := json.Unmarshal(env.Params, &v); err != nil {
			return nil, err
		}
		return v, nil
	case "Pbkdf2Hmac":
		var v Pbkdf2Hmac
		if err := json.Unmarshal(env.Params, &v); err != nil {
			return nil, err
		}
		return v, nil
	case "AeadEncrypt":
		var v AeadEncrypt
		if err := json.Unmarshal(env.Params, &v); err != nil {
			return nil, err
		}
		return v, nil
	case "AeadDecrypt":
		var v AeadDecrypt
		if err := json.Unmarshal(env.Params, &v); err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, newProcErr(KindInvalidParameter, "unmarshal: unknown procedure type %q", env.Type)
	}
}
