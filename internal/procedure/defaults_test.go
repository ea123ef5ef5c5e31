// Copyright 2024 The vault-plugin-secrets-stronghold Authors
// SPDX-License-Identifier: Apache-2.0

package procedure

import (
	"reflect"
	"testing"
)

func TestApplyDefaultsFillsOmittedAlgorithm(t *testing.T) {
	cases := []struct {
		name string
		in   Procedure
		want Procedure
	}{
		{
			name: "hash",
			in:   Hash{Msg: []byte("x")},
			want: Hash{Type: HashSHA512, Msg: []byte("x")},
		},
		{
			name: "hmac",
			in:   Hmac{Msg: []byte("x")},
			want: Hmac{Type: HashSHA512, Msg: []byte("x")},
		},
		{
			name: "hkdf",
			in:   Hkdf{Label: []byte("x")},
			want: Hkdf{Type: HashSHA512, Label: []byte("x")},
		},
		{
			name: "pbkdf2",
			in:   Pbkdf2Hmac{Salt: []byte("x")},
			want: Pbkdf2Hmac{Type: HashSHA512, Salt: []byte("x")},
		},
		{
			name: "aead encrypt",
			in:   AeadEncrypt{Nonce: []byte("x")},
			want: AeadEncrypt{Algorithm: AeadXChaCha20Poly1305, Nonce: []byte("x")},
		},
		{
			name: "aead decrypt",
			in:   AeadDecrypt{Nonce: []byte("x")},
			want: AeadDecrypt{Algorithm: AeadXChaCha20Poly1305, Nonce: []byte("x")},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := ApplyDefaults(c.in, HashSHA512, AeadXChaCha20Poly1305)
			if !reflect.DeepEqual(got, c.want) {
				t.Fatalf("got %#v, want %#v", got, c.want)
			}
		})
	}
}

func TestApplyDefaultsNeverOverridesAnExplicitAlgorithm(t *testing.T) {
	in := Hash{Type: HashBlake2b256, Msg: []byte("x")}
	got := ApplyDefaults(in, HashSHA512, AeadXChaCha20Poly1305)
	if !reflect.DeepEqual(got, in) {
		t.Fatalf("got %#v, want the request's own algorithm preserved: %#v", got, in)
	}
}

func TestApplyDefaultsLeavesOtherVariantsUnchanged(t *testing.T) {
	in := CopyRecord{Source: NewLocation("v1", "a"), Target: NewLocation("v1", "b")}
	got := ApplyDefaults(in, HashSHA512, AeadXChaCha20Poly1305)
	if !reflect.DeepEqual(got, in) {
		t.Fatalf("got %#v, want it returned unchanged: %#v", got, in)
	}
}
