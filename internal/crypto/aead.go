// Copyright 2024 The vault-plugin-secrets-stronghold Authors
// SPDX-License-Identifier: Apache-2.0

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
)

// AeadAlgorithm is the closed set of authenticated ciphers the engine
// supports.
type AeadAlgorithm string

const (
	AeadAES256GCM         AeadAlgorithm = "aes256gcm"
	AeadXChaCha20Poly1305 AeadAlgorithm = "xchacha20poly1305"
	aeadTagLen                          = 16
)

// AeadNonceLen returns the required nonce length for alg, or 0 if alg is
// unrecognised.
func AeadNonceLen(alg AeadAlgorithm) int {
	switch alg {
	case AeadAES256GCM:
		return 12
	case AeadXChaCha20Poly1305:
		return chacha20poly1305.NonceSizeX
	default:
		return 0
	}
}

// AeadTagLen returns the authentication tag length, fixed at 16 bytes for
// both supported algorithms.
func AeadTagLen(AeadAlgorithm) int { return aeadTagLen }

func newAEAD(alg AeadAlgorithm, key []byte) (cipher.AEAD, error) {
	switch alg {
	case AeadAES256GCM:
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("crypto: aes key: %w", err)
		}
		return cipher.NewGCM(block)
	case AeadXChaCha20Poly1305:
		return chacha20poly1305.NewX(key)
	default:
		return nil, fmt.Errorf("crypto: unsupported aead algorithm %q", alg)
	}
}

// AeadEncrypt seals plaintext under key and nonce with associated data ad,
// returning tag‖ciphertext — the tag always comes first, and this engine
// never inverts that ordering.
func AeadEncrypt(alg AeadAlgorithm, key, nonce, ad, plaintext []byte) ([]byte, error) {
	aead, err := newAEAD(alg, key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != aead.NonceSize() {
		return nil, fmt.Errorf("crypto: nonce length %d, want %d", len(nonce), aead.NonceSize())
	}
	sealed := aead.Seal(nil, nonce, plaintext, ad)
	tagLen := aead.Overhead()
	ciphertext := sealed[:len(sealed)-tagLen]
	tag := sealed[len(sealed)-tagLen:]
	out := make([]byte, 0, len(sealed))
	out = append(out, tag...)
	out = append(out, ciphertext...)
	return out, nil
}

// AeadDecrypt opens ciphertext under key, nonce, ad, and tag (tag supplied
// separately, matching AeadEncrypt's tag‖ciphertext split). Returns no
// partial plaintext on a tag mismatch.
func AeadDecrypt(alg AeadAlgorithm, key, nonce, ad, ciphertext, tag []byte) ([]byte, error) {
	aead, err := newAEAD(alg, key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != aead.NonceSize() {
		return nil, fmt.Errorf("crypto: nonce length %d, want %d", len(nonce), aead.NonceSize())
	}
	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)
	return aead.Open(nil, nonce, sealed, ad)
}
