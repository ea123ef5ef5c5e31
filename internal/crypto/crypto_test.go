// Copyright 2024 The vault-plugin-secrets-stronghold Authors
// SPDX-License-Identifier: Apache-2.0

package crypto

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex fixture: %v", err)
	}
	return b
}

func TestSumSHA256Empty(t *testing.T) {
	got, err := Sum(HashSHA256, nil)
	if err != nil {
		t.Fatalf("Sum: %v", err)
	}
	want := mustHex(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855")
	if !bytes.Equal(got, want) {
		t.Fatalf("got %x, want %x", got, want)
	}
}

func TestHMACSHA256RFC4231Case1(t *testing.T) {
	key := bytes.Repeat([]byte{0x0b}, 20)
	got, err := HMAC(HashSHA256, key, []byte("Hi There"))
	if err != nil {
		t.Fatalf("HMAC: %v", err)
	}
	want := mustHex(t, "b0344c61d8db38535ca8afceaf0bf12b881dc200c9833da726e9376c2e32cff7")
	if !bytes.Equal(got, want) {
		t.Fatalf("got %x, want %x", got, want)
	}
}

func TestHKDFSHA256RFC5869Case1(t *testing.T) {
	ikm := bytes.Repeat([]byte{0x0b}, 22)
	salt := mustHex(t, "000102030405060708090a0b0c")
	info := mustHex(t, "f0f1f2f3f4f5f6f7f8f9")

	got, err := HKDF(HashSHA256, ikm, salt, info)
	if err != nil {
		t.Fatalf("HKDF: %v", err)
	}
	// HKDF always expands to the hash's native digest length here, so this
	// is the first 32 bytes of the RFC 5869 test case 1 OKM.
	want := mustHex(t, "3cb25f25faacd57a90434f64d0362f2a2d2d0a90cf1a5a4c5db02d56ecc4c5bf")
	if !bytes.Equal(got, want) {
		t.Fatalf("got %x, want %x", got, want)
	}
}

func TestAES256GCMEmptyPlaintext(t *testing.T) {
	key := make([]byte, 32)
	nonce := make([]byte, 12)
	sealed, err := AeadEncrypt(AeadAES256GCM, key, nonce, nil, nil)
	if err != nil {
		t.Fatalf("AeadEncrypt: %v", err)
	}
	wantTag := mustHex(t, "530f8afbc74536b9a963b4f1c4cb738b")
	if !bytes.Equal(sealed, wantTag) {
		t.Fatalf("tag‖ct = %x, want tag %x", sealed, wantTag)
	}

	plaintext, err := AeadDecrypt(AeadAES256GCM, key, nonce, nil, nil, sealed)
	if err != nil {
		t.Fatalf("AeadDecrypt: %v", err)
	}
	if len(plaintext) != 0 {
		t.Fatalf("got %d plaintext bytes, want 0", len(plaintext))
	}
}

func TestAES256GCMTamperedTagFails(t *testing.T) {
	key := make([]byte, 32)
	nonce := make([]byte, 12)
	sealed, err := AeadEncrypt(AeadAES256GCM, key, nonce, []byte("ad"), []byte("secret message"))
	if err != nil {
		t.Fatalf("AeadEncrypt: %v", err)
	}
	tag := append([]byte(nil), sealed[:AeadTagLen(AeadAES256GCM)]...)
	ciphertext := sealed[AeadTagLen(AeadAES256GCM):]
	tag[0] ^= 0xff

	if _, err := AeadDecrypt(AeadAES256GCM, key, nonce, []byte("ad"), ciphertext, tag); err == nil {
		t.Fatal("expected tamper-detection failure")
	}
}

func TestEd25519SignRFC8032Case1(t *testing.T) {
	seed := mustHex(t, "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60")
	sig, err := Ed25519Sign(seed, nil)
	if err != nil {
		t.Fatalf("Ed25519Sign: %v", err)
	}
	want := mustHex(t, "e5564300c360ac729086e2cc806e828a84877f1eb8e5d974d873e065224901555fb8821590a33bacc61e39701cf9b46bd25bf5f0595bbe24655141438e7a100b")
	if !bytes.Equal(sig, want) {
		t.Fatalf("got %x, want %x", sig, want)
	}
}

func TestX25519RoundTrip(t *testing.T) {
	alicePriv, err := GenerateX25519Key()
	if err != nil {
		t.Fatalf("GenerateX25519Key: %v", err)
	}
	bobPriv, err := GenerateX25519Key()
	if err != nil {
		t.Fatalf("GenerateX25519Key: %v", err)
	}
	alicePub, err := X25519PublicKey(alicePriv)
	if err != nil {
		t.Fatalf("X25519PublicKey: %v", err)
	}
	bobPub, err := X25519PublicKey(bobPriv)
	if err != nil {
		t.Fatalf("X25519PublicKey: %v", err)
	}

	s1, err := X25519SharedSecret(alicePriv, bobPub)
	if err != nil {
		t.Fatalf("X25519SharedSecret (alice): %v", err)
	}
	s2, err := X25519SharedSecret(bobPriv, alicePub)
	if err != nil {
		t.Fatalf("X25519SharedSecret (bob): %v", err)
	}
	if !bytes.Equal(s1, s2) {
		t.Fatalf("shared secrets disagree: %x vs %x", s1, s2)
	}
}

func TestSlip10DeriveIsDeterministic(t *testing.T) {
	seed := bytes.Repeat([]byte{0x42}, 32)
	master := Slip10MasterFromSeed(seed)

	chain := []uint32{0, 1, 2}
	a := Slip10Derive(master, chain)
	b := Slip10Derive(master, chain)
	if a != b {
		t.Fatalf("derivation is not deterministic: %+v vs %+v", a, b)
	}

	other := Slip10Derive(master, []uint32{0, 1, 3})
	if a == other {
		t.Fatal("different chains produced the same extended key")
	}
}

func TestSlip10ExtendedKeyRoundTripsThroughBytes(t *testing.T) {
	seed := bytes.Repeat([]byte{0x7}, 64)
	master := Slip10MasterFromSeed(seed)
	encoded := master.Bytes()
	decoded, err := ParseSlip10ExtendedKey(encoded)
	if err != nil {
		t.Fatalf("ParseSlip10ExtendedKey: %v", err)
	}
	if decoded != master {
		t.Fatalf("round trip mismatch: %+v vs %+v", decoded, master)
	}
}

func TestPBKDF2DeterministicAndLengthMatchesHash(t *testing.T) {
	dk1, err := PBKDF2(HashSHA256, []byte("password"), []byte("salt"), 4096)
	if err != nil {
		t.Fatalf("PBKDF2: %v", err)
	}
	dk2, err := PBKDF2(HashSHA256, []byte("password"), []byte("salt"), 4096)
	if err != nil {
		t.Fatalf("PBKDF2: %v", err)
	}
	if !bytes.Equal(dk1, dk2) {
		t.Fatal("PBKDF2 is not deterministic for identical inputs")
	}
	if len(dk1) != HashLen(HashSHA256) {
		t.Fatalf("got %d bytes, want %d", len(dk1), HashLen(HashSHA256))
	}
}
