// Copyright 2024 The vault-plugin-secrets-stronghold Authors
// SPDX-License-Identifier: Apache-2.0

// Package mnemonic implements BIP-39 mnemonic sentence encoding and seed
// derivation. It is consumed by the procedure engine as an opaque algorithm;
// this package knows nothing about vaults, leases, or locations.
package mnemonic

import (
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// Language selects the wordlist used to encode and decode a mnemonic.
type Language string

const (
	English  Language = "english"
	Japanese Language = "japanese"
)

// ErrWordlistUnavailable is returned for a recognised language whose
// wordlist data is not embedded in this build.
var ErrWordlistUnavailable = errors.New("mnemonic: wordlist not available for language")

// ErrInvalidMnemonic is returned by Validate when a word is not in the
// wordlist, the word count is wrong, or the checksum does not match.
var ErrInvalidMnemonic = errors.New("mnemonic: invalid mnemonic")

type wordlist struct {
	words [2048]string
	index map[string]int
}

func newWordlist(words [2048]string) *wordlist {
	wl := &wordlist{words: words, index: make(map[string]int, 2048)}
	for i, w := range words {
		wl.index[w] = i
	}
	return wl
}

var englishList = newWordlist(englishWords)

func listFor(lang Language) (*wordlist, error) {
	switch lang {
	case English, "":
		return englishList, nil
	default:
		// Japanese and any other recognised-but-unshipped language are
		// rejected explicitly rather than silently falling back to English.
		return nil, fmt.Errorf("%w: %s", ErrWordlistUnavailable, lang)
	}
}

// getBits reads n bits (n <= 11) starting at bitOffset from data, treating
// data as one contiguous bitstream in MSB-first order.
func getBits(data []byte, bitOffset, n int) int {
	v := 0
	for i := 0; i < n; i++ {
		pos := bitOffset + i
		b := data[pos/8]
		bit := (b >> uint(7-pos%8)) & 1
		v = v<<1 | int(bit)
	}
	return v
}

// setBits writes the low n bits of value into data at bitOffset, MSB-first.
func setBits(data []byte, bitOffset, n, value int) {
	for i := 0; i < n; i++ {
		pos := bitOffset + i
		bit := byte((value >> uint(n-1-i)) & 1)
		if bit == 1 {
			data[pos/8] |= 1 << uint(7-pos%8)
		}
	}
}

// Generate encodes entropy (must be 16, 20, 24, 28, or 32 bytes) into a
// mnemonic sentence per BIP-39 using the given wordlist language.
func Generate(entropy []byte, lang Language) (string, error) {
	wl, err := listFor(lang)
	if err != nil {
		return "", err
	}
	entropyBits := len(entropy) * 8
	if entropyBits%32 != 0 || entropyBits < 128 || entropyBits > 256 {
		return "", fmt.Errorf("mnemonic: entropy must be 16-32 bytes in 4-byte steps, got %d bytes", len(entropy))
	}
	checksumLen := entropyBits / 32

	hash := sha256.Sum256(entropy)
	// checksumLen never exceeds 8, so the checksum always fits in hash[0].
	combined := append(append([]byte{}, entropy...), hash[0])

	numWords := (entropyBits + checksumLen) / 11
	words := make([]string, numWords)
	for i := 0; i < numWords; i++ {
		idx := getBits(combined, i*11, 11)
		words[i] = wl.words[idx]
	}
	return strings.Join(words, " "), nil
}

// Seed derives the 64-byte BIP-39 seed from a mnemonic phrase and an
// optional passphrase via PBKDF2-HMAC-SHA512 with 2048 rounds.
func Seed(phrase, passphrase string) []byte {
	salt := "mnemonic" + passphrase
	return pbkdf2.Key([]byte(phrase), []byte(salt), 2048, 64, sha512.New)
}

// Validate checks that phrase is a well-formed mnemonic in the given
// language: every word is a member of the wordlist, the word count is one
// of the BIP-39 lengths, and the embedded checksum matches the entropy.
func Validate(phrase string, lang Language) error {
	wl, err := listFor(lang)
	if err != nil {
		return err
	}
	words := strings.Fields(phrase)
	switch len(words) {
	case 12, 15, 18, 21, 24:
	default:
		return fmt.Errorf("%w: word count %d is not a valid BIP-39 length", ErrInvalidMnemonic, len(words))
	}

	totalBits := len(words) * 11
	checksumLen := totalBits / 33
	entropyBits := totalBits - checksumLen

	// Pack all decoded 11-bit indices back into a contiguous bitstream.
	packed := make([]byte, (totalBits+7)/8)
	for i, w := range words {
		idx, ok := wl.index[w]
		if !ok {
			return fmt.Errorf("%w: word %q is not in the %s wordlist", ErrInvalidMnemonic, w, lang)
		}
		setBits(packed, i*11, 11, idx)
	}

	entropy := make([]byte, entropyBits/8)
	for i := range entropy {
		entropy[i] = byte(getBits(packed, i*8, 8))
	}

	hash := sha256.Sum256(entropy)
	wantChecksum := getBits(hash[:1], 0, checksumLen)
	gotChecksum := getBits(packed, entropyBits, checksumLen)
	if gotChecksum != wantChecksum {
		return fmt.Errorf("%w: checksum mismatch", ErrInvalidMnemonic)
	}
	return nil
}
