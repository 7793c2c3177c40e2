// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The zerovault Authors

package crypto

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"
)

// DerivedKeyLen is the length of every HKDF-expanded key in bytes (256 bits).
const DerivedKeyLen = 32

// hkdfExtractSaltV1 is the fixed, versioned HKDF extraction salt. Changing it
// is a breaking protocol version bump: every previously derived verifier and
// wrap key becomes unreachable.
const hkdfExtractSaltV1 = "zerovault/v1/hkdf-extract"

// Versioned domain-separation labels. No two derivation contexts may ever
// share an info string; changing either one is a breaking protocol version
// bump.
const (
	infoAuthVerifier = "zerovault:v1:auth-verifier"
	infoWrapKey      = "zerovault:v1:wrap-key"
)

// deriveKey expands master into a 256-bit key bound to the given context
// label via HKDF-SHA256. It is a pure function of (master, info): no shared
// derivation state exists anywhere in the package.
func deriveKey(master []byte, info string) []byte {
	r := hkdf.New(sha256.New, master, []byte(hkdfExtractSaltV1), []byte(info))
	key := make([]byte, DerivedKeyLen)
	if _, err := io.ReadFull(r, key); err != nil {
		// hkdf.Reader only errors past its output limit (255*32 bytes);
		// a single 32-byte read cannot get there.
		panic(err)
	}
	return key
}

// DeriveVerifier derives the authentication verifier from the master secret.
// This is the one derived value that crosses the wire; proving possession of
// it proves possession of the password without revealing the wrap key.
func DeriveVerifier(master []byte) []byte {
	return deriveKey(master, infoAuthVerifier)
}

// DeriveWrapKey derives the account-key-wrapping key from the master secret.
// It never leaves the client.
func DeriveWrapKey(master []byte) []byte {
	return deriveKey(master, infoWrapKey)
}
