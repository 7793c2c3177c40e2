// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The zerovault Authors

package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"io"

	"golang.org/x/crypto/argon2"
)

// VerifierSaltLen is the length of the server-side verifier salt in bytes.
const VerifierSaltLen = 16

// VerifierHasher is the server's own slow-hash layer over the client-derived
// verifier. The verifier already comes out of a slow KDF; the server adds a
// second, independent Argon2id cost with its own salt and its own parameters
// so that a stolen database still rate-limits offline guessing.
//
// The zero value is not usable; construct with NewVerifierHasher. All state
// is read-only after construction, so a single instance is safe for
// concurrent use.
type VerifierHasher struct {
	time    uint32
	memory  uint32
	threads uint8
	keyLen  uint32
}

// NewVerifierHasher constructs a VerifierHasher with the server-fixed
// Argon2id parameters: 1 pass, 32 MiB, 2 lanes, 32-byte output. These are
// deliberately distinct from any client-side descriptor and are a bounded,
// synchronous cost on every register/verify request.
func NewVerifierHasher() *VerifierHasher {
	return &VerifierHasher{
		time:    1,
		memory:  32 * 1024, // 32 MiB
		threads: 2,
		keyLen:  32,
	}
}

// GenerateSalt reads a fresh 16-byte salt from the OS CSPRNG. Each account
// gets its own salt, independent of the client's KDF salt.
func (h *VerifierHasher) GenerateSalt() ([]byte, error) {
	salt := make([]byte, VerifierSaltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// Hash computes the server-side slow hash of a submitted verifier under the
// given salt.
func (h *VerifierHasher) Hash(verifier, salt []byte) []byte {
	return argon2.IDKey(verifier, salt, h.time, h.memory, h.threads, h.keyLen)
}

// Compare recomputes the hash of verifier under salt and compares it against
// stored in constant time. The comparison cost does not depend on where the
// first differing byte is, so a mismatch leaks nothing about the stored hash.
func (h *VerifierHasher) Compare(verifier, salt, stored []byte) bool {
	computed := h.Hash(verifier, salt)
	return subtle.ConstantTimeCompare(computed, stored) == 1
}

// decoySalt is the fixed salt used to burn an equivalent Hash computation
// when the looked-up account does not exist, keeping the miss path
// timing-indistinguishable from a wrong-verifier path.
var decoySalt = []byte("zerovault/v1/decoy-salt!")

// CompareDecoy runs a full Hash over the submitted verifier and discards the
// result. It always returns false and costs the same as a real Compare.
func (h *VerifierHasher) CompareDecoy(verifier []byte) bool {
	computed := h.Hash(verifier, decoySalt)
	subtle.ConstantTimeCompare(computed, make([]byte, len(computed)))
	return false
}
