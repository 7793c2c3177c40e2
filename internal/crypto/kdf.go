// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The zerovault Authors

// Package crypto implements the client-side key hierarchy and the AEAD
// envelope used by every other component: password KDF, domain-separated key
// expansion, account-key wrapping, and the server-side verifier hash.
//
// Derivation chain:
//
//	master   = KDF(password, salt=identifier, params)        (slow, memory-hard)
//	verifier = HKDF-Expand(master, "zerovault:v1:auth-verifier")
//	wrapKey  = HKDF-Expand(master, "zerovault:v1:wrap-key")
//	accountKey = 32 random bytes, wrapped under wrapKey
//
// The verifier is the only derived value the server ever sees, and only
// after the server adds its own slow-hash layer on top.
package crypto

import (
	"crypto/sha256"
	"errors"

	"github.com/zerovault/zerovault/models"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"
)

// MasterSecretLen is the password-KDF output length in bytes (256 bits).
const MasterSecretLen = 32

// Minimum acceptable KDF cost parameters, enforced server-side at
// registration. Raising a floor is a deployment decision; lowering one is a
// protocol regression.
const (
	MinArgon2Iterations  = 2
	MinArgon2MemoryKiB   = 19 * 1024
	MinArgon2Parallelism = 1
	MinPBKDF2Iterations  = 600_000
)

// Sentinel errors returned by KDF parameter validation and derivation.
var (
	// ErrUnsupportedKDF is returned when the descriptor names an algorithm
	// the protocol does not know.
	ErrUnsupportedKDF = errors.New("unsupported kdf algorithm")

	// ErrWeakKDFParams is returned when any cost parameter is below the
	// published floor for its algorithm.
	ErrWeakKDFParams = errors.New("kdf cost parameters below enforced minimum")
)

// ValidateKDFParams rejects descriptors whose algorithm is unknown or whose
// cost parameters fall below the enforced floors. Called at registration
// before any account state is touched.
func ValidateKDFParams(p models.KDFParams) error {
	switch p.Type {
	case models.KDFArgon2id:
		if p.Iterations < MinArgon2Iterations ||
			p.MemoryKiB < MinArgon2MemoryKiB ||
			p.Parallelism < MinArgon2Parallelism {
			return ErrWeakKDFParams
		}
		return nil
	case models.KDFPBKDF2SHA256:
		if p.Iterations < MinPBKDF2Iterations {
			return ErrWeakKDFParams
		}
		return nil
	default:
		return ErrUnsupportedKDF
	}
}

// DeriveMasterSecret runs the slow password KDF and returns the 256-bit
// master secret. The stable account identifier doubles as the KDF salt, so
// equal passwords under different identifiers produce unrelated secrets.
//
// This is deliberately CPU/memory-bound and executes client-side, off the
// server's request path.
func DeriveMasterSecret(password, identifier string, p models.KDFParams) ([]byte, error) {
	if err := ValidateKDFParams(p); err != nil {
		return nil, err
	}

	switch p.Type {
	case models.KDFArgon2id:
		return argon2.IDKey(
			[]byte(password),
			[]byte(identifier),
			p.Iterations,
			p.MemoryKiB,
			p.Parallelism,
			MasterSecretLen,
		), nil
	case models.KDFPBKDF2SHA256:
		return pbkdf2.Key(
			[]byte(password),
			[]byte(identifier),
			int(p.Iterations),
			MasterSecretLen,
			sha256.New,
		), nil
	default:
		return nil, ErrUnsupportedKDF
	}
}

// DefaultKDFParams returns the descriptor new clients should register with:
// Argon2id at the OWASP-recommended cost (19 MiB, 2 passes, 1 lane).
func DefaultKDFParams() models.KDFParams {
	return models.KDFParams{
		Type:        models.KDFArgon2id,
		Iterations:  2,
		MemoryKiB:   19 * 1024,
		Parallelism: 1,
	}
}
