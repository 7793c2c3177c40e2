// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The zerovault Authors

package crypto

import (
	"crypto/rand"
	"io"

	"github.com/zerovault/zerovault/models"
)

// AccountKeyLen is the random per-account symmetric key length in bytes.
const AccountKeyLen = 32

// NewAccountKey reads a fresh 256-bit account key from the OS CSPRNG. The
// account key encrypts all of a user's blobs and never leaves the client in
// plaintext.
func NewAccountKey() ([]byte, error) {
	key := make([]byte, AccountKeyLen)
	if _, err := io.ReadFull(rand.Reader, key); err != nil {
		return nil, err
	}
	return key, nil
}

// AccountKeyAAD builds the binding string for a wrapped account key. It
// scopes the envelope to one identifier, so an attacker cannot swap wrapped
// keys between accounts. The identifier is fine here because rotation always
// submits a freshly re-wrapped envelope anyway.
func AccountKeyAAD(identifier string) []byte {
	return []byte("zerovault:v1:account-key:user:" + identifier)
}

// BlobAAD builds the binding string for a stored blob. It binds the stable
// blob name and deliberately NOT the mutable account identifier: that is
// what makes credential rotation non-destructive. Adding the identifier
// here would force re-encrypting every blob on rotation and must be treated
// as a breaking protocol change.
func BlobAAD(name string) []byte {
	return []byte("zerovault:v1:blob:" + name)
}

// WrapAccountKey seals accountKey under the password-derived wrapKey, bound
// to the account identifier.
func WrapAccountKey(accountKey, wrapKey []byte, identifier string) (models.Envelope, error) {
	return Seal(wrapKey, AccountKeyAAD(identifier), accountKey)
}

// UnwrapAccountKey recovers the account key from its envelope. A failure
// almost always means a wrong password (hence wrong wrap key) or an envelope
// re-bound to the wrong identifier.
func UnwrapAccountKey(env models.Envelope, wrapKey []byte, identifier string) ([]byte, error) {
	return Open(wrapKey, AccountKeyAAD(identifier), env)
}

// SealBlob seals plaintext under the account key, bound to the blob name.
func SealBlob(accountKey []byte, name string, plaintext []byte) (models.Envelope, error) {
	return Seal(accountKey, BlobAAD(name), plaintext)
}

// OpenBlob opens a blob envelope sealed by SealBlob.
func OpenBlob(accountKey []byte, name string, env models.Envelope) ([]byte, error) {
	return Open(accountKey, BlobAAD(name), env)
}
