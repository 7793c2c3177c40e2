// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The zerovault Authors

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/zerovault/zerovault/models"
)

// Sentinel errors returned by Seal and Open.
var (
	// ErrEmptyAAD is returned when a seal or open is attempted without a
	// contextual binding string. AAD is mandatory: an envelope without one
	// could be replayed under a different purpose or scope.
	ErrEmptyAAD = errors.New("aad must not be empty")

	// ErrDecryptionFailed is the generic fail-closed error for any open
	// failure. It deliberately does not say which part of the envelope
	// failed authentication.
	ErrDecryptionFailed = errors.New("decryption failed")
)

// Seal encrypts plaintext under key with AES-256-GCM, binding aad into the
// authentication tag. A fresh random 96-bit nonce is generated on every call,
// so (key, nonce) reuse cannot happen by construction.
//
// The returned envelope carries nonce, ciphertext and tag as separate fields.
func Seal(key, aad, plaintext []byte) (models.Envelope, error) {
	if len(aad) == 0 {
		return models.Envelope{}, ErrEmptyAAD
	}

	gcm, err := newGCM(key)
	if err != nil {
		return models.Envelope{}, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return models.Envelope{}, fmt.Errorf("generate nonce: %w", err)
	}

	// gcm.Seal appends the tag to the ciphertext; split it back out so the
	// envelope keeps its fixed three-field shape.
	sealed := gcm.Seal(nil, nonce, plaintext, aad)
	tagStart := len(sealed) - gcm.Overhead()

	return models.Envelope{
		Nonce:      nonce,
		Ciphertext: sealed[:tagStart],
		Tag:        sealed[tagStart:],
	}, nil
}

// Open decrypts env under key, verifying that aad matches the binding string
// the envelope was sealed with. It fails closed: any shape, key, nonce, tag
// or AAD mismatch yields ErrDecryptionFailed and no plaintext.
func Open(key, aad []byte, env models.Envelope) ([]byte, error) {
	if len(aad) == 0 {
		return nil, ErrEmptyAAD
	}
	if err := env.Validate(); err != nil {
		return nil, ErrDecryptionFailed
	}

	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	sealed := make([]byte, 0, len(env.Ciphertext)+len(env.Tag))
	sealed = append(sealed, env.Ciphertext...)
	sealed = append(sealed, env.Tag...)

	plaintext, err := gcm.Open(nil, env.Nonce, sealed, aad)
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	return plaintext, nil
}

// newGCM builds an AES-256-GCM AEAD from a 32-byte key.
func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return gcm, nil
}
