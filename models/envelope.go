package models

import "errors"

// AEAD envelope geometry. Every envelope crossing the wire or stored in the
// database has exactly this three-field shape; no field is optional.
const (
	// EnvelopeNonceSize is the AES-256-GCM nonce length in bytes (96 bits).
	EnvelopeNonceSize = 12

	// EnvelopeTagSize is the AES-256-GCM authentication tag length in bytes
	// (128 bits).
	EnvelopeTagSize = 16
)

// Sentinel errors returned by [Envelope.Validate].
var (
	ErrEnvelopeBadNonce       = errors.New("envelope nonce must be exactly 12 bytes")
	ErrEnvelopeBadTag         = errors.New("envelope tag must be exactly 16 bytes")
	ErrEnvelopeEmptyCiphertex = errors.New("envelope ciphertext must not be empty")
)

// Envelope is the authenticated-encryption container used for every piece of
// ciphertext in the system: wrapped account keys and stored blobs alike.
//
// The byte-slice fields marshal to/from standard base64 strings in JSON, so
// the wire representation is {"nonce":"...","ciphertext":"...","tag":"..."}.
type Envelope struct {
	// Nonce is the fresh random 96-bit GCM nonce generated for this seal.
	Nonce []byte `json:"nonce"`

	// Ciphertext is the encrypted payload without the authentication tag.
	Ciphertext []byte `json:"ciphertext"`

	// Tag is the 128-bit GCM authentication tag covering ciphertext and AAD.
	Tag []byte `json:"tag"`
}

// Validate checks the envelope shape without touching any key material.
// It is called at the transport boundary so malformed envelopes are rejected
// before any storage or cryptographic work happens.
func (e Envelope) Validate() error {
	if len(e.Nonce) != EnvelopeNonceSize {
		return ErrEnvelopeBadNonce
	}
	if len(e.Tag) != EnvelopeTagSize {
		return ErrEnvelopeBadTag
	}
	if len(e.Ciphertext) == 0 {
		return ErrEnvelopeEmptyCiphertex
	}
	return nil
}
