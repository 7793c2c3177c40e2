package models

import "time"

// Supported password-KDF algorithm identifiers. The descriptor travels with
// the account so clients always re-derive with the parameters chosen at
// registration (or at the last rotation).
const (
	KDFArgon2id     = "argon2id"
	KDFPBKDF2SHA256 = "pbkdf2-sha256"
)

// KDFParams describes the client-side password KDF for one account.
//
// MemoryKiB and Parallelism are meaningful only for memory-hard algorithms
// (argon2id); for pbkdf2-sha256 they are zero and omitted from JSON.
type KDFParams struct {
	// Type is the algorithm identifier, one of [KDFArgon2id] or
	// [KDFPBKDF2SHA256].
	Type string `json:"kdfType"`

	// Iterations is the time cost (argon2id passes or PBKDF2 rounds).
	Iterations uint32 `json:"kdfIterations"`

	// MemoryKiB is the argon2id memory cost in KiB.
	MemoryKiB uint32 `json:"kdfMemoryKiB,omitempty"`

	// Parallelism is the argon2id lane count.
	Parallelism uint8 `json:"kdfParallelism,omitempty"`
}

// Account is the identity anchor of the protocol. The server stores only
// material that is useless without the password: the slow hash of the
// client-derived verifier and the AEAD-wrapped account key.
type Account struct {
	// AccountID is the internal unique identifier. It never changes, which is
	// what keeps issued sessions valid across identifier rotation. Not
	// exposed via JSON.
	AccountID int64 `json:"-"`

	// Identifier is the stable unique handle the client uses as KDF salt and
	// for lookup. Mutated only by credential rotation.
	Identifier string `json:"identifier"`

	// KDF is the password-KDF descriptor disclosed by the params endpoint.
	KDF KDFParams `json:"kdf"`

	// VerifierHash is the server-side slow hash of the client-derived
	// verifier. Never leaves the server.
	VerifierHash []byte `json:"-"`

	// VerifierSalt is the independent random salt for VerifierHash, distinct
	// from the client's KDF salt. Never leaves the server.
	VerifierSalt []byte `json:"-"`

	// WrappedAccountKey is the account key sealed under the password-derived
	// wrap key. Opaque to the server; returned to the client on verify.
	WrappedAccountKey Envelope `json:"wrappedAccountKey"`

	// CreatedAt is the registration timestamp.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is bumped by credential rotation.
	UpdatedAt time.Time `json:"-"`
}

// TableName returns the database table backing the Account model.
func (a Account) TableName() string {
	return "accounts"
}
