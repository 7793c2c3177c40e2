package models

import "time"

// ParamsRequest asks for the KDF descriptor of an identifier before the
// two-step verify flow. The endpoint is unauthenticated; parameter disclosure
// for an existing identifier is an accepted information leak.
type ParamsRequest struct {
	Identifier string `json:"identifier"`
}

// RegisterRequest carries everything the server needs to create an account.
// The verifier is already the output of the client-side derivation chain;
// the raw password never appears in any request.
type RegisterRequest struct {
	Identifier string `json:"identifier"`
	KDFParams
	Verifier          []byte   `json:"verifier"`
	WrappedAccountKey Envelope `json:"wrappedAccountKey"`
}

// RegisterResponse acknowledges account creation.
type RegisterResponse struct {
	CreatedAt time.Time `json:"createdAt"`
}

// VerifyRequest authenticates with a freshly re-derived verifier.
type VerifyRequest struct {
	Identifier string `json:"identifier"`
	Verifier   []byte `json:"verifier"`
}

// VerifyResponse returns the bearer token plus the material the client needs
// to unwrap the account key locally.
type VerifyResponse struct {
	Token             string   `json:"token"`
	WrappedAccountKey Envelope `json:"wrappedAccountKey"`
	KDFParams
}

// RotateRequest changes the password and/or identifier of the authenticated
// account. The wrapped account key is the same underlying key re-wrapped
// client-side; submitting it together with the new verifier is what keeps the
// account recoverable through the swap.
type RotateRequest struct {
	// Identifier is the new handle; empty means unchanged.
	Identifier        string   `json:"identifier,omitempty"`
	Verifier          []byte   `json:"verifier"`
	WrappedAccountKey Envelope `json:"wrappedAccountKey"`
}

// UpsertBlobRequest is the body of PUT /api/blobs/{name}.
type UpsertBlobRequest struct {
	Envelope Envelope `json:"envelope"`
	Version  int64    `json:"version"`
}

// UpsertBlobResponse confirms the stored version and timestamp.
type UpsertBlobResponse struct {
	Name      string    `json:"name"`
	Version   int64     `json:"version"`
	UpdatedAt time.Time `json:"updatedAt"`
}
