package models

import "time"

// Blob is one opaque encrypted payload, unique per (account, name). The
// server never sees the plaintext; it stores the envelope exactly as
// submitted and replaces it wholesale on every upsert.
type Blob struct {
	// BlobID is the internal row identifier. Not exposed via JSON.
	BlobID int64 `json:"-"`

	// AccountID is the owning account. Always taken from the session, never
	// from caller input. Not exposed via JSON.
	AccountID int64 `json:"-"`

	// Name is the account-scoped blob name (1-255 bytes).
	Name string `json:"name"`

	// Envelope holds the ciphertext sealed client-side under the account key.
	Envelope Envelope `json:"envelope"`

	// Version is the client-supplied version counter. The server stores the
	// submitted value as-is; upserts are last-write-wins, not compare-and-swap.
	Version int64 `json:"version"`

	// CreatedAt is set on first upsert of the name.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is bumped on every upsert.
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName returns the database table backing the Blob model.
func (b Blob) TableName() string {
	return "blobs"
}

// BlobSummary is the listing projection: metadata only, never envelope
// contents.
type BlobSummary struct {
	Name      string    `json:"name"`
	Version   int64     `json:"version"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BlobPage is one page of a listing plus the continuation offset. NextOffset
// is present only when more results exist beyond this page.
type BlobPage struct {
	Items      []BlobSummary `json:"items"`
	NextOffset *int64        `json:"nextOffset,omitempty"`
}
