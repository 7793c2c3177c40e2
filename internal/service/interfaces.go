package service

import (
	"context"

	"github.com/zerovault/zerovault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService implements the account side of the protocol: registration,
// the two-step params/verify flow, and credential rotation. The raw password
// never reaches this layer; callers submit derived verifiers only.
type AuthService interface {
	// Params returns the stored KDF descriptor for an identifier so the
	// caller can re-derive its verifier. Absent identifiers surface as
	// ErrUnauthorized.
	Params(ctx context.Context, identifier string) (models.KDFParams, error)

	// Register creates a new account. The submitted verifier is slow-hashed
	// with a fresh server-side salt before persistence.
	Register(ctx context.Context, req models.RegisterRequest) (models.Account, error)

	// Verify checks the re-derived verifier against the stored hash and on
	// success issues a bearer token alongside the wrapped account key.
	// Wrong verifier and absent account both return ErrUnauthorized with
	// the same timing profile.
	Verify(ctx context.Context, req models.VerifyRequest) (models.VerifyResponse, error)

	// Rotate atomically replaces the verifier hash, server salt and wrapped
	// account key of an authenticated account, optionally under a new
	// identifier. Blob rows are never touched.
	Rotate(ctx context.Context, accountID int64, req models.RotateRequest) error
}

// BlobService implements the authenticated blob CRUD surface. Every method is
// scoped by the account identity taken from the session, never from request
// input.
type BlobService interface {
	// UpsertBlob stores an envelope under a name, creating or fully
	// replacing it. The created flag distinguishes the two outcomes.
	UpsertBlob(ctx context.Context, accountID int64, name string, env models.Envelope, version int64) (models.Blob, bool, error)

	// GetBlob returns the full blob or store.ErrBlobNotFound.
	GetBlob(ctx context.Context, accountID int64, name string) (models.Blob, error)

	// ListBlobs returns one page of name/version/timestamp tuples. A zero
	// limit selects the default page size; NextOffset is set only when more
	// rows exist.
	ListBlobs(ctx context.Context, accountID int64, limit, offset int64) (models.BlobPage, error)

	// DeleteBlob hard-deletes a blob, reporting store.ErrBlobNotFound on a
	// repeat call.
	DeleteBlob(ctx context.Context, accountID int64, name string) error
}
