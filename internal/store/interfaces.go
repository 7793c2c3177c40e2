package store

import (
	"context"

	"github.com/zerovault/zerovault/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// AccountRepository is the persistence boundary for account records.
//
// Uniqueness of the identifier is enforced by the storage layer itself (a
// unique constraint), so concurrent registrations of the same identifier
// cannot produce duplicate rows.
type AccountRepository interface {
	// CreateAccount persists a new account and returns it with
	// server-assigned fields (AccountID, CreatedAt) populated.
	// Returns ErrIdentifierAlreadyExists on a duplicate identifier.
	CreateAccount(ctx context.Context, account models.Account) (models.Account, error)

	// FindAccountByIdentifier looks an account up by its handle.
	// Returns ErrNoAccountWasFound when absent.
	FindAccountByIdentifier(ctx context.Context, identifier string) (models.Account, error)

	// FindAccountByID looks an account up by its internal identity.
	// Returns ErrNoAccountWasFound when absent.
	FindAccountByID(ctx context.Context, accountID int64) (models.Account, error)

	// RotateCredentials replaces identifier (when non-empty), verifier hash,
	// verifier salt and wrapped account key in a single atomic statement.
	// Blob rows are never touched. Returns ErrIdentifierAlreadyExists when
	// the new identifier collides, ErrNoAccountWasFound when the account is
	// gone.
	RotateCredentials(ctx context.Context, accountID int64, newIdentifier string, verifierHash, verifierSalt []byte, wrappedKey models.Envelope) error
}

// BlobRepository is the persistence boundary for blob records. Every method
// is scoped by the owning account; a blob of another account behaves exactly
// like a missing one.
type BlobRepository interface {
	// UpsertBlob creates the blob on first use of the name and fully
	// replaces envelope and version afterwards. The created flag reports
	// which of the two happened. Uniqueness of (account, name) is enforced
	// atomically by the storage layer.
	UpsertBlob(ctx context.Context, blob models.Blob) (saved models.Blob, created bool, err error)

	// GetBlob returns the full blob record or ErrBlobNotFound.
	GetBlob(ctx context.Context, accountID int64, name string) (models.Blob, error)

	// ListBlobs returns up to limit name/version/timestamp tuples ordered by
	// name, skipping offset rows, plus a flag reporting whether more rows
	// exist past this page.
	ListBlobs(ctx context.Context, accountID int64, limit, offset int64) ([]models.BlobSummary, bool, error)

	// DeleteBlob hard-deletes the blob. Returns ErrBlobNotFound when nothing
	// was deleted, so a repeated delete is visible to the caller.
	DeleteBlob(ctx context.Context, accountID int64, name string) error
}
