package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/zerovault/zerovault/models"
)

// Column lists, kept in one place so queries and row scans stay aligned.
var (
	accountColumns = []string{
		"account_id",
		"identifier",
		"kdf_type",
		"kdf_iterations",
		"kdf_memory_kib",
		"kdf_parallelism",
		"verifier_hash",
		"verifier_salt",
		"wrapped_key_nonce",
		"wrapped_key_ciphertext",
		"wrapped_key_tag",
		"created_at",
		"updated_at",
	}

	blobColumns = []string{
		"blob_id",
		"account_id",
		"name",
		"nonce",
		"ciphertext",
		"tag",
		"version",
		"created_at",
		"updated_at",
	}
)

// buildCreateAccountQuery constructs the INSERT for a new account. All
// columns are returned so the caller receives the canonical database
// representation of the created row.
func buildCreateAccountQuery(b sq.StatementBuilderType, account models.Account, now time.Time) (string, []any, error) {
	return b.Insert("accounts").
		Columns(
			"identifier",
			"kdf_type", "kdf_iterations", "kdf_memory_kib", "kdf_parallelism",
			"verifier_hash", "verifier_salt",
			"wrapped_key_nonce", "wrapped_key_ciphertext", "wrapped_key_tag",
			"created_at", "updated_at",
		).
		Values(
			account.Identifier,
			account.KDF.Type, account.KDF.Iterations, account.KDF.MemoryKiB, account.KDF.Parallelism,
			account.VerifierHash, account.VerifierSalt,
			account.WrappedAccountKey.Nonce, account.WrappedAccountKey.Ciphertext, account.WrappedAccountKey.Tag,
			now, now,
		).
		Suffix("RETURNING account_id, created_at").
		ToSql()
}

// buildFindAccountQuery constructs the SELECT for one account matching pred
// (identifier or account_id equality).
func buildFindAccountQuery(b sq.StatementBuilderType, pred sq.Eq) (string, []any, error) {
	return b.Select(accountColumns...).
		From("accounts").
		Where(pred).
		ToSql()
}

// buildRotateCredentialsQuery constructs the single UPDATE that swaps
// verifier hash, verifier salt and wrapped account key — plus the identifier
// when newIdentifier is non-empty — in one atomic statement. Rotation never
// produces a half-rotated account because there is no second statement.
func buildRotateCredentialsQuery(b sq.StatementBuilderType, accountID int64, newIdentifier string, verifierHash, verifierSalt []byte, wrappedKey models.Envelope, now time.Time) (string, []any, error) {
	update := b.Update("accounts").
		Set("verifier_hash", verifierHash).
		Set("verifier_salt", verifierSalt).
		Set("wrapped_key_nonce", wrappedKey.Nonce).
		Set("wrapped_key_ciphertext", wrappedKey.Ciphertext).
		Set("wrapped_key_tag", wrappedKey.Tag).
		Set("updated_at", now)

	if newIdentifier != "" {
		update = update.Set("identifier", newIdentifier)
	}

	return update.Where(sq.Eq{"account_id": accountID}).ToSql()
}

// buildUpsertBlobQuery constructs the INSERT .. ON CONFLICT DO UPDATE that
// implements last-write-wins upsert in one statement. On first insert both
// timestamps equal now; on replacement only updated_at moves, which is how
// the repository tells Created from OK.
func buildUpsertBlobQuery(b sq.StatementBuilderType, blob models.Blob, now time.Time) (string, []any, error) {
	return b.Insert("blobs").
		Columns("account_id", "name", "nonce", "ciphertext", "tag", "version", "created_at", "updated_at").
		Values(
			blob.AccountID, blob.Name,
			blob.Envelope.Nonce, blob.Envelope.Ciphertext, blob.Envelope.Tag,
			blob.Version, now, now,
		).
		Suffix(`ON CONFLICT (account_id, name) DO UPDATE SET
			nonce = excluded.nonce,
			ciphertext = excluded.ciphertext,
			tag = excluded.tag,
			version = excluded.version,
			updated_at = excluded.updated_at
		RETURNING blob_id, version, created_at, updated_at`).
		ToSql()
}

// buildGetBlobQuery constructs the SELECT for one blob scoped by owner.
func buildGetBlobQuery(b sq.StatementBuilderType, accountID int64, name string) (string, []any, error) {
	return b.Select(blobColumns...).
		From("blobs").
		Where(sq.Eq{"account_id": accountID, "name": name}).
		ToSql()
}

// buildListBlobsQuery constructs the listing SELECT: metadata columns only,
// ordered by name for a stable pagination order. The caller passes
// limit+1 to detect whether another page exists.
func buildListBlobsQuery(b sq.StatementBuilderType, accountID int64, limit, offset int64) (string, []any, error) {
	return b.Select("name", "version", "updated_at").
		From("blobs").
		Where(sq.Eq{"account_id": accountID}).
		OrderBy("name ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
}

// buildDeleteBlobQuery constructs the hard DELETE scoped by owner.
func buildDeleteBlobQuery(b sq.StatementBuilderType, accountID int64, name string) (string, []any, error) {
	return b.Delete("blobs").
		Where(sq.Eq{"account_id": accountID, "name": name}).
		ToSql()
}
