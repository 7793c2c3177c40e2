package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/zerovault/zerovault/internal/logger"
	"github.com/zerovault/zerovault/models"
)

// blobRepository is the SQL-backed implementation of [BlobRepository]. It
// executes all blob CRUD against the "blobs" table using the embedded [*DB].
//
// Every method obtains a context-scoped logger via [logger.FromContext] so
// database interactions are traced with structured fields.
type blobRepository struct {
	*DB
	logger *logger.Logger
}

// NewBlobRepository constructs a [BlobRepository] backed by the provided
// database connection and logger.
func NewBlobRepository(db *DB, logger *logger.Logger) BlobRepository {
	logger.Debug().Msg("creating blob repository")
	return &blobRepository{
		DB:     db,
		logger: logger,
	}
}

// UpsertBlob implements [BlobRepository]. The whole create-or-replace runs
// as one INSERT .. ON CONFLICT DO UPDATE, so concurrent first upserts of the
// same name cannot produce duplicate rows; one of them wins the insert and
// the other becomes a replacement.
func (r *blobRepository) UpsertBlob(ctx context.Context, blob models.Blob) (models.Blob, bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpsertBlobQuery(r.Builder(), blob, time.Now().UTC())
	if err != nil {
		log.Err(err).Str("func", "blobRepository.UpsertBlob").Msg("failed to build query")
		return models.Blob{}, false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.DB.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&blob.BlobID, &blob.Version, &blob.CreatedAt, &blob.UpdatedAt); err != nil {
		log.Err(err).
			Str("func", "blobRepository.UpsertBlob").
			Int64("account_id", blob.AccountID).
			Str("name", blob.Name).
			Bool("retryable", r.errorClassificator.Classify(err) == Retryable).
			Msg("failed to upsert blob")
		return models.Blob{}, false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	// A fresh insert writes the same timestamp into both columns; a
	// replacement moves only updated_at.
	created := blob.CreatedAt.Equal(blob.UpdatedAt)

	return blob, created, nil
}

// GetBlob implements [BlobRepository]. A blob belonging to another account
// is filtered by the WHERE clause, so it surfaces as ErrBlobNotFound exactly
// like a name that never existed.
func (r *blobRepository) GetBlob(ctx context.Context, accountID int64, name string) (models.Blob, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetBlobQuery(r.Builder(), accountID, name)
	if err != nil {
		log.Err(err).Str("func", "blobRepository.GetBlob").Msg("failed to build query")
		return models.Blob{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var blob models.Blob
	row := r.DB.QueryRowContext(ctx, query, args...)
	if err := row.Scan(
		&blob.BlobID,
		&blob.AccountID,
		&blob.Name,
		&blob.Envelope.Nonce,
		&blob.Envelope.Ciphertext,
		&blob.Envelope.Tag,
		&blob.Version,
		&blob.CreatedAt,
		&blob.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Blob{}, ErrBlobNotFound
		}

		log.Err(err).
			Str("func", "blobRepository.GetBlob").
			Int64("account_id", accountID).
			Str("name", name).
			Msg("failed to scan blob row")
		return models.Blob{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return blob, nil
}

// ListBlobs implements [BlobRepository]. It fetches limit+1 rows and reports
// whether a row beyond the requested page exists; the extra row is never
// returned to the caller.
func (r *blobRepository) ListBlobs(ctx context.Context, accountID int64, limit, offset int64) ([]models.BlobSummary, bool, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListBlobsQuery(r.Builder(), accountID, limit+1, offset)
	if err != nil {
		log.Err(err).Str("func", "blobRepository.ListBlobs").Msg("failed to build query")
		return nil, false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "blobRepository.ListBlobs").
			Int64("account_id", accountID).
			Msg("failed to execute listing query")
		return nil, false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	summaries := make([]models.BlobSummary, 0, limit)

	for rows.Next() {
		var item models.BlobSummary
		if err := rows.Scan(&item.Name, &item.Version, &item.UpdatedAt); err != nil {
			log.Err(err).Str("func", "blobRepository.ListBlobs").Msg("failed to scan summary row")
			return nil, false, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		summaries = append(summaries, item)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "blobRepository.ListBlobs").Msg("error occurred during rows iteration")
		return nil, false, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	more := int64(len(summaries)) > limit
	if more {
		summaries = summaries[:limit]
	}

	return summaries, more, nil
}

// DeleteBlob implements [BlobRepository]. The delete is hard: no residual
// ciphertext or metadata stays queryable. Zero affected rows means the blob
// was already gone, which the caller sees as ErrBlobNotFound on the repeat
// call rather than a silent success.
func (r *blobRepository) DeleteBlob(ctx context.Context, accountID int64, name string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteBlobQuery(r.Builder(), accountID, name)
	if err != nil {
		log.Err(err).Str("func", "blobRepository.DeleteBlob").Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "blobRepository.DeleteBlob").
			Int64("account_id", accountID).
			Str("name", name).
			Msg("failed to delete blob")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrBlobNotFound
	}

	return nil
}
