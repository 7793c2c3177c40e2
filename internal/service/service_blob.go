package service

import (
	"context"
	"fmt"

	"github.com/zerovault/zerovault/internal/logger"
	"github.com/zerovault/zerovault/internal/store"
	"github.com/zerovault/zerovault/models"
)

// Page size bounds for ListBlobs. A zero limit selects DefaultPageLimit;
// anything above MaxPageLimit is rejected before touching storage.
const (
	DefaultPageLimit = 50
	MaxPageLimit     = 100
)

// maxBlobNameLen bounds the stable blob name in bytes.
const maxBlobNameLen = 255

type blobService struct {
	blobs store.BlobRepository

	logger *logger.Logger
}

// NewBlobService constructs a BlobService over the given repository.
func NewBlobService(blobs store.BlobRepository, logger *logger.Logger) BlobService {
	return &blobService{
		blobs:  blobs,
		logger: logger,
	}
}

// UpsertBlob validates the envelope shape, name and version, then delegates
// the create-or-replace decision to the repository's atomic upsert.
func (b *blobService) UpsertBlob(ctx context.Context, accountID int64, name string, env models.Envelope, version int64) (models.Blob, bool, error) {
	log := logger.FromContext(ctx)

	if err := validateBlobName(name); err != nil {
		return models.Blob{}, false, err
	}

	if version < 1 {
		log.Error().Str("func", "UpsertBlob").Int64("version", version).Msg("invalid blob version")
		return models.Blob{}, false, ErrInvalidVersion
	}

	if err := env.Validate(); err != nil {
		log.Error().Str("func", "UpsertBlob").Str("name", name).Msg("malformed envelope")
		return models.Blob{}, false, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	saved, created, err := b.blobs.UpsertBlob(ctx, models.Blob{
		AccountID: accountID,
		Name:      name,
		Envelope:  env,
		Version:   version,
	})
	if err != nil {
		log.Err(err).Str("func", "UpsertBlob").Str("name", name).Msg("blob upsert failed")
		return models.Blob{}, false, fmt.Errorf("blob upsert failed: %w", err)
	}

	return saved, created, nil
}

func (b *blobService) GetBlob(ctx context.Context, accountID int64, name string) (models.Blob, error) {
	if err := validateBlobName(name); err != nil {
		return models.Blob{}, err
	}

	blob, err := b.blobs.GetBlob(ctx, accountID, name)
	if err != nil {
		return models.Blob{}, fmt.Errorf("blob lookup failed: %w", err)
	}

	return blob, nil
}

// ListBlobs returns one page of metadata tuples. NextOffset is populated only
// when the repository reports more rows past this page, so the caller never
// chases an empty continuation.
func (b *blobService) ListBlobs(ctx context.Context, accountID int64, limit, offset int64) (models.BlobPage, error) {
	log := logger.FromContext(ctx)

	if limit == 0 {
		limit = DefaultPageLimit
	}

	if limit < 0 || limit > MaxPageLimit || offset < 0 {
		log.Error().Str("func", "ListBlobs").Int64("limit", limit).Int64("offset", offset).Msg("pagination out of range")
		return models.BlobPage{}, ErrPageLimitOutOfRange
	}

	items, more, err := b.blobs.ListBlobs(ctx, accountID, limit, offset)
	if err != nil {
		log.Err(err).Str("func", "ListBlobs").Msg("blob listing failed")
		return models.BlobPage{}, fmt.Errorf("blob listing failed: %w", err)
	}

	page := models.BlobPage{Items: items}
	if more {
		next := offset + int64(len(items))
		page.NextOffset = &next
	}

	return page, nil
}

func (b *blobService) DeleteBlob(ctx context.Context, accountID int64, name string) error {
	if err := validateBlobName(name); err != nil {
		return err
	}

	if err := b.blobs.DeleteBlob(ctx, accountID, name); err != nil {
		return fmt.Errorf("blob deletion failed: %w", err)
	}

	return nil
}

func validateBlobName(name string) error {
	if len(name) < 1 || len(name) > maxBlobNameLen {
		return ErrInvalidBlobName
	}
	return nil
}
