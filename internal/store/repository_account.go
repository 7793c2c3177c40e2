package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/zerovault/zerovault/internal/logger"
	"github.com/zerovault/zerovault/models"
)

// accountRepository is the SQL-backed implementation of [AccountRepository].
// It runs against the "accounts" table through the embedded [*DB], so the
// same code serves PostgreSQL and SQLite.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type accountRepository struct {
	*DB
	logger *logger.Logger
}

// NewAccountRepository constructs an [AccountRepository] backed by the
// provided database connection and logger.
func NewAccountRepository(db *DB, logger *logger.Logger) AccountRepository {
	logger.Debug().Msg("creating account repository")
	return &accountRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateAccount implements [AccountRepository].
//
// Error handling:
//   - uniqueness violation on identifier → [ErrIdentifierAlreadyExists]
//   - any other driver-level error → wrapped [ErrExecutingQuery]
func (r *accountRepository) CreateAccount(ctx context.Context, account models.Account) (models.Account, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCreateAccountQuery(r.Builder(), account, time.Now().UTC())
	if err != nil {
		log.Err(err).Str("func", "accountRepository.CreateAccount").Msg("failed to build query")
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.DB.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&account.AccountID, &account.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return models.Account{}, ErrIdentifierAlreadyExists
		}

		log.Err(err).
			Str("func", "accountRepository.CreateAccount").
			Str("identifier", account.Identifier).
			Bool("retryable", r.errorClassificator.Classify(err) == Retryable).
			Msg("failed to insert account")
		return models.Account{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	account.UpdatedAt = account.CreatedAt
	return account, nil
}

// FindAccountByIdentifier implements [AccountRepository].
func (r *accountRepository) FindAccountByIdentifier(ctx context.Context, identifier string) (models.Account, error) {
	return r.findAccount(ctx, sq.Eq{"identifier": identifier})
}

// FindAccountByID implements [AccountRepository].
func (r *accountRepository) FindAccountByID(ctx context.Context, accountID int64) (models.Account, error) {
	return r.findAccount(ctx, sq.Eq{"account_id": accountID})
}

// findAccount runs the shared SELECT for both lookup paths.
//
// Error handling:
//   - empty result set → [ErrNoAccountWasFound]
//   - any other driver-level error → wrapped [ErrScanningRow]
func (r *accountRepository) findAccount(ctx context.Context, pred sq.Eq) (models.Account, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindAccountQuery(r.Builder(), pred)
	if err != nil {
		log.Err(err).Str("func", "accountRepository.findAccount").Msg("failed to build query")
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var account models.Account
	row := r.DB.QueryRowContext(ctx, query, args...)
	if err := row.Scan(
		&account.AccountID,
		&account.Identifier,
		&account.KDF.Type,
		&account.KDF.Iterations,
		&account.KDF.MemoryKiB,
		&account.KDF.Parallelism,
		&account.VerifierHash,
		&account.VerifierSalt,
		&account.WrappedAccountKey.Nonce,
		&account.WrappedAccountKey.Ciphertext,
		&account.WrappedAccountKey.Tag,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, ErrNoAccountWasFound
		}

		log.Err(err).Str("func", "accountRepository.findAccount").Msg("failed to scan account row")
		return models.Account{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return account, nil
}

// RotateCredentials implements [AccountRepository]. The swap happens in a
// single UPDATE, which is what keeps the verifier hash, its salt and the
// wrapped account key atomically consistent; a half-rotated account cannot
// exist.
func (r *accountRepository) RotateCredentials(ctx context.Context, accountID int64, newIdentifier string, verifierHash, verifierSalt []byte, wrappedKey models.Envelope) error {
	log := logger.FromContext(ctx)

	query, args, err := buildRotateCredentialsQuery(r.Builder(), accountID, newIdentifier, verifierHash, verifierSalt, wrappedKey, time.Now().UTC())
	if err != nil {
		log.Err(err).Str("func", "accountRepository.RotateCredentials").Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrIdentifierAlreadyExists
		}

		log.Err(err).
			Str("func", "accountRepository.RotateCredentials").
			Int64("account_id", accountID).
			Bool("retryable", r.errorClassificator.Classify(err) == Retryable).
			Msg("failed to rotate credentials")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrNoAccountWasFound
	}

	return nil
}
