package store

import (
	"context"
	"testing"
	"time"

	"database/sql/driver"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zerovault/zerovault/internal/logger"
	"github.com/zerovault/zerovault/models"
)

// newMockDB builds a *DB over go-sqlmock with postgres-style placeholders
// and exact query matching.
func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return &DB{
		DB:                 conn,
		builder:            sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		dialect:            DialectPostgres,
		errorClassificator: NewPostgresErrorClassifier(),
		logger:             logger.Nop(),
	}, mock
}

func accountRows(account models.Account) *sqlmock.Rows {
	return sqlmock.NewRows(accountColumns).AddRow(
		account.AccountID,
		account.Identifier,
		account.KDF.Type,
		account.KDF.Iterations,
		account.KDF.MemoryKiB,
		account.KDF.Parallelism,
		account.VerifierHash,
		account.VerifierSalt,
		account.WrappedAccountKey.Nonce,
		account.WrappedAccountKey.Ciphertext,
		account.WrappedAccountKey.Tag,
		account.CreatedAt,
		account.UpdatedAt,
	)
}

func anyArgs(n int) []driver.Value {
	args := make([]driver.Value, n)
	for i := range args {
		args[i] = sqlmock.AnyArg()
	}
	return args
}

func TestAccountRepository_CreateAccount_Success(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db, logger.Nop())

	account := testAccount()
	query, _, err := buildCreateAccountQuery(db.Builder(), account, time.Now())
	require.NoError(t, err)

	now := time.Now().UTC()
	mock.ExpectQuery(query).
		WithArgs(anyArgs(12)...).
		WillReturnRows(sqlmock.NewRows([]string{"account_id", "created_at"}).AddRow(int64(1), now))

	created, err := repo.CreateAccount(context.Background(), account)
	require.NoError(t, err)

	assert.Equal(t, int64(1), created.AccountID)
	assert.Equal(t, now, created.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_CreateAccount_DuplicateIdentifier(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db, logger.Nop())

	account := testAccount()
	query, _, err := buildCreateAccountQuery(db.Builder(), account, time.Now())
	require.NoError(t, err)

	mock.ExpectQuery(query).
		WithArgs(anyArgs(12)...).
		WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

	_, err = repo.CreateAccount(context.Background(), account)
	assert.ErrorIs(t, err, ErrIdentifierAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_FindAccountByIdentifier(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db, logger.Nop())

	stored := testAccount()
	stored.AccountID = 42
	stored.CreatedAt = time.Now().UTC()
	stored.UpdatedAt = stored.CreatedAt

	query, _, err := buildFindAccountQuery(db.Builder(), sq.Eq{"identifier": "alice"})
	require.NoError(t, err)

	mock.ExpectQuery(query).WithArgs("alice").WillReturnRows(accountRows(stored))

	found, err := repo.FindAccountByIdentifier(context.Background(), "alice")
	require.NoError(t, err)

	assert.Equal(t, int64(42), found.AccountID)
	assert.Equal(t, stored.KDF, found.KDF)
	assert.Equal(t, stored.WrappedAccountKey, found.WrappedAccountKey)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_FindAccountByIdentifier_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db, logger.Nop())

	query, _, err := buildFindAccountQuery(db.Builder(), sq.Eq{"identifier": "nobody"})
	require.NoError(t, err)

	mock.ExpectQuery(query).WithArgs("nobody").WillReturnRows(sqlmock.NewRows(accountColumns))

	_, err = repo.FindAccountByIdentifier(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNoAccountWasFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_RotateCredentials(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountRepository(db, logger.Nop())

	env := testAccount().WrappedAccountKey

	t.Run("success without identifier change", func(t *testing.T) {
		query, _, err := buildRotateCredentialsQuery(db.Builder(), 7, "", []byte("h"), []byte("s"), env, time.Now())
		require.NoError(t, err)

		mock.ExpectExec(query).
			WithArgs(anyArgs(7)...).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.RotateCredentials(context.Background(), 7, "", []byte("h"), []byte("s"), env)
		assert.NoError(t, err)
	})

	t.Run("identifier collision", func(t *testing.T) {
		query, _, err := buildRotateCredentialsQuery(db.Builder(), 7, "taken", []byte("h"), []byte("s"), env, time.Now())
		require.NoError(t, err)

		mock.ExpectExec(query).
			WithArgs(anyArgs(8)...).
			WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})

		err = repo.RotateCredentials(context.Background(), 7, "taken", []byte("h"), []byte("s"), env)
		assert.ErrorIs(t, err, ErrIdentifierAlreadyExists)
	})

	t.Run("account gone", func(t *testing.T) {
		query, _, err := buildRotateCredentialsQuery(db.Builder(), 99, "", []byte("h"), []byte("s"), env, time.Now())
		require.NoError(t, err)

		mock.ExpectExec(query).
			WithArgs(anyArgs(7)...).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err = repo.RotateCredentials(context.Background(), 99, "", []byte("h"), []byte("s"), env)
		assert.ErrorIs(t, err, ErrNoAccountWasFound)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
