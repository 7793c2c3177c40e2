package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // postgres driver
	_ "github.com/mattn/go-sqlite3"    // sqlite driver

	"github.com/zerovault/zerovault/internal/config"
	"github.com/zerovault/zerovault/internal/logger"
)

// Dialect names accepted by the storage configuration.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite3"
)

// DB wraps a database/sql connection together with the squirrel statement
// builder configured for the backend's placeholder format. Repositories
// embed *DB and build every query through [DB.Builder], so the same
// repository code runs against PostgreSQL ($N placeholders) and SQLite (?).
type DB struct {
	*sql.DB
	builder            sq.StatementBuilderType
	dialect            string
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// Builder returns the statement builder preconfigured for this backend.
func (db *DB) Builder() sq.StatementBuilderType {
	return db.builder
}

// Dialect reports which backend this connection talks to, for goose.
func (db *DB) Dialect() string {
	return db.dialect
}

// NewConnect opens the database selected by cfg: a PostgreSQL DSN when
// cfg.DSN is set, otherwise a local SQLite file at cfg.SQLitePath.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	if cfg.DSN != "" {
		return NewConnectPostgres(ctx, cfg, log)
	}
	return NewConnectSQLite(ctx, cfg, log)
}

// NewConnectPostgres opens a PostgreSQL connection through the pgx stdlib
// driver, pings it, and returns a *DB with Dollar placeholders.
func NewConnectPostgres(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	conn, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error occurred during database connection")
		return nil, fmt.Errorf("error occurred during database connection: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(4)

	if err := conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error connecting database (ping)")
		return nil, err
	}
	log.Info().Str("func", "NewConnectPostgres").Msg("connected to database successfully")

	return &DB{
		DB:                 conn,
		builder:            sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		dialect:            DialectPostgres,
		errorClassificator: NewPostgresErrorClassifier(),
		logger:             log,
	}, nil
}

// NewConnectSQLite opens (or creates) a local SQLite database, used for
// single-binary deployments and integration tests. Placeholders are
// question marks.
func NewConnectSQLite(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	path := cfg.SQLitePath
	if path == "" {
		path = ":memory:"
	}

	conn, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error opening sqlite database")
		return nil, fmt.Errorf("error opening sqlite database: %w", err)
	}

	// SQLite serialises writers; a single connection avoids SQLITE_BUSY.
	conn.SetMaxOpenConns(1)

	if err := conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		return nil, err
	}
	log.Info().Str("func", "NewConnectSQLite").Str("path", path).Msg("opened sqlite database")

	return &DB{
		DB:                 conn,
		builder:            sq.StatementBuilder.PlaceholderFormat(sq.Question),
		dialect:            DialectSQLite,
		errorClassificator: NewSQLiteErrorClassifier(),
		logger:             log,
	}, nil
}

// postgresError extracts the PostgreSQL error code from a driver error, or
// returns the empty string for non-postgres errors.
func postgresError(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}
