package store

import (
	"context"

	"github.com/zerovault/zerovault/internal/config"
	"github.com/zerovault/zerovault/internal/logger"
)

// Repositories aggregates every persistence boundary the service layer
// needs, wired to one shared database connection.
type Repositories struct {
	Accounts AccountRepository
	Blobs    BlobRepository

	db *DB
}

// NewRepositories opens the configured database and constructs all
// repositories over it.
func NewRepositories(ctx context.Context, cfg config.DB, log *logger.Logger) (*Repositories, error) {
	db, err := NewConnect(ctx, cfg, log)
	if err != nil {
		log.Err(err).Msg("connection to database failed")
		return nil, err
	}

	return &Repositories{
		Accounts: NewAccountRepository(db, log),
		Blobs:    NewBlobRepository(db, log),
		db:       db,
	}, nil
}

// DB exposes the underlying connection, used by migrations and shutdown.
func (r *Repositories) DB() *DB {
	return r.db
}

// Close releases the database connection.
func (r *Repositories) Close() error {
	return r.db.Close()
}
