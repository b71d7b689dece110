package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// repositoryImpl is the concrete implementation of Repository interface.
// ext is either the database pool or one transaction; every sub-repository
// issues its statements through it.
type repositoryImpl struct {
	db  *sqlx.DB
	ext sqlx.ExtContext

	credentials CredentialRepository
	exchanges   ExchangeRepository
	users       UserRepository
	groups      GroupRepository
	services    AiServiceRepository
}

// NewRepository creates a new repository instance.
func NewRepository(db *sqlx.DB) Repository {
	return newRepository(db, db)
}

func newRepository(db *sqlx.DB, ext sqlx.ExtContext) Repository {
	return &repositoryImpl{
		db:          db,
		ext:         ext,
		credentials: NewCredentialRepository(ext),
		exchanges:   NewExchangeRepository(ext),
		users:       NewUserRepository(ext),
		groups:      NewGroupRepository(ext),
		services:    NewAiServiceRepository(ext),
	}
}

func (r *repositoryImpl) Credentials() CredentialRepository { return r.credentials }
func (r *repositoryImpl) Exchanges() ExchangeRepository     { return r.exchanges }
func (r *repositoryImpl) Users() UserRepository             { return r.users }
func (r *repositoryImpl) Groups() GroupRepository           { return r.groups }
func (r *repositoryImpl) Services() AiServiceRepository     { return r.services }

// WithinTx runs fn within a single database transaction. Nested calls reuse
// the surrounding transaction.
func (r *repositoryImpl) WithinTx(ctx context.Context, fn func(Repository) error) error {
	if _, alreadyInTx := r.ext.(*sqlx.Tx); alreadyInTx {
		return fn(r)
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(newRepository(r.db, tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("rollback failed: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Ping checks if the database connection is healthy.
func (r *repositoryImpl) Ping() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	return r.db.PingContext(ctx)
}
