// Copyright (c) 2026 VidTube. All rights reserved.

// PostgreSQL implementation of the profile storage contract.

package account

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lokeshwar777/vidtube/internal/platform/database/schema"
	"github.com/lokeshwar777/vidtube/internal/platform/dberr"
	"github.com/lokeshwar777/vidtube/internal/users/auth"
)

// PostgresAccountRepository implements the AccountRepository interface using pgx.
type PostgresAccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new PostgreSQL implementation of the AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *PostgresAccountRepository {
	return &PostgresAccountRepository{pool: pool}
}

// FindByID retrieves a user account by id, mapping pgx.ErrNoRows to NotFound.
func (repository *PostgresAccountRepository) FindByID(context context.Context, id string) (*auth.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		auth.UserColumns, schema.UserAccount.Table, schema.UserAccount.ID)

	user, err := auth.ScanUser(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "")
	}

	return user, nil
}

// UpdateProfile replaces fullname and email on the account row.
func (repository *PostgresAccountRepository) UpdateProfile(context context.Context, id, fullName, email string) (*auth.User, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4
		WHERE %s = $1
		RETURNING %s`,
		schema.UserAccount.Table,
		schema.UserAccount.FullName, schema.UserAccount.Email, schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID,
		auth.UserColumns,
	)

	user, err := auth.ScanUser(repository.pool.QueryRow(context, query, id, fullName, email, time.Now()))
	if err != nil {
		return nil, dberr.Wrap(err, "Email is already in use by another account")
	}

	return user, nil
}

// UpdateAvatar replaces the stored avatar URL on the account row.
func (repository *PostgresAccountRepository) UpdateAvatar(context context.Context, id, avatarURL string) (*auth.User, error) {
	return repository.updateMediaColumn(context, id, schema.UserAccount.AvatarURL, avatarURL)
}

// UpdateCoverImage replaces the stored cover image URL on the account row.
func (repository *PostgresAccountRepository) UpdateCoverImage(context context.Context, id, coverImageURL string) (*auth.User, error) {
	return repository.updateMediaColumn(context, id, schema.UserAccount.CoverImageURL, coverImageURL)
}

// updateMediaColumn rewrites a single media URL column and returns the row.
// The column name comes from the schema registry, never from user input.
func (repository *PostgresAccountRepository) updateMediaColumn(context context.Context, id, column, url string) (*auth.User, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3
		WHERE %s = $1
		RETURNING %s`,
		schema.UserAccount.Table,
		column, schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID,
		auth.UserColumns,
	)

	user, err := auth.ScanUser(repository.pool.QueryRow(context, query, id, url, time.Now()))
	if err != nil {
		return nil, dberr.Wrap(err, "")
	}

	return user, nil
}
