// Copyright (c) 2026 VidTube. All rights reserved.

// PostgreSQL implementation of the auth storage contracts.
//
// # Error Mapping
//
// Storage-specific errors (like pgx.ErrNoRows) are mapped to domain-friendly
// [apperr.AppError] types via the dberr bridge to avoid leaking storage
// implementation details.

package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lokeshwar777/vidtube/internal/platform/database/schema"
	"github.com/lokeshwar777/vidtube/internal/platform/dberr"
)

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

// UserColumns is the canonical select list for users.account rows, built from
// the schema registry so the SQL and [ScanUser] stay in sync. Sibling
// repositories that return account projections reuse both.
var UserColumns = strings.Join(schema.UserAccount.Columns(), ", ")

// ScanUser hydrates a [User] from a row carrying UserColumns.
func ScanUser(row interface{ Scan(dest ...any) error }) (*User, error) {
	user := &User{}
	var refreshToken *string

	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FullName,
		&user.PasswordHash,
		&user.AvatarURL,
		&user.CoverImageURL,
		&refreshToken,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if refreshToken != nil {
		user.RefreshToken = *refreshToken
	}

	return user, nil
}

/*
Create persists a new user record into the users.account table.

Description: Deep-persists account metadata, ensuring timestamps are initialized
if not provided. Duplicate usernames or emails surface as Conflict errors via
the unique constraints.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: Database constraint violations or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		schema.UserAccount.Table,
		schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Email,
		schema.UserAccount.FullName, schema.UserAccount.Password, schema.UserAccount.AvatarURL,
		schema.UserAccount.CoverImageURL, schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
	)

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.FullName,
		user.PasswordHash,
		user.AvatarURL,
		user.CoverImageURL,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "User with this username or email already exists")
	}

	return nil
}

/*
FindByID retrieves a user record by its primary key.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		UserColumns, schema.UserAccount.Table, schema.UserAccount.ID)

	user, err := ScanUser(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "")
	}

	return user, nil
}

/*
FindByUsername retrieves a user record by its unique (lower-cased) username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		UserColumns, schema.UserAccount.Table, schema.UserAccount.Username)

	user, err := ScanUser(repository.pool.QueryRow(context, query, username))
	if err != nil {
		return nil, dberr.Wrap(err, "")
	}

	return user, nil
}

/*
FindByEmail retrieves a user record by its unique email address.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		UserColumns, schema.UserAccount.Table, schema.UserAccount.Email)

	user, err := ScanUser(repository.pool.QueryRow(context, query, email))
	if err != nil {
		return nil, dberr.Wrap(err, "")
	}

	return user, nil
}

/*
UpdatePassword replaces only the stored password hash.

Parameters:
  - context: context.Context
  - userID: string
  - newHash: string

Returns:
  - error: Persistence failures
*/
func (repository *PostgresUserRepository) UpdatePassword(context context.Context, userID, newHash string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = now()
		WHERE %s = $1`,
		schema.UserAccount.Table,
		schema.UserAccount.Password, schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID,
	)

	if _, err := repository.pool.Exec(context, query, userID, newHash); err != nil {
		return fmt.Errorf("postgres_user_repo_update_password_failed: %w", dberr.Wrap(err, ""))
	}

	return nil
}

/*
SetRefreshToken stores the single valid refresh token for the account.

Description: Replaces any prior value — login always rotates.

Parameters:
  - context: context.Context
  - userID: string
  - token: string

Returns:
  - error: Persistence failures
*/
func (repository *PostgresUserRepository) SetRefreshToken(context context.Context, userID, token string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = now()
		WHERE %s = $1`,
		schema.UserAccount.Table,
		schema.UserAccount.RefreshToken, schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID,
	)

	if _, err := repository.pool.Exec(context, query, userID, token); err != nil {
		return fmt.Errorf("postgres_user_repo_set_refresh_token_failed: %w", dberr.Wrap(err, ""))
	}

	return nil
}

/*
RotateRefreshToken atomically swaps oldToken for newToken.

Description: The WHERE clause pins the currently stored value, so exactly one
of two concurrent refresh calls presenting the same token can win. The loser
observes swapped == false and must force re-authentication.

Parameters:
  - context: context.Context
  - userID: string
  - oldToken: string
  - newToken: string

Returns:
  - bool: Whether the compare-and-swap applied
  - error: Persistence failures
*/
func (repository *PostgresUserRepository) RotateRefreshToken(context context.Context, userID, oldToken, newToken string) (bool, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $3, %s = now()
		WHERE %s = $1 AND %s = $2`,
		schema.UserAccount.Table,
		schema.UserAccount.RefreshToken, schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID, schema.UserAccount.RefreshToken,
	)

	tag, err := repository.pool.Exec(context, query, userID, oldToken, newToken)
	if err != nil {
		return false, fmt.Errorf("postgres_user_repo_rotate_refresh_token_failed: %w", dberr.Wrap(err, ""))
	}

	return tag.RowsAffected() == 1, nil
}

/*
ClearRefreshToken removes the stored refresh token (field removal, NULL).

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Persistence failures
*/
func (repository *PostgresUserRepository) ClearRefreshToken(context context.Context, userID string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = NULL, %s = now()
		WHERE %s = $1`,
		schema.UserAccount.Table,
		schema.UserAccount.RefreshToken, schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID,
	)

	if _, err := repository.pool.Exec(context, query, userID); err != nil {
		return fmt.Errorf("postgres_user_repo_clear_refresh_token_failed: %w", dberr.Wrap(err, ""))
	}

	return nil
}
