// Copyright (c) 2026 VidTube. All rights reserved.

// Package account serves the authenticated user's own profile: reading it,
// updating the editable fields, and replacing the avatar or cover image.
package account

import (
	"context"

	"github.com/lokeshwar777/vidtube/internal/users/auth"
)

// # Storage Contracts

// AccountRepository defines persistence operations over the current user's
// profile. Every mutation returns the refreshed account row.
type AccountRepository interface {
	// FindByID retrieves a user account by its unique identifier.
	FindByID(context context.Context, id string) (*auth.User, error)

	// UpdateProfile replaces fullname and email and returns the updated row.
	// A unique violation on email surfaces as a Conflict error.
	UpdateProfile(context context.Context, id, fullName, email string) (*auth.User, error)

	// UpdateAvatar replaces the stored avatar URL and returns the updated row.
	UpdateAvatar(context context.Context, id, avatarURL string) (*auth.User, error)

	// UpdateCoverImage replaces the stored cover image URL and returns the
	// updated row.
	UpdateCoverImage(context context.Context, id, coverImageURL string) (*auth.User, error)
}
