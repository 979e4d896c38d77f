// Copyright (c) 2026 VidTube. All rights reserved.

/*
Package auth implements the user identity and session-token lifecycle.

It defines the core account entity and the logic for registration, login,
logout, refresh-token rotation, and password changes.

# Architecture

This layer is the "Truth" of the system. The entity defined here has no
external dependencies and encapsulates all business rules related to user
identity.
*/
package auth

import (
	"time"
)

// # Domain Entities

// User represents a registered member of the VidTube platform.
//
// # Sanitization
//
// PasswordHash and RefreshToken are explicitly omitted from JSON so that no
// outward-facing read of the account can ever leak credentials or the active
// session token.
type User struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	FullName      string    `json:"fullName"`
	PasswordHash  string    `json:"-"`
	AvatarURL     string    `json:"avatarUrl"`
	CoverImageURL string    `json:"coverImageUrl,omitempty"`
	RefreshToken  string    `json:"-"` // Currently valid refresh token; empty means no active session.
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername     = "username"
	FieldEmail        = "email"
	FieldFullName     = "fullName"
	FieldPassword     = "password"
	FieldAvatar       = "avatar"
	FieldCoverImage   = "coverImage"
	FieldOldPassword  = "oldPassword"
	FieldNewPassword  = "newPassword"
	FieldAccessToken  = "accessToken"
	FieldRefreshToken = "refreshToken"
	FieldUser         = "user"
)
