// Copyright (c) 2026 VidTube. All rights reserved.

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/lokeshwar777/vidtube/internal/media"
	"github.com/lokeshwar777/vidtube/internal/platform/apperr"
	"github.com/lokeshwar777/vidtube/internal/platform/sec"
	"github.com/lokeshwar777/vidtube/pkg/username"
	"github.com/lokeshwar777/vidtube/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for generating and verifying session tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed short-lived JWT carrying the
	// account's identity fields.
	GenerateAccessToken(userID, username, email, fullName string, timeToLive time.Duration) (string, error)

	// GenerateRefreshToken creates a signed long-lived JWT carrying only the
	// account ID. Signed with its own secret.
	GenerateRefreshToken(userID string, timeToLive time.Duration) (string, error)

	// VerifyRefreshToken checks a refresh token's signature and expiry and
	// returns its claims.
	VerifyRefreshToken(token string) (*sec.RefreshClaims, error)
}

// TokenTTLs bundles the lifetimes of the session token pair.
type TokenTTLs struct {
	Access  time.Duration
	Refresh time.Duration
}

// Service implements the authentication and session-token lifecycle use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or rotation logic must be reviewed carefully.
type Service struct {
	userRepository UserRepository
	mediaGateway   media.Gateway
	tokenProvider  TokenProvider
	tokenTTLs      TokenTTLs
}

// NewService constructs a new auth [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	mediaGateway media.Gateway,
	tokenProv TokenProvider,
	ttls TokenTTLs,
) *Service {
	return &Service{
		userRepository: userRepo,
		mediaGateway:   mediaGateway,
		tokenProvider:  tokenProv,
		tokenTTLs:      ttls,
	}
}

// TokenTTLs exposes the configured token lifetimes (used for cookie expiry).
func (service *Service) TokenTTLs() TokenTTLs {
	return service.tokenTTLs
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
//
// AvatarPath and CoverImagePath are staged local temp files; the service hands
// them to the media gateway, which deletes them regardless of outcome.
type RegisterInput struct {
	FullName       string
	Username       string
	Email          string
	Password       string
	AvatarPath     string
	CoverImagePath string // Optional; empty means no cover image was supplied.
}

/*
Register validates, uploads, hashes, and persists a brand new user account.

Description: Checks identity uniqueness, pushes the avatar (and optional
cover image) through the upload gateway, and stores the account with a
normalized username and a bcrypt password hash.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity (sanitized via JSON tags)
  - error: Validation, Conflict, or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {

	// Usernames are case-normalized at write time so lookups stay case-insensitive.
	normalizedUsername := username.Normalize(input.Username)

	// Verify username uniqueness. Return a client-safe Conflict err.
	_, err := service.userRepository.FindByUsername(context, normalizedUsername)
	if err == nil {
		return nil, apperr.Conflict("User with this username already exists")
	}

	// Verify email uniqueness. Return a client-safe Conflict err.
	_, err = service.userRepository.FindByEmail(context, input.Email)
	if err == nil {
		return nil, apperr.Conflict("User with this email already exists")
	}

	// The avatar is mandatory: a gateway failure here fails the registration.
	avatarURL, err := service.mediaGateway.Upload(context, input.AvatarPath)
	if err != nil || avatarURL == "" {
		return nil, apperr.ValidationError("Avatar upload failed")
	}

	// Cover image is optional: a gateway failure degrades to an empty value.
	coverImageURL := ""
	if input.CoverImagePath != "" {
		if url, coverErr := service.mediaGateway.Upload(context, input.CoverImagePath); coverErr == nil {
			coverImageURL = url
		}
	}

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Construct the new User entity. Time-sortable ID to prevent PG index fragmentation.
	user := &User{
		ID:            uuid.New(),
		Username:      normalizedUsername,
		Email:         input.Email,
		FullName:      input.FullName,
		PasswordHash:  hashedPassword,
		AvatarURL:     avatarURL,
		CoverImageURL: coverImageURL,
	}

	// Persist the user to the database
	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	return user, nil
}

// # Authentication Flow

// LoginInput defines credentials for an authentication attempt.
// At least one of Username or Email must be supplied.
type LoginInput struct {
	Username string
	Email    string
	Password string
}

// Session represents a successfully established token pair.
type Session struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	User                  *User
}

/*
Login validates user credentials and issues the session token pair.

Description: Resolves the account by username or email (an explicit, tagged
lookup rather than a single OR query), performs constant-time password
comparison, and persists the freshly minted refresh token onto the account —
replacing any prior value (rotation, not append).

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *Session: Transport-ready session tokens plus the sanitized user
  - error: Validation, NotFound, Unauthorized, or internal failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*Session, error) {
	if input.Username == "" && input.Email == "" {
		return nil, apperr.ValidationError("Username or email is required")
	}

	// Tagged identifier lookup: prefer username when both are present.
	var user *User
	var err error
	if input.Username != "" {
		user, err = service.userRepository.FindByUsername(context, username.Normalize(input.Username))
	} else {
		user, err = service.userRepository.FindByEmail(context, input.Email)
	}

	if err != nil {
		return nil, apperr.NotFound("User")
	}

	// Verify password hash using constant-time comparison in bcrypt to prevent timing attacks
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid user credentials")
	}

	session, err := service.issueSession(context, user)
	if err != nil {
		return nil, err
	}

	// Persist the new refresh token, invalidating whatever was stored before.
	if err := service.userRepository.SetRefreshToken(context, user.ID, session.RefreshToken); err != nil {
		return nil, fmt.Errorf("auth_service_persist_refresh_token_failed: %w", err)
	}
	user.RefreshToken = session.RefreshToken

	return session, nil
}

/*
Logout clears the account's active session.

Description: Removes the stored refresh token so that it can never be
exchanged again. Always succeeds for an authenticated caller.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - err: Revocation failures
*/
func (service *Service) Logout(context context.Context, userID string) error {
	if err := service.userRepository.ClearRefreshToken(context, userID); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}
	return nil
}

// # Session Management

/*
Refresh implements the refresh-token rotation mechanism.

Description: Verifies the presented token's signature, confirms it equals the
account's currently stored refresh token (stale or already-rotated tokens are
rejected — replay detection), and atomically swaps in a fresh pair.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - *Session: New session credentials
  - error: Unauthorized or storage failures
*/
func (service *Service) Refresh(context context.Context, refreshToken string) (*Session, error) {
	if refreshToken == "" {
		return nil, apperr.Unauthorized("Unauthorized request")
	}

	// Signature and expiry check against the refresh-token secret. Any
	// verification failure surfaces as Unauthorized with the underlying
	// message, never as a crash of the request pipeline.
	claims, err := service.tokenProvider.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, apperr.Unauthorized(err.Error())
	}

	user, err := service.userRepository.FindByID(context, claims.UserID)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid refresh token")
	}

	// Strict equality against current stored state — signature validity alone
	// is not enough once the token has been rotated out or cleared.
	if user.RefreshToken == "" || user.RefreshToken != refreshToken {
		return nil, apperr.Unauthorized("Refresh token is expired or used")
	}

	session, err := service.issueSession(context, user)
	if err != nil {
		return nil, err
	}

	// Compare-and-swap rotation: of two concurrent refreshes presenting the
	// same token, exactly one wins.
	swapped, err := service.userRepository.RotateRefreshToken(context, user.ID, refreshToken, session.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("auth_service_rotate_refresh_token_failed: %w", err)
	}
	if !swapped {
		return nil, apperr.Unauthorized("Refresh token is expired or used")
	}
	user.RefreshToken = session.RefreshToken

	return session, nil
}

// issueSession mints a fresh access/refresh token pair for the user.
func (service *Service) issueSession(context context.Context, user *User) (*Session, error) {
	currentTime := time.Now()

	accessToken, err := service.tokenProvider.GenerateAccessToken(
		user.ID, user.Username, user.Email, user.FullName, service.tokenTTLs.Access)
	if err != nil {
		return nil, fmt.Errorf("auth_service_access_token_generation_failed: %w", err)
	}

	refreshToken, err := service.tokenProvider.GenerateRefreshToken(user.ID, service.tokenTTLs.Refresh)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_generation_failed: %w", err)
	}

	return &Session{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		AccessTokenExpiresAt:  currentTime.Add(service.tokenTTLs.Access),
		RefreshTokenExpiresAt: currentTime.Add(service.tokenTTLs.Refresh),
		User:                  user,
	}, nil
}

// # Credential Management

/*
ChangePassword allows an authenticated user to update their credentials.

Description: Verifies the current password, replaces the stored hash, and
clears the stored refresh token so existing sessions must re-authenticate.

Parameters:
  - context: context.Context
  - userID: string
  - oldPassword: string
  - newPassword: string

Returns:
  - err: Unauthorized or storage failures
*/
func (service *Service) ChangePassword(context context.Context, userID, oldPassword, newPassword string) error {

	// Fetch user by ID
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return err
	}

	// Verify the current password before allowing change
	if !sec.CheckPasswordHash(oldPassword, user.PasswordHash) {
		return apperr.Unauthorized("Old password is incorrect")
	}

	// Hash the brand new password
	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_change_password_hash_failed: %w", err)
	}

	// Update the database with the new hash
	if err := service.userRepository.UpdatePassword(context, userID, hashedPassword); err != nil {
		return fmt.Errorf("auth_service_change_password_update_failed: %w", err)
	}

	// Security side effect: revoke the active session so a stolen refresh
	// token dies with the old password.
	if err := service.userRepository.ClearRefreshToken(context, userID); err != nil {
		return fmt.Errorf("auth_service_change_password_revoke_failed: %w", err)
	}

	return nil
}
