// Copyright (c) 2026 VidTube. All rights reserved.

/*
Profile orchestration for the authenticated user.

# Responsibilities

  - Read the current account.
  - Apply profile edits (full name, email).
  - Replace avatar / cover image, pushing the staged file through the media
    gateway before persisting the returned URL.
  - Drop the channel-profile cache entries after any successful edit so the
    public channel view reflects the change immediately.
*/

package account

import (
	"context"

	"github.com/lokeshwar777/vidtube/internal/media"
	"github.com/lokeshwar777/vidtube/internal/platform/apperr"
	"github.com/lokeshwar777/vidtube/internal/platform/ctxutil"
	"github.com/lokeshwar777/vidtube/internal/users/auth"
)

// ProfileCacheInvalidator drops cached public views of a channel after its
// underlying account row changed. Best effort: failures are logged, never
// surfaced, since the entries expire on their own TTL anyway.
type ProfileCacheInvalidator interface {
	Invalidate(context context.Context, username string) error
}

// Service orchestrates profile reads and updates.
type Service struct {
	accountRepository AccountRepository
	mediaGateway      media.Gateway
	profileCache      ProfileCacheInvalidator
}

// NewService constructs the profile service with its dependencies.
// profileCache may be nil, in which case stale public views simply age out.
func NewService(accountRepository AccountRepository, mediaGateway media.Gateway, profileCache ProfileCacheInvalidator) *Service {
	return &Service{
		accountRepository: accountRepository,
		mediaGateway:      mediaGateway,
		profileCache:      profileCache,
	}
}

// CurrentUser returns the account row for the authenticated user.
func (service *Service) CurrentUser(context context.Context, userID string) (*auth.User, error) {
	return service.accountRepository.FindByID(context, userID)
}

// UpdateProfileInput carries the editable profile fields. Both are required.
type UpdateProfileInput struct {
	FullName string
	Email    string
}

/*
UpdateProfile replaces the account's full name and email.

Description: Partial edits are not supported; callers always send both
fields. A duplicate email surfaces as a Conflict error from storage.

Returns:
  - *auth.User: The refreshed account row.
  - error: NotFound, Conflict, or Internal.
*/
func (service *Service) UpdateProfile(context context.Context, userID string, input UpdateProfileInput) (*auth.User, error) {
	user, err := service.accountRepository.UpdateProfile(context, userID, input.FullName, input.Email)
	if err != nil {
		return nil, err
	}

	service.invalidateProfileCache(context, user.Username)

	return user, nil
}

/*
UpdateAvatar uploads the staged file and persists the resulting URL.

Description: The gateway consumes (and removes) the staged local file. An
upload that yields no URL aborts the update; the previous avatar URL stays
in place.

Returns:
  - *auth.User: The refreshed account row.
  - error: ValidationError when the upload fails, storage errors otherwise.
*/
func (service *Service) UpdateAvatar(context context.Context, userID, localPath string) (*auth.User, error) {
	avatarURL, err := service.mediaGateway.Upload(context, localPath)
	if err != nil || avatarURL == "" {
		return nil, apperr.ValidationError("Avatar upload failed")
	}

	user, err := service.accountRepository.UpdateAvatar(context, userID, avatarURL)
	if err != nil {
		return nil, err
	}

	service.invalidateProfileCache(context, user.Username)

	return user, nil
}

// UpdateCoverImage mirrors [Service.UpdateAvatar] for the cover image field.
func (service *Service) UpdateCoverImage(context context.Context, userID, localPath string) (*auth.User, error) {
	coverImageURL, err := service.mediaGateway.Upload(context, localPath)
	if err != nil || coverImageURL == "" {
		return nil, apperr.ValidationError("Cover image upload failed")
	}

	user, err := service.accountRepository.UpdateCoverImage(context, userID, coverImageURL)
	if err != nil {
		return nil, err
	}

	service.invalidateProfileCache(context, user.Username)

	return user, nil
}

// invalidateProfileCache drops the channel's cached public views.
func (service *Service) invalidateProfileCache(context context.Context, username string) {
	if service.profileCache == nil {
		return
	}
	if err := service.profileCache.Invalidate(context, username); err != nil {
		ctxutil.GetLogger(context).Warn("channel profile cache invalidation failed",
			"username", username, "error", err)
	}
}
