// Copyright (c) 2026 VidTube. All rights reserved.

// Read-side orchestration for the aggregation views.

package channel

import (
	"context"

	"github.com/lokeshwar777/vidtube/internal/platform/apperr"
	"github.com/lokeshwar777/vidtube/internal/platform/ctxutil"
	"github.com/lokeshwar777/vidtube/pkg/username"
)

// Service orchestrates the channel profile and watch history reads.
type Service struct {
	channelRepository ChannelRepository
	profileCache      ProfileCache
}

// NewService constructs the channel service. profileCache may be nil, in
// which case every profile read goes straight to storage.
func NewService(channelRepository ChannelRepository, profileCache ProfileCache) *Service {
	return &Service{
		channelRepository: channelRepository,
		profileCache:      profileCache,
	}
}

/*
Profile resolves the public channel profile for a username.

Description: The username is normalized the same way registration normalizes
it, so lookups match regardless of the caller's casing or Unicode form. The
redis cache is consulted first; cache failures fall through to storage and
never fail the request.

Parameters:
  - rawUsername: Channel username as supplied by the caller.
  - viewerID: Requesting account id, or empty for anonymous viewers.

Returns:
  - *ChannelProfile: The aggregated profile.
  - error: ValidationError for a blank username, NotFound for an unknown one.
*/
func (service *Service) Profile(context context.Context, rawUsername, viewerID string) (*ChannelProfile, error) {
	normalized := username.Normalize(rawUsername)
	if normalized == "" {
		return nil, apperr.ValidationError("Username is required")
	}

	if service.profileCache != nil {
		profile, err := service.profileCache.Get(context, normalized, viewerID)
		if err != nil {
			ctxutil.GetLogger(context).Warn("channel profile cache read failed", "error", err)
		} else if profile != nil {
			return profile, nil
		}
	}

	profile, err := service.channelRepository.ProfileByUsername(context, normalized, viewerID)
	if err != nil {
		return nil, err
	}

	if service.profileCache != nil {
		if err := service.profileCache.Set(context, normalized, viewerID, profile); err != nil {
			ctxutil.GetLogger(context).Warn("channel profile cache write failed", "error", err)
		}
	}

	return profile, nil
}

// WatchHistory returns the user's watch history in watch order. An account
// with no history yields an empty slice, not an error.
func (service *Service) WatchHistory(context context.Context, userID string) ([]WatchedVideo, error) {
	return service.channelRepository.WatchHistory(context, userID)
}
