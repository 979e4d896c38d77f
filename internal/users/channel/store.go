// Copyright (c) 2026 VidTube. All rights reserved.

// Storage and cache contracts for the aggregation views.

package channel

import "context"

// # Storage Contracts

// ChannelRepository defines the read-only aggregation queries.
type ChannelRepository interface {
	// ProfileByUsername resolves the channel profile for a normalized
	// username. viewerID is the requesting account's id, or empty for
	// anonymous viewers (IsSubscribed is then always false).
	//
	// Returns NotFound when no account matches the username.
	ProfileByUsername(context context.Context, username, viewerID string) (*ChannelProfile, error)

	// WatchHistory returns the user's watch history in watch order, each
	// entry joined with its video and flattened owner.
	WatchHistory(context context.Context, userID string) ([]WatchedVideo, error)
}

// ProfileCache is a best-effort read cache in front of
// [ChannelRepository.ProfileByUsername]. A miss or a cache error both mean
// "go to storage"; callers never fail a request on cache trouble.
type ProfileCache interface {
	// Get returns the cached profile, or (nil, nil) on a miss.
	Get(context context.Context, username, viewerID string) (*ChannelProfile, error)

	// Set stores the profile for the configured TTL.
	Set(context context.Context, username, viewerID string, profile *ChannelProfile) error
}
