// Copyright (c) 2026 VidTube. All rights reserved.

/*
Package channel serves the public, read-only views derived from accounts:
the channel profile (account plus subscription aggregates) and the
authenticated user's watch history.

# Data Flow

Both views are aggregation queries over users.account, users.subscription,
videos.video, and users.watchhistory. The channel profile additionally runs
through a short-lived redis cache because it is the hottest read in the
system and tolerates slightly stale counts.
*/

package channel

import "time"

// ChannelProfile is the public projection of an account enriched with
// subscription aggregates relative to a viewer.
type ChannelProfile struct {
	ID                string `json:"id"`
	FullName          string `json:"fullName"`
	Username          string `json:"username"`
	Email             string `json:"email"`
	AvatarURL         string `json:"avatarUrl"`
	CoverImageURL     string `json:"coverImageUrl,omitempty"`
	SubscriberCount   int64  `json:"subscriberCount"`
	SubscribedToCount int64  `json:"subscribedToCount"`
	IsSubscribed      bool   `json:"isSubscribed"`
}

// VideoOwner is the flattened owner projection embedded in watch history
// entries. Only display fields are exposed.
type VideoOwner struct {
	FullName  string `json:"fullName"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl"`
}

// WatchedVideo is one watch-history entry: the video joined with its owner.
type WatchedVideo struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	VideoFileURL string     `json:"videoFileUrl"`
	ThumbnailURL string     `json:"thumbnailUrl,omitempty"`
	Duration     float64    `json:"duration"`
	Views        int64      `json:"views"`
	CreatedAt    time.Time  `json:"createdAt"`
	WatchedAt    time.Time  `json:"watchedAt"`
	Owner        VideoOwner `json:"owner"`
}
