// Copyright (c) 2026 VidTube. All rights reserved.

// Redis-backed channel profile cache.

package channel

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lokeshwar777/vidtube/internal/platform/constants"
)

// RedisProfileCache implements the ProfileCache interface on go-redis.
//
// Entries are keyed by (username, viewer) because IsSubscribed is
// viewer-relative; anonymous viewers share one entry per channel.
type RedisProfileCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProfileCache creates a redis profile cache with the default TTL.
func NewProfileCache(client *redis.Client) *RedisProfileCache {
	return &RedisProfileCache{
		client: client,
		ttl:    constants.ChannelProfileCacheTTL,
	}
}

func cacheKey(username, viewerID string) string {
	if viewerID == "" {
		viewerID = "anon"
	}
	return constants.RedisPrefixChannelProfile + username + ":" + viewerID
}

// Get returns the cached profile, or (nil, nil) on a miss.
func (cache *RedisProfileCache) Get(context context.Context, username, viewerID string) (*ChannelProfile, error) {
	payload, err := cache.client.Get(context, cacheKey(username, viewerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	profile := &ChannelProfile{}
	if err := json.Unmarshal(payload, profile); err != nil {
		// A corrupt entry is treated as a miss; it will be overwritten.
		return nil, nil
	}

	return profile, nil
}

// Set stores the profile for the configured TTL.
func (cache *RedisProfileCache) Set(context context.Context, username, viewerID string, profile *ChannelProfile) error {
	payload, err := json.Marshal(profile)
	if err != nil {
		return err
	}

	return cache.client.Set(context, cacheKey(username, viewerID), payload, cache.ttl).Err()
}

// Invalidate drops every cached entry for a channel, across all viewers.
//
// Called after profile or media updates so readers never see a stale
// fullName or avatar for the TTL window.
func (cache *RedisProfileCache) Invalidate(context context.Context, username string) error {
	pattern := constants.RedisPrefixChannelProfile + username + ":*"

	iterator := cache.client.Scan(context, 0, pattern, 0).Iterator()
	for iterator.Next(context) {
		if err := cache.client.Del(context, iterator.Val()).Err(); err != nil {
			return err
		}
	}

	return iterator.Err()
}
