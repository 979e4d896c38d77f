// Copyright (c) 2026 VidTube. All rights reserved.

// PostgreSQL implementation of the aggregation queries.

package channel

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lokeshwar777/vidtube/internal/platform/database/schema"
	"github.com/lokeshwar777/vidtube/internal/platform/dberr"
)

// PostgresChannelRepository implements the ChannelRepository interface using pgx.
type PostgresChannelRepository struct {
	pool *pgxpool.Pool
}

// NewChannelRepository creates a new PostgreSQL implementation of the ChannelRepository.
func NewChannelRepository(pool *pgxpool.Pool) *PostgresChannelRepository {
	return &PostgresChannelRepository{pool: pool}
}

/*
ProfileByUsername aggregates the channel profile in a single round trip.

Description: Correlated subqueries compute both subscription counts and the
viewer-relative membership flag. A NULL viewer id (anonymous request) makes
the EXISTS predicate false without a separate query shape.

Returns:
  - *ChannelProfile: The aggregated public profile.
  - error: NotFound when the username has no account, Internal otherwise.
*/
func (repository *PostgresChannelRepository) ProfileByUsername(context context.Context, username, viewerID string) (*ChannelProfile, error) {
	query := fmt.Sprintf(`
		SELECT
			account.%s,
			account.%s,
			account.%s,
			account.%s,
			account.%s,
			account.%s,
			(SELECT count(*) FROM %s
				WHERE %s = account.%s) AS subscribercount,
			(SELECT count(*) FROM %s
				WHERE %s = account.%s) AS subscribedtocount,
			EXISTS (SELECT 1 FROM %s
				WHERE %s = account.%s AND %s = $2) AS issubscribed
		FROM %s AS account
		WHERE account.%s = $1`,
		schema.UserAccount.ID, schema.UserAccount.FullName, schema.UserAccount.Username,
		schema.UserAccount.Email, schema.UserAccount.AvatarURL, schema.UserAccount.CoverImageURL,
		schema.UserSubscription.Table, schema.UserSubscription.ChannelID, schema.UserAccount.ID,
		schema.UserSubscription.Table, schema.UserSubscription.SubscriberID, schema.UserAccount.ID,
		schema.UserSubscription.Table, schema.UserSubscription.ChannelID, schema.UserAccount.ID,
		schema.UserSubscription.SubscriberID,
		schema.UserAccount.Table, schema.UserAccount.Username,
	)

	var viewer any
	if viewerID != "" {
		viewer = viewerID
	}

	profile := &ChannelProfile{}
	err := repository.pool.QueryRow(context, query, username, viewer).Scan(
		&profile.ID,
		&profile.FullName,
		&profile.Username,
		&profile.Email,
		&profile.AvatarURL,
		&profile.CoverImageURL,
		&profile.SubscriberCount,
		&profile.SubscribedToCount,
		&profile.IsSubscribed,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "")
	}

	return profile, nil
}

/*
WatchHistory returns the user's watch history in watch order.

Description: Joins watch history rows against videos and their owning
accounts, flattening the owner to display fields. Ordering follows the
position column, which preserves the sequence videos were watched in.
*/
func (repository *PostgresChannelRepository) WatchHistory(context context.Context, userID string) ([]WatchedVideo, error) {
	query := fmt.Sprintf(`
		SELECT
			video.%s,
			video.%s,
			video.%s,
			video.%s,
			video.%s,
			video.%s,
			video.%s,
			history.%s,
			owner.%s,
			owner.%s,
			owner.%s
		FROM %s AS history
		JOIN %s AS video ON video.%s = history.%s
		JOIN %s AS owner ON owner.%s = video.%s
		WHERE history.%s = $1
		ORDER BY history.%s`,
		schema.Video.ID, schema.Video.Title, schema.Video.VideoFileURL,
		schema.Video.ThumbnailURL, schema.Video.Duration, schema.Video.Views,
		schema.Video.CreatedAt,
		schema.UserWatchHistory.WatchedAt,
		schema.UserAccount.FullName, schema.UserAccount.Username, schema.UserAccount.AvatarURL,
		schema.UserWatchHistory.Table,
		schema.Video.Table, schema.Video.ID, schema.UserWatchHistory.VideoID,
		schema.UserAccount.Table, schema.UserAccount.ID, schema.Video.OwnerID,
		schema.UserWatchHistory.UserID,
		schema.UserWatchHistory.Position,
	)

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "")
	}
	defer rows.Close()

	history := []WatchedVideo{}
	for rows.Next() {
		var entry WatchedVideo
		err := rows.Scan(
			&entry.ID,
			&entry.Title,
			&entry.VideoFileURL,
			&entry.ThumbnailURL,
			&entry.Duration,
			&entry.Views,
			&entry.CreatedAt,
			&entry.WatchedAt,
			&entry.Owner.FullName,
			&entry.Owner.Username,
			&entry.Owner.AvatarURL,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "")
		}
		history = append(history, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "")
	}

	return history, nil
}
