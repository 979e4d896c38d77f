package schema

// UserWatchHistoryTable represents the 'users.watchhistory' table
type UserWatchHistoryTable struct {
	Table     string
	UserID    string
	VideoID   string
	Position  string
	WatchedAt string
}

// UserWatchHistory is the schema definition for users.watchhistory.
// Position preserves the order in which videos were watched.
var UserWatchHistory = UserWatchHistoryTable{
	Table:     "users.watchhistory",
	UserID:    "userid",
	VideoID:   "videoid",
	Position:  "position",
	WatchedAt: "watchedat",
}
