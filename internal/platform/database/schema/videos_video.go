package schema

// VideoTable represents the 'videos.video' table
type VideoTable struct {
	Table        string
	ID           string
	OwnerID      string
	Title        string
	VideoFileURL string
	ThumbnailURL string
	Duration     string
	Views        string
	CreatedAt    string
}

// Video is the schema definition for videos.video
var Video = VideoTable{
	Table:        "videos.video",
	ID:           "id",
	OwnerID:      "ownerid",
	Title:        "title",
	VideoFileURL: "videofileurl",
	ThumbnailURL: "thumbnailurl",
	Duration:     "duration",
	Views:        "views",
	CreatedAt:    "createdat",
}
