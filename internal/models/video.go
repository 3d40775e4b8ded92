package models

// VideoMeta is a single video's metadata plus engagement metrics derived
// from its statistics.
type VideoMeta struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	ChannelTitle string  `json:"channelTitle"`
	Thumbnail    string  `json:"thumbnail"`
	ViewCount    uint64  `json:"viewCount"`
	LikeCount    uint64  `json:"likeCount"`
	CommentCount uint64  `json:"commentCount"`
	LikeRate     float64 `json:"likeRate"`    // likes per view
	CommentRate  float64 `json:"commentRate"` // comments per view
}
