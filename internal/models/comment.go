package models

import "time"

// CommentThread is a top-level comment on a video together with its replies.
// Author channel fields are filled in by channel enrichment; the score fields
// are filled in by the scoring step. Pointer fields stay nil when the
// platform withholds the value.
type CommentThread struct {
	ID              string    `json:"id"`
	Text            string    `json:"text"`
	LikeCount       int64     `json:"likeCount"`
	AuthorName      string    `json:"authorName"`
	AuthorChannelID *string   `json:"authorChannelId,omitempty"`
	AuthorCountry   *string   `json:"authorCountry,omitempty"`
	SubscriberCount *uint64   `json:"subscriberCount,omitempty"`
	PublishedAt     time.Time `json:"publishedAt"`
	TotalReplyCount int64     `json:"totalReplyCount"`
	Replies         []Reply   `json:"replies"`
	Score           *float64  `json:"score,omitempty"`
	AdjustedScore   *float64  `json:"adjustedScore,omitempty"`
}

// Reply is a child comment. It has the same shape as CommentThread minus
// nesting and is owned by its parent thread.
type Reply struct {
	ID              string    `json:"id"`
	Text            string    `json:"text"`
	LikeCount       int64     `json:"likeCount"`
	AuthorName      string    `json:"authorName"`
	AuthorChannelID *string   `json:"authorChannelId,omitempty"`
	AuthorCountry   *string   `json:"authorCountry,omitempty"`
	SubscriberCount *uint64   `json:"subscriberCount,omitempty"`
	PublishedAt     time.Time `json:"publishedAt"`
	Score           *float64  `json:"score,omitempty"`
}

// ChannelMeta holds channel-level demographic data resolved during
// enrichment. SubscriberCount is nil when the channel hides it.
type ChannelMeta struct {
	ChannelID       string  `json:"channelId"`
	Country         *string `json:"country,omitempty"`
	SubscriberCount *uint64 `json:"subscriberCount,omitempty"`
}
