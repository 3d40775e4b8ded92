package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"github.com/sentitube/sentitube/internal/models"
	"github.com/sentitube/sentitube/pkg/config"
	"github.com/sentitube/sentitube/pkg/logging"
	"github.com/sentitube/sentitube/pkg/telemetry"
)

// ThreadPage is one page of comment threads as returned by the platform.
type ThreadPage struct {
	Threads       []models.CommentThread
	NextPageToken string
	TotalResults  int64
}

// ReplyPage is one page of replies for a single parent comment.
type ReplyPage struct {
	Replies       []models.Reply
	NextPageToken string
}

// Client wraps the YouTube Data API service
type Client struct {
	svc    *yt.Service
	logger *zap.Logger
}

// New creates a new YouTube client authenticated with an API key
func New(cfg *config.YouTubeConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("youtube_api_key is required")
	}

	svc, err := yt.NewService(context.Background(), option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	logger := logging.WithComponent("youtube-client")
	logger.Info("YouTube client initialized")

	return &Client{svc: svc, logger: logger}, nil
}

// ThreadPage fetches one page of comment threads for a video, replies
// preview included.
func (c *Client) ThreadPage(ctx context.Context, videoID string, pageSize int64, pageToken string) (*ThreadPage, error) {
	ctx, span := telemetry.StartSpan(ctx, "youtube.thread_page")
	defer span.End()

	call := c.svc.CommentThreads.List([]string{"snippet", "replies"}).
		VideoId(videoID).
		MaxResults(pageSize).
		TextFormat("plainText").
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list comment threads: %w", mapAPIError(err))
	}

	page := &ThreadPage{NextPageToken: resp.NextPageToken}
	if resp.PageInfo != nil {
		page.TotalResults = resp.PageInfo.TotalResults
	}
	for _, item := range resp.Items {
		page.Threads = append(page.Threads, threadFromItem(item))
	}

	return page, nil
}

// ReplyPage fetches one page of replies for a parent comment.
func (c *Client) ReplyPage(ctx context.Context, parentID, pageToken string) (*ReplyPage, error) {
	ctx, span := telemetry.StartSpan(ctx, "youtube.reply_page")
	defer span.End()

	call := c.svc.Comments.List([]string{"snippet"}).
		ParentId(parentID).
		MaxResults(100).
		TextFormat("plainText").
		Context(ctx)
	if pageToken != "" {
		call = call.PageToken(pageToken)
	}

	resp, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list replies for %s: %w", parentID, mapAPIError(err))
	}

	page := &ReplyPage{NextPageToken: resp.NextPageToken}
	for _, item := range resp.Items {
		page.Replies = append(page.Replies, replyFromComment(item))
	}

	return page, nil
}

// ChannelBatch resolves up to 50 channel ids to channel metadata. A hidden
// subscriber count comes back as nil; unknown channels are simply absent.
func (c *Client) ChannelBatch(ctx context.Context, ids []string) ([]models.ChannelMeta, error) {
	ctx, span := telemetry.StartSpan(ctx, "youtube.channel_batch")
	defer span.End()

	if len(ids) == 0 {
		return nil, nil
	}
	if len(ids) > 50 {
		return nil, fmt.Errorf("too many channel ids: %d (max: 50)", len(ids))
	}

	resp, err := c.svc.Channels.List([]string{"snippet", "statistics"}).
		Id(strings.Join(ids, ",")).
		MaxResults(int64(len(ids))).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", mapAPIError(err))
	}

	metas := make([]models.ChannelMeta, 0, len(resp.Items))
	for _, ch := range resp.Items {
		meta := models.ChannelMeta{ChannelID: ch.Id}
		if ch.Snippet != nil && ch.Snippet.Country != "" {
			country := ch.Snippet.Country
			meta.Country = &country
		}
		if ch.Statistics != nil && !ch.Statistics.HiddenSubscriberCount {
			subs := ch.Statistics.SubscriberCount
			meta.SubscriberCount = &subs
		}
		metas = append(metas, meta)
	}

	return metas, nil
}

// Video fetches a single video's metadata and statistics.
func (c *Client) Video(ctx context.Context, videoID string) (*models.VideoMeta, error) {
	ctx, span := telemetry.StartSpan(ctx, "youtube.video")
	defer span.End()

	resp, err := c.svc.Videos.List([]string{"snippet", "statistics"}).
		Id(videoID).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get video %s: %w", videoID, mapAPIError(err))
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrVideoNotFound, videoID)
	}

	item := resp.Items[0]
	meta := &models.VideoMeta{ID: item.Id}
	if item.Snippet != nil {
		meta.Title = item.Snippet.Title
		meta.ChannelTitle = item.Snippet.ChannelTitle
		if item.Snippet.Thumbnails != nil {
			if item.Snippet.Thumbnails.Standard != nil {
				meta.Thumbnail = item.Snippet.Thumbnails.Standard.Url
			} else if item.Snippet.Thumbnails.Default != nil {
				meta.Thumbnail = item.Snippet.Thumbnails.Default.Url
			}
		}
	}
	if item.Statistics != nil {
		meta.ViewCount = item.Statistics.ViewCount
		meta.LikeCount = item.Statistics.LikeCount
		meta.CommentCount = item.Statistics.CommentCount
		if meta.ViewCount > 0 {
			meta.LikeRate = float64(meta.LikeCount) / float64(meta.ViewCount)
			meta.CommentRate = float64(meta.CommentCount) / float64(meta.ViewCount)
		}
	}

	return meta, nil
}

func threadFromItem(item *yt.CommentThread) models.CommentThread {
	thread := models.CommentThread{ID: item.Id}
	if item.Snippet != nil {
		thread.TotalReplyCount = item.Snippet.TotalReplyCount
		if top := item.Snippet.TopLevelComment; top != nil && top.Snippet != nil {
			fillFromSnippet(&thread.Text, &thread.LikeCount, &thread.AuthorName,
				&thread.AuthorChannelID, &thread.PublishedAt, top.Snippet)
		}
	}
	if item.Replies != nil {
		for _, r := range item.Replies.Comments {
			thread.Replies = append(thread.Replies, replyFromComment(r))
		}
	}
	return thread
}

func replyFromComment(cm *yt.Comment) models.Reply {
	reply := models.Reply{ID: cm.Id}
	if cm.Snippet != nil {
		fillFromSnippet(&reply.Text, &reply.LikeCount, &reply.AuthorName,
			&reply.AuthorChannelID, &reply.PublishedAt, cm.Snippet)
	}
	return reply
}

func fillFromSnippet(text *string, likes *int64, author *string, channelID **string, published *time.Time, s *yt.CommentSnippet) {
	*text = s.TextDisplay
	*likes = s.LikeCount
	*author = s.AuthorDisplayName
	if s.AuthorChannelId != nil && s.AuthorChannelId.Value != "" {
		id := s.AuthorChannelId.Value
		*channelID = &id
	}
	if ts, err := time.Parse(time.RFC3339, s.PublishedAt); err == nil {
		*published = ts
	}
}

func mapAPIError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusNotFound:
			return fmt.Errorf("%w: %s", ErrVideoNotFound, gerr.Message)
		case http.StatusForbidden:
			return fmt.Errorf("%w: %s", ErrCommentsDisabled, gerr.Message)
		}
	}
	return err
}
