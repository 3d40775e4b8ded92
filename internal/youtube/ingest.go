package youtube

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sentitube/sentitube/internal/models"
	"github.com/sentitube/sentitube/pkg/config"
	"github.com/sentitube/sentitube/pkg/logging"
	"github.com/sentitube/sentitube/pkg/telemetry"
)

// ProgressFunc is invoked after every fetched page.
type ProgressFunc func(fetchedPages, totalPages int)

// Source is the slice of the platform API that ingestion consumes.
type Source interface {
	ThreadPage(ctx context.Context, videoID string, pageSize int64, pageToken string) (*ThreadPage, error)
	ReplyPage(ctx context.Context, parentID, pageToken string) (*ReplyPage, error)
	ChannelBatch(ctx context.Context, ids []string) ([]models.ChannelMeta, error)
}

// Ingestor retrieves the complete set of comment threads for a video:
// paginated thread fetch, full reply hydration, then channel enrichment.
type Ingestor struct {
	src          Source
	pageSize     int64
	maxPages     int
	throttle     time.Duration
	channelBatch int
	logger       *zap.Logger
}

// NewIngestor creates an ingestor over the given source
func NewIngestor(src Source, cfg *config.YouTubeConfig) *Ingestor {
	return &Ingestor{
		src:          src,
		pageSize:     cfg.PageSize,
		maxPages:     cfg.MaxPages,
		throttle:     cfg.PageThrottle,
		channelBatch: cfg.ChannelBatchSize,
		logger:       logging.WithComponent("ingestor"),
	}
}

// FetchThreads returns every comment thread for the video with replies fully
// hydrated and authors enriched. Any page failure is fatal; the caller never
// sees a partial result.
func (in *Ingestor) FetchThreads(ctx context.Context, videoID string, onPage ProgressFunc) ([]models.CommentThread, error) {
	ctx, span := telemetry.StartSpan(ctx, "ingest.fetch_threads")
	defer span.End()

	var threads []models.CommentThread
	token := ""
	totalPages := 0

	for page := 1; page <= in.maxPages; page++ {
		p, err := in.src.ThreadPage(ctx, videoID, in.pageSize, token)
		if err != nil {
			return nil, fmt.Errorf("fetch threads page %d: %w", page, err)
		}
		if page == 1 {
			totalPages = in.estimatePages(p.TotalResults)
		}

		threads = append(threads, p.Threads...)
		if onPage != nil {
			onPage(page, totalPages)
		}

		token = p.NextPageToken
		if token == "" || page == in.maxPages {
			break
		}
		// Inter-page delay to respect upstream quota
		if in.throttle > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(in.throttle):
			}
		}
	}

	if err := in.hydrateReplies(ctx, threads); err != nil {
		return nil, err
	}
	if err := in.enrichAuthors(ctx, threads); err != nil {
		return nil, err
	}

	in.logger.Info("Ingestion complete",
		zap.String("video_id", videoID),
		zap.Int("threads", len(threads)))

	return threads, nil
}

// estimatePages derives a total page count from the first page's reported
// result count, bounded by the hard page cap.
func (in *Ingestor) estimatePages(totalResults int64) int {
	if totalResults <= 0 {
		return 1
	}
	pages := int((totalResults + in.pageSize - 1) / in.pageSize)
	if pages < 1 {
		pages = 1
	}
	if pages > in.maxPages {
		pages = in.maxPages
	}
	return pages
}

// hydrateReplies replaces truncated reply previews with the complete reply
// set. The platform embeds at most a handful of replies per thread, so any
// thread whose declared count exceeds its preview gets a dedicated fetch.
func (in *Ingestor) hydrateReplies(ctx context.Context, threads []models.CommentThread) error {
	for i := range threads {
		t := &threads[i]
		if t.TotalReplyCount <= int64(len(t.Replies)) {
			continue
		}

		var full []models.Reply
		token := ""
		for {
			p, err := in.src.ReplyPage(ctx, t.ID, token)
			if err != nil {
				return fmt.Errorf("hydrate replies for %s: %w", t.ID, err)
			}
			full = append(full, p.Replies...)
			token = p.NextPageToken
			if token == "" {
				break
			}
		}
		t.Replies = full
	}
	return nil
}
