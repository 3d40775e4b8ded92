package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sentitube/sentitube/internal/models"
	"github.com/sentitube/sentitube/internal/progress"
	"github.com/sentitube/sentitube/internal/scoring"
	"github.com/sentitube/sentitube/internal/sentiment"
	"github.com/sentitube/sentitube/internal/youtube"
)

// resolveVideoID extracts the video id from the videoId or url query
// parameter. Either may hold a bare id or a full watch URL.
func resolveVideoID(c *gin.Context) (string, error) {
	raw := c.Query("videoId")
	if raw == "" {
		raw = c.Query("url")
	}
	return youtube.ExtractVideoID(raw)
}

// parseWeight reads a float query parameter, falling back to def when absent.
func parseWeight(c *gin.Context, name string, def float64) (float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, NewError(http.StatusBadRequest, "invalid "+name)
	}
	return v, nil
}

func parseWeights(c *gin.Context) (models.BlendWeights, error) {
	var w models.BlendWeights
	var err error
	if w.Comment, err = parseWeight(c, "wComment", 1); err != nil {
		return w, err
	}
	if w.Replies, err = parseWeight(c, "wReplies", 0); err != nil {
		return w, err
	}
	if w.Likes, err = parseWeight(c, "wLikes", 0); err != nil {
		return w, err
	}
	return w, nil
}

// handleComments fetches and enriches the comment threads for a video
// without scoring them.
func (r *Router) handleComments(c *gin.Context) {
	videoID, err := resolveVideoID(c)
	if err != nil {
		respondError(c, r.logger, err)
		return
	}

	jobID := c.Query("jobId")
	var onPage youtube.ProgressFunc
	if jobID != "" {
		r.tracker.Start(jobID)
		onPage = func(fetched, total int) {
			r.tracker.Apply(jobID, progress.Update{
				FetchedPages: progress.Int(fetched),
				TotalPages:   progress.Int(total),
			})
		}
	}

	threads, err := r.fetcher.FetchThreads(c.Request.Context(), videoID, onPage)
	if err != nil {
		respondError(c, r.logger, err)
		return
	}
	if threads == nil {
		threads = []models.CommentThread{}
	}

	r.logger.Debug("Fetched comments",
		zap.String("video_id", videoID),
		zap.Int("threads", len(threads)))
	c.JSON(http.StatusOK, threads)
}

// handleCommentsScored runs the full pipeline and returns the scored
// payload. Results are served from cache when available.
func (r *Router) handleCommentsScored(c *gin.Context) {
	videoID, err := resolveVideoID(c)
	if err != nil {
		respondError(c, r.logger, err)
		return
	}

	weights, err := parseWeights(c)
	if err != nil {
		respondError(c, r.logger, err)
		return
	}

	req := scoring.Request{
		VideoID: videoID,
		Model:   c.Query("model"),
		APIKey:  c.GetHeader(providerKeyHeader),
		JobID:   c.Query("jobId"),
		Weights: weights,
		Options: sentiment.BlendOptions{
			WeightReplyLikes: c.Query("weightReplyLikes") == "true",
		},
	}

	payload, err := r.scorer.ScoredComments(c.Request.Context(), req)
	if err != nil {
		respondError(c, r.logger, err)
		return
	}
	c.Data(http.StatusOK, "application/json", payload)
}
