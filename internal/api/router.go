package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sentitube/sentitube/internal/models"
	"github.com/sentitube/sentitube/internal/progress"
	"github.com/sentitube/sentitube/internal/scoring"
	"github.com/sentitube/sentitube/pkg/logging"
)

// providerKeyHeader carries a caller-supplied credential for the cloud
// sentiment providers. It is read per request and never stored or logged.
const providerKeyHeader = "X-Provider-Key"

// Scorer runs the fetch-analyze-blend pipeline and returns the cached
// JSON payload for a video.
type Scorer interface {
	ScoredComments(ctx context.Context, req scoring.Request) (json.RawMessage, error)
}

// VideoSource resolves video metadata from the upstream API.
type VideoSource interface {
	Video(ctx context.Context, videoID string) (*models.VideoMeta, error)
}

// Router handles HTTP requests for the sentiment API
type Router struct {
	fetcher   scoring.Fetcher
	videos    VideoSource
	scorer    Scorer
	tracker   *progress.Tracker
	providers scoring.ProviderFactory
	logger    *zap.Logger
}

// NewRouter creates a new API router
func NewRouter(fetcher scoring.Fetcher, videos VideoSource, scorer Scorer, tracker *progress.Tracker, providers scoring.ProviderFactory) *Router {
	return &Router{
		fetcher:   fetcher,
		videos:    videos,
		scorer:    scorer,
		tracker:   tracker,
		providers: providers,
		logger:    logging.WithComponent("api"),
	}
}

// SetupRoutes registers the HTTP endpoints on the gin engine
func (r *Router) SetupRoutes(engine *gin.Engine) {
	engine.GET("/health", r.handleHealth)
	engine.GET("/comments", r.handleComments)
	engine.GET("/comments_scored", r.handleCommentsScored)
	engine.GET("/progress", r.handleProgress)
	engine.GET("/video_meta", r.handleVideoMeta)
	engine.POST("/summarize", r.handleSummarize)
}

func (r *Router) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
