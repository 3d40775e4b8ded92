package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleVideoMeta returns title, channel, and engagement statistics for a
// video.
func (r *Router) handleVideoMeta(c *gin.Context) {
	videoID, err := resolveVideoID(c)
	if err != nil {
		respondError(c, r.logger, err)
		return
	}

	meta, err := r.videos.Video(c.Request.Context(), videoID)
	if err != nil {
		respondError(c, r.logger, err)
		return
	}
	c.JSON(http.StatusOK, meta)
}

// handleProgress reports ingestion and scoring progress for a job. Unknown
// job ids report zero progress rather than an error so clients can poll
// before the job has started.
func (r *Router) handleProgress(c *gin.Context) {
	c.JSON(http.StatusOK, r.tracker.Read(c.Query("jobId")))
}
