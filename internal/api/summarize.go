package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sentitube/sentitube/internal/sentiment"
)

type summarizeRequest struct {
	Texts []string `json:"texts" binding:"required"`
	Model string   `json:"model"`
}

// handleSummarize produces a short natural-language summary of the given
// texts using one of the generative providers.
func (r *Router) handleSummarize(c *gin.Context) {
	var req summarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "texts is required"})
		return
	}
	if len(req.Texts) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "texts must not be empty"})
		return
	}

	provider, err := r.providers(req.Model, c.GetHeader(providerKeyHeader))
	if err != nil {
		respondError(c, r.logger, err)
		return
	}

	summarizer, ok := provider.(sentiment.Summarizer)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "model " + provider.Name() + " cannot summarize",
		})
		return
	}

	summary, err := summarizer.Summarize(c.Request.Context(), req.Texts)
	if err != nil {
		respondError(c, r.logger, err)
		return
	}

	r.logger.Debug("Summarized texts",
		zap.String("model", provider.Name()),
		zap.Int("texts", len(req.Texts)))
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
