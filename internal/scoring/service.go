package scoring

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/sentitube/sentitube/internal/cache"
	"github.com/sentitube/sentitube/internal/models"
	"github.com/sentitube/sentitube/internal/progress"
	"github.com/sentitube/sentitube/internal/sentiment"
	"github.com/sentitube/sentitube/internal/youtube"
	"github.com/sentitube/sentitube/pkg/config"
	"github.com/sentitube/sentitube/pkg/logging"
	"github.com/sentitube/sentitube/pkg/telemetry"
)

// Fetcher retrieves hydrated, enriched comment threads for a video.
type Fetcher interface {
	FetchThreads(ctx context.Context, videoID string, onPage youtube.ProgressFunc) ([]models.CommentThread, error)
}

// ProviderFactory builds a sentiment provider for a model key.
type ProviderFactory func(modelKey, apiKey string) (sentiment.Provider, error)

// Request describes one scored-comments request.
type Request struct {
	VideoID string
	Model   string
	APIKey  string
	JobID   string
	Weights models.BlendWeights
	Options sentiment.BlendOptions
}

// Service runs the full retrieval, scoring and blending cycle for a video
// and memoizes the finished payload.
type Service struct {
	fetcher   Fetcher
	providers ProviderFactory
	cache     *cache.Cache
	tracker   *progress.Tracker
	batchSize int
	logger    *zap.Logger
}

// New creates a scoring service
func New(fetcher Fetcher, providers ProviderFactory, c *cache.Cache, tracker *progress.Tracker, cfg *config.ProvidersConfig) *Service {
	return &Service{
		fetcher:   fetcher,
		providers: providers,
		cache:     c,
		tracker:   tracker,
		batchSize: cfg.BatchSize,
		logger:    logging.WithComponent("scoring"),
	}
}

// ScoredComments returns the scored payload for a video, from cache when
// possible. On a miss it ingests, scores every parent and reply text in
// fixed-size batches, blends, and caches the marshaled result.
func (s *Service) ScoredComments(ctx context.Context, req Request) (json.RawMessage, error) {
	ctx, span := telemetry.StartSpan(ctx, "scoring.scored_comments")
	defer span.End()

	model := sentiment.Normalize(req.Model)

	if payload, ok := s.cache.Get(req.VideoID, model); ok {
		s.logger.Debug("Cache hit",
			zap.String("video_id", req.VideoID),
			zap.String("model", model))
		return payload, nil
	}

	provider, err := s.providers(model, req.APIKey)
	if err != nil {
		return nil, fmt.Errorf("construct provider %q: %w", model, err)
	}

	if req.JobID != "" {
		s.tracker.Start(req.JobID)
	}

	threads, err := s.fetcher.FetchThreads(ctx, req.VideoID, func(fetched, total int) {
		s.tracker.Apply(req.JobID, progress.Update{
			FetchedPages: progress.Int(fetched),
			TotalPages:   progress.Int(total),
		})
	})
	if err != nil {
		return nil, err
	}

	texts := collectTexts(threads)
	s.tracker.Apply(req.JobID, progress.Update{TotalTexts: progress.Int(len(texts))})

	scores := make([]float64, 0, len(texts))
	for start := 0; start < len(texts); start += s.batchSize {
		end := start + s.batchSize
		if end > len(texts) {
			end = len(texts)
		}

		batch, err := provider.AnalyzeBatch(ctx, texts[start:end])
		if err != nil {
			return nil, fmt.Errorf("score batch at %d: %w", start, err)
		}
		if len(batch) != end-start {
			return nil, fmt.Errorf("provider %s returned %d scores for %d texts", provider.Name(), len(batch), end-start)
		}

		scores = append(scores, batch...)
		s.tracker.Apply(req.JobID, progress.Update{ScoredTexts: progress.Int(len(scores))})
	}

	attachScores(threads, scores)
	result := buildResult(threads, req, model)

	payload, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("marshal scored result: %w", err)
	}

	s.cache.Set(req.VideoID, model, payload)
	s.logger.Info("Scoring complete",
		zap.String("video_id", req.VideoID),
		zap.String("model", model),
		zap.Int("threads", len(threads)),
		zap.Int("texts", len(texts)))

	return payload, nil
}

// collectTexts flattens every parent and reply text, parent first, in
// thread order. attachScores relies on the same traversal.
func collectTexts(threads []models.CommentThread) []string {
	var texts []string
	for i := range threads {
		texts = append(texts, threads[i].Text)
		for j := range threads[i].Replies {
			texts = append(texts, threads[i].Replies[j].Text)
		}
	}
	return texts
}

func attachScores(threads []models.CommentThread, scores []float64) {
	idx := 0
	for i := range threads {
		base := scores[idx]
		threads[i].Score = &base
		idx++
		for j := range threads[i].Replies {
			rs := scores[idx]
			threads[i].Replies[j].Score = &rs
			idx++
		}
	}
}

func buildResult(threads []models.CommentThread, req Request, model string) models.ScoredResult {
	result := models.ScoredResult{
		VideoID:  req.VideoID,
		Model:    model,
		Weights:  req.Weights,
		Comments: threads,
	}
	if result.Comments == nil {
		result.Comments = []models.CommentThread{}
	}

	for i := range threads {
		t := &threads[i]
		base := *t.Score

		signals := make([]sentiment.ReplySignal, len(t.Replies))
		for j := range t.Replies {
			signals[j] = sentiment.ReplySignal{
				Score: *t.Replies[j].Score,
				Likes: t.Replies[j].LikeCount,
			}
		}

		adjusted := sentiment.Blend(base, t.LikeCount, signals, req.Weights, req.Options)
		t.AdjustedScore = &adjusted

		switch {
		case base > 0:
			result.TotalPositive++
		case base < 0:
			result.TotalNegative++
		default:
			result.TotalNeutral++
		}
		result.TotalScore += base
		result.TotalAdjustedScore += adjusted
	}

	return result
}
