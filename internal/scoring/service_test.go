package scoring

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sentitube/sentitube/internal/cache"
	"github.com/sentitube/sentitube/internal/models"
	"github.com/sentitube/sentitube/internal/progress"
	"github.com/sentitube/sentitube/internal/sentiment"
	"github.com/sentitube/sentitube/internal/youtube"
	"github.com/sentitube/sentitube/pkg/config"
)

type fakeFetcher struct {
	threads []models.CommentThread
	err     error
	calls   int
}

func (f *fakeFetcher) FetchThreads(ctx context.Context, videoID string, onPage youtube.ProgressFunc) ([]models.CommentThread, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if onPage != nil {
		onPage(1, 1)
	}
	// Hand the service its own copy; the pipeline mutates threads in place.
	out := make([]models.CommentThread, len(f.threads))
	copy(out, f.threads)
	return out, nil
}

type fakeProvider struct {
	score      float64
	batchSizes []int
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) AnalyzeBatch(ctx context.Context, texts []string) ([]float64, error) {
	p.batchSizes = append(p.batchSizes, len(texts))
	scores := make([]float64, len(texts))
	for i := range scores {
		scores[i] = p.score
	}
	return scores, nil
}

func providersConfig(batchSize int) *config.ProvidersConfig {
	return &config.ProvidersConfig{BatchSize: batchSize}
}

func newService(f Fetcher, p sentiment.Provider, c *cache.Cache, batchSize int) (*Service, *progress.Tracker) {
	tracker := progress.NewTracker()
	factory := func(model, apiKey string) (sentiment.Provider, error) { return p, nil }
	return New(f, factory, c, tracker, providersConfig(batchSize)), tracker
}

func sampleThreads() []models.CommentThread {
	return []models.CommentThread{
		{
			ID: "c1", Text: "love it", LikeCount: 4,
			Replies: []models.Reply{{ID: "r1", Text: "same"}, {ID: "r2", Text: "meh"}},
		},
		{ID: "c2", Text: "hate it", LikeCount: 0},
	}
}

func TestScoredComments_AttachesAndBlends(t *testing.T) {
	fetcher := &fakeFetcher{threads: sampleThreads()}
	provider := &fakeProvider{score: 0.5}
	svc, _ := newService(fetcher, provider, nil, 25)

	payload, err := svc.ScoredComments(context.Background(), Request{
		VideoID: "v1",
		Model:   "vader",
		Weights: models.BlendWeights{Comment: 1},
	})
	if err != nil {
		t.Fatalf("ScoredComments() error: %v", err)
	}

	var result models.ScoredResult
	if err := json.Unmarshal(payload, &result); err != nil {
		t.Fatalf("Failed to unmarshal payload: %v", err)
	}

	if len(result.Comments) != 2 {
		t.Fatalf("Expected 2 threads, got %d", len(result.Comments))
	}
	for _, c := range result.Comments {
		if c.Score == nil || *c.Score != 0.5 {
			t.Errorf("Thread %s base score = %v, want 0.5", c.ID, c.Score)
		}
		if c.AdjustedScore == nil {
			t.Errorf("Thread %s missing adjusted score", c.ID)
		}
		for _, r := range c.Replies {
			if r.Score == nil || *r.Score != 0.5 {
				t.Errorf("Reply %s score = %v, want 0.5", r.ID, r.Score)
			}
		}
	}
	if result.TotalPositive != 2 || result.TotalNegative != 0 || result.TotalNeutral != 0 {
		t.Errorf("Tallies = +%d/-%d/0:%d, want +2/-0/0:0",
			result.TotalPositive, result.TotalNegative, result.TotalNeutral)
	}
	if result.TotalScore != 1.0 {
		t.Errorf("TotalScore = %v, want 1.0", result.TotalScore)
	}
}

func TestScoredComments_BatchSplitting(t *testing.T) {
	fetcher := &fakeFetcher{threads: sampleThreads()} // 4 texts overall
	provider := &fakeProvider{score: 0.1}
	svc, tracker := newService(fetcher, provider, nil, 3)

	_, err := svc.ScoredComments(context.Background(), Request{
		VideoID: "v1", Model: "vader", JobID: "job-1",
		Weights: models.BlendWeights{Comment: 1},
	})
	if err != nil {
		t.Fatalf("ScoredComments() error: %v", err)
	}

	if len(provider.batchSizes) != 2 || provider.batchSizes[0] != 3 || provider.batchSizes[1] != 1 {
		t.Errorf("Expected batches [3 1], got %v", provider.batchSizes)
	}

	p := tracker.Read("job-1")
	if p.TotalTexts != 4 || p.ScoredTexts != 4 {
		t.Errorf("Progress texts = %d/%d, want 4/4", p.ScoredTexts, p.TotalTexts)
	}
	if p.FetchedPages != 1 || p.TotalPages != 1 {
		t.Errorf("Progress pages = %d/%d, want 1/1", p.FetchedPages, p.TotalPages)
	}
}

func TestScoredComments_CacheRoundTrip(t *testing.T) {
	fetcher := &fakeFetcher{threads: sampleThreads()}
	provider := &fakeProvider{score: 0.5}
	c := cache.New(&config.CacheConfig{Enabled: true, MaxEntries: 10, TTL: time.Minute})
	svc, _ := newService(fetcher, provider, c, 25)

	req := Request{VideoID: "v1", Model: "vader", Weights: models.BlendWeights{Comment: 1}}

	first, err := svc.ScoredComments(context.Background(), req)
	if err != nil {
		t.Fatalf("First call error: %v", err)
	}
	second, err := svc.ScoredComments(context.Background(), req)
	if err != nil {
		t.Fatalf("Second call error: %v", err)
	}

	if fetcher.calls != 1 {
		t.Errorf("Expected a single ingest, got %d", fetcher.calls)
	}
	if string(first) != string(second) {
		t.Error("Cached payload should equal the computed payload")
	}
}

func TestScoredComments_UnknownModelSharesDefaultCacheKey(t *testing.T) {
	fetcher := &fakeFetcher{threads: sampleThreads()}
	provider := &fakeProvider{score: 0.5}
	c := cache.New(&config.CacheConfig{Enabled: true, MaxEntries: 10, TTL: time.Minute})
	svc, _ := newService(fetcher, provider, c, 25)

	if _, err := svc.ScoredComments(context.Background(), Request{VideoID: "v1", Model: "vader"}); err != nil {
		t.Fatalf("ScoredComments() error: %v", err)
	}
	// Unknown keys normalize to the default engine and hit the same entry
	if _, err := svc.ScoredComments(context.Background(), Request{VideoID: "v1", Model: "watson"}); err != nil {
		t.Fatalf("ScoredComments() error: %v", err)
	}

	if fetcher.calls != 1 {
		t.Errorf("Expected unknown model key to reuse the default entry, got %d ingests", fetcher.calls)
	}
}

func TestScoredComments_FetchFailureIsFatal(t *testing.T) {
	upstreamErr := errors.New("upstream down")
	fetcher := &fakeFetcher{err: upstreamErr}
	svc, _ := newService(fetcher, &fakeProvider{}, nil, 25)

	_, err := svc.ScoredComments(context.Background(), Request{VideoID: "v1", Model: "vader"})
	if !errors.Is(err, upstreamErr) {
		t.Errorf("Expected wrapped upstream error, got: %v", err)
	}
}

func TestScoredComments_ProviderConstructionFailure(t *testing.T) {
	fetcher := &fakeFetcher{threads: sampleThreads()}
	tracker := progress.NewTracker()
	factory := func(model, apiKey string) (sentiment.Provider, error) {
		return nil, sentiment.ErrAPIKeyRequired
	}
	svc := New(fetcher, factory, nil, tracker, providersConfig(25))

	_, err := svc.ScoredComments(context.Background(), Request{VideoID: "v1", Model: "openai"})
	if !errors.Is(err, sentiment.ErrAPIKeyRequired) {
		t.Errorf("Expected ErrAPIKeyRequired, got: %v", err)
	}
	if fetcher.calls != 0 {
		t.Error("Provider construction failure must abort before ingestion")
	}
}

func TestScoredComments_NoComments(t *testing.T) {
	fetcher := &fakeFetcher{}
	svc, _ := newService(fetcher, &fakeProvider{}, nil, 25)

	payload, err := svc.ScoredComments(context.Background(), Request{VideoID: "v1", Model: "vader"})
	if err != nil {
		t.Fatalf("ScoredComments() error: %v", err)
	}

	var result models.ScoredResult
	if err := json.Unmarshal(payload, &result); err != nil {
		t.Fatalf("Failed to unmarshal payload: %v", err)
	}
	if len(result.Comments) != 0 {
		t.Errorf("Expected empty comments, got %d", len(result.Comments))
	}
}
