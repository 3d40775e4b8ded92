package sentiment

import (
	"context"

	"github.com/jonreiter/govader"
)

// Vader is the lexicon engine: synchronous, local, deterministic. It has no
// network dependency and never fails per item, which makes it the fallback
// for unknown model keys.
type Vader struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVader creates the lexicon engine
func NewVader() *Vader {
	return &Vader{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// Name implements Provider
func (v *Vader) Name() string { return ModelVader }

// AnalyzeBatch scores each text with the VADER compound score.
func (v *Vader) AnalyzeBatch(ctx context.Context, texts []string) ([]float64, error) {
	scores := make([]float64, len(texts))
	for i, text := range texts {
		scores[i] = clamp(v.analyzer.PolarityScores(text).Compound)
	}
	return scores, nil
}
