package sentiment

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/sentitube/sentitube/pkg/logging"
)

// Gemini is cloud engine B. The model answers in free-form text and the
// score is extracted as the first numeric token.
type Gemini struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

// NewGemini creates the engine. The key is required and missing keys fail
// here, before any scoring starts.
func NewGemini(apiKey string) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: gemini", ErrAPIKeyRequired)
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Gemini{
		client: client,
		model:  "gemini-2.0-flash",
		logger: logging.WithComponent("gemini-provider"),
	}, nil
}

// Name implements Provider
func (g *Gemini) Name() string { return ModelGemini }

// AnalyzeBatch scores texts one request at a time; per-item failures
// degrade to 0.
func (g *Gemini) AnalyzeBatch(ctx context.Context, texts []string) ([]float64, error) {
	scores := make([]float64, len(texts))
	for i, text := range texts {
		score, err := g.scoreOne(ctx, text)
		if err != nil {
			g.logger.Warn("Scoring degraded to neutral", zap.Int("index", i), zap.Error(err))
			score = 0
		}
		scores[i] = score
	}
	return scores, nil
}

func (g *Gemini) scoreOne(ctx context.Context, text string) (float64, error) {
	out, err := g.generate(ctx, scorePrompt+text)
	if err != nil {
		return 0, err
	}

	v, ok := firstNumber(out)
	if !ok {
		return 0, fmt.Errorf("no numeric token in model response")
	}
	return clamp(v), nil
}

// Summarize implements Summarizer
func (g *Gemini) Summarize(ctx context.Context, texts []string) (string, error) {
	out, err := g.generate(ctx, summaryPrompt+joinTexts(texts))
	if err != nil {
		return "", fmt.Errorf("gemini summarize: %w", err)
	}
	return strings.TrimSpace(out), nil
}

func (g *Gemini) generate(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText(prompt)}, genai.RoleUser),
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("gemini API error: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from gemini")
	}
	return text, nil
}
