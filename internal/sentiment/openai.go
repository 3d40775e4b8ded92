package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"

	"github.com/sentitube/sentitube/pkg/logging"
)

const openaiScoreSystemPrompt = `Rate the sentiment of the user's text on a scale from -1 (very negative) to 1 (very positive).
Output as JSON only, no other text:
{"score": N}
Where N is a float up to 2 decimal places between -1 and 1.`

// OpenAI is cloud engine A. It expects a structured numeric reply; a regex
// fallback handles responses that miss the declared shape.
type OpenAI struct {
	client *openai.Client
	model  openai.ChatModel
	logger *zap.Logger
}

// NewOpenAI creates the engine. The key is required and missing keys fail
// here, before any scoring starts.
func NewOpenAI(apiKey string) (*OpenAI, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("%w: openai", ErrAPIKeyRequired)
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAI{
		client: &client,
		model:  openai.ChatModelGPT4oMini,
		logger: logging.WithComponent("openai-provider"),
	}, nil
}

// Name implements Provider
func (c *OpenAI) Name() string { return ModelOpenAI }

// AnalyzeBatch scores texts one request at a time; per-item failures
// degrade to 0.
func (c *OpenAI) AnalyzeBatch(ctx context.Context, texts []string) ([]float64, error) {
	scores := make([]float64, len(texts))
	for i, text := range texts {
		score, err := c.scoreOne(ctx, text)
		if err != nil {
			c.logger.Warn("Scoring degraded to neutral", zap.Int("index", i), zap.Error(err))
			score = 0
		}
		scores[i] = score
	}
	return scores, nil
}

func (c *OpenAI) scoreOne(ctx context.Context, text string) (float64, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(openaiScoreSystemPrompt),
			openai.UserMessage(text),
		},
	})
	if err != nil {
		return 0, fmt.Errorf("openai API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return 0, fmt.Errorf("no response from openai")
	}

	content := cleanJSONResponse(resp.Choices[0].Message.Content)

	// A pointer distinguishes a real zero score from a reply that is valid
	// JSON but carries no score field at all.
	var parsed struct {
		Score *float64 `json:"score"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err == nil && parsed.Score != nil {
		return clamp(*parsed.Score), nil
	}

	// Structured parse missed; fall back to the first numeric token
	if v, ok := firstNumber(content); ok {
		return clamp(v), nil
	}
	return 0, fmt.Errorf("unparseable score in response: %s", content)
}

// Summarize implements Summarizer
func (c *OpenAI) Summarize(ctx context.Context, texts []string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(summaryPrompt),
			openai.UserMessage(joinTexts(texts)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from openai")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	return strings.TrimSpace(content)
}
