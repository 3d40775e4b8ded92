package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/sentitube/sentitube/pkg/config"
	"github.com/sentitube/sentitube/pkg/logging"
)

// Ollama is the local-model engine. It issues one request per text to a
// locally hosted inference service, strictly sequentially, with a fixed
// timeout per call. Near-neutral scores are snapped to zero.
type Ollama struct {
	endpoint string
	model    string
	http     *http.Client
	logger   *zap.Logger
}

// NewOllama creates the local-model engine from configuration
func NewOllama(cfg *config.ProvidersConfig) *Ollama {
	return &Ollama{
		endpoint: strings.TrimRight(cfg.OllamaURL, "/"),
		model:    cfg.OllamaModel,
		http:     &http.Client{Timeout: cfg.OllamaTimeout},
		logger:   logging.WithComponent("ollama-provider"),
	}
}

// Name implements Provider
func (o *Ollama) Name() string { return ModelOllama }

// AnalyzeBatch scores texts one request at a time. A timeout or parse miss
// degrades that item to 0 rather than aborting the batch.
func (o *Ollama) AnalyzeBatch(ctx context.Context, texts []string) ([]float64, error) {
	scores := make([]float64, len(texts))
	for i, text := range texts {
		score, err := o.scoreOne(ctx, text)
		if err != nil {
			o.logger.Warn("Scoring degraded to neutral", zap.Int("index", i), zap.Error(err))
			score = 0
		}
		scores[i] = score
	}
	return scores, nil
}

func (o *Ollama) scoreOne(ctx context.Context, text string) (float64, error) {
	out, err := o.generate(ctx, scorePrompt+text)
	if err != nil {
		return 0, err
	}

	v, ok := firstNumber(out)
	if !ok {
		return 0, fmt.Errorf("no numeric token in model response")
	}
	v = clamp(v)
	if math.Abs(v) < neutralThreshold {
		v = 0
	}
	return v, nil
}

// Summarize implements Summarizer
func (o *Ollama) Summarize(ctx context.Context, texts []string) (string, error) {
	out, err := o.generate(ctx, summaryPrompt+joinTexts(texts))
	if err != nil {
		return "", fmt.Errorf("ollama summarize: %w", err)
	}
	return strings.TrimSpace(out), nil
}

func (o *Ollama) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(map[string]any{
		"model":  o.model,
		"prompt": prompt,
		"stream": false,
	})
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpoint+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	var parsed struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	return parsed.Response, nil
}
