package sentiment

import (
	"context"
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/sentitube/sentitube/pkg/config"
)

// Model keys accepted by the factory.
const (
	ModelVader  = "vader"
	ModelOllama = "ollama"
	ModelOpenAI = "openai"
	ModelGemini = "gemini"
)

// ErrAPIKeyRequired is returned when a cloud engine is selected without the
// credential it needs. This is raised at construction, before any text is
// processed.
var ErrAPIKeyRequired = errors.New("api key required for provider")

// Provider is an interchangeable sentiment scoring engine. AnalyzeBatch
// returns exactly one score per input text, each within [-1, 1]. Per-item
// engine failures degrade that item to 0 instead of failing the batch.
type Provider interface {
	Name() string
	AnalyzeBatch(ctx context.Context, texts []string) ([]float64, error)
}

// Summarizer produces a free-text summary for a set of texts. Only the
// model-backed engines implement it.
type Summarizer interface {
	Summarize(ctx context.Context, texts []string) (string, error)
}

// Normalize maps a caller-supplied model key (case-insensitive) to a
// canonical engine name. Unknown or empty keys normalize to the lexicon
// engine.
func Normalize(key string) string {
	switch k := strings.ToLower(strings.TrimSpace(key)); k {
	case ModelOllama, ModelOpenAI, ModelGemini:
		return k
	default:
		return ModelVader
	}
}

// ForModel maps a model key to a provider. Unknown or empty keys fall back
// to the lexicon engine so the service stays operable without any external
// credential.
func ForModel(key, apiKey string, cfg *config.ProvidersConfig) (Provider, error) {
	switch Normalize(key) {
	case ModelOllama:
		return NewOllama(cfg), nil
	case ModelOpenAI:
		return NewOpenAI(apiKey)
	case ModelGemini:
		return NewGemini(apiKey)
	default:
		return NewVader(), nil
	}
}

// scorePrompt is shared by the model-backed engines that answer in free text.
const scorePrompt = "Rate the sentiment of the following text on a scale from -1 (very negative) " +
	"to 1 (very positive). Respond with a single number only, no other text.\n\nText: "

// summaryPrompt instructs a model-backed engine to summarize comment texts.
const summaryPrompt = "Summarize the overall sentiment and recurring themes of the following " +
	"comments in a short neutral paragraph.\n\n"

// neutralThreshold snaps near-zero local-model scores to exactly zero to
// suppress noise around neutral.
const neutralThreshold = 0.05

var numberPattern = regexp.MustCompile(`-?\d+(?:\.\d+)?`)

// firstNumber extracts the first numeric token from model output.
func firstNumber(s string) (float64, bool) {
	m := numberPattern.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

func joinTexts(texts []string) string {
	var sb strings.Builder
	for i, t := range texts {
		sb.WriteString(strconv.Itoa(i + 1))
		sb.WriteString(". ")
		sb.WriteString(t)
		sb.WriteString("\n")
	}
	return sb.String()
}
