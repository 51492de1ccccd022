// Package sentiment provides the black-box sentiment scoring capability.
// The aggregation engine only ever sees a bounded SentimentResult; how the
// score was derived (model call, keyword fallback) stays behind the
// models.SentimentAnalyzer interface.
package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"

	"github.com/Alias1177/MoodTracker/internal/signals"
	"github.com/Alias1177/MoodTracker/models"
)

// OpenAIAnalyzer scores sentiment payloads via the chat completions API.
// Any failure (timeout, API error, unparsable model output) degrades to the
// keyword heuristic, and finally to neutral: sentiment scoring is never a
// fatal path.
type OpenAIAnalyzer struct {
	client *openai.Client
	apiKey string
	model  string
	logger zerolog.Logger
}

func NewOpenAIAnalyzer(apiKey, model string, timeout time.Duration) *OpenAIAnalyzer {
	cfg := openai.DefaultConfig(apiKey)
	cfg.HTTPClient = &http.Client{Timeout: timeout}

	return &OpenAIAnalyzer{
		client: openai.NewClientWithConfig(cfg),
		apiKey: apiKey,
		model:  model,
		logger: log.With().Str("component", "sentiment").Logger(),
	}
}

// Score analyzes one payload and returns a bounded sentiment result. The
// returned error is informational; the result is always usable.
func (a *OpenAIAnalyzer) Score(ctx context.Context, kind models.SignalSource, payload string) (models.SentimentResult, error) {
	if strings.TrimSpace(payload) == "" {
		return models.SentimentResult{Analysis: "no data available"}, nil
	}
	if a.apiKey == "" {
		return a.fallback(kind, payload, fmt.Errorf("no API key configured"))
	}

	content, err := a.complete(ctx, buildPrompt(kind, payload))
	if err != nil {
		return a.fallback(kind, payload, err)
	}

	var result models.SentimentResult
	if err := json.Unmarshal([]byte(extractJSON(content)), &result); err != nil {
		return a.fallback(kind, payload, fmt.Errorf("unparsable model output: %w", err))
	}

	result.Score = models.Clamp(result.Score)
	return result, nil
}

func (a *OpenAIAnalyzer) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := a.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: a.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: 0.3,
		},
	)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion response has no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// fallback derives a keyword-based score from the raw payload text
func (a *OpenAIAnalyzer) fallback(kind models.SignalSource, payload string, cause error) (models.SentimentResult, error) {
	a.logger.Warn().Err(cause).Str("source", string(kind)).Msg("sentiment model unavailable, using keyword fallback")
	return models.SentimentResult{
		Score:    models.Clamp(signals.KeywordScore(payload)),
		Analysis: "keyword-derived score (model unavailable)",
	}, nil
}

func buildPrompt(kind models.SignalSource, payload string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Analyze the following %s data for crypto market sentiment.\n\n", kind))
	sb.WriteString(payload)
	sb.WriteString("\n\nRespond with JSON only, in this exact format:\n")
	sb.WriteString(`{"sentiment_score": <float from -1.0 (very bearish) to +1.0 (very bullish)>, "analysis": "<2-3 sentence summary>"}`)
	return sb.String()
}

// extractJSON strips markdown code fences the model sometimes wraps its
// JSON answer in.
func extractJSON(content string) string {
	content = strings.TrimSpace(content)
	if start := strings.Index(content, "{"); start >= 0 {
		if end := strings.LastIndex(content, "}"); end > start {
			return content[start : end+1]
		}
	}
	return content
}
