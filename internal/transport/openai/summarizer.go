// Package openai implements the answer summarizer over the OpenAI-compatible
// chat completions API.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"specbot/internal/domain"
	"specbot/internal/metrics"
)

// systemPrompt keeps the model grounded in the retrieved pages: answer in
// Japanese, from the provided sources only, no speculation.
const systemPrompt = "あなたは社内ドキュメント検索アシスタントです。" +
	"提供された検索結果のみに基づいて、質問に日本語で簡潔に回答してください。" +
	"検索結果に含まれない内容を推測で補わないでください。"

// Summarizer generates answers using the OpenAI-compatible API.
type Summarizer struct {
	client      *openai.Client
	model       string
	temperature float32
	maxTokens   int
	provider    string
	logger      *zap.Logger
}

// Config holds the summarizer provider settings.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
	Provider    string
	Logger      *zap.Logger
}

// NewSummarizer creates an OpenAI-compatible summarizer.
func NewSummarizer(cfg *Config) *Summarizer {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Summarizer{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		provider:    cfg.Provider,
		logger:      cfg.Logger,
	}
}

// Summarize answers a question from the rendered source block.
// Returns the answer text and token usage with transport-level metrics.
func (s *Summarizer) Summarize(ctx context.Context, question, sources string) (domain.Summary, error) {
	req := openai.ChatCompletionRequest{
		Model:       s.model,
		Temperature: s.temperature,
		MaxTokens:   s.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("【質問】\n%s\n\n【検索結果】\n%s", question, sources),
			},
		},
	}

	start := time.Now()

	resp, err := s.client.CreateChatCompletion(ctx, req)

	duration := time.Since(start)

	if err != nil {
		metrics.SummaryRequestsTotal.WithLabelValues(s.provider, s.model, "error").Inc()
		return domain.Summary{}, parseAPIError(err)
	}

	if len(resp.Choices) == 0 {
		metrics.SummaryRequestsTotal.WithLabelValues(s.provider, s.model, "error").Inc()
		return domain.Summary{}, fmt.Errorf("empty completion response: %w", domain.ErrSummaryProviderError)
	}

	// Record success metrics
	metrics.SummaryRequestsTotal.WithLabelValues(s.provider, s.model, "success").Inc()
	metrics.SummaryRequestDuration.WithLabelValues(s.provider, s.model).Observe(duration.Seconds())

	usage := resp.Usage
	if usage.TotalTokens > 0 {
		tokens := metrics.SummaryTokensTotal
		tokens.WithLabelValues(s.provider, s.model, "prompt").Add(float64(usage.PromptTokens))
		tokens.WithLabelValues(s.provider, s.model, "completion").Add(float64(usage.CompletionTokens))
		tokens.WithLabelValues(s.provider, s.model, "total").Add(float64(usage.TotalTokens))
	}

	return domain.Summary{
		Text:             resp.Choices[0].Message.Content,
		PromptTokens:     usage.PromptTokens,
		CompletionTokens: usage.CompletionTokens,
		TotalTokens:      usage.TotalTokens,
	}, nil
}

// Model returns the configured model name.
func (s *Summarizer) Model() string { return s.model }

// HealthCheck verifies API availability via ListModels (free endpoint).
func (s *Summarizer) HealthCheck(ctx context.Context) error {
	if _, err := s.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// parseAPIError extracts a human-readable error from the API response.
// Rate limits map to domain.ErrRateLimited, everything else to
// domain.ErrSummaryProviderError for correct HTTP status mapping.
func parseAPIError(err error) error {
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		wrap := wrapForStatus(reqErr.HTTPStatusCode)
		detail := extractDetail(reqErr.Body)
		if detail == "" {
			detail = string(reqErr.Body)
		}
		return fmt.Errorf("summary API error %d: %s: %w", reqErr.HTTPStatusCode, detail, wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		wrap := wrapForStatus(apiErr.HTTPStatusCode)
		return fmt.Errorf("summary API error %d: %s: %w", apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("summary request failed: %w", domain.ErrSummaryProviderError)
}

func wrapForStatus(status int) error {
	if status == http.StatusTooManyRequests {
		return domain.ErrRateLimited
	}
	return domain.ErrSummaryProviderError
}

// extractDetail extracts the "detail" field from a JSON error body.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
