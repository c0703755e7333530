package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	openaisdk "github.com/sashabaranov/go-openai"

	"github.com/heartmarshall/anydialect-backend/internal/domain"
)

const (
	name         = "openai"
	DefaultModel = "gpt-4-turbo"
)

// Config holds the chat completion settings.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
}

// Provider sends translation prompts to the OpenAI chat completions API.
type Provider struct {
	client *openaisdk.Client
	cfg    Config
	log    *slog.Logger
}

// NewProvider creates a Provider. An empty BaseURL targets api.openai.com.
func NewProvider(cfg Config, logger *slog.Logger) *Provider {
	clientCfg := openaisdk.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	return &Provider{
		client: openaisdk.NewClientWithConfig(clientCfg),
		cfg:    cfg,
		log:    logger.With("adapter", name),
	}
}

// Name identifies the provider in logs and audit records.
func (p *Provider) Name() string { return name }

// Complete returns the content of the first choice.
func (p *Provider) Complete(ctx context.Context, c domain.Completion) (string, error) {
	req := openaisdk.ChatCompletionRequest{
		Model: p.cfg.Model,
		Messages: []openaisdk.ChatCompletionMessage{
			{Role: openaisdk.ChatMessageRoleSystem, Content: c.System},
			{Role: openaisdk.ChatMessageRoleUser, Content: c.Prompt},
		},
		Temperature: temperature(p.cfg.Temperature),
		MaxTokens:   p.cfg.MaxTokens,
	}

	p.log.DebugContext(ctx, "openai request", slog.String("model", p.cfg.Model))

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", upstreamError(err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		p.log.ErrorContext(ctx, "openai response without content",
			slog.String("id", resp.ID),
			slog.Int("choices", len(resp.Choices)),
		)
		return "", domain.NewInvalidShapeError(name)
	}

	p.log.DebugContext(ctx, "openai response",
		slog.String("id", resp.ID),
		slog.Int("prompt_tokens", resp.Usage.PromptTokens),
		slog.Int("completion_tokens", resp.Usage.CompletionTokens),
	)

	return resp.Choices[0].Message.Content, nil
}

// temperature keeps an explicit zero on the wire. The SDK omits a zero
// value and the API then samples at its default of 1.
func temperature(t float64) float32 {
	if t <= 0 {
		return math.SmallestNonzeroFloat32
	}
	return float32(t)
}

// upstreamError keeps the API's own message when it sent one.
func upstreamError(err error) error {
	var apiErr *openaisdk.APIError
	if errors.As(err, &apiErr) {
		return &domain.UpstreamError{
			Provider:   name,
			StatusCode: apiErr.HTTPStatusCode,
			Message:    apiErr.Message,
			Err:        err,
		}
	}

	var reqErr *openaisdk.RequestError
	if errors.As(err, &reqErr) {
		return &domain.UpstreamError{
			Provider:   name,
			StatusCode: reqErr.HTTPStatusCode,
			Err:        err,
		}
	}

	return &domain.UpstreamError{Provider: name, Err: fmt.Errorf("chat completion: %w", err)}
}
