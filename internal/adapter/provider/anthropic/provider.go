package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/heartmarshall/anydialect-backend/internal/domain"
)

const (
	name         = "anthropic"
	DefaultModel = "claude-sonnet-4-5"
)

// Config holds the Messages API settings.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
}

// Provider sends translation prompts to the Anthropic Messages API.
type Provider struct {
	client sdk.Client
	cfg    Config
	log    *slog.Logger
}

// NewProvider creates a Provider. SDK retries are disabled; a failed call is
// reported to the caller as is.
func NewProvider(cfg Config, logger *slog.Logger) *Provider {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 1024
	}

	return &Provider{
		client: sdk.NewClient(opts...),
		cfg:    cfg,
		log:    logger.With("adapter", name),
	}
}

// Name identifies the provider in logs and audit records.
func (p *Provider) Name() string { return name }

// Complete returns the concatenated text blocks of the reply.
func (p *Provider) Complete(ctx context.Context, c domain.Completion) (string, error) {
	params := sdk.MessageNewParams{
		Model:       sdk.Model(p.cfg.Model),
		MaxTokens:   int64(p.cfg.MaxTokens),
		Temperature: sdk.Float(p.cfg.Temperature),
		Messages: []sdk.MessageParam{
			sdk.NewUserMessage(sdk.NewTextBlock(c.Prompt)),
		},
	}
	if c.System != "" {
		params.System = []sdk.TextBlockParam{{Text: c.System}}
	}

	p.log.DebugContext(ctx, "anthropic request", slog.String("model", p.cfg.Model))

	msg, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return "", upstreamError(err)
	}

	var b strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}

	text := b.String()
	if strings.TrimSpace(text) == "" {
		p.log.ErrorContext(ctx, "anthropic response without text",
			slog.String("id", msg.ID),
			slog.Int("blocks", len(msg.Content)),
		)
		return "", domain.NewInvalidShapeError(name)
	}

	p.log.DebugContext(ctx, "anthropic response",
		slog.String("id", msg.ID),
		slog.String("stop_reason", string(msg.StopReason)),
		slog.Int64("output_tokens", msg.Usage.OutputTokens),
	)

	return text, nil
}

type errorBody struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// upstreamError keeps the API's own message when it sent one.
func upstreamError(err error) error {
	var apiErr *sdk.Error
	if errors.As(err, &apiErr) {
		var body errorBody
		_ = json.Unmarshal([]byte(apiErr.RawJSON()), &body)
		return &domain.UpstreamError{
			Provider:   name,
			StatusCode: apiErr.StatusCode,
			Message:    body.Error.Message,
			Err:        err,
		}
	}
	return &domain.UpstreamError{Provider: name, Err: fmt.Errorf("messages: %w", err)}
}
