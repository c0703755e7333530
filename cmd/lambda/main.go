// Command lambda serves the translation API from AWS Lambda behind an API
// Gateway HTTP API. The stack is built once per execution environment and
// reused across invocations.
package main

import (
	"context"
	"encoding/json"
	"log"
	"log/slog"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/awslabs/aws-lambda-go-api-proxy/httpadapter"

	"github.com/heartmarshall/anydialect-backend/internal/app"
	"github.com/heartmarshall/anydialect-backend/internal/config"
)

// flushBudget bounds how long an invocation waits for its audit record.
const flushBudget = 2 * time.Second

type function struct {
	adapter *httpadapter.HandlerAdapterV2
	flush   func(ctx context.Context) error
	close   func(ctx context.Context) error
	logger  *slog.Logger
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	stack, err := app.NewStack(context.Background(), cfg, logger)
	if err != nil {
		log.Fatalf("build stack: %v", err)
	}

	fn := &function{
		adapter: httpadapter.NewV2(stack.Handler),
		flush:   stack.Dispatcher.Flush,
		close:   stack.Close,
		logger:  logger,
	}
	lambda.StartWithOptions(fn.handleRequest, lambda.WithEnableSIGTERM(fn.shutdown))
}

func (f *function) handleRequest(ctx context.Context, event json.RawMessage) (any, error) {
	// Warmup detection must come before any other processing.
	if warmup, ok := IsWarmupEvent(event); ok {
		return HandleWarmup(ctx, warmup, f.logger)
	}

	var req events.APIGatewayV2HTTPRequest
	if err := json.Unmarshal(event, &req); err != nil {
		return nil, err
	}

	resp, err := f.adapter.ProxyWithContext(ctx, req)
	if err != nil {
		return nil, err
	}

	// The environment is frozen once we return; let the audit queue drain first.
	flushCtx, cancel := context.WithTimeout(context.Background(), flushBudget)
	defer cancel()
	if err := f.flush(flushCtx); err != nil {
		f.logger.WarnContext(ctx, "audit flush incomplete", slog.String("error", err.Error()))
	}
	return resp, nil
}

func (f *function) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), flushBudget)
	defer cancel()
	if err := f.close(ctx); err != nil {
		f.logger.Warn("shutdown", slog.String("error", err.Error()))
	}
}
