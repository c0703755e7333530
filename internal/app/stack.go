package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/anydialect-backend/internal/adapter/stripe"
	"github.com/heartmarshall/anydialect-backend/internal/audit"
	"github.com/heartmarshall/anydialect-backend/internal/auth"
	"github.com/heartmarshall/anydialect-backend/internal/config"
	"github.com/heartmarshall/anydialect-backend/internal/service/billing"
	"github.com/heartmarshall/anydialect-backend/internal/service/translation"
	"github.com/heartmarshall/anydialect-backend/internal/transport/middleware"
	"github.com/heartmarshall/anydialect-backend/internal/transport/rest"
)

// Stack is the fully wired HTTP application shared by the server and the
// Lambda entrypoint.
type Stack struct {
	Handler    http.Handler
	Dispatcher *audit.Dispatcher

	limiter  *middleware.RateLimiter
	sink     io.Closer
	log      *slog.Logger
	errsDone chan struct{}
}

// NewStack builds the provider, audit pipeline, services and router from cfg.
func NewStack(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Stack, error) {
	provider, err := NewCompletionProvider(cfg.Completion, logger)
	if err != nil {
		return nil, fmt.Errorf("completion provider: %w", err)
	}

	sink, sinkCloser, err := NewAuditSink(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("audit sink: %w", err)
	}

	dispatcher := audit.NewDispatcher(sink, audit.Config{
		QueueSize:       cfg.Audit.QueueSize,
		Workers:         cfg.Audit.Workers,
		WriteTimeout:    cfg.Audit.WriteTimeout,
		BreakerFailures: cfg.Audit.BreakerFailures,
		BreakerCooldown: cfg.Audit.BreakerCooldown,
	}, logger)

	translationSvc := translation.NewService(logger, provider, dispatcher, cfg.Completion.Timeout)

	health := rest.NewHealthHandler(BuildVersion()).WithAuditStats(dispatcher)
	if p, ok := sink.(interface{ Ping(context.Context) error }); ok {
		health.WithCheck("audit_sink", p)
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval, cfg.RateLimit.TrustProxy)

	routes := rest.Routes{
		Translate:      rest.NewTranslateHandler(translationSvc, logger, cfg.Server.MaxBodyBytes),
		Health:         health,
		TranslateLimit: limiter.Limit(cfg.RateLimit.TranslatePerMinute),
	}

	if cfg.Billing.Enabled() {
		gw := stripe.NewGateway(stripe.Config{
			SecretKey:     cfg.Billing.StripeSecretKey,
			WebhookSecret: cfg.Billing.StripeWebhookSecret,
			BaseURL:       cfg.Billing.StripeBaseURL,
		}, logger)
		routes.Billing = rest.NewBillingHandler(billing.NewService(logger, gw, cfg.Billing.AppURL), logger)
	}

	if cfg.Auth.Enabled() {
		routes.Identity = middleware.Auth(auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer))
	}

	handler := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
	)(rest.NewRouter(routes))

	s := &Stack{
		Handler:    handler,
		Dispatcher: dispatcher,
		limiter:    limiter,
		sink:       sinkCloser,
		log:        logger,
		errsDone:   make(chan struct{}),
	}
	go s.drainAuditErrors()

	logger.Info("stack ready",
		slog.String("provider", provider.Name()),
		slog.String("model", cfg.Completion.ModelOrDefault()),
		slog.String("audit_sink", sink.Name()),
		slog.Bool("auth", cfg.Auth.Enabled()),
		slog.Bool("billing", cfg.Billing.Enabled()),
	)
	return s, nil
}

// drainAuditErrors counts audit failures reported by the dispatcher. Each
// failure is already logged by the dispatcher; this keeps the channel empty.
func (s *Stack) drainAuditErrors() {
	defer close(s.errsDone)
	var failures int
	for range s.Dispatcher.Errors() {
		failures++
	}
	if failures > 0 {
		s.log.Warn("audit failures during lifetime", slog.Int("count", failures))
	}
}

// Close drains queued audit records within ctx and releases the sink.
func (s *Stack) Close(ctx context.Context) error {
	s.limiter.Stop()

	var errs []error
	if err := s.Dispatcher.Close(ctx); err != nil {
		errs = append(errs, err)
	}

	select {
	case <-s.errsDone:
	case <-time.After(time.Second):
	}

	if err := s.sink.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close audit sink: %w", err))
	}
	return errors.Join(errs...)
}
