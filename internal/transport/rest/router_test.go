package rest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/anydialect-backend/internal/audit"
	"github.com/heartmarshall/anydialect-backend/internal/config"
	"github.com/heartmarshall/anydialect-backend/internal/domain"
	"github.com/heartmarshall/anydialect-backend/internal/service/translation"
	"github.com/heartmarshall/anydialect-backend/internal/transport/middleware"
)

type stubProvider struct {
	mu      sync.Mutex
	raw     string
	prompts []string
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Complete(_ context.Context, c domain.Completion) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prompts = append(p.prompts, c.Prompt)
	return p.raw, nil
}

type failingSink struct {
	mu    sync.Mutex
	calls int
}

func (s *failingSink) Name() string { return "failing" }

func (s *failingSink) Write(context.Context, domain.AuditRecord) error {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return errors.New("network unreachable")
}

func newPipeline(t *testing.T, provider *stubProvider, sink audit.Sink) (http.Handler, *audit.Dispatcher) {
	t.Helper()
	log := testLogger()

	dispatcher := audit.NewDispatcher(sink, audit.Config{QueueSize: 8, Workers: 1, WriteTimeout: time.Second}, log)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = dispatcher.Close(ctx)
	})

	svc := translation.NewService(log, provider, dispatcher, 5*time.Second)
	mux := NewRouter(Routes{
		Translate: NewTranslateHandler(svc, log, 1<<16),
		Health:    NewHealthHandler("test").WithAuditStats(dispatcher),
	})

	cors := middleware.CORS(config.CORSConfig{
		AllowedOrigins: "https://anydialect.duranirving.com",
		AllowedMethods: "POST, OPTIONS",
		AllowedHeaders: "Content-Type, Authorization",
		MaxAge:         86400,
	})
	return middleware.Chain(middleware.Recovery(log), middleware.RequestID(), cors)(mux), dispatcher
}

func TestEndToEnd_HonorificJapanese(t *testing.T) {
	t.Parallel()

	const completion = `{"translation":"こんにちは","formalityUsed":"superior"}`
	provider := &stubProvider{raw: completion}
	handler, _ := newPipeline(t, provider, audit.Discard{})

	req := httptest.NewRequest(http.MethodPost, "/translate", strings.NewReader(
		`{"text":"Hello","sourceLanguage":"English","targetLanguage":"Japanese","formality":"superior"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, completion, rec.Body.String())
	assertNoCache(t, rec)
	assert.Equal(t, "https://anydialect.duranirving.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

	require.Len(t, provider.prompts, 1)
	assert.Contains(t, provider.prompts[0], translation.FormalityDirective(domain.FormalitySuperior))
	assert.Contains(t, provider.prompts[0], "English")
	assert.Contains(t, provider.prompts[0], "Japanese")
}

func TestEndToEnd_FailingAuditSinkStillReturns200(t *testing.T) {
	t.Parallel()

	sink := &failingSink{}
	provider := &stubProvider{raw: `{"translation":"Bonjour"}`}
	handler, dispatcher := newPipeline(t, provider, sink)

	req := httptest.NewRequest(http.MethodPost, "/api/translate", strings.NewReader(
		`{"text":"Hello","sourceLanguage":"English","targetLanguage":"French"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"translation":"Bonjour"}`, rec.Body.String())

	select {
	case err := <-dispatcher.Errors():
		assert.ErrorIs(t, err, domain.ErrAudit)
	case <-time.After(2 * time.Second):
		t.Fatal("expected the audit failure on the error channel")
	}
}

func TestEndToEnd_MissingTextIs400WithoutCompletion(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{raw: `{"translation":"x"}`}
	handler, dispatcher := newPipeline(t, provider, audit.Discard{})

	req := httptest.NewRequest(http.MethodPost, "/translate", strings.NewReader(`{"text":"  ","targetLanguage":"Japanese"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"No text provided"}`, rec.Body.String())
	assertNoCache(t, rec)
	assert.Empty(t, provider.prompts)
	assert.Zero(t, dispatcher.Stats().Submitted)
}

func TestEndToEnd_UnparsableCompletion(t *testing.T) {
	t.Parallel()

	provider := &stubProvider{raw: "Sorry, I cannot help with that."}
	handler, _ := newPipeline(t, provider, audit.Discard{})

	req := httptest.NewRequest(http.MethodPost, "/translate", strings.NewReader(`{"text":"Hello","targetLanguage":"German"}`))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to parse translation response"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "Sorry")
}

func TestEndToEnd_Preflight(t *testing.T) {
	t.Parallel()

	handler, _ := newPipeline(t, &stubProvider{}, audit.Discard{})

	req := httptest.NewRequest(http.MethodOptions, "/translate", nil)
	req.Header.Set("Origin", "https://anydialect.duranirving.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type, Authorization", rec.Header().Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "86400", rec.Header().Get("Access-Control-Max-Age"))
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	handler, _ := newPipeline(t, &stubProvider{}, audit.Discard{})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/translate", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRouter_TranslateLimitOnlyOnTranslate(t *testing.T) {
	t.Parallel()

	limiter := middleware.NewRateLimiter(time.Minute, false)
	t.Cleanup(limiter.Stop)

	svc := &translatorMock{
		TranslateFunc: func(ctx context.Context, req domain.TranslationRequest) (*domain.TranslationResponse, error) {
			return &domain.TranslationResponse{Translation: "ok"}, nil
		},
	}
	mux := NewRouter(Routes{
		Translate:      NewTranslateHandler(svc, testLogger(), 0),
		Health:         NewHealthHandler("test"),
		TranslateLimit: limiter.Limit(1),
	})

	send := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.RemoteAddr = "7.7.7.7:1234"
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, send(http.MethodPost, "/translate", `{"text":"a"}`).Code)

	limited := send(http.MethodPost, "/api/translate", `{"text":"a"}`)
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assertNoCache(t, limited)

	live := send(http.MethodGet, "/live", "")
	assert.Equal(t, http.StatusOK, live.Code)
	assert.Empty(t, live.Header().Get("Cache-Control"))
}

func TestRouter_IdentityRejectionIsUncacheable(t *testing.T) {
	t.Parallel()

	svc := &translatorMock{}
	reject := func(http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			writeError(w, http.StatusUnauthorized, "unauthorized")
		})
	}
	mux := NewRouter(Routes{
		Translate: NewTranslateHandler(svc, testLogger(), 0),
		Health:    NewHealthHandler("test"),
		Identity:  reject,
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/translate", strings.NewReader(`{"text":"a"}`)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assertNoCache(t, rec)
	assert.Empty(t, svc.TranslateCalls())
}
