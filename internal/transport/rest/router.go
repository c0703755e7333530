package rest

import (
	"net/http"

	"github.com/heartmarshall/anydialect-backend/internal/transport/middleware"
)

// Routes groups the handlers mounted by NewRouter. Billing is optional.
type Routes struct {
	Translate *TranslateHandler
	Health    *HealthHandler
	Billing   *BillingHandler

	// TranslateLimit and Identity wrap the translation routes only; either
	// may be nil.
	TranslateLimit middleware.Middleware
	Identity       middleware.Middleware
}

// NewRouter builds the service mux. Global middleware is applied by the caller.
func NewRouter(rt Routes) *http.ServeMux {
	mux := http.NewServeMux()

	translate := middleware.Chain(
		middleware.NoCache(),
		rt.TranslateLimit,
		rt.Identity,
	)(http.HandlerFunc(rt.Translate.Translate))
	mux.Handle("POST /translate", translate)
	mux.Handle("POST /api/translate", translate)

	// Preflight requests are answered by the CORS middleware; these patterns
	// keep the mux from rejecting OPTIONS with 405 when CORS is not mounted.
	mux.HandleFunc("OPTIONS /translate", preflight)
	mux.HandleFunc("OPTIONS /api/translate", preflight)

	mux.HandleFunc("GET /live", rt.Health.Live)
	mux.HandleFunc("GET /ready", rt.Health.Ready)
	mux.HandleFunc("GET /health", rt.Health.Health)

	if rt.Billing != nil {
		mux.HandleFunc("POST /billing/checkout-session", rt.Billing.CheckoutSession)
		mux.HandleFunc("POST /billing/portal-session", rt.Billing.PortalSession)
		mux.HandleFunc("POST /billing/check-customer", rt.Billing.CheckCustomer)
		mux.HandleFunc("POST /billing/webhook", rt.Billing.Webhook)
	}

	return mux
}

func preflight(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
