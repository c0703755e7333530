package middleware

import (
	"net/http"
	"strconv"

	"github.com/heartmarshall/anydialect-backend/internal/config"
)

// CORS returns middleware that handles Cross-Origin Resource Sharing.
//
// With a single configured origin the header is always sent, matching a
// front end that is the only caller. With several origins the request's
// Origin is echoed back when it is on the list. Preflight OPTIONS requests
// are answered with 204 and never reach the wrapped handler.
func CORS(cfg config.CORSConfig) Middleware {
	origins := cfg.Origins()
	echoes := len(origins) > 1 || (len(origins) == 1 && origins[0] == "*")
	methods := cfg.AllowedMethods
	headers := cfg.AllowedHeaders

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if allow := allowedOrigin(r.Header.Get("Origin"), origins); allow != "" {
				w.Header().Set("Access-Control-Allow-Origin", allow)
				if echoes {
					w.Header().Add("Vary", "Origin")
				}
				if cfg.AllowCredentials {
					w.Header().Set("Access-Control-Allow-Credentials", "true")
				}
			}

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", methods)
				w.Header().Set("Access-Control-Allow-Headers", headers)
				w.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func allowedOrigin(origin string, allowed []string) string {
	if len(allowed) == 1 {
		if allowed[0] == "*" && origin != "" {
			return origin
		}
		return allowed[0]
	}
	if origin == "" {
		return ""
	}
	for _, a := range allowed {
		if a == "*" || a == origin {
			return origin
		}
	}
	return ""
}
