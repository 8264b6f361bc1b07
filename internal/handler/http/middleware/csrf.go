package middleware

import (
	"log/slog"
	"net/http"

	"github.com/sensacion-hr/attendance-backend-go/internal/domain/auth"
	"github.com/sensacion-hr/attendance-backend-go/internal/handler/http/response"
	"github.com/sensacion-hr/attendance-backend-go/internal/pkg/csrf"
)

// CSRFProtect requires a token from store in the X-CSRF-Token header on
// every mutating request. Safe methods pass untouched.
func CSRFProtect(store csrf.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			if err := store.Validate(r.Header.Get(csrf.HeaderName)); err != nil {
				slog.Warn("csrf check failed", "method", r.Method, "path", r.URL.Path, "ip", ClientIP(r))
				response.HandleError(w, auth.ErrInvalidCSRFToken)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
