package middleware

import (
	"net"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/sensacion-hr/attendance-backend-go/internal/domain/audit"
	"github.com/sensacion-hr/attendance-backend-go/internal/domain/auth"
	"github.com/sensacion-hr/attendance-backend-go/internal/handler/http/response"
	"github.com/sensacion-hr/attendance-backend-go/internal/pkg/jwt"
)

// AuthRequired rejects requests without a valid, unrevoked access token and
// records the operator as the audit actor. It expects jwtauth.Verifier to
// have run first.
func AuthRequired(jwtService jwt.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if jwtService.IsTokenRevoked(jwtauth.TokenFromHeader(r)) {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			claims, err := jwt.ClaimsFromContext(r.Context())
			if err != nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			ctx := audit.WithActor(r.Context(), audit.Actor{
				Username: claims.Username,
				IP:       ClientIP(r),
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

// ClientIP returns the caller address without its port. RemoteAddr is
// already rewritten by chi's RealIP middleware when a proxy sets it.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
