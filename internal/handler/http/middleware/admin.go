package middleware

import (
	"net/http"

	"github.com/sensacion-hr/attendance-backend-go/internal/domain/auth"
	"github.com/sensacion-hr/attendance-backend-go/internal/domain/user"
	"github.com/sensacion-hr/attendance-backend-go/internal/handler/http/response"
	"github.com/sensacion-hr/attendance-backend-go/internal/pkg/jwt"
)

// AdminOnly lets through operators with the admin role.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := jwt.ClaimsFromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		if !claims.IsAdmin() {
			response.HandleError(w, user.ErrAdminPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
