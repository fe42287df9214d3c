package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/thinkforge/hrms-backend-go/internal/domain/user"
	"github.com/thinkforge/hrms-backend-go/internal/handler/http/response"
)

// RequireAdmin requires the admin role.
func RequireAdmin(next http.Handler) http.Handler {
	return requireRank(user.RoleAdmin.Rank(), user.ErrAdminPrivilegeRequired, next)
}

// RequireAdminOrHR requires admin or hr.
func RequireAdminOrHR(next http.Handler) http.Handler {
	return requireRank(user.RoleHR.Rank(), user.ErrAdminOrHRRequired, next)
}

// requireRank admits roles at or above the given privilege rank. Rank 1 is
// the most privileged, so "at or above" means a numerically smaller rank.
func requireRank(maxRank int, denied error, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, denied)
			return
		}

		roleClaim, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, denied)
			return
		}

		role := user.Role(roleClaim)
		if !role.Valid() || role.Rank() > maxRank {
			response.HandleError(w, denied)
			return
		}

		next.ServeHTTP(w, r)
	})
}
