package middleware

import (
	"net/http"

	"github.com/sandeepkv93/fraudguard/internal/domain"
	"github.com/sandeepkv93/fraudguard/internal/http/response"
	"github.com/sandeepkv93/fraudguard/internal/service"
)

// RequireDestination guards a page behind gate and redirects visitors who may not enter.
func RequireDestination(gate service.Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			allowed, redirect := service.ResolveDestination(roleFromRequest(r), gate)
			if !allowed {
				http.Redirect(w, r, redirect, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAPIRole is the JSON counterpart of RequireDestination: anonymous callers get 401 and
// signed-in callers without the role get 403.
func RequireAPIRole(gate service.Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := roleFromRequest(r)
			if !role.Valid() {
				response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "sign in required", nil)
				return
			}
			if allowed, _ := service.ResolveDestination(role, gate); !allowed {
				response.Error(w, r, http.StatusForbidden, "FORBIDDEN", "administrator account required", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func roleFromRequest(r *http.Request) domain.Role {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		return domain.RoleNone
	}
	if p := sess.Principal(); p != nil {
		return p.Role
	}
	return domain.RoleNone
}
