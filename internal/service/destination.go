package service

import "github.com/sandeepkv93/fraudguard/internal/domain"

const (
	PathAdmin      = "/admin"
	PathDashboard  = "/dashboard"
	PathLogin      = "/login"
	PathAdminLogin = "/admin/login"
)

// Gate names which kind of principal a destination admits.
type Gate int

const (
	GateAuthenticated Gate = iota
	GateAdmin
)

// ResolveDestination decides whether role may enter a destination behind gate. When it may
// not, redirect is where the visitor should be sent instead.
func ResolveDestination(role domain.Role, gate Gate) (allowed bool, redirect string) {
	switch gate {
	case GateAdmin:
		switch role {
		case domain.RoleAdmin:
			return true, ""
		case domain.RoleUser:
			return false, PathDashboard
		default:
			return false, PathAdminLogin
		}
	default:
		if role.Valid() {
			return true, ""
		}
		return false, PathLogin
	}
}

// HomeFor is the landing page for a role.
func HomeFor(role domain.Role) string {
	switch role {
	case domain.RoleAdmin:
		return PathAdmin
	case domain.RoleUser:
		return PathDashboard
	default:
		return PathLogin
	}
}
