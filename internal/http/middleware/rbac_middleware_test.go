package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sandeepkv93/fraudguard/internal/service"
)

func signedInRequest(t *testing.T, env *sessionTestEnv, email, password string) *http.Request {
	t.Helper()
	sess := service.NewSession()
	if email != "" {
		if _, err := env.manager.SignIn(context.Background(), sess, email, password, false); err != nil {
			t.Fatalf("sign in %s: %v", email, err)
		}
	}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	return req.WithContext(WithSession(req.Context(), sess))
}

func TestRequireDestinationRedirects(t *testing.T) {
	_, env := newSessionLoaderForTest(t)
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	tests := []struct {
		name     string
		email    string
		password string
		gate     service.Gate
		status   int
		location string
	}{
		{"admin enters admin", "admin@example.com", "admin123", service.GateAdmin, http.StatusOK, ""},
		{"user bounced from admin", "user@example.com", "user123", service.GateAdmin, http.StatusFound, service.PathDashboard},
		{"anonymous bounced from admin", "", "", service.GateAdmin, http.StatusFound, service.PathAdminLogin},
		{"user enters dashboard", "user@example.com", "user123", service.GateAuthenticated, http.StatusOK, ""},
		{"admin enters dashboard", "admin@example.com", "admin123", service.GateAuthenticated, http.StatusOK, ""},
		{"anonymous bounced from dashboard", "", "", service.GateAuthenticated, http.StatusFound, service.PathLogin},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			RequireDestination(tc.gate)(ok).ServeHTTP(rr, signedInRequest(t, env, tc.email, tc.password))
			if rr.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rr.Code)
			}
			if got := rr.Header().Get("Location"); got != tc.location {
				t.Fatalf("expected location %q, got %q", tc.location, got)
			}
		})
	}
}

func TestRequireDestinationWithoutSessionTreatsVisitorAsAnonymous(t *testing.T) {
	rr := httptest.NewRecorder()
	RequireDestination(service.GateAdmin)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("expected redirect")
	})).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/admin", nil))
	if rr.Code != http.StatusFound || rr.Header().Get("Location") != service.PathAdminLogin {
		t.Fatalf("unexpected response: %d %q", rr.Code, rr.Header().Get("Location"))
	}
}

func TestRequireAPIRole(t *testing.T) {
	_, env := newSessionLoaderForTest(t)
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	tests := []struct {
		name   string
		email  string
		pw     string
		gate   service.Gate
		status int
	}{
		{"anonymous", "", "", service.GateAuthenticated, http.StatusUnauthorized},
		{"user on admin api", "user@example.com", "user123", service.GateAdmin, http.StatusForbidden},
		{"admin on admin api", "admin@example.com", "admin123", service.GateAdmin, http.StatusOK},
		{"user on member api", "user@example.com", "user123", service.GateAuthenticated, http.StatusOK},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			RequireAPIRole(tc.gate)(ok).ServeHTTP(rr, signedInRequest(t, env, tc.email, tc.pw))
			if rr.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rr.Code)
			}
		})
	}
}
