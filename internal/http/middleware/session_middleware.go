package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sandeepkv93/fraudguard/internal/http/response"
	"github.com/sandeepkv93/fraudguard/internal/security"
	"github.com/sandeepkv93/fraudguard/internal/service"
)

type contextKey string

const (
	SessionContextKey contextKey = "session"
)

// SessionLoader binds every request to a registry session named by the signed session cookie.
// Requests with a missing, tampered or expired cookie get a fresh anonymous session. The
// cookie is re-signed on every response, which slides its expiry with the idle window.
type SessionLoader struct {
	registry   *service.SessionRegistry
	tokens     *security.SessionTokenManager
	cookies    *security.CookieManager
	cookieName string
	logger     *slog.Logger
}

func NewSessionLoader(registry *service.SessionRegistry, tokens *security.SessionTokenManager, cookies *security.CookieManager, cookieName string, logger *slog.Logger) *SessionLoader {
	return &SessionLoader{registry: registry, tokens: tokens, cookies: cookies, cookieName: cookieName, logger: logger}
}

func (l *SessionLoader) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sess := l.resolve(ctx, security.GetCookie(r, l.cookieName))
		if sess == nil {
			sess = l.registry.Create(ctx)
		}

		token, expiresAt, err := l.tokens.Sign(sess.ID())
		if err != nil {
			l.logger.ErrorContext(ctx, "sign session cookie", "error", err)
			response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "session unavailable", nil)
			return
		}
		l.cookies.SetSessionCookie(w, l.cookieName, token, expiresAt)
		recordSessionID(ctx, sess.ID())
		next.ServeHTTP(w, r.WithContext(WithSession(ctx, sess)))
	})
}

func (l *SessionLoader) resolve(ctx context.Context, raw string) *service.Session {
	if raw == "" {
		return nil
	}
	id, _, err := l.tokens.Parse(raw)
	if err != nil {
		l.logger.DebugContext(ctx, "rejected session cookie", "error", err)
		return nil
	}
	sess, ok := l.registry.Lookup(ctx, id)
	if !ok {
		return nil
	}
	return sess
}

func WithSession(ctx context.Context, sess *service.Session) context.Context {
	return context.WithValue(ctx, SessionContextKey, sess)
}

func SessionFromContext(ctx context.Context) (*service.Session, bool) {
	s, ok := ctx.Value(SessionContextKey).(*service.Session)
	return s, ok && s != nil
}

type sessionIDSinkKey struct{}

// withSessionIDSink lets an outer middleware learn which session served the request.
func withSessionIDSink(ctx context.Context, dst *string) context.Context {
	return context.WithValue(ctx, sessionIDSinkKey{}, dst)
}

func recordSessionID(ctx context.Context, id string) {
	if dst, ok := ctx.Value(sessionIDSinkKey{}).(*string); ok && dst != nil {
		*dst = id
	}
}
