package handler

import (
	"net/http"

	"github.com/sandeepkv93/fraudguard/internal/domain"
	"github.com/sandeepkv93/fraudguard/internal/http/middleware"
	"github.com/sandeepkv93/fraudguard/internal/http/response"
	"github.com/sandeepkv93/fraudguard/internal/service"
)

// PageHandler serves the role-gated destinations. Rendering lives in the client; these
// endpoints only confirm which page the visitor reached and as whom.
type PageHandler struct{}

func NewPageHandler() *PageHandler { return &PageHandler{} }

func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	role := domain.RoleNone
	if sess, ok := middleware.SessionFromContext(r.Context()); ok {
		if p := sess.Principal(); p != nil {
			role = p.Role
		}
	}
	http.Redirect(w, r, service.HomeFor(role), http.StatusFound)
}

func (h *PageHandler) Page(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := map[string]any{"page": name}
		if sess, ok := middleware.SessionFromContext(r.Context()); ok {
			if p := sess.Principal(); p != nil {
				body["user"] = p
			}
		}
		response.JSON(w, r, http.StatusOK, body)
	}
}
