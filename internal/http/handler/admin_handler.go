package handler

import (
	"log/slog"
	"net/http"

	"github.com/sandeepkv93/fraudguard/internal/http/response"
	"github.com/sandeepkv93/fraudguard/internal/service"
)

type AdminHandler struct {
	mgr    service.SessionManagerInterface
	logger *slog.Logger
}

func NewAdminHandler(mgr service.SessionManagerInterface, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{mgr: mgr, logger: logger}
}

// ListAccounts relies on the route's admin gate; the session manager does not check roles.
func (h *AdminHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.mgr.ListAccounts(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "list accounts", "error", err)
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]any{"accounts": accounts, "count": len(accounts)})
}
