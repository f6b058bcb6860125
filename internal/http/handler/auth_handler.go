package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/sandeepkv93/fraudguard/internal/http/response"
	"github.com/sandeepkv93/fraudguard/internal/observability"
	"github.com/sandeepkv93/fraudguard/internal/service"
)

type AuthHandler struct {
	mgr    service.SessionManagerInterface
	logger *slog.Logger
}

func NewAuthHandler(mgr service.SessionManagerInterface, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{mgr: mgr, logger: logger}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signUpRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Name            string `json:"name"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	h.signIn(w, r, false)
}

func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	h.signIn(w, r, true)
}

func (h *AuthHandler) signIn(w http.ResponseWriter, r *http.Request, adminOnly bool) {
	start := time.Now()
	status := "success"
	operation := "signin_" + service.SignInEntryGeneral
	if adminOnly {
		operation = "signin_" + service.SignInEntryAdmin
	}
	defer func() {
		observability.RecordAuthRequestDuration(r.Context(), operation, status, time.Since(start))
	}()

	sess, ok := sessionFromRequest(w, r)
	if !ok {
		status = "failure"
		return
	}
	var body credentialsRequest
	if !decodeBody(w, r, &body) {
		status = "failure"
		return
	}
	view, err := h.mgr.SignIn(r.Context(), sess, body.Email, body.Password, adminOnly)
	if err != nil {
		status = "failure"
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]any{
		"user":     view,
		"redirect": service.HomeFor(view.Role),
		"notice":   service.NewNotification(service.NoticeSignInSuccess, view.Email),
	})
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := "success"
	defer func() {
		observability.RecordAuthRequestDuration(r.Context(), "signup", status, time.Since(start))
	}()

	var body signUpRequest
	if !decodeBody(w, r, &body) {
		status = "failure"
		return
	}
	if body.ConfirmPassword != "" && body.ConfirmPassword != body.Password {
		status = "failure"
		response.Error(w, r, http.StatusUnprocessableEntity, "VALIDATION_FAILED", "confirm_password: does not match password", map[string]string{"field": "confirm_password"})
		return
	}
	view, err := h.mgr.SignUp(r.Context(), body.Email, body.Password, body.Name)
	if err != nil {
		status = "failure"
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusCreated, map[string]any{
		"user":     view,
		"redirect": service.PathLogin,
		"notice":   service.NewNotification(service.NoticeSignUpSuccess, view.Email),
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	status := "success"
	defer func() {
		observability.RecordAuthRequestDuration(r.Context(), "signout", status, time.Since(start))
	}()

	sess, ok := sessionFromRequest(w, r)
	if !ok {
		status = "failure"
		return
	}
	h.mgr.SignOut(r.Context(), sess)
	response.JSON(w, r, http.StatusOK, map[string]any{
		"status":   "logged_out",
		"redirect": service.PathLogin,
		"notice":   service.NewNotification(service.NoticeSignedOut, ""),
	})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}
	p := sess.Principal()
	if p == nil {
		writeServiceError(w, r, service.ErrNotSignedIn)
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]any{"user": p, "home": service.HomeFor(p.Role)})
}
