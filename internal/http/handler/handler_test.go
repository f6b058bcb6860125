package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sandeepkv93/fraudguard/internal/domain"
	"github.com/sandeepkv93/fraudguard/internal/http/middleware"
	"github.com/sandeepkv93/fraudguard/internal/service"
	servicegomock "github.com/sandeepkv93/fraudguard/internal/service/gomock"
	"go.uber.org/mock/gomock"
)

type errorEnvelope struct {
	Success bool `json:"success"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func decodeErrorEnvelope(t *testing.T, rr *httptest.ResponseRecorder) errorEnvelope {
	t.Helper()
	var env errorEnvelope
	if err := json.NewDecoder(rr.Body).Decode(&env); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	return env
}

func discardLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

func withSession(r *http.Request, sess *service.Session) *http.Request {
	return r.WithContext(middleware.WithSession(r.Context(), sess))
}

func TestWriteServiceErrorMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{service.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{service.ErrAccessDenied, http.StatusForbidden, "ACCESS_DENIED"},
		{service.ErrEmailInUse, http.StatusConflict, "EMAIL_IN_USE"},
		{service.ErrNotSignedIn, http.StatusUnauthorized, "UNAUTHORIZED"},
		{service.ErrOTPMismatch, http.StatusUnprocessableEntity, "OTP_MISMATCH"},
		{service.ErrCodeNotIssued, http.StatusConflict, "CODE_NOT_ISSUED"},
		{service.ErrEnrollmentClosed, http.StatusConflict, "ENROLLMENT_CLOSED"},
		{fmt.Errorf("%w: card_capture requires otp_confirm", service.ErrInvalidStage), http.StatusConflict, "INVALID_STAGE"},
		{service.ErrNoActiveEnrollment, http.StatusNotFound, "NO_ACTIVE_ENROLLMENT"},
		{&service.FieldError{Field: "cvv", Message: "must be 3 or 4 digits"}, http.StatusUnprocessableEntity, "VALIDATION_FAILED"},
		{errors.New("database exploded"), http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range tests {
		t.Run(tc.code, func(t *testing.T) {
			rr := httptest.NewRecorder()
			writeServiceError(rr, httptest.NewRequest(http.MethodGet, "/", nil), tc.err)
			if rr.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rr.Code)
			}
			env := decodeErrorEnvelope(t, rr)
			if env.Success || env.Error == nil || env.Error.Code != tc.code {
				t.Fatalf("unexpected envelope: %+v", env)
			}
			if strings.Contains(env.Error.Message, "exploded") {
				t.Fatal("internal error text must not leak")
			}
		})
	}
}

func TestAdminHandlerListAccountsStoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	mgr := servicegomock.NewMockSessionManagerInterface(ctrl)
	mgr.EXPECT().ListAccounts(gomock.Any()).Return(nil, errors.New("store offline"))

	rr := httptest.NewRecorder()
	NewAdminHandler(mgr, discardLogger()).ListAccounts(rr, httptest.NewRequest(http.MethodGet, "/api/v1/admin/accounts", nil))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
}

func TestAuthHandlerLoginPassesEntryPoint(t *testing.T) {
	ctrl := gomock.NewController(t)
	mgr := servicegomock.NewMockSessionManagerInterface(ctrl)
	sess := service.NewSession()
	gomock.InOrder(
		mgr.EXPECT().SignIn(gomock.Any(), sess, "admin@example.com", "admin123", true).
			Return(&domain.AccountView{ID: "a", Email: "admin@example.com", Role: domain.RoleAdmin}, nil),
		mgr.EXPECT().SignIn(gomock.Any(), sess, "user@example.com", "user123", false).
			Return(&domain.AccountView{ID: "u", Email: "user@example.com", Role: domain.RoleUser}, nil),
	)
	h := NewAuthHandler(mgr, discardLogger())

	rr := httptest.NewRecorder()
	h.AdminLogin(rr, withSession(httptest.NewRequest(http.MethodPost, "/api/v1/auth/admin/login", strings.NewReader(`{"email":"admin@example.com","password":"admin123"}`)), sess))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"redirect":"/admin"`) {
		t.Fatalf("unexpected admin login response: %d %s", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	h.Login(rr, withSession(httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"email":"user@example.com","password":"user123"}`)), sess))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"redirect":"/dashboard"`) {
		t.Fatalf("unexpected login response: %d %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "Login successful") {
		t.Fatalf("expected success notice, got %s", rr.Body.String())
	}
}

func TestAuthHandlerWithoutSessionContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	mgr := servicegomock.NewMockSessionManagerInterface(ctrl)
	rr := httptest.NewRecorder()
	NewAuthHandler(mgr, discardLogger()).Login(rr, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{}`)))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 without a session, got %d", rr.Code)
	}
}

func TestAuthHandlerSignUpConfirmMismatchSkipsService(t *testing.T) {
	ctrl := gomock.NewController(t)
	mgr := servicegomock.NewMockSessionManagerInterface(ctrl)
	mgr.EXPECT().SignUp(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	rr := httptest.NewRecorder()
	NewAuthHandler(mgr, discardLogger()).SignUp(rr, httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup",
		strings.NewReader(`{"email":"a@example.com","password":"one","confirm_password":"two","name":"A"}`)))
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}
	if env := decodeErrorEnvelope(t, rr); env.Error.Details["field"] != "confirm_password" {
		t.Fatalf("expected confirm_password field, got %+v", env.Error)
	}
}

func TestEnrollmentHandlerCardsRequiresPrincipal(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := servicegomock.NewMockEnrollmentServiceInterface(ctrl)
	svc.EXPECT().Cards(gomock.Any(), gomock.Any()).Times(0)

	rr := httptest.NewRecorder()
	NewEnrollmentHandler(svc, discardLogger()).Cards(rr, withSession(httptest.NewRequest(http.MethodGet, "/api/v1/me/cards", nil), service.NewSession()))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for a session without principal, got %d", rr.Code)
	}
}

func TestEnrollmentHandlerAbandonWithoutEnrollment(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := servicegomock.NewMockEnrollmentServiceInterface(ctrl)
	sess := service.NewSession()
	svc.EXPECT().Abandon(gomock.Any(), sess).Return(service.ErrNoActiveEnrollment)

	rr := httptest.NewRecorder()
	NewEnrollmentHandler(svc, discardLogger()).Abandon(rr, withSession(httptest.NewRequest(http.MethodDelete, "/api/v1/enrollment", nil), sess))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	if env := decodeErrorEnvelope(t, rr); env.Error.Code != "NO_ACTIVE_ENROLLMENT" {
		t.Fatalf("unexpected error code %+v", env.Error)
	}
}

func TestEnrollmentHandlerNoActiveEnrollment(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := servicegomock.NewMockEnrollmentServiceInterface(ctrl)
	sess := service.NewSession()
	svc.EXPECT().Active(sess).Return(nil, service.ErrNoActiveEnrollment).Times(3)
	h := NewEnrollmentHandler(svc, discardLogger())

	for _, fn := range []http.HandlerFunc{h.Get, h.ResendCode, h.ChangePhone} {
		rr := httptest.NewRecorder()
		fn(rr, withSession(httptest.NewRequest(http.MethodGet, "/api/v1/enrollment", nil), sess))
		if rr.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rr.Code)
		}
	}
}
