package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sandeepkv93/fraudguard/internal/http/middleware"
	"github.com/sandeepkv93/fraudguard/internal/http/response"
	"github.com/sandeepkv93/fraudguard/internal/service"
)

type serviceErrorMapping struct {
	target  error
	status  int
	code    string
	message string
}

var serviceErrorMappings = []serviceErrorMapping{
	{service.ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS", service.NewNotification(service.NoticeInvalidCredentials, "").Message},
	{service.ErrAccessDenied, http.StatusForbidden, "ACCESS_DENIED", service.NewNotification(service.NoticeAccessDenied, "").Message},
	{service.ErrEmailInUse, http.StatusConflict, "EMAIL_IN_USE", service.NewNotification(service.NoticeEmailInUse, "").Message},
	{service.ErrNotSignedIn, http.StatusUnauthorized, "UNAUTHORIZED", "sign in required"},
	{service.ErrOTPMismatch, http.StatusUnprocessableEntity, "OTP_MISMATCH", "verification code does not match"},
	{service.ErrCodeNotIssued, http.StatusConflict, "CODE_NOT_ISSUED", "verification code has not been delivered yet"},
	{service.ErrEnrollmentClosed, http.StatusConflict, "ENROLLMENT_CLOSED", "enrollment is closed"},
	{service.ErrInvalidStage, http.StatusConflict, "INVALID_STAGE", "operation not allowed at the current step"},
	{service.ErrNoActiveEnrollment, http.StatusNotFound, "NO_ACTIVE_ENROLLMENT", "no enrollment in progress"},
}

// writeServiceError maps service errors onto the response envelope. Anything unrecognised is
// reported as an internal error without leaking its text.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var ferr *service.FieldError
	if errors.As(err, &ferr) {
		response.Error(w, r, http.StatusUnprocessableEntity, "VALIDATION_FAILED", ferr.Error(), map[string]string{"field": ferr.Field})
		return
	}
	for _, m := range serviceErrorMappings {
		if errors.Is(err, m.target) {
			response.Error(w, r, m.status, m.code, m.message, nil)
			return
		}
	}
	response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "internal error", nil)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.Error(w, r, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "request body too large", nil)
			return false
		}
		response.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid json body", nil)
		return false
	}
	return true
}

func sessionFromRequest(w http.ResponseWriter, r *http.Request) (*service.Session, bool) {
	sess, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		response.Error(w, r, http.StatusInternalServerError, "INTERNAL", "session unavailable", nil)
		return nil, false
	}
	return sess, true
}
