package handler

import (
	"log/slog"
	"net/http"

	"github.com/sandeepkv93/fraudguard/internal/domain"
	"github.com/sandeepkv93/fraudguard/internal/http/response"
	"github.com/sandeepkv93/fraudguard/internal/service"
)

type EnrollmentHandler struct {
	svc    service.EnrollmentServiceInterface
	logger *slog.Logger
}

func NewEnrollmentHandler(svc service.EnrollmentServiceInterface, logger *slog.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{svc: svc, logger: logger}
}

type cardRequest struct {
	CardNumber     string `json:"card_number"`
	CardholderName string `json:"cardholder_name"`
	Expiry         string `json:"expiry"`
	CVV            string `json:"cvv"`
}

type phoneRequest struct {
	Phone string `json:"phone"`
}

type codeRequest struct {
	Code string `json:"code"`
}

func (h *EnrollmentHandler) Start(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}
	e, err := h.svc.Start(r.Context(), sess)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusCreated, e.Snapshot())
}

func (h *EnrollmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	e, ok := h.active(w, r)
	if !ok {
		return
	}
	response.JSON(w, r, http.StatusOK, e.Snapshot())
}

func (h *EnrollmentHandler) SubmitCard(w http.ResponseWriter, r *http.Request) {
	e, ok := h.active(w, r)
	if !ok {
		return
	}
	var body cardRequest
	if !decodeBody(w, r, &body) {
		return
	}
	err := e.SubmitCard(r.Context(), domain.CardDetails{
		Number: body.CardNumber,
		Holder: body.CardholderName,
		Expiry: body.Expiry,
		CVV:    body.CVV,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, e.Snapshot())
}

// SubmitPhone answers before the code is delivered; clients poll Get until otp_issued flips.
func (h *EnrollmentHandler) SubmitPhone(w http.ResponseWriter, r *http.Request) {
	e, ok := h.active(w, r)
	if !ok {
		return
	}
	var body phoneRequest
	if !decodeBody(w, r, &body) {
		return
	}
	if _, err := e.SubmitPhone(r.Context(), body.Phone); err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusAccepted, e.Snapshot())
}

func (h *EnrollmentHandler) ResendCode(w http.ResponseWriter, r *http.Request) {
	e, ok := h.active(w, r)
	if !ok {
		return
	}
	if _, err := e.ResendCode(r.Context()); err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusAccepted, e.Snapshot())
}

func (h *EnrollmentHandler) ChangePhone(w http.ResponseWriter, r *http.Request) {
	e, ok := h.active(w, r)
	if !ok {
		return
	}
	if err := e.ChangePhone(r.Context()); err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, e.Snapshot())
}

func (h *EnrollmentHandler) SubmitCode(w http.ResponseWriter, r *http.Request) {
	e, ok := h.active(w, r)
	if !ok {
		return
	}
	var body codeRequest
	if !decodeBody(w, r, &body) {
		return
	}
	if err := e.SubmitCode(r.Context(), body.Code); err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, e.Snapshot())
}

func (h *EnrollmentHandler) Abandon(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}
	if err := h.svc.Abandon(r.Context(), sess); err != nil {
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]string{"status": string(service.StageDiscarded)})
}

func (h *EnrollmentHandler) Cards(w http.ResponseWriter, r *http.Request) {
	sess, ok := sessionFromRequest(w, r)
	if !ok {
		return
	}
	p := sess.Principal()
	if p == nil {
		writeServiceError(w, r, service.ErrNotSignedIn)
		return
	}
	cards, err := h.svc.Cards(r.Context(), p.ID)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "list enrolled cards", "account_id", p.ID, "error", err)
		writeServiceError(w, r, err)
		return
	}
	response.JSON(w, r, http.StatusOK, map[string]any{"cards": cards, "count": len(cards)})
}

func (h *EnrollmentHandler) active(w http.ResponseWriter, r *http.Request) (*service.Enrollment, bool) {
	sess, ok := sessionFromRequest(w, r)
	if !ok {
		return nil, false
	}
	e, err := h.svc.Active(sess)
	if err != nil {
		writeServiceError(w, r, err)
		return nil, false
	}
	return e, true
}
