package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func TestJSONWrapsDataWithRequestID(t *testing.T) {
	h := chimiddleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		JSON(w, r, http.StatusCreated, map[string]string{"hello": "world"})
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}
	var env struct {
		Success bool              `json:"success"`
		Data    map[string]string `json:"data"`
		Meta    Meta              `json:"meta"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !env.Success || env.Data["hello"] != "world" || env.Meta.RequestID == "" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
}

func TestErrorEnvelope(t *testing.T) {
	rr := httptest.NewRecorder()
	Error(rr, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusUnprocessableEntity, "VALIDATION_FAILED", "bad input", map[string]string{"field": "cvv"})

	var env Envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Success || env.Error == nil || env.Error.Code != "VALIDATION_FAILED" || env.Error.Message != "bad input" {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	details, ok := env.Error.Details.(map[string]any)
	if !ok || details["field"] != "cvv" {
		t.Fatalf("unexpected details: %#v", env.Error.Details)
	}
}
