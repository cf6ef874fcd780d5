package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLiveness(t *testing.T) {
	h := NewHealthHandler()
	rec := httptest.NewRecorder()
	h.Liveness(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	resp := decodeEnvelope(t, rec)
	if rec.Code != http.StatusOK || resp.Status != "success" {
		t.Fatalf("status=%d envelope=%+v", rec.Code, resp)
	}
}

func TestReadiness(t *testing.T) {
	h := NewHealthHandler()
	rec := httptest.NewRecorder()
	h.Readiness(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	resp := decodeEnvelope(t, rec)
	if rec.Code != http.StatusOK || resp.Status != "success" {
		t.Fatalf("status=%d envelope=%+v", rec.Code, resp)
	}
}
