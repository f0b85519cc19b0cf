package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"animated_gauge/internal/service"
)

func TestAuthHandlers_IssueToken(t *testing.T) {
	auth := &mockAuth{genTokenToken: "tok123"}
	s := &service.Service{Authorization: auth}
	r := newTestRouter(s)

	// success
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/token", bytes.NewBufferString(`{"client_secret":"s3cr3t"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("token status=%d, body=%s", w.Code, w.Body.String())
	}
	var m map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &m)
	if m["token"] != "tok123" {
		t.Fatalf("expected token tok123, got %v", m["token"])
	}
	if auth.lastGenSecret != "s3cr3t" {
		t.Fatalf("secret not forwarded: %q", auth.lastGenSecret)
	}

	// invalid body → 400
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/auth/token", bytes.NewBufferString(`{"client_secret":1}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad body, got %d", w.Code)
	}
}

func TestAuthHandlers_IssueToken_Errors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"wrong secret", service.ErrInvalidSecret, http.StatusUnauthorized},
		{"disabled", service.ErrAuthDisabled, http.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(&service.Service{Authorization: &mockAuth{genTokenErr: tc.err}})
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/auth/token", bytes.NewBufferString(`{"client_secret":"x"}`))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Fatalf("status: got %d, want %d (body=%s)", w.Code, tc.want, w.Body.String())
			}
		})
	}
}
