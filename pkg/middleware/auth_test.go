package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const testSecret = "test-secret"

func protected(t *testing.T, got *Principal) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := GetPrincipal(r.Context())
		if !ok {
			t.Error("no principal in request context")
		}
		*got = p
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticatedRoundTrip(t *testing.T) {
	token, err := SignToken(testSecret, Principal{UserID: 7, CompanyID: 3, Role: "manager"}, time.Hour)
	if err != nil {
		t.Fatalf("SignToken() error = %v", err)
	}

	var got Principal
	handler := Authenticated(testSecret)(protected(t, &got))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got.UserID != 7 || got.CompanyID != 3 || got.Role != "manager" {
		t.Errorf("principal = %+v, want UserID 7, CompanyID 3, Role manager", got)
	}
}

func TestAuthenticatedRejectsBadTokens(t *testing.T) {
	expired, err := SignToken(testSecret, Principal{UserID: 7}, -time.Hour)
	if err != nil {
		t.Fatalf("SignToken() error = %v", err)
	}
	wrongKey, err := SignToken("other-secret", Principal{UserID: 7}, time.Hour)
	if err != nil {
		t.Fatalf("SignToken() error = %v", err)
	}

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"malformed header", "Token abc"},
		{"garbage token", "Bearer not.a.jwt"},
		{"expired token", "Bearer " + expired},
		{"wrong signing key", "Bearer " + wrongKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := Authenticated(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Error("handler should not be reached")
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want 401", rec.Code)
			}
		})
	}
}
