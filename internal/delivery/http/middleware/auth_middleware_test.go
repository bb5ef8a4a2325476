package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"product-catalog/config"
	"product-catalog/pkg/jwt"
)

func TestAuthMiddleware_Authenticate(t *testing.T) {
	jwtService := jwt.NewJWTService(config.AuthConfig{Secret: "s3cret", TokenExpiry: time.Hour})
	token, err := jwtService.GenerateToken("alice")
	if err != nil {
		t.Fatalf("GenerateToken() unexpected error = %v", err)
	}

	var gotSubject string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSubject, _ = GetSubjectFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	h := NewAuthMiddleware(jwtService).Authenticate(next)

	tests := []struct {
		name        string
		header      string
		wantStatus  int
		wantSubject string
	}{
		{"missing header", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized, ""},
		{"invalid token", "Bearer nope", http.StatusUnauthorized, ""},
		{"valid token", "Bearer " + token, http.StatusOK, "alice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotSubject = ""
			req := httptest.NewRequest(http.MethodPost, "/api/products", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if gotSubject != tt.wantSubject {
				t.Errorf("expected subject %q, got %q", tt.wantSubject, gotSubject)
			}
		})
	}
}
