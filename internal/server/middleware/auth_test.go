package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testTokenValidator maps fixed tokens to subjects.
type testTokenValidator struct {
	validTokens map[string]string
}

func (v *testTokenValidator) ValidateToken(tokenString string) (SubjectGetter, error) {
	subject, ok := v.validTokens[tokenString]
	if !ok {
		return nil, fmt.Errorf("invalid token")
	}
	return testClaims(subject), nil
}

type testClaims string

func (c testClaims) GetSubject() (string, error) {
	return string(c), nil
}

func newProtectedHandler(t *testing.T) (http.Handler, *string) {
	t.Helper()
	validator := &testTokenValidator{validTokens: map[string]string{
		"valid-token": "recruiter-1",
		"no-subject":  "",
	}}

	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = GetSubject(r)
		w.WriteHeader(http.StatusOK)
	})
	return AuthMiddleware(validator, "/health")(next), &seen
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name        string
		path        string
		header      string
		wantStatus  int
		wantSubject string
	}{
		{name: "valid token", path: "/match", header: "Bearer valid-token", wantStatus: http.StatusOK, wantSubject: "recruiter-1"},
		{name: "case-insensitive scheme", path: "/match", header: "bearer valid-token", wantStatus: http.StatusOK, wantSubject: "recruiter-1"},
		{name: "missing header", path: "/match", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", path: "/match", header: "Basic dXNlcjpwYXNz", wantStatus: http.StatusUnauthorized},
		{name: "unknown token", path: "/match", header: "Bearer forged", wantStatus: http.StatusUnauthorized},
		{name: "extra parts", path: "/match", header: "Bearer valid-token extra", wantStatus: http.StatusUnauthorized},
		{name: "empty subject", path: "/match", header: "Bearer no-subject", wantStatus: http.StatusUnauthorized},
		{name: "public path", path: "/health", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, seen := newProtectedHandler(t)
			req := httptest.NewRequest(http.MethodPost, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantSubject, *seen)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Contains(t, rec.Header().Get("WWW-Authenticate"), "Bearer")
			}
		})
	}
}

func TestAuthMiddleware_PreflightSkipsAuth(t *testing.T) {
	handler, _ := newProtectedHandler(t)
	req := httptest.NewRequest(http.MethodOptions, "/match", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetSubject(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := GetSubject(req)
	assert.Error(t, err)

	req = req.WithContext(context.WithValue(req.Context(), SubjectKey(), "ops"))
	subject, err := GetSubject(req)
	require.NoError(t, err)
	assert.Equal(t, "ops", subject)
}
