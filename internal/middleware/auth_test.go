package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-parts-market/internal/model"
)

type stubVerifier struct {
	identity model.Identity
	err      error
}

func (v stubVerifier) VerifyToken(string) (model.Identity, error) {
	return v.identity, v.err
}

func authTestHandler(t *testing.T, expectIdentity model.Identity) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		require.True(t, ok)
		assert.Equal(t, expectIdentity, identity)
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth_MissingToken(t *testing.T) {
	mw := NewAuthMiddleware(stubVerifier{identity: model.Identity{UserID: 1}})
	handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a token")
	}))

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"empty bearer", "Bearer "},
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"bare token without scheme", "sometoken"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			var body model.APIResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			require.NotNil(t, body.Error)
			assert.Equal(t, "UNAUTHORIZED", body.Error.Code)
		})
	}
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	mw := NewAuthMiddleware(stubVerifier{err: model.ErrInvalidToken})
	handler := mw.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with an invalid token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer bogus.token.here")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	// Present-but-invalid is Forbidden, not Unauthorized.
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var body model.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	assert.Equal(t, "FORBIDDEN", body.Error.Code)
}

func TestRequireAuth_ValidToken(t *testing.T) {
	identity := model.Identity{UserID: 7}
	mw := NewAuthMiddleware(stubVerifier{identity: identity})
	handler := mw.RequireAuth(authTestHandler(t, identity))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAuth_CaseInsensitiveScheme(t *testing.T) {
	identity := model.Identity{UserID: 3}
	mw := NewAuthMiddleware(stubVerifier{identity: identity})
	handler := mw.RequireAuth(authTestHandler(t, identity))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "bearer good-token")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestIdentityFromContext_Absent(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := IdentityFromContext(req.Context())
	assert.False(t, ok)
}
