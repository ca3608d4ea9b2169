package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go-parts-market/internal/model"
)

type tokenVerifier interface {
	VerifyToken(tokenString string) (model.Identity, error)
}

type contextKey string

const identityContextKey contextKey = "auth_identity"

type AuthMiddleware struct {
	verifier tokenVerifier
}

func NewAuthMiddleware(verifier tokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{verifier: verifier}
}

// RequireAuth guards protected routes. A missing bearer token is 401; a
// token that is present but fails verification (bad signature, tampering,
// expiry) is 403. The two cases are the only outcomes besides success.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := strings.TrimSpace(r.Header.Get("Authorization"))
		if header == "" || !strings.HasPrefix(strings.ToLower(header), "bearer ") {
			writeAuthError(w, http.StatusUnauthorized, "UNAUTHORIZED", "no token provided")
			return
		}

		token := strings.TrimSpace(header[7:])
		if token == "" {
			writeAuthError(w, http.StatusUnauthorized, "UNAUTHORIZED", "no token provided")
			return
		}

		identity, err := m.verifier.VerifyToken(token)
		if err != nil {
			writeAuthError(w, http.StatusForbidden, "FORBIDDEN", "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), identityContextKey, identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func IdentityFromContext(ctx context.Context) (model.Identity, bool) {
	identity, ok := ctx.Value(identityContextKey).(model.Identity)
	return identity, ok
}

func writeAuthError(w http.ResponseWriter, status int, code string, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: false,
		Error: &model.APIError{
			Code:    code,
			Message: message,
		},
	})
}
