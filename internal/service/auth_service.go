package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"go-parts-market/internal/model"
	"go-parts-market/pkg/apierror"
)

// UserStore is the slice of the credential store the auth core needs.
type UserStore interface {
	FindByID(ctx context.Context, id int64) (model.User, error)
	FindByIdentifier(ctx context.Context, identifier string) (model.User, error)
	Create(ctx context.Context, username, email, passwordHash string) (model.User, error)
	TouchLastActive(ctx context.Context, userID int64) error
	ProfileByID(ctx context.Context, id int64) (model.Profile, error)
}

// AuthService owns credential hashing, token issuance and verification.
// Tokens are stateless HS256 JWTs with a fixed TTL; validity is signature
// integrity plus expiry, nothing else. There is no revocation list.
type AuthService struct {
	store      UserStore
	jwtSecret  []byte
	tokenTTL   time.Duration
	bcryptCost int
}

type authClaims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"user_id"`
}

func NewAuthService(store UserStore, jwtSecret string, tokenTTL time.Duration, bcryptCost int) (*AuthService, error) {
	if strings.TrimSpace(jwtSecret) == "" {
		return nil, errors.New("jwt secret is required")
	}
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	if bcryptCost == 0 {
		bcryptCost = 10
	}

	return &AuthService{
		store:      store,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
	}, nil
}

func (s *AuthService) Register(ctx context.Context, username, email, password string) (model.AuthResponse, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if username == "" || email == "" || password == "" {
		return model.AuthResponse{}, apierror.New("BAD_REQUEST", "username, email and password are required", "", http.StatusBadRequest)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		// Hashing failure is fatal to the registration request.
		return model.AuthResponse{}, err
	}

	// No advisory existence check: the unique indexes decide, and a
	// concurrent duplicate surfaces here as Conflict.
	user, err := s.store.Create(ctx, username, email, string(hash))
	if err != nil {
		return model.AuthResponse{}, err
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		return model.AuthResponse{}, err
	}

	return model.AuthResponse{
		User:  model.AuthUser{ID: user.ID, Username: user.Username, Email: user.Email},
		Token: token,
	}, nil
}

// Login authenticates by username-or-email plus password. Unknown
// identifier and wrong password produce the same outcome so the response
// never reveals which half was wrong.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (model.AuthResponse, error) {
	if strings.TrimSpace(identifier) == "" || password == "" {
		return model.AuthResponse{}, apierror.New("UNAUTHORIZED", "invalid credentials", "", http.StatusUnauthorized)
	}

	user, err := s.store.FindByIdentifier(ctx, identifier)
	if err != nil {
		var apiErr *apierror.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatus == http.StatusNotFound {
			return model.AuthResponse{}, apierror.New("UNAUTHORIZED", "invalid credentials", "", http.StatusUnauthorized)
		}
		return model.AuthResponse{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return model.AuthResponse{}, apierror.New("UNAUTHORIZED", "invalid credentials", "", http.StatusUnauthorized)
	}

	if err := s.store.TouchLastActive(ctx, user.ID); err != nil {
		return model.AuthResponse{}, err
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		return model.AuthResponse{}, err
	}

	return model.AuthResponse{
		User:  model.AuthUser{ID: user.ID, Username: user.Username, Email: user.Email},
		Token: token,
	}, nil
}

func (s *AuthService) IssueToken(userID int64) (string, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, authClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
		UserID: userID,
	})

	return token.SignedString(s.jwtSecret)
}

// VerifyToken checks signature and expiry together. Every failure mode
// collapses to ErrInvalidToken; callers cannot distinguish expired from
// forged, and do not need to.
func (s *AuthService) VerifyToken(tokenString string) (model.Identity, error) {
	claims := &authClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, model.ErrInvalidToken
		}
		return s.jwtSecret, nil
	})
	if err != nil || !parsed.Valid || claims.UserID <= 0 {
		return model.Identity{}, model.ErrInvalidToken
	}

	return model.Identity{UserID: claims.UserID}, nil
}

func (s *AuthService) Me(ctx context.Context, userID int64) (model.Profile, error) {
	return s.store.ProfileByID(ctx, userID)
}
