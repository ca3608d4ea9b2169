package service

import (
	"context"
	"net/http"
	"strings"

	"go-parts-market/internal/model"
	"go-parts-market/pkg/apierror"
)

// ProfileStore is the slice of the user repository the profile surface uses.
type ProfileStore interface {
	ProfileByID(ctx context.Context, id int64) (model.Profile, error)
	UpdateProfile(ctx context.Context, userID int64, update model.ProfileUpdate) (model.User, error)
	UsernameTakenByOther(ctx context.Context, username string, userID int64) (bool, error)
	Reviews(ctx context.Context, userID int64) ([]model.Review, error)
	Stats(ctx context.Context, userID int64) (model.UserStats, error)
	AverageRating(ctx context.Context, userID int64) (float64, error)
}

type UserService struct {
	store ProfileStore
}

func NewUserService(store ProfileStore) *UserService {
	return &UserService{store: store}
}

func (s *UserService) Profile(ctx context.Context, id int64) (model.Profile, error) {
	return s.store.ProfileByID(ctx, id)
}

// UpdateProfile enforces ownership: only the authenticated user may mutate
// their own record. Profiles are publicly readable by id, so a mismatch is
// a plain Forbidden rather than a masked NotFound.
func (s *UserService) UpdateProfile(ctx context.Context, identity model.Identity, targetID int64, update model.ProfileUpdate) (model.User, error) {
	if identity.UserID != targetID {
		return model.User{}, apierror.New("FORBIDDEN", "not authorized to update this profile", "", http.StatusForbidden)
	}

	if update.Username != nil {
		trimmed := strings.TrimSpace(*update.Username)
		if trimmed == "" {
			return model.User{}, apierror.New("BAD_REQUEST", "username cannot be empty", "username", http.StatusBadRequest)
		}
		update.Username = &trimmed

		taken, err := s.store.UsernameTakenByOther(ctx, trimmed, identity.UserID)
		if err != nil {
			return model.User{}, err
		}
		if taken {
			return model.User{}, apierror.New("ALREADY_EXISTS", "username already taken", "username", http.StatusConflict)
		}
	}

	return s.store.UpdateProfile(ctx, targetID, update)
}

func (s *UserService) Reviews(ctx context.Context, userID int64) ([]model.Review, error) {
	return s.store.Reviews(ctx, userID)
}

func (s *UserService) Stats(ctx context.Context, userID int64) (model.UserStats, error) {
	return s.store.Stats(ctx, userID)
}

func (s *UserService) AverageRating(ctx context.Context, userID int64) (float64, error) {
	return s.store.AverageRating(ctx, userID)
}
