package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-parts-market/internal/model"
	"go-parts-market/pkg/apierror"
)

type fakeProfileStore struct {
	profiles map[int64]model.Profile
	taken    map[string]int64
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: map[int64]model.Profile{}, taken: map[string]int64{}}
}

func (s *fakeProfileStore) ProfileByID(_ context.Context, id int64) (model.Profile, error) {
	p, ok := s.profiles[id]
	if !ok {
		return model.Profile{}, apierror.New("NOT_FOUND", "user not found", "", http.StatusNotFound)
	}
	return p, nil
}

func (s *fakeProfileStore) UpdateProfile(_ context.Context, userID int64, update model.ProfileUpdate) (model.User, error) {
	p, ok := s.profiles[userID]
	if !ok {
		return model.User{}, apierror.New("NOT_FOUND", "user not found", "", http.StatusNotFound)
	}
	if update.Username != nil {
		p.Username = *update.Username
	}
	if update.Bio != nil {
		p.Bio = update.Bio
	}
	s.profiles[userID] = p
	return model.User{ID: p.ID, Username: p.Username, Bio: p.Bio}, nil
}

func (s *fakeProfileStore) UsernameTakenByOther(_ context.Context, username string, userID int64) (bool, error) {
	owner, ok := s.taken[username]
	return ok && owner != userID, nil
}

func (s *fakeProfileStore) Reviews(_ context.Context, userID int64) ([]model.Review, error) {
	return nil, nil
}

func (s *fakeProfileStore) Stats(_ context.Context, userID int64) (model.UserStats, error) {
	return model.UserStats{}, nil
}

func (s *fakeProfileStore) AverageRating(_ context.Context, userID int64) (float64, error) {
	return 0, nil
}

func TestUserService_UpdateProfile(t *testing.T) {
	store := newFakeProfileStore()
	store.profiles[5] = model.Profile{ID: 5, Username: "gearhead"}
	store.taken["gearhead"] = 5
	store.taken["mechanic"] = 7
	svc := NewUserService(store)
	ctx := context.Background()

	t.Run("non-owner is Forbidden", func(t *testing.T) {
		_, err := svc.UpdateProfile(ctx, model.Identity{UserID: 9}, 5, model.ProfileUpdate{})
		requireStatus(t, err, http.StatusForbidden)
	})

	t.Run("empty username rejected", func(t *testing.T) {
		empty := "  "
		_, err := svc.UpdateProfile(ctx, model.Identity{UserID: 5}, 5, model.ProfileUpdate{Username: &empty})
		requireStatus(t, err, http.StatusBadRequest)
	})

	t.Run("taken username is Conflict", func(t *testing.T) {
		name := "mechanic"
		_, err := svc.UpdateProfile(ctx, model.Identity{UserID: 5}, 5, model.ProfileUpdate{Username: &name})
		requireStatus(t, err, http.StatusConflict)
	})

	t.Run("keeping own username is allowed", func(t *testing.T) {
		name := "gearhead"
		user, err := svc.UpdateProfile(ctx, model.Identity{UserID: 5}, 5, model.ProfileUpdate{Username: &name})
		require.NoError(t, err)
		assert.Equal(t, "gearhead", user.Username)
	})

	t.Run("partial update leaves other fields", func(t *testing.T) {
		bio := "parts hoarder"
		user, err := svc.UpdateProfile(ctx, model.Identity{UserID: 5}, 5, model.ProfileUpdate{Bio: &bio})
		require.NoError(t, err)
		assert.Equal(t, "gearhead", user.Username)
		require.NotNil(t, user.Bio)
		assert.Equal(t, "parts hoarder", *user.Bio)
	})
}
