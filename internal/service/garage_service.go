package service

import (
	"context"
	"net/http"
	"strings"

	"go-parts-market/internal/model"
	"go-parts-market/pkg/apierror"
)

type GarageStore interface {
	ListByUser(ctx context.Context, userID int64) ([]model.GarageItem, error)
	Create(ctx context.Context, userID int64, in model.GarageItemInput) (model.GarageItem, error)
	Update(ctx context.Context, userID, itemID int64, in model.GarageItemInput) (model.GarageItem, error)
	Delete(ctx context.Context, userID, itemID int64) error
	SetPrimary(ctx context.Context, userID, itemID int64) (model.GarageItem, error)
	Primary(ctx context.Context, userID int64) (model.GarageItem, error)
}

type GarageService struct {
	store GarageStore
}

func NewGarageService(store GarageStore) *GarageService {
	return &GarageService{store: store}
}

func (s *GarageService) List(ctx context.Context, userID int64) ([]model.GarageItem, error) {
	return s.store.ListByUser(ctx, userID)
}

func (s *GarageService) Primary(ctx context.Context, userID int64) (model.GarageItem, error) {
	return s.store.Primary(ctx, userID)
}

// Mutations require the path user to be the authenticated user. Garages are
// publicly listable, so the mismatch is reported as Forbidden; item-level
// misses inside your own garage come back NotFound from the scoped store.
func (s *GarageService) Add(ctx context.Context, identity model.Identity, userID int64, in model.GarageItemInput) (model.GarageItem, error) {
	if err := requireOwner(identity, userID); err != nil {
		return model.GarageItem{}, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return model.GarageItem{}, apierror.New("BAD_REQUEST", "name is required", "name", http.StatusBadRequest)
	}

	return s.store.Create(ctx, userID, in)
}

func (s *GarageService) Update(ctx context.Context, identity model.Identity, userID, itemID int64, in model.GarageItemInput) (model.GarageItem, error) {
	if err := requireOwner(identity, userID); err != nil {
		return model.GarageItem{}, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return model.GarageItem{}, apierror.New("BAD_REQUEST", "name is required", "name", http.StatusBadRequest)
	}

	return s.store.Update(ctx, userID, itemID, in)
}

func (s *GarageService) Remove(ctx context.Context, identity model.Identity, userID, itemID int64) error {
	if err := requireOwner(identity, userID); err != nil {
		return err
	}
	return s.store.Delete(ctx, userID, itemID)
}

func (s *GarageService) SetPrimary(ctx context.Context, identity model.Identity, userID, itemID int64) (model.GarageItem, error) {
	if err := requireOwner(identity, userID); err != nil {
		return model.GarageItem{}, err
	}
	return s.store.SetPrimary(ctx, userID, itemID)
}

func requireOwner(identity model.Identity, userID int64) error {
	if identity.UserID != userID {
		return apierror.New("FORBIDDEN", "not authorized to modify this garage", "", http.StatusForbidden)
	}
	return nil
}
