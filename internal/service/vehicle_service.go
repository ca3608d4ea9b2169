package service

import (
	"context"
	"net/http"
	"strings"

	"go-parts-market/internal/model"
	"go-parts-market/pkg/apierror"
)

type VehicleStore interface {
	ListTypes(ctx context.Context) ([]model.VehicleRef, error)
	ListMakes(ctx context.Context, typeID int64) ([]model.VehicleRef, error)
	ListModels(ctx context.Context, makeID int64) ([]model.VehicleRef, error)
	ListSubmodels(ctx context.Context, modelID int64) ([]model.VehicleRef, error)
	CreateType(ctx context.Context, name string) (model.VehicleRef, error)
	CreateMake(ctx context.Context, typeID int64, name string) (model.VehicleRef, error)
	CreateModel(ctx context.Context, makeID int64, name string) (model.VehicleRef, error)
	CreateSubmodel(ctx context.Context, modelID int64, name string) (model.VehicleRef, error)
}

type VehicleService struct {
	store VehicleStore
}

func NewVehicleService(store VehicleStore) *VehicleService {
	return &VehicleService{store: store}
}

func (s *VehicleService) Types(ctx context.Context) ([]model.VehicleRef, error) {
	return s.store.ListTypes(ctx)
}

func (s *VehicleService) Makes(ctx context.Context, typeID int64) ([]model.VehicleRef, error) {
	return s.store.ListMakes(ctx, typeID)
}

func (s *VehicleService) Models(ctx context.Context, makeID int64) ([]model.VehicleRef, error) {
	return s.store.ListModels(ctx, makeID)
}

func (s *VehicleService) Submodels(ctx context.Context, modelID int64) ([]model.VehicleRef, error) {
	return s.store.ListSubmodels(ctx, modelID)
}

func (s *VehicleService) AddType(ctx context.Context, name string) (model.VehicleRef, error) {
	if err := requireName(name); err != nil {
		return model.VehicleRef{}, err
	}
	return s.store.CreateType(ctx, strings.TrimSpace(name))
}

func (s *VehicleService) AddMake(ctx context.Context, typeID int64, name string) (model.VehicleRef, error) {
	if err := requireName(name); err != nil {
		return model.VehicleRef{}, err
	}
	return s.store.CreateMake(ctx, typeID, strings.TrimSpace(name))
}

func (s *VehicleService) AddModel(ctx context.Context, makeID int64, name string) (model.VehicleRef, error) {
	if err := requireName(name); err != nil {
		return model.VehicleRef{}, err
	}
	return s.store.CreateModel(ctx, makeID, strings.TrimSpace(name))
}

func (s *VehicleService) AddSubmodel(ctx context.Context, modelID int64, name string) (model.VehicleRef, error) {
	if err := requireName(name); err != nil {
		return model.VehicleRef{}, err
	}
	return s.store.CreateSubmodel(ctx, modelID, strings.TrimSpace(name))
}

func requireName(name string) error {
	if strings.TrimSpace(name) == "" {
		return apierror.New("BAD_REQUEST", "name is required", "name", http.StatusBadRequest)
	}
	return nil
}
