package service

import (
	"context"
	"net/http"
	"strings"

	"go-parts-market/internal/model"
	"go-parts-market/pkg/apierror"
)

type CatalogStore interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	FindCategory(ctx context.Context, id int64) (model.Category, error)
	ListCountries(ctx context.Context) ([]model.Country, error)
	ListStates(ctx context.Context, countryID int64) ([]model.State, error)
	ListCities(ctx context.Context, stateID int64) ([]model.City, error)
	SearchCities(ctx context.Context, query string) ([]model.City, error)
}

type CatalogService struct {
	store CatalogStore
}

func NewCatalogService(store CatalogStore) *CatalogService {
	return &CatalogService{store: store}
}

func (s *CatalogService) Categories(ctx context.Context) ([]model.Category, error) {
	return s.store.ListCategories(ctx)
}

func (s *CatalogService) Category(ctx context.Context, id int64) (model.Category, error) {
	return s.store.FindCategory(ctx, id)
}

func (s *CatalogService) Countries(ctx context.Context) ([]model.Country, error) {
	return s.store.ListCountries(ctx)
}

func (s *CatalogService) States(ctx context.Context, countryID int64) ([]model.State, error) {
	return s.store.ListStates(ctx, countryID)
}

func (s *CatalogService) Cities(ctx context.Context, stateID int64) ([]model.City, error) {
	return s.store.ListCities(ctx, stateID)
}

func (s *CatalogService) SearchCities(ctx context.Context, query string) ([]model.City, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apierror.New("BAD_REQUEST", "search query is required", "query", http.StatusBadRequest)
	}
	return s.store.SearchCities(ctx, query)
}
