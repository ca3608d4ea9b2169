package service

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"go-parts-market/internal/event"
	"go-parts-market/internal/model"
	"go-parts-market/internal/repository"
	"go-parts-market/pkg/apierror"
)

// Parts categories occupy a fixed id band in the category table.
const (
	partsCategoryMin = 10
	partsCategoryMax = 20
)

type ProductStore interface {
	List(ctx context.Context) ([]model.Product, error)
	Search(ctx context.Context, query string) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)
	Create(ctx context.Context, sellerID int64, in model.ProductInput) (model.Product, error)
	Update(ctx context.Context, id int64, ownerID int64, in model.ProductInput) (model.Product, error)
	Delete(ctx context.Context, id int64, ownerID int64) error
	ListByUser(ctx context.Context, userID int64) ([]model.Product, error)
	ListByCategory(ctx context.Context, categoryID int64, f repository.CategoryFilter) ([]model.Product, int, error)
}

type GarageReader interface {
	FindByID(ctx context.Context, itemID int64) (model.GarageItem, error)
}

type ProductService struct {
	store  ProductStore
	garage GarageReader
	bus    event.Bus
}

func NewProductService(store ProductStore, garage GarageReader, bus event.Bus) *ProductService {
	return &ProductService{store: store, garage: garage, bus: bus}
}

func (s *ProductService) List(ctx context.Context) ([]model.Product, error) {
	return s.store.List(ctx)
}

func (s *ProductService) Search(ctx context.Context, query string) ([]model.Product, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apierror.New("BAD_REQUEST", "search query is required", "query", http.StatusBadRequest)
	}
	return s.store.Search(ctx, query)
}

func (s *ProductService) Get(ctx context.Context, id int64) (model.Product, error) {
	return s.store.FindByID(ctx, id)
}

// Create lists a product for sale. The seller is always the authenticated
// identity; a user_id in the payload is ignored by construction.
func (s *ProductService) Create(ctx context.Context, identity model.Identity, in model.ProductInput) (model.Product, error) {
	if err := validateProductInput(in); err != nil {
		return model.Product{}, err
	}

	product, err := s.store.Create(ctx, identity.UserID, in)
	if err != nil {
		return model.Product{}, err
	}

	s.publish(event.TypeProductCreated, product, identity.UserID)
	return product, nil
}

// Update and Delete scope the row by owner in the store; a missing row and
// a row owned by someone else are indistinguishable to the caller.
func (s *ProductService) Update(ctx context.Context, identity model.Identity, id int64, in model.ProductInput) (model.Product, error) {
	if err := validateProductInput(in); err != nil {
		return model.Product{}, err
	}

	product, err := s.store.Update(ctx, id, identity.UserID, in)
	if err != nil {
		return model.Product{}, err
	}

	s.publish(event.TypeProductUpdated, product, identity.UserID)
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, identity model.Identity, id int64) error {
	if err := s.store.Delete(ctx, id, identity.UserID); err != nil {
		return err
	}

	s.publish(event.TypeProductDeleted, map[string]int64{"id": id}, identity.UserID)
	return nil
}

func (s *ProductService) ListByUser(ctx context.Context, userID int64) ([]model.Product, error) {
	return s.store.ListByUser(ctx, userID)
}

func (s *ProductService) CategoryPage(ctx context.Context, categoryID int64, search string, vehicleID int64, limit, offset int) (model.ProductPage, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	filter := repository.CategoryFilter{Search: strings.TrimSpace(search), Limit: limit, Offset: offset}

	if vehicleID > 0 {
		vehicle, err := s.garage.FindByID(ctx, vehicleID)
		if err != nil {
			return model.ProductPage{}, err
		}
		filter.Vehicle = &vehicle
	}

	products, total, err := s.store.ListByCategory(ctx, categoryID, filter)
	if err != nil {
		return model.ProductPage{}, err
	}

	return model.ProductPage{Products: products, Total: total, Limit: limit, Offset: offset}, nil
}

// CompatibleParts serves the parts finder: listings in a parts category
// filtered by compatibility with one of the caller's garage vehicles.
func (s *ProductService) CompatibleParts(ctx context.Context, categoryID, vehicleID int64) ([]model.Product, error) {
	if categoryID < partsCategoryMin || categoryID > partsCategoryMax {
		return nil, apierror.New("BAD_REQUEST", "invalid parts category", "categoryId", http.StatusBadRequest)
	}
	if vehicleID <= 0 {
		return nil, apierror.New("BAD_REQUEST", "vehicle id is required", "vehicleId", http.StatusBadRequest)
	}

	vehicle, err := s.garage.FindByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	products, _, err := s.store.ListByCategory(ctx, categoryID, repository.CategoryFilter{
		Vehicle: &vehicle,
		Limit:   100,
	})
	return products, err
}

func (s *ProductService) publish(t event.Type, payload any, actorID int64) {
	if s.bus == nil {
		return
	}

	s.bus.Publish(event.Event{
		ID:        uuid.NewString(),
		Type:      t,
		Payload:   payload,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		ActorID:   actorID,
	})
}

func validateProductInput(in model.ProductInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return apierror.New("BAD_REQUEST", "title is required", "title", http.StatusBadRequest)
	}
	if in.Price < 0 {
		return apierror.New("BAD_REQUEST", "price cannot be negative", "price", http.StatusBadRequest)
	}
	return nil
}
