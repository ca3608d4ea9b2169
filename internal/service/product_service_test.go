package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-parts-market/internal/event"
	"go-parts-market/internal/model"
	"go-parts-market/internal/repository"
	"go-parts-market/pkg/apierror"
)

type fakeProductStore struct {
	products map[int64]model.Product
	nextID   int64

	lastCategoryFilter repository.CategoryFilter
}

func newFakeProductStore() *fakeProductStore {
	return &fakeProductStore{products: map[int64]model.Product{}, nextID: 1}
}

func (s *fakeProductStore) List(_ context.Context) ([]model.Product, error) {
	out := make([]model.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, p)
	}
	return out, nil
}

func (s *fakeProductStore) Search(_ context.Context, query string) ([]model.Product, error) {
	return nil, nil
}

func (s *fakeProductStore) FindByID(_ context.Context, id int64) (model.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return model.Product{}, apierror.New("NOT_FOUND", "product not found", "", http.StatusNotFound)
	}
	return p, nil
}

func (s *fakeProductStore) Create(_ context.Context, sellerID int64, in model.ProductInput) (model.Product, error) {
	p := model.Product{ID: s.nextID, UserID: sellerID, Title: in.Title, Price: in.Price}
	s.products[s.nextID] = p
	s.nextID++
	return p, nil
}

func (s *fakeProductStore) Update(_ context.Context, id int64, ownerID int64, in model.ProductInput) (model.Product, error) {
	p, ok := s.products[id]
	if !ok || p.UserID != ownerID {
		return model.Product{}, apierror.New("NOT_FOUND", "product not found", "", http.StatusNotFound)
	}
	p.Title = in.Title
	p.Price = in.Price
	s.products[id] = p
	return p, nil
}

func (s *fakeProductStore) Delete(_ context.Context, id int64, ownerID int64) error {
	p, ok := s.products[id]
	if !ok || p.UserID != ownerID {
		return apierror.New("NOT_FOUND", "product not found", "", http.StatusNotFound)
	}
	delete(s.products, id)
	return nil
}

func (s *fakeProductStore) ListByUser(_ context.Context, userID int64) ([]model.Product, error) {
	var out []model.Product
	for _, p := range s.products {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakeProductStore) ListByCategory(_ context.Context, categoryID int64, f repository.CategoryFilter) ([]model.Product, int, error) {
	s.lastCategoryFilter = f
	return nil, 0, nil
}

type fakeGarageReader struct {
	items map[int64]model.GarageItem
}

func (r fakeGarageReader) FindByID(_ context.Context, itemID int64) (model.GarageItem, error) {
	item, ok := r.items[itemID]
	if !ok {
		return model.GarageItem{}, apierror.New("NOT_FOUND", "garage item not found", "", http.StatusNotFound)
	}
	return item, nil
}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	var apiErr *apierror.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, status, apiErr.HTTPStatus)
}

func TestProductService_Create(t *testing.T) {
	store := newFakeProductStore()
	svc := NewProductService(store, fakeGarageReader{}, event.NewBus())
	ctx := context.Background()
	identity := model.Identity{UserID: 5}

	t.Run("seller comes from identity", func(t *testing.T) {
		product, err := svc.Create(ctx, identity, model.ProductInput{Title: "Brake pads", Price: 45})
		require.NoError(t, err)
		assert.Equal(t, int64(5), product.UserID)
	})

	t.Run("title required", func(t *testing.T) {
		_, err := svc.Create(ctx, identity, model.ProductInput{Title: "  ", Price: 10})
		requireStatus(t, err, http.StatusBadRequest)
	})

	t.Run("negative price rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, identity, model.ProductInput{Title: "Oil filter", Price: -1})
		requireStatus(t, err, http.StatusBadRequest)
	})
}

func TestProductService_OwnershipScoping(t *testing.T) {
	store := newFakeProductStore()
	svc := NewProductService(store, fakeGarageReader{}, event.NewBus())
	ctx := context.Background()
	owner := model.Identity{UserID: 5}
	stranger := model.Identity{UserID: 6}

	product, err := svc.Create(ctx, owner, model.ProductInput{Title: "Brake pads", Price: 45})
	require.NoError(t, err)

	t.Run("non-owner update is NotFound", func(t *testing.T) {
		_, err := svc.Update(ctx, stranger, product.ID, model.ProductInput{Title: "Stolen", Price: 1})
		requireStatus(t, err, http.StatusNotFound)
	})

	t.Run("non-owner delete is NotFound", func(t *testing.T) {
		err := svc.Delete(ctx, stranger, product.ID)
		requireStatus(t, err, http.StatusNotFound)
	})

	t.Run("owner update succeeds", func(t *testing.T) {
		updated, err := svc.Update(ctx, owner, product.ID, model.ProductInput{Title: "Brake pads (new)", Price: 40})
		require.NoError(t, err)
		assert.Equal(t, "Brake pads (new)", updated.Title)
	})

	t.Run("owner delete succeeds", func(t *testing.T) {
		require.NoError(t, svc.Delete(ctx, owner, product.ID))
		_, err := svc.Get(ctx, product.ID)
		requireStatus(t, err, http.StatusNotFound)
	})
}

func TestProductService_Search_RequiresQuery(t *testing.T) {
	svc := NewProductService(newFakeProductStore(), fakeGarageReader{}, nil)

	_, err := svc.Search(context.Background(), "   ")
	requireStatus(t, err, http.StatusBadRequest)
}

func TestProductService_CategoryPage(t *testing.T) {
	store := newFakeProductStore()
	garage := fakeGarageReader{items: map[int64]model.GarageItem{
		3: {ID: 3, UserID: 5, Name: "Daily driver"},
	}}
	svc := NewProductService(store, garage, nil)
	ctx := context.Background()

	t.Run("limit clamped to default", func(t *testing.T) {
		page, err := svc.CategoryPage(ctx, 1, "", 0, 500, -2)
		require.NoError(t, err)
		assert.Equal(t, 20, page.Limit)
		assert.Equal(t, 0, page.Offset)
	})

	t.Run("vehicle filter resolved from garage", func(t *testing.T) {
		_, err := svc.CategoryPage(ctx, 1, "", 3, 10, 0)
		require.NoError(t, err)
		require.NotNil(t, store.lastCategoryFilter.Vehicle)
		assert.Equal(t, int64(3), store.lastCategoryFilter.Vehicle.ID)
	})

	t.Run("unknown vehicle propagates NotFound", func(t *testing.T) {
		_, err := svc.CategoryPage(ctx, 1, "", 99, 10, 0)
		requireStatus(t, err, http.StatusNotFound)
	})
}

func TestProductService_CompatibleParts(t *testing.T) {
	store := newFakeProductStore()
	garage := fakeGarageReader{items: map[int64]model.GarageItem{
		3: {ID: 3, UserID: 5, Name: "Daily driver"},
	}}
	svc := NewProductService(store, garage, nil)
	ctx := context.Background()

	t.Run("category must be in parts band", func(t *testing.T) {
		_, err := svc.CompatibleParts(ctx, 5, 3)
		requireStatus(t, err, http.StatusBadRequest)

		_, err = svc.CompatibleParts(ctx, 21, 3)
		requireStatus(t, err, http.StatusBadRequest)
	})

	t.Run("vehicle id required", func(t *testing.T) {
		_, err := svc.CompatibleParts(ctx, 12, 0)
		requireStatus(t, err, http.StatusBadRequest)
	})

	t.Run("unknown vehicle is NotFound", func(t *testing.T) {
		_, err := svc.CompatibleParts(ctx, 12, 99)
		requireStatus(t, err, http.StatusNotFound)
	})

	t.Run("valid request queries the category with the vehicle", func(t *testing.T) {
		_, err := svc.CompatibleParts(ctx, 12, 3)
		require.NoError(t, err)
		require.NotNil(t, store.lastCategoryFilter.Vehicle)
		assert.Equal(t, int64(3), store.lastCategoryFilter.Vehicle.ID)
	})
}
