package handler

import (
	"encoding/json"
	"net/http"

	"go-parts-market/internal/middleware"
	"go-parts-market/internal/model"
	"go-parts-market/internal/service"
	"go-parts-market/pkg/apierror"
)

type ProductHandler struct {
	service *service.ProductService
}

func NewProductHandler(service *service.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, products, nil)
}

func (h *ProductHandler) Search(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.Search(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, products, nil)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	product, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, product, nil)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apierror.New("UNAUTHORIZED", "authentication required", "", http.StatusUnauthorized))
		return
	}

	var payload model.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	product, err := h.service.Create(r.Context(), identity, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, product, nil)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apierror.New("UNAUTHORIZED", "authentication required", "", http.StatusUnauthorized))
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.ProductInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	product, err := h.service.Update(r.Context(), identity, id, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, product, nil)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apierror.New("UNAUTHORIZED", "authentication required", "", http.StatusUnauthorized))
		return
	}

	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), identity, id); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"deleted": true}, nil)
}

// ByCategory serves paginated category browsing with optional text search
// and garage-vehicle compatibility filtering.
func (h *ProductHandler) ByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	limit := queryInt(r, "limit", 20)
	offset := queryInt(r, "offset", 0)
	search := r.URL.Query().Get("search")
	vehicleID := queryInt64(r, "vehicleId")

	page, err := h.service.CategoryPage(r.Context(), categoryID, search, vehicleID, limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}

	meta := &model.Meta{
		Page:       page.Offset/page.Limit + 1,
		Limit:      page.Limit,
		Total:      page.Total,
		TotalPages: (page.Total + page.Limit - 1) / page.Limit,
	}

	writeSuccess(w, http.StatusOK, page.Products, meta)
}

// CompatibleParts lists products in a parts category that fit one of the
// caller's garage vehicles. Both parameters come from the query string.
func (h *ProductHandler) CompatibleParts(w http.ResponseWriter, r *http.Request) {
	categoryID := queryInt64(r, "categoryId")
	vehicleID := queryInt64(r, "vehicleId")

	products, err := h.service.CompatibleParts(r.Context(), categoryID, vehicleID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, products, nil)
}
