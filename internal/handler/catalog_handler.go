package handler

import (
	"net/http"

	"go-parts-market/internal/service"
)

// CatalogHandler serves the reference data surfaces: categories plus the
// country/state/city location tree.
type CatalogHandler struct {
	service *service.CatalogService
}

func NewCatalogHandler(service *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.Categories(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, categories, nil)
}

func (h *CatalogHandler) Category(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	category, err := h.service.Category(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, category, nil)
}

func (h *CatalogHandler) Countries(w http.ResponseWriter, r *http.Request) {
	countries, err := h.service.Countries(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, countries, nil)
}

func (h *CatalogHandler) States(w http.ResponseWriter, r *http.Request) {
	countryID, err := pathID(r, "countryId")
	if err != nil {
		writeError(w, err)
		return
	}

	states, err := h.service.States(r.Context(), countryID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, states, nil)
}

func (h *CatalogHandler) Cities(w http.ResponseWriter, r *http.Request) {
	stateID, err := pathID(r, "stateId")
	if err != nil {
		writeError(w, err)
		return
	}

	cities, err := h.service.Cities(r.Context(), stateID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, cities, nil)
}

func (h *CatalogHandler) SearchCities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.service.SearchCities(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, cities, nil)
}
