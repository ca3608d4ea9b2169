package handler

import (
	"encoding/json"
	"net/http"

	"go-parts-market/internal/middleware"
	"go-parts-market/internal/model"
	"go-parts-market/internal/service"
	"go-parts-market/pkg/apierror"
)

type GarageHandler struct {
	service *service.GarageService
}

func NewGarageHandler(service *service.GarageService) *GarageHandler {
	return &GarageHandler{service: service}
}

func (h *GarageHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, err)
		return
	}

	items, err := h.service.List(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, items, nil)
}

func (h *GarageHandler) Primary(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "userId")
	if err != nil {
		writeError(w, err)
		return
	}

	item, err := h.service.Primary(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, item, nil)
}

func (h *GarageHandler) Add(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	identity, userID, err := h.mutationParams(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.GarageItemInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	item, err := h.service.Add(r.Context(), identity, userID, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, item, nil)
}

func (h *GarageHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	identity, userID, err := h.mutationParams(r)
	if err != nil {
		writeError(w, err)
		return
	}

	itemID, err := pathID(r, "itemId")
	if err != nil {
		writeError(w, err)
		return
	}

	var payload model.GarageItemInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	item, err := h.service.Update(r.Context(), identity, userID, itemID, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, item, nil)
}

func (h *GarageHandler) Remove(w http.ResponseWriter, r *http.Request) {
	identity, userID, err := h.mutationParams(r)
	if err != nil {
		writeError(w, err)
		return
	}

	itemID, err := pathID(r, "itemId")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.service.Remove(r.Context(), identity, userID, itemID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *GarageHandler) SetPrimary(w http.ResponseWriter, r *http.Request) {
	identity, userID, err := h.mutationParams(r)
	if err != nil {
		writeError(w, err)
		return
	}

	itemID, err := pathID(r, "itemId")
	if err != nil {
		writeError(w, err)
		return
	}

	item, err := h.service.SetPrimary(r.Context(), identity, userID, itemID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, item, nil)
}

func (h *GarageHandler) mutationParams(r *http.Request) (model.Identity, int64, error) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		return model.Identity{}, 0, apierror.New("UNAUTHORIZED", "authentication required", "", http.StatusUnauthorized)
	}

	userID, err := pathID(r, "userId")
	if err != nil {
		return model.Identity{}, 0, err
	}

	return identity, userID, nil
}
