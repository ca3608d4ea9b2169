package handler

import (
	"encoding/json"
	"net/http"

	"go-parts-market/internal/middleware"
	"go-parts-market/internal/model"
	"go-parts-market/internal/service"
	"go-parts-market/pkg/apierror"
)

type RecommendationHandler struct {
	service *service.RecommendationService
}

func NewRecommendationHandler(service *service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{service: service}
}

func (h *RecommendationHandler) RecordInteraction(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apierror.New("UNAUTHORIZED", "authentication required", "", http.StatusUnauthorized))
		return
	}

	var payload model.InteractionRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	if err := h.service.RecordInteraction(r.Context(), identity, payload); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"recorded": true}, nil)
}

func (h *RecommendationHandler) Personalized(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apierror.New("UNAUTHORIZED", "authentication required", "", http.StatusUnauthorized))
		return
	}

	products, err := h.service.Personalized(r.Context(), identity)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, products, nil)
}

func (h *RecommendationHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apierror.New("UNAUTHORIZED", "authentication required", "", http.StatusUnauthorized))
		return
	}

	var payload model.PreferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	if err := h.service.UpdatePreferences(r.Context(), identity, payload); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"updated": true}, nil)
}

func (h *RecommendationHandler) Preferences(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apierror.New("UNAUTHORIZED", "authentication required", "", http.StatusUnauthorized))
		return
	}

	prefs, err := h.service.Preferences(r.Context(), identity)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, prefs, nil)
}
