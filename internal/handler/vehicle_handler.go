package handler

import (
	"encoding/json"
	"net/http"

	"go-parts-market/internal/service"
	"go-parts-market/pkg/apierror"
)

// VehicleHandler serves the vehicle taxonomy (type → make → model →
// submodel). Additions are open to any authenticated user; the taxonomy
// grows from what sellers actually list.
type VehicleHandler struct {
	service *service.VehicleService
}

func NewVehicleHandler(service *service.VehicleService) *VehicleHandler {
	return &VehicleHandler{service: service}
}

type namePayload struct {
	Name string `json:"name"`
}

func (h *VehicleHandler) Types(w http.ResponseWriter, r *http.Request) {
	types, err := h.service.Types(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, types, nil)
}

func (h *VehicleHandler) Makes(w http.ResponseWriter, r *http.Request) {
	typeID, err := pathID(r, "typeId")
	if err != nil {
		writeError(w, err)
		return
	}

	makes, err := h.service.Makes(r.Context(), typeID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, makes, nil)
}

func (h *VehicleHandler) Models(w http.ResponseWriter, r *http.Request) {
	makeID, err := pathID(r, "makeId")
	if err != nil {
		writeError(w, err)
		return
	}

	models, err := h.service.Models(r.Context(), makeID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, models, nil)
}

func (h *VehicleHandler) Submodels(w http.ResponseWriter, r *http.Request) {
	modelID, err := pathID(r, "modelId")
	if err != nil {
		writeError(w, err)
		return
	}

	submodels, err := h.service.Submodels(r.Context(), modelID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, submodels, nil)
}

func (h *VehicleHandler) AddType(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var payload namePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	created, err := h.service.AddType(r.Context(), payload.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, created, nil)
}

func (h *VehicleHandler) AddMake(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	typeID, err := pathID(r, "typeId")
	if err != nil {
		writeError(w, err)
		return
	}

	var payload namePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	created, err := h.service.AddMake(r.Context(), typeID, payload.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, created, nil)
}

func (h *VehicleHandler) AddModel(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	makeID, err := pathID(r, "makeId")
	if err != nil {
		writeError(w, err)
		return
	}

	var payload namePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	created, err := h.service.AddModel(r.Context(), makeID, payload.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, created, nil)
}

func (h *VehicleHandler) AddSubmodel(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	modelID, err := pathID(r, "modelId")
	if err != nil {
		writeError(w, err)
		return
	}

	var payload namePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	created, err := h.service.AddSubmodel(r.Context(), modelID, payload.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, created, nil)
}
