package handler

import (
	"encoding/json"
	"net/http"

	"go-parts-market/internal/middleware"
	"go-parts-market/internal/model"
	"go-parts-market/internal/service"
	"go-parts-market/pkg/apierror"
)

type MessageHandler struct {
	service *service.MessageService
}

func NewMessageHandler(service *service.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

func (h *MessageHandler) Thread(w http.ResponseWriter, r *http.Request) {
	productID, err := pathID(r, "productId")
	if err != nil {
		writeError(w, err)
		return
	}

	messages, err := h.service.Thread(r.Context(), productID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, messages, nil)
}

func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apierror.New("UNAUTHORIZED", "authentication required", "", http.StatusUnauthorized))
		return
	}

	var payload model.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, apierror.New("BAD_REQUEST", "invalid JSON body", "", http.StatusBadRequest))
		return
	}

	message, err := h.service.Send(r.Context(), identity, payload)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, message, nil)
}

func (h *MessageHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeError(w, apierror.New("UNAUTHORIZED", "authentication required", "", http.StatusUnauthorized))
		return
	}

	messageID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	message, err := h.service.MarkRead(r.Context(), identity, messageID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, message, nil)
}
