package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go-parts-market/internal/model"
)

type healthChecker interface {
	Health(ctx context.Context) error
}

type HealthHandler struct {
	db healthChecker
}

func NewHealthHandler(db healthChecker) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	healthy := h.db.Health(ctx) == nil

	status := "ok"
	database := "up"
	code := http.StatusOK
	if !healthy {
		status = "degraded"
		database = "down"
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(model.APIResponse{
		Success: healthy,
		Data: map[string]string{
			"status":   status,
			"database": database,
		},
	})
}
