package service

import (
	"context"
	"net/http"

	"go-parts-market/internal/model"
	"go-parts-market/pkg/apierror"
)

const recommendationLimit = 20

type RecommendationStore interface {
	RecordInteraction(ctx context.Context, in model.Interaction) error
	UpsertPreferences(ctx context.Context, userID int64, req model.PreferencesRequest) error
	Preferences(ctx context.Context, userID int64) (model.Preferences, error)
	Personalized(ctx context.Context, userID int64, limit int) ([]model.RecommendedProduct, error)
}

type RecommendationService struct {
	store RecommendationStore
}

func NewRecommendationService(store RecommendationStore) *RecommendationService {
	return &RecommendationService{store: store}
}

func (s *RecommendationService) RecordInteraction(ctx context.Context, identity model.Identity, req model.InteractionRequest) error {
	if req.ProductID <= 0 {
		return apierror.New("BAD_REQUEST", "product_id is required", "product_id", http.StatusBadRequest)
	}

	switch req.InteractionType {
	case model.InteractionView, model.InteractionFavorite, model.InteractionPurchase:
	default:
		return apierror.New("BAD_REQUEST", "invalid interaction type", "interaction_type", http.StatusBadRequest)
	}

	return s.store.RecordInteraction(ctx, model.Interaction{
		UserID:          identity.UserID,
		ProductID:       req.ProductID,
		InteractionType: req.InteractionType,
	})
}

func (s *RecommendationService) Personalized(ctx context.Context, identity model.Identity) ([]model.RecommendedProduct, error) {
	return s.store.Personalized(ctx, identity.UserID, recommendationLimit)
}

func (s *RecommendationService) UpdatePreferences(ctx context.Context, identity model.Identity, req model.PreferencesRequest) error {
	return s.store.UpsertPreferences(ctx, identity.UserID, req)
}

func (s *RecommendationService) Preferences(ctx context.Context, identity model.Identity) (model.Preferences, error) {
	return s.store.Preferences(ctx, identity.UserID)
}
